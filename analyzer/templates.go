package main

// Static marketing script templates for the fitness-ad niche. Served as-is
// through /templates, no logic attached.
var adTemplates = []AdTemplate{
	{
		Niche:    "fitness",
		Name:     "Transformation Story",
		Duration: "30s",
		Sections: []AdTemplateSection{
			{
				Heading:   "Hook",
				Voiceover: "Six months ago I couldn't climb a flight of stairs without stopping.",
				Overlay:   "DAY 1 vs DAY 180",
			},
			{
				Heading:   "Problem",
				Voiceover: "I tried every diet and every gym membership. Nothing stuck longer than two weeks.",
				Overlay:   "Sound familiar?",
			},
			{
				Heading:   "Solution",
				Voiceover: "Then I found a 15-minute daily plan that actually fits around a real job and real life.",
				Overlay:   "15 MIN / DAY",
			},
			{
				Heading:   "Proof",
				Voiceover: "Twelve kilos down, and I still eat what I love on weekends.",
				Overlay:   "-12kg in 6 months",
			},
			{
				Heading:   "Call To Action",
				Voiceover: "Take the free 60-second quiz and get your own plan today.",
				Overlay:   "TAP TO START → FREE QUIZ",
			},
		},
	},
	{
		Niche:    "fitness",
		Name:     "Problem Agitation",
		Duration: "15s",
		Sections: []AdTemplateSection{
			{
				Heading:   "Hook",
				Voiceover: "Stop doing crunches. They're not why your workouts aren't working.",
				Overlay:   "STOP ❌",
			},
			{
				Heading:   "Agitation",
				Voiceover: "You can train hard every day and still go nowhere without the one thing most plans skip.",
				Overlay:   "The missing piece",
			},
			{
				Heading:   "Call To Action",
				Voiceover: "Watch the free breakdown before it comes down.",
				Overlay:   "LINK IN BIO",
			},
		},
	},
}

// GetAdTemplates returns the static template records.
func GetAdTemplates() []AdTemplate {
	return adTemplates
}
