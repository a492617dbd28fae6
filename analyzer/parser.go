package main

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Models wrap JSON in markdown fences more often than not. Try the fenced
// block first, then the raw text, then anything between the outermost braces.
var jsonFenceRegex = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")

// ExtractAnalysisResult parses the model text into an AnalysisResult.
// A parse failure never propagates: the caller gets a default-filled
// result plus a warning describing what went wrong.
func ExtractAnalysisResult(raw string) (*AnalysisResult, string) {
	candidate := extractJSONCandidate(raw)

	var result AnalysisResult
	if err := json.Unmarshal([]byte(candidate), &result); err != nil {
		return defaultAnalysisResult(raw), fmt.Sprintf("could not parse model response as JSON: %v", err)
	}

	clampResult(&result)
	return &result, ""
}

func extractJSONCandidate(raw string) string {
	if matches := jsonFenceRegex.FindStringSubmatch(raw); len(matches) >= 2 {
		return matches[1]
	}

	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "{") {
		return trimmed
	}

	// Last resort: outermost braces
	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start != -1 && end > start {
		return trimmed[start : end+1]
	}

	return trimmed
}

// defaultAnalysisResult is the catch-all fallback: an empty result that
// still renders in the dashboard, with the raw text preserved as summary.
func defaultAnalysisResult(raw string) *AnalysisResult {
	summary := strings.TrimSpace(raw)
	if len(summary) > 500 {
		// Back up to a rune boundary so the cut never splits a sequence.
		cut := 500
		for cut > 0 && !utf8.RuneStart(summary[cut]) {
			cut--
		}
		summary = summary[:cut] + "..."
	}

	return &AnalysisResult{
		Summary:         summary,
		OverallScore:    0,
		Scenes:          []Scene{},
		Timestamps:      []TimestampHighlight{},
		Emotions:        []EmotionReading{},
		Recommendations: []Recommendation{},
	}
}

// clampResult keeps scores inside the 0-10 range the prompt asks for and
// fills nil slices so the JSON rendered downstream never has null arrays.
func clampResult(result *AnalysisResult) {
	result.OverallScore = clampScore(result.OverallScore)
	for i := range result.Scenes {
		result.Scenes[i].EngagementScore = clampScore(result.Scenes[i].EngagementScore)
	}
	for i := range result.Emotions {
		result.Emotions[i].Intensity = clampScore(result.Emotions[i].Intensity)
	}
	if result.Funnel != nil {
		result.Funnel.Hook = clampScore(result.Funnel.Hook)
		result.Funnel.ProblemAgitation = clampScore(result.Funnel.ProblemAgitation)
		result.Funnel.Solution = clampScore(result.Funnel.Solution)
		result.Funnel.Benefits = clampScore(result.Funnel.Benefits)
		result.Funnel.CallToAction = clampScore(result.Funnel.CallToAction)
	}

	if result.Scenes == nil {
		result.Scenes = []Scene{}
	}
	if result.Timestamps == nil {
		result.Timestamps = []TimestampHighlight{}
	}
	if result.Emotions == nil {
		result.Emotions = []EmotionReading{}
	}
	if result.Recommendations == nil {
		result.Recommendations = []Recommendation{}
	}
}

func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 10 {
		return 10
	}
	return score
}
