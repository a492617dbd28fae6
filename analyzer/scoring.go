package main

// MergeQualityScore folds the standard analysis and the funnel scoring into
// one 0-10 quality score. The funnel stages are not equal weight: hook and
// CTA decide whether an ad performs, the middle stages support them.
func MergeQualityScore(result *AnalysisResult) float64 {
	if result.Funnel == nil {
		return result.OverallScore
	}

	funnelScore := result.Funnel.Hook*0.30 +
		result.Funnel.ProblemAgitation*0.15 +
		result.Funnel.Solution*0.15 +
		result.Funnel.Benefits*0.15 +
		result.Funnel.CallToAction*0.25

	return clampScore(result.OverallScore*0.5 + funnelScore*0.5)
}

// SelectScenesForReconstruction picks up to max scenes by a weighted score:
// engagement carries most of it, with a bonus for scenes in the 2-6 second
// range that cut cleanly into a reconstructed ad.
func SelectScenesForReconstruction(scenes []Scene, max int) []Scene {
	if max <= 0 || len(scenes) == 0 {
		return []Scene{}
	}

	type scored struct {
		scene Scene
		score float64
	}

	ranked := make([]scored, 0, len(scenes))
	for _, scene := range scenes {
		score := scene.EngagementScore

		seconds := sceneSeconds(scene)
		if seconds >= 2 && seconds <= 6 {
			score += 1.5
		} else if seconds > 10 {
			score -= 1.0
		}

		ranked = append(ranked, scored{scene: scene, score: score})
	}

	// Insertion sort by descending score; scene lists are tiny.
	for i := 1; i < len(ranked); i++ {
		for j := i; j > 0 && ranked[j].score > ranked[j-1].score; j-- {
			ranked[j], ranked[j-1] = ranked[j-1], ranked[j]
		}
	}

	if max > len(ranked) {
		max = len(ranked)
	}

	selected := make([]Scene, 0, max)
	for _, entry := range ranked[:max] {
		selected = append(selected, entry.scene)
	}

	return selected
}

func sceneSeconds(scene Scene) float64 {
	start, err1 := parseClockSeconds(scene.Start)
	end, err2 := parseClockSeconds(scene.End)
	if err1 != nil || err2 != nil || end < start {
		return 0
	}
	return end - start
}
