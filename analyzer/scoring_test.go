package main

import (
	"math"
	"testing"
)

func TestMergeQualityScoreWithoutFunnel(t *testing.T) {
	result := &AnalysisResult{OverallScore: 6.5}
	if got := MergeQualityScore(result); got != 6.5 {
		t.Errorf("quality score = %v, want overall score 6.5", got)
	}
}

func TestMergeQualityScoreWithFunnel(t *testing.T) {
	result := &AnalysisResult{
		OverallScore: 8,
		Funnel: &FunnelScores{
			Hook:             10,
			ProblemAgitation: 10,
			Solution:         10,
			Benefits:         10,
			CallToAction:     10,
		},
	}

	// Perfect funnel averages to 10, so quality = 0.5*8 + 0.5*10 = 9
	if got := MergeQualityScore(result); math.Abs(got-9) > 1e-9 {
		t.Errorf("quality score = %v, want 9", got)
	}
}

func TestMergeQualityScoreWeightsHookAndCTA(t *testing.T) {
	hookOnly := &AnalysisResult{
		OverallScore: 0,
		Funnel:       &FunnelScores{Hook: 10},
	}
	solutionOnly := &AnalysisResult{
		OverallScore: 0,
		Funnel:       &FunnelScores{Solution: 10},
	}

	if MergeQualityScore(hookOnly) <= MergeQualityScore(solutionOnly) {
		t.Error("a strong hook should weigh more than a strong solution stage")
	}
}

func TestSelectScenesOrdersByEngagement(t *testing.T) {
	scenes := []Scene{
		{Start: "00:00", End: "00:04", Description: "low", EngagementScore: 2},
		{Start: "00:04", End: "00:08", Description: "high", EngagementScore: 9},
		{Start: "00:08", End: "00:12", Description: "mid", EngagementScore: 5},
	}

	selected := SelectScenesForReconstruction(scenes, 2)
	if len(selected) != 2 {
		t.Fatalf("selected %d scenes, want 2", len(selected))
	}
	if selected[0].Description != "high" {
		t.Errorf("first selected = %q, want highest engagement", selected[0].Description)
	}
	if selected[1].Description != "mid" {
		t.Errorf("second selected = %q, want mid", selected[1].Description)
	}
}

func TestSelectScenesPrefersCleanCutDurations(t *testing.T) {
	scenes := []Scene{
		{Start: "00:00", End: "00:20", Description: "long", EngagementScore: 7},
		{Start: "00:20", End: "00:24", Description: "short", EngagementScore: 7},
	}

	selected := SelectScenesForReconstruction(scenes, 1)
	if len(selected) != 1 || selected[0].Description != "short" {
		t.Errorf("selected = %+v, want the 4s scene over the 20s scene at equal engagement", selected)
	}
}

func TestSelectScenesCapsAndEmptyInput(t *testing.T) {
	if got := SelectScenesForReconstruction(nil, 3); len(got) != 0 {
		t.Errorf("nil input should select nothing, got %d", len(got))
	}

	scenes := []Scene{{Start: "00:00", End: "00:03", EngagementScore: 5}}
	if got := SelectScenesForReconstruction(scenes, 10); len(got) != 1 {
		t.Errorf("cap above input size should return all scenes, got %d", len(got))
	}
	if got := SelectScenesForReconstruction(scenes, 0); len(got) != 0 {
		t.Errorf("zero cap should select nothing, got %d", len(got))
	}
}
