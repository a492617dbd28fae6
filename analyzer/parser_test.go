package main

import (
	"strings"
	"testing"
	"unicode/utf8"
)

const fencedResponse = "Here is the analysis you asked for:\n\n```json\n{\n  \"summary\": \"A fast-paced fitness ad.\",\n  \"overall_score\": 7.5,\n  \"scenes\": [\n    {\"start\": \"00:00\", \"end\": \"00:03\", \"description\": \"Gym intro\", \"engagement_score\": 8.2}\n  ],\n  \"timestamps\": [\n    {\"at\": \"00:01\", \"label\": \"hook\", \"note\": \"strong opener\"}\n  ],\n  \"emotions\": [\n    {\"at\": \"00:02\", \"emotion\": \"excitement\", \"intensity\": 6.0}\n  ],\n  \"recommendations\": [\n    {\"category\": \"cta\", \"priority\": \"high\", \"note\": \"add end card\"}\n  ]\n}\n```\n\nLet me know if you need more detail."

func TestExtractAnalysisResultFencedJSON(t *testing.T) {
	result, warning := ExtractAnalysisResult(fencedResponse)
	if warning != "" {
		t.Fatalf("unexpected warning: %s", warning)
	}
	if result.Summary != "A fast-paced fitness ad." {
		t.Errorf("summary = %q", result.Summary)
	}
	if result.OverallScore != 7.5 {
		t.Errorf("overall_score = %v, want 7.5", result.OverallScore)
	}
	if len(result.Scenes) != 1 || result.Scenes[0].EngagementScore != 8.2 {
		t.Errorf("scenes = %+v", result.Scenes)
	}
	if len(result.Recommendations) != 1 || result.Recommendations[0].Priority != "high" {
		t.Errorf("recommendations = %+v", result.Recommendations)
	}
}

func TestExtractAnalysisResultPlainJSON(t *testing.T) {
	raw := `{"summary": "plain", "overall_score": 5, "scenes": [], "timestamps": [], "emotions": [], "recommendations": []}`
	result, warning := ExtractAnalysisResult(raw)
	if warning != "" {
		t.Fatalf("unexpected warning: %s", warning)
	}
	if result.Summary != "plain" {
		t.Errorf("summary = %q", result.Summary)
	}
}

func TestExtractAnalysisResultSurroundingProse(t *testing.T) {
	raw := "Sure! Here you go: {\"summary\": \"embedded\", \"overall_score\": 4} hope that helps"
	result, warning := ExtractAnalysisResult(raw)
	if warning != "" {
		t.Fatalf("unexpected warning: %s", warning)
	}
	if result.Summary != "embedded" {
		t.Errorf("summary = %q", result.Summary)
	}
}

func TestExtractAnalysisResultFallback(t *testing.T) {
	raw := "I'm sorry, I can't analyze this video."
	result, warning := ExtractAnalysisResult(raw)
	if warning == "" {
		t.Fatal("expected a parse warning")
	}
	if result == nil {
		t.Fatal("expected a default result, got nil")
	}
	if !strings.Contains(result.Summary, "can't analyze") {
		t.Errorf("summary should carry the raw text, got %q", result.Summary)
	}
	if result.Scenes == nil || result.Timestamps == nil || result.Emotions == nil || result.Recommendations == nil {
		t.Error("default result must have empty, non-nil slices")
	}
	if len(result.Scenes) != 0 {
		t.Errorf("default result should have no scenes, got %d", len(result.Scenes))
	}
}

func TestExtractAnalysisResultFallbackTruncatesOnRuneBoundary(t *testing.T) {
	// 200 three-byte runes = 600 bytes; byte 500 lands mid-rune.
	raw := strings.Repeat("界", 200)
	result, warning := ExtractAnalysisResult(raw)
	if warning == "" {
		t.Fatal("expected a parse warning")
	}
	if !strings.HasSuffix(result.Summary, "...") {
		t.Errorf("truncated summary should end with ellipsis, got %q tail", result.Summary[len(result.Summary)-10:])
	}
	if !utf8.ValidString(result.Summary) {
		t.Error("truncated summary contains a split rune")
	}
	if len(result.Summary) > 503 {
		t.Errorf("summary length = %d, want at most 503", len(result.Summary))
	}
}

func TestExtractAnalysisResultClampsScores(t *testing.T) {
	raw := `{"summary": "x", "overall_score": 42, "scenes": [{"start": "00:00", "end": "00:01", "description": "d", "engagement_score": -3}], "funnel": {"hook": 15, "problem_agitation": 5, "solution": 5, "benefits": 5, "call_to_action": -1}}`
	result, warning := ExtractAnalysisResult(raw)
	if warning != "" {
		t.Fatalf("unexpected warning: %s", warning)
	}
	if result.OverallScore != 10 {
		t.Errorf("overall_score = %v, want clamped 10", result.OverallScore)
	}
	if result.Scenes[0].EngagementScore != 0 {
		t.Errorf("engagement_score = %v, want clamped 0", result.Scenes[0].EngagementScore)
	}
	if result.Funnel.Hook != 10 || result.Funnel.CallToAction != 0 {
		t.Errorf("funnel not clamped: %+v", result.Funnel)
	}
}

func TestExtractAnalysisResultNullArrays(t *testing.T) {
	raw := `{"summary": "x", "overall_score": 5, "scenes": null, "timestamps": null, "emotions": null, "recommendations": null}`
	result, _ := ExtractAnalysisResult(raw)
	if result.Scenes == nil || result.Timestamps == nil || result.Emotions == nil || result.Recommendations == nil {
		t.Error("null arrays must be replaced with empty slices")
	}
}
