package main

import (
	"fmt"
	"log"
	"path/filepath"
)

// AnalysisService runs the full pipeline for one stored video: sample
// frames, call the model (standard and, if requested, the PTD variant),
// parse, score and select scenes.
type AnalysisService struct {
	gemini  *GeminiService
	prompts *PromptService
}

func NewAnalysisService(gemini *GeminiService, prompts *PromptService) *AnalysisService {
	return &AnalysisService{
		gemini:  gemini,
		prompts: prompts,
	}
}

// Analyze processes the video at storedPath. contentType is the sniffed
// upload type ("" when unknown). The returned warning is non-empty when
// the model response could not be parsed and the result was
// default-filled.
func (s *AnalysisService) Analyze(storedPath, contentType string, ptdOptimized bool) (*AnalysisResult, int, string, error) {
	jobFrameDir := filepath.Join(frameDir, filepath.Base(storedPath))
	framePaths, err := ExtractFrames(storedPath, jobFrameDir, defaultFrameCount)
	if err != nil {
		return nil, 0, "", fmt.Errorf("extracting frames: %w", err)
	}
	defer CleanupFrames(jobFrameDir)

	log.Printf("✓ Sampled %d frames from %s", len(framePaths), filepath.Base(storedPath))

	raw, err := s.gemini.AnalyzeVideo(s.prompts.BuildAnalysisPrompt(), storedPath, contentType, framePaths)
	if err != nil {
		return nil, len(framePaths), "", fmt.Errorf("analysis call: %w", err)
	}

	result, warning := ExtractAnalysisResult(raw)

	if ptdOptimized {
		ptdRaw, err := s.gemini.AnalyzeVideo(s.prompts.BuildPTDPrompt(), storedPath, contentType, framePaths)
		if err != nil {
			// The standard result stands on its own; record the miss and move on.
			log.Printf("Warning: PTD analysis call failed: %v", err)
			if warning == "" {
				warning = fmt.Sprintf("PTD analysis unavailable: %v", err)
			}
		} else {
			ptdResult, ptdWarning := ExtractAnalysisResult(ptdRaw)
			if ptdWarning != "" && warning == "" {
				warning = ptdWarning
			}
			result.Funnel = ptdResult.Funnel
		}
	}

	result.QualityScore = MergeQualityScore(result)
	result.SelectedScenes = SelectScenesForReconstruction(result.Scenes, selectedSceneCap)

	return result, len(framePaths), warning, nil
}
