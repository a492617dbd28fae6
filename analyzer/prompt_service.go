package main

import (
	"fmt"
	"strings"
)

// PromptService builds the prompts sent to the model. The analysis prompts
// pin down the JSON shape the parser expects; the PTD variant adds the
// marketing-funnel scoring block.
type PromptService struct{}

func NewPromptService() *PromptService {
	return &PromptService{}
}

const analysisPromptBase = `You are an expert video ad analyst. Analyze the attached video and the sampled frames.

Respond with ONLY a JSON object, inside a single ` + "```json" + ` code block, with this exact shape:
{
  "summary": "two sentence summary of the ad",
  "overall_score": 0.0,
  "scenes": [
    {"start": "00:00", "end": "00:04", "description": "...", "engagement_score": 0.0}
  ],
  "timestamps": [
    {"at": "00:02", "label": "product reveal", "note": "..."}
  ],
  "emotions": [
    {"at": "00:02", "emotion": "excitement", "intensity": 0.0}
  ],
  "recommendations": [
    {"category": "pacing", "priority": "high", "note": "..."}
  ]
}

Rules:
- All scores and intensities are between 0 and 10.
- Timestamps use MM:SS format.
- Cover the full duration with scenes, no gaps.
- Recommendation categories: hook, pacing, visuals, audio, copy, cta.`

const ptdPromptBlock = `
Additionally score the ad against the direct-response marketing funnel.
Add this field to the JSON object:
  "funnel": {
    "hook": 0.0,
    "problem_agitation": 0.0,
    "solution": 0.0,
    "benefits": 0.0,
    "call_to_action": 0.0
  }
Score each stage 0-10 on how well the ad executes it. An ad missing a
stage entirely scores 0 for that stage.`

// BuildAnalysisPrompt returns the standard analysis prompt.
func (p *PromptService) BuildAnalysisPrompt() string {
	return analysisPromptBase
}

// BuildPTDPrompt returns the PTD-optimized variant requesting
// marketing-funnel-specific scoring on top of the standard analysis.
func (p *PromptService) BuildPTDPrompt() string {
	return analysisPromptBase + "\n" + ptdPromptBlock
}

// BuildGenerationPrompt wraps a user prompt into the video generation
// template. Style is optional.
func (p *PromptService) BuildGenerationPrompt(userPrompt, style string) string {
	prompt := fmt.Sprintf(`Create a short vertical video ad.

Concept: %s

Requirements:
- 8 seconds, 9:16 aspect ratio
- Strong hook in the first second
- Clean, high-energy product shots
- End on a clear call to action frame`, strings.TrimSpace(userPrompt))

	if style != "" {
		prompt += fmt.Sprintf("\n- Visual style: %s", style)
	}

	return prompt
}
