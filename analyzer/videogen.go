package main

import (
	"errors"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// processVideoGeneration starts the long-running vendor job and polls it
// on a fixed interval until it finishes or the attempt budget runs out.
func processVideoGeneration(genID primitive.ObjectID, prompt string) {
	operationName, err := geminiService.StartVideoGeneration(prompt)
	if err != nil {
		failGeneration(genID, "starting generation: "+err.Error())
		return
	}

	err = updateGenerationInDB(genID, bson.M{
		"operation_name": operationName,
		"status":         StatusProcessing,
	})
	if err != nil {
		log.Printf("Warning: failed to record operation name: %v", err)
	}

	log.Printf("✓ Video generation started: %s | operation: %s", genID.Hex(), operationName)

	videoURI, err := pollForVideoURI(geminiService, operationName, pollInterval, maxPollAttempts, func(attempt int) {
		updateGenerationInDB(genID, bson.M{"poll_count": attempt})
	})
	if err != nil {
		failGeneration(genID, err.Error())
		return
	}

	now := time.Now()
	err = updateGenerationInDB(genID, bson.M{
		"status":       StatusCompleted,
		"video_uri":    videoURI,
		"completed_at": &now,
	})
	if err != nil {
		log.Printf("Warning: failed to record completed generation: %v", err)
	}
	log.Printf("✅ Video generation completed: %s", genID.Hex())
}

// pollForVideoURI polls the operation until it reports done, returning
// the generated video URI. onAttempt, if set, is called after every
// poll. Transient poll failures just burn an attempt; running out of
// attempts is an error.
func pollForVideoURI(gemini *GeminiService, operationName string, interval time.Duration, maxAttempts int, onAttempt func(attempt int)) (string, error) {
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		time.Sleep(interval)

		op, err := gemini.PollOperation(operationName)
		if onAttempt != nil {
			onAttempt(attempt)
		}
		if err != nil {
			log.Printf("Poll %d/%d failed for %s: %v", attempt, maxAttempts, operationName, err)
			continue
		}

		if !op.Done {
			continue
		}

		if op.Error != nil {
			return "", errors.New(op.Error.Message)
		}

		videoURI := extractVideoURI(op)
		if videoURI == "" {
			return "", errors.New("operation finished without a video URI")
		}
		return videoURI, nil
	}

	return "", fmt.Errorf("generation did not finish within the polling window (%d attempts)", maxAttempts)
}

func extractVideoURI(op *OperationResponse) string {
	if op.Response == nil || op.Response.GenerateVideoResponse == nil {
		return ""
	}
	samples := op.Response.GenerateVideoResponse.GeneratedSamples
	if len(samples) == 0 {
		return ""
	}
	return samples[0].Video.URI
}

func failGeneration(genID primitive.ObjectID, errorMsg string) {
	now := time.Now()
	err := updateGenerationInDB(genID, bson.M{
		"status":        StatusFailed,
		"error_message": errorMsg,
		"completed_at":  &now,
	})
	if err != nil {
		log.Printf("Warning: failed to record generation error: %v", err)
	}
	log.Printf("❌ Video generation failed: %s | %s", genID.Hex(), errorMsg)
}
