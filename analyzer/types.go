package main

import (
	"os"
	"time"
)

const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

const (
	maxUploadSize     = 200 << 20 // 200MB
	maxRetries        = 5
	defaultFrameCount = 8
	batchConcurrency  = 3
	pollInterval      = 10 * time.Second
	maxPollAttempts   = 60
	uploadDir         = "uploads"
	frameDir          = "frames"
	selectedSceneCap  = 5
)

// Gemini API types. The generateContent request carries the prompt text
// plus inline binary parts (video bytes and sampled frames).
type GeminiRequest struct {
	Contents []Content `json:"contents"`
}

type Content struct {
	Parts []Part `json:"parts"`
}

type Part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *InlineData `json:"inline_data,omitempty"`
}

type InlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"` // base64
}

type GeminiResponse struct {
	Candidates []Candidate `json:"candidates"`
}

type Candidate struct {
	Content Content `json:"content"`
}

// Long-running video generation types (predictLongRunning + operation polling).
type VideoGenRequest struct {
	Instances []VideoGenInstance `json:"instances"`
}

type VideoGenInstance struct {
	Prompt string `json:"prompt"`
}

type OperationResponse struct {
	Name     string           `json:"name"`
	Done     bool             `json:"done"`
	Error    *OperationError  `json:"error,omitempty"`
	Response *OperationResult `json:"response,omitempty"`
}

type OperationError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type OperationResult struct {
	GenerateVideoResponse *GenerateVideoResponse `json:"generateVideoResponse,omitempty"`
}

type GenerateVideoResponse struct {
	GeneratedSamples []GeneratedSample `json:"generatedSamples"`
}

type GeneratedSample struct {
	Video GeneratedVideo `json:"video"`
}

type GeneratedVideo struct {
	URI string `json:"uri"`
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getPort() string {
	return getEnvWithDefault("PORT", "8090")
}

func getMongoURI() string {
	return getEnvWithDefault("MONGODB_URI", "mongodb://localhost:27017")
}

func getMongoDB() string {
	return getEnvWithDefault("MONGODB_DATABASE", "video_ad_analyzer")
}

func getAPIKey() string {
	return os.Getenv("GEMINI_API_KEY")
}
