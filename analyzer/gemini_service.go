package main

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

const (
	defaultAPIBase     = "https://generativelanguage.googleapis.com/v1beta"
	analysisModel      = "gemini-2.0-flash"
	videoGenModel      = "veo-2.0-generate-001"
	requestTimeout     = 120 * time.Second
	maxInlineVideoSize = 20 << 20 // above this the video itself is skipped, frames only
)

// GeminiService handles all Gemini API interactions
type GeminiService struct {
	apiKey  string
	apiBase string
	client  *http.Client
}

// NewGeminiService creates a new Gemini service
func NewGeminiService(apiKey string) *GeminiService {
	return &GeminiService{
		apiKey:  apiKey,
		apiBase: getEnvWithDefault("GEMINI_API_BASE", defaultAPIBase),
		client:  &http.Client{Timeout: requestTimeout},
	}
}

// AnalyzeVideo sends the prompt with the video bytes and sampled frames
// inline and returns the raw model text. videoMime labels the inline
// video part; pass "" to derive it from the file extension.
func (g *GeminiService) AnalyzeVideo(prompt, videoPath, videoMime string, framePaths []string) (string, error) {
	parts := []Part{{Text: prompt}}

	info, err := os.Stat(videoPath)
	if err != nil {
		return "", fmt.Errorf("stat video: %w", err)
	}
	if info.Size() <= maxInlineVideoSize {
		videoData, err := os.ReadFile(videoPath)
		if err != nil {
			return "", fmt.Errorf("reading video: %w", err)
		}
		parts = append(parts, Part{InlineData: &InlineData{
			MimeType: videoMimeType(videoPath, videoMime),
			Data:     base64.StdEncoding.EncodeToString(videoData),
		}})
	}

	for _, framePath := range framePaths {
		frameData, err := os.ReadFile(framePath)
		if err != nil {
			return "", fmt.Errorf("reading frame %s: %w", framePath, err)
		}
		parts = append(parts, Part{InlineData: &InlineData{
			MimeType: "image/jpeg",
			Data:     base64.StdEncoding.EncodeToString(frameData),
		}})
	}

	return g.RetryWithExponentialBackoff(GeminiRequest{
		Contents: []Content{{Parts: parts}},
	}, maxRetries)
}

func (g *GeminiService) callAPI(request GeminiRequest) (string, error) {
	jsonData, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("marshalling JSON: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.apiBase, analysisModel, g.apiKey)
	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "VideoAdAnalyzer/1.0")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	var geminiResp GeminiResponse
	if err := json.Unmarshal(body, &geminiResp); err != nil {
		return "", fmt.Errorf("unmarshalling response: %w", err)
	}

	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	return geminiResp.Candidates[0].Content.Parts[0].Text, nil
}

// RetryWithExponentialBackoff implements retry logic for API calls
func (g *GeminiService) RetryWithExponentialBackoff(request GeminiRequest, maxRetries int) (string, error) {
	var lastErr error

	for attempt := 0; attempt < maxRetries; attempt++ {
		result, err := g.callAPI(request)
		if err == nil {
			return result, nil
		}

		lastErr = err

		// Exponential backoff: 1s, 2s, 4s, 8s...
		backoffDuration := time.Duration(1<<attempt) * time.Second
		fmt.Printf("API call failed (attempt %d/%d), retrying in %v: %v\n",
			attempt+1, maxRetries, backoffDuration, err)

		if attempt < maxRetries-1 {
			time.Sleep(backoffDuration)
		}
	}

	return "", fmt.Errorf("API call failed after %d attempts, last error: %w", maxRetries, lastErr)
}

// StartVideoGeneration kicks off a long-running generation job and returns
// the operation name to poll.
func (g *GeminiService) StartVideoGeneration(prompt string) (string, error) {
	request := VideoGenRequest{
		Instances: []VideoGenInstance{{Prompt: prompt}},
	}

	jsonData, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("marshalling JSON: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:predictLongRunning?key=%s", g.apiBase, videoGenModel, g.apiKey)
	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var op OperationResponse
	if err := json.Unmarshal(body, &op); err != nil {
		return "", fmt.Errorf("unmarshalling operation: %w", err)
	}
	if op.Name == "" {
		return "", fmt.Errorf("no operation name in response")
	}

	return op.Name, nil
}

// PollOperation checks whether a long-running operation has finished.
func (g *GeminiService) PollOperation(operationName string) (*OperationResponse, error) {
	url := fmt.Sprintf("%s/%s?key=%s", g.apiBase, operationName, g.apiKey)
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("poll failed with status %d: %s", resp.StatusCode, string(body))
	}

	var op OperationResponse
	if err := json.Unmarshal(body, &op); err != nil {
		return nil, fmt.Errorf("unmarshalling operation: %w", err)
	}

	return &op, nil
}
