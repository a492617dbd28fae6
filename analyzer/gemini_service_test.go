package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func newTestGeminiService(serverURL string) *GeminiService {
	return &GeminiService{
		apiKey:  "test-key",
		apiBase: serverURL,
		client:  &http.Client{Timeout: 5 * time.Second},
	}
}

func geminiTextResponse(text string) GeminiResponse {
	return GeminiResponse{
		Candidates: []Candidate{
			{Content: Content{Parts: []Part{{Text: text}}}},
		},
	}
}

func TestCallAPISendsPromptAndParsesText(t *testing.T) {
	var gotRequest GeminiRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, ":generateContent") {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("missing api key in query: %s", r.URL.RawQuery)
		}
		json.NewDecoder(r.Body).Decode(&gotRequest)
		json.NewEncoder(w).Encode(geminiTextResponse("model says hi"))
	}))
	defer server.Close()

	g := newTestGeminiService(server.URL)
	got, err := g.callAPI(GeminiRequest{
		Contents: []Content{{Parts: []Part{{Text: "hello model"}}}},
	})
	if err != nil {
		t.Fatalf("callAPI: %v", err)
	}
	if got != "model says hi" {
		t.Errorf("response = %q", got)
	}

	if len(gotRequest.Contents) != 1 || len(gotRequest.Contents[0].Parts) != 1 {
		t.Fatalf("request shape: %+v", gotRequest)
	}
	if gotRequest.Contents[0].Parts[0].Text != "hello model" {
		t.Errorf("prompt = %q", gotRequest.Contents[0].Parts[0].Text)
	}
}

func TestAnalyzeVideoLabelsInlineVideoWithDetectedType(t *testing.T) {
	var gotRequest GeminiRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotRequest)
		json.NewEncoder(w).Encode(geminiTextResponse("{}"))
	}))
	defer server.Close()

	videoPath := filepath.Join(t.TempDir(), "clip.webm")
	if err := os.WriteFile(videoPath, []byte("not really webm"), 0644); err != nil {
		t.Fatal(err)
	}

	g := newTestGeminiService(server.URL)
	if _, err := g.AnalyzeVideo("describe this", videoPath, "video/webm", nil); err != nil {
		t.Fatalf("AnalyzeVideo: %v", err)
	}

	parts := gotRequest.Contents[0].Parts
	if len(parts) != 2 || parts[1].InlineData == nil {
		t.Fatalf("request parts: %+v", parts)
	}
	if parts[1].InlineData.MimeType != "video/webm" {
		t.Errorf("inline mime = %q, want video/webm", parts[1].InlineData.MimeType)
	}
}

func TestCallAPIEmptyCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(GeminiResponse{})
	}))
	defer server.Close()

	g := newTestGeminiService(server.URL)
	_, err := g.callAPI(GeminiRequest{Contents: []Content{{Parts: []Part{{Text: "x"}}}}})
	if err == nil || !strings.Contains(err.Error(), "no content") {
		t.Errorf("err = %v, want no-content error", err)
	}
}

func TestRetryRecoversAfterFailure(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		json.NewEncoder(w).Encode(geminiTextResponse("finally"))
	}))
	defer server.Close()

	g := newTestGeminiService(server.URL)
	got, err := g.RetryWithExponentialBackoff(GeminiRequest{
		Contents: []Content{{Parts: []Part{{Text: "x"}}}},
	}, 4)
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if got != "finally" {
		t.Errorf("response = %q", got)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
}

func TestRetryGivesUp(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	g := newTestGeminiService(server.URL)
	_, err := g.RetryWithExponentialBackoff(GeminiRequest{
		Contents: []Content{{Parts: []Part{{Text: "x"}}}},
	}, 2)
	if err == nil || !strings.Contains(err.Error(), "after 2 attempts") {
		t.Errorf("err = %v, want exhausted-retries error", err)
	}
}

func TestStartVideoGenerationReturnsOperationName(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, ":predictLongRunning") {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		var req VideoGenRequest
		json.NewDecoder(r.Body).Decode(&req)
		if len(req.Instances) != 1 || req.Instances[0].Prompt == "" {
			t.Errorf("request instances: %+v", req.Instances)
		}
		json.NewEncoder(w).Encode(OperationResponse{Name: "operations/abc123"})
	}))
	defer server.Close()

	g := newTestGeminiService(server.URL)
	name, err := g.StartVideoGeneration("make an ad")
	if err != nil {
		t.Fatalf("StartVideoGeneration: %v", err)
	}
	if name != "operations/abc123" {
		t.Errorf("operation name = %q", name)
	}
}

func TestPollOperation(t *testing.T) {
	polls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		polls++
		if polls < 2 {
			json.NewEncoder(w).Encode(OperationResponse{Name: "operations/abc123", Done: false})
			return
		}
		json.NewEncoder(w).Encode(OperationResponse{
			Name: "operations/abc123",
			Done: true,
			Response: &OperationResult{
				GenerateVideoResponse: &GenerateVideoResponse{
					GeneratedSamples: []GeneratedSample{
						{Video: GeneratedVideo{URI: "https://example.com/video.mp4"}},
					},
				},
			},
		})
	}))
	defer server.Close()

	g := newTestGeminiService(server.URL)

	op, err := g.PollOperation("operations/abc123")
	if err != nil {
		t.Fatalf("PollOperation: %v", err)
	}
	if op.Done {
		t.Error("first poll should not be done")
	}

	op, err = g.PollOperation("operations/abc123")
	if err != nil {
		t.Fatalf("PollOperation: %v", err)
	}
	if !op.Done {
		t.Fatal("second poll should be done")
	}
	if uri := extractVideoURI(op); uri != "https://example.com/video.mp4" {
		t.Errorf("video uri = %q", uri)
	}
}

func TestExtractVideoURIEmptyOperation(t *testing.T) {
	if uri := extractVideoURI(&OperationResponse{Done: true}); uri != "" {
		t.Errorf("uri = %q, want empty for operation without response", uri)
	}
}
