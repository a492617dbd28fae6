package main

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
)

var (
	analyzerAPIURL string
	httpClient     = &http.Client{Timeout: 15 * time.Second}
	pageTemplate   *template.Template
)

func main() {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment variables from .env")
	}

	analyzerAPIURL = strings.TrimSuffix(getEnvWithDefault("ANALYZER_API_URL", "http://localhost:8090"), "/")
	pageTemplate = template.Must(template.New("dashboard").Parse(dashboardTemplate))

	r := mux.NewRouter()
	r.HandleFunc("/", listJobsPageHandler).Methods("GET")
	r.HandleFunc("/jobs/{jobId}", jobPageHandler).Methods("GET")
	r.HandleFunc("/health", healthCheckHandler).Methods("GET")

	port := getEnvWithDefault("PORT", "8091")
	fmt.Println("📊 Video Ad Analyzer Dashboard starting...")
	fmt.Printf("📡 Server running on http://localhost:%s\n", port)
	fmt.Printf("🔗 Analyzer API: %s\n", analyzerAPIURL)

	log.Fatal(http.ListenAndServe(":"+port, r))
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// AnalysisJob mirrors the analyzer API response; only the fields the
// dashboard renders are declared.
type AnalysisJob struct {
	ID             string          `json:"id"`
	OriginalName   string          `json:"original_name"`
	Status         string          `json:"status"`
	PTDOptimized   bool            `json:"ptd_optimized"`
	Result         *AnalysisResult `json:"result,omitempty"`
	ParseWarning   string          `json:"parse_warning,omitempty"`
	ErrorMessage   string          `json:"error_message,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	ProcessingTime float64         `json:"processing_time_seconds,omitempty"`
}

type AnalysisResult struct {
	Summary         string               `json:"summary"`
	OverallScore    float64              `json:"overall_score"`
	QualityScore    float64              `json:"quality_score"`
	Scenes          []Scene              `json:"scenes"`
	Timestamps      []TimestampHighlight `json:"timestamps"`
	Emotions        []EmotionReading     `json:"emotions"`
	Recommendations []Recommendation     `json:"recommendations"`
	Funnel          *FunnelScores        `json:"funnel,omitempty"`
	SelectedScenes  []Scene              `json:"selected_scenes,omitempty"`
}

type Scene struct {
	Start           string  `json:"start"`
	End             string  `json:"end"`
	Description     string  `json:"description"`
	EngagementScore float64 `json:"engagement_score"`
}

type TimestampHighlight struct {
	At    string `json:"at"`
	Label string `json:"label"`
	Note  string `json:"note"`
}

type EmotionReading struct {
	At        string  `json:"at"`
	Emotion   string  `json:"emotion"`
	Intensity float64 `json:"intensity"`
}

type Recommendation struct {
	Category string `json:"category"`
	Priority string `json:"priority"`
	Note     string `json:"note"`
}

type FunnelScores struct {
	Hook             float64 `json:"hook"`
	ProblemAgitation float64 `json:"problem_agitation"`
	Solution         float64 `json:"solution"`
	Benefits         float64 `json:"benefits"`
	CallToAction     float64 `json:"call_to_action"`
}

func fetchJSON(url string, target interface{}) error {
	resp, err := httpClient.Get(url)
	if err != nil {
		return fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("analyzer API returned status %d: %s", resp.StatusCode, string(body))
	}

	return json.NewDecoder(resp.Body).Decode(target)
}

func listJobsPageHandler(w http.ResponseWriter, r *http.Request) {
	var jobs []AnalysisJob
	if err := fetchJSON(analyzerAPIURL+"/jobs", &jobs); err != nil {
		renderError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, map[string]interface{}{
		"Jobs": jobs,
	}); err != nil {
		log.Printf("❌ Template error: %v", err)
	}
}

func jobPageHandler(w http.ResponseWriter, r *http.Request) {
	jobID := mux.Vars(r)["jobId"]

	var job AnalysisJob
	if err := fetchJSON(fmt.Sprintf("%s/jobs/%s", analyzerAPIURL, jobID), &job); err != nil {
		renderError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, map[string]interface{}{
		"Job": &job,
	}); err != nil {
		log.Printf("❌ Template error: %v", err)
	}
}

func renderError(w http.ResponseWriter, err error) {
	log.Printf("❌ Dashboard error: %v", err)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusBadGateway)
	fmt.Fprintf(w, "<html><body><h1>Dashboard error</h1><p>%s</p></body></html>", template.HTMLEscapeString(err.Error()))
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   "Video Ad Analyzer Dashboard",
	})
}
