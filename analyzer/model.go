package main

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AnalysisJob struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OriginalName   string             `bson:"original_name" json:"original_name"`
	StoredPath     string             `bson:"stored_path" json:"stored_path"`
	ContentType    string             `bson:"content_type" json:"content_type"`
	SizeBytes      int64              `bson:"size_bytes" json:"size_bytes"`
	Status         string             `bson:"status" json:"status"`
	PTDOptimized   bool               `bson:"ptd_optimized" json:"ptd_optimized"`
	Result         *AnalysisResult    `bson:"result,omitempty" json:"result,omitempty"`
	ParseWarning   string             `bson:"parse_warning,omitempty" json:"parse_warning,omitempty"`
	ErrorMessage   string             `bson:"error_message,omitempty" json:"error_message,omitempty"`
	FramesSampled  int                `bson:"frames_sampled" json:"frames_sampled"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
	StartedAt      *time.Time         `bson:"started_at,omitempty" json:"started_at,omitempty"`
	CompletedAt    *time.Time         `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
	ProcessingTime float64            `bson:"processing_time_seconds,omitempty" json:"processing_time_seconds,omitempty"`
}

// AnalysisResult is the structured payload the model returns for one video.
type AnalysisResult struct {
	Summary         string               `bson:"summary" json:"summary"`
	OverallScore    float64              `bson:"overall_score" json:"overall_score"`
	Scenes          []Scene              `bson:"scenes" json:"scenes"`
	Timestamps      []TimestampHighlight `bson:"timestamps" json:"timestamps"`
	Emotions        []EmotionReading     `bson:"emotions" json:"emotions"`
	Recommendations []Recommendation     `bson:"recommendations" json:"recommendations"`
	Funnel          *FunnelScores        `bson:"funnel,omitempty" json:"funnel,omitempty"`
	QualityScore    float64              `bson:"quality_score" json:"quality_score"`
	SelectedScenes  []Scene              `bson:"selected_scenes,omitempty" json:"selected_scenes,omitempty"`
}

type Scene struct {
	Start           string  `bson:"start" json:"start"`
	End             string  `bson:"end" json:"end"`
	Description     string  `bson:"description" json:"description"`
	EngagementScore float64 `bson:"engagement_score" json:"engagement_score"`
}

type TimestampHighlight struct {
	At    string `bson:"at" json:"at"`
	Label string `bson:"label" json:"label"`
	Note  string `bson:"note" json:"note"`
}

type EmotionReading struct {
	At        string  `bson:"at" json:"at"`
	Emotion   string  `bson:"emotion" json:"emotion"`
	Intensity float64 `bson:"intensity" json:"intensity"`
}

type Recommendation struct {
	Category string `bson:"category" json:"category"`
	Priority string `bson:"priority" json:"priority"` // "high", "medium", "low"
	Note     string `bson:"note" json:"note"`
}

// FunnelScores holds the marketing-funnel scoring from the PTD-optimized prompt.
type FunnelScores struct {
	Hook             float64 `bson:"hook" json:"hook"`
	ProblemAgitation float64 `bson:"problem_agitation" json:"problem_agitation"`
	Solution         float64 `bson:"solution" json:"solution"`
	Benefits         float64 `bson:"benefits" json:"benefits"`
	CallToAction     float64 `bson:"call_to_action" json:"call_to_action"`
}

type GenerationJob struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Prompt        string             `bson:"prompt" json:"prompt"`
	Style         string             `bson:"style,omitempty" json:"style,omitempty"`
	OperationName string             `bson:"operation_name,omitempty" json:"operation_name,omitempty"`
	Status        string             `bson:"status" json:"status"`
	VideoURI      string             `bson:"video_uri,omitempty" json:"video_uri,omitempty"`
	PollCount     int                `bson:"poll_count" json:"poll_count"`
	ErrorMessage  string             `bson:"error_message,omitempty" json:"error_message,omitempty"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
	CompletedAt   *time.Time         `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
}

type BatchJob struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Status      string             `bson:"status" json:"status"`
	TotalItems  int                `bson:"total_items" json:"total_items"`
	Completed   int                `bson:"completed" json:"completed"`
	Failed      int                `bson:"failed" json:"failed"`
	Items       []BatchItem        `bson:"items" json:"items"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	CompletedAt *time.Time         `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
}

type BatchItem struct {
	JobID        primitive.ObjectID `bson:"job_id,omitempty" json:"job_id,omitempty"`
	StoredPath   string             `bson:"stored_path" json:"stored_path"`
	Status       string             `bson:"status" json:"status"`
	ErrorMessage string             `bson:"error_message,omitempty" json:"error_message,omitempty"`
}

// AdTemplate is a static marketing script template. These carry no logic,
// they are served verbatim to the dashboard.
type AdTemplate struct {
	Niche    string              `json:"niche"`
	Name     string              `json:"name"`
	Duration string              `json:"duration"`
	Sections []AdTemplateSection `json:"sections"`
}

type AdTemplateSection struct {
	Heading   string `json:"heading"`
	Voiceover string `json:"voiceover"`
	Overlay   string `json:"overlay"`
}

// API request/response structures
type AnalyzeResponse struct {
	Success bool   `json:"success"`
	JobID   string `json:"job_id,omitempty"`
	Message string `json:"message,omitempty"`
	Status  string `json:"status,omitempty"`
	Error   string `json:"error,omitempty"`
}

type GenerateVideoRequest struct {
	Prompt string `json:"prompt"`
	Style  string `json:"style,omitempty"`
}

type BatchRequest struct {
	Paths        []string `json:"paths"`
	PTDOptimized bool     `json:"ptd_optimized"`
}
