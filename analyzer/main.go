package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Global services and database
var (
	geminiService      *GeminiService
	promptService      *PromptService
	analysisService    *AnalysisService
	integrationService *IntegrationService

	mongoClient           *mongo.Client
	database              *mongo.Database
	jobsCollection        *mongo.Collection
	generationsCollection *mongo.Collection
	batchesCollection     *mongo.Collection
)

func main() {
	// Load environment variables from .env if present (non-fatal if missing)
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment variables from .env")
	}

	if err := initializeMongoDB(); err != nil {
		log.Fatalf("Failed to initialize MongoDB: %v", err)
	}
	defer mongoClient.Disconnect(context.Background())

	if err := initializeServices(); err != nil {
		log.Fatalf("Failed to initialize services: %v", err)
	}

	os.MkdirAll(uploadDir, 0755)
	os.MkdirAll(frameDir, 0755)

	r := gin.Default()
	r.Use(corsMiddleware())
	r.MaxMultipartMemory = 32 << 20

	r.POST("/analyze", analyzeHandler)
	r.POST("/analyze-batch", analyzeBatchHandler)
	r.POST("/generate-video", generateVideoHandler)
	r.GET("/jobs", listJobsHandler)
	r.GET("/jobs/:id", getJobHandler)
	r.GET("/generations/:id", getGenerationHandler)
	r.GET("/batches/:id", getBatchHandler)
	r.GET("/templates", listTemplatesHandler)
	r.GET("/health", healthHandler)

	port := getPort()
	fmt.Printf("=== Video Ad Analyzer API ===\n")
	fmt.Printf("Server starting on port %s\n", port)
	fmt.Printf("MongoDB connected: %s\n", getMongoURI())
	fmt.Printf("Endpoints:\n")
	fmt.Printf("  POST /analyze              - Upload and analyze a video\n")
	fmt.Printf("  POST /analyze-batch        - Analyze stored videos in bulk\n")
	fmt.Printf("  POST /generate-video       - Start a video generation job\n")
	fmt.Printf("  GET  /jobs/{id}            - Get analysis job status\n")
	fmt.Printf("  GET  /jobs                 - List analysis jobs\n")
	fmt.Printf("  GET  /generations/{id}     - Get generation job status\n")
	fmt.Printf("  GET  /batches/{id}         - Get batch status\n")
	fmt.Printf("  GET  /templates            - List ad script templates\n")
	fmt.Printf("  GET  /health               - Health check\n")
	fmt.Println(strings.Repeat("=", 50))

	log.Fatal(r.Run(":" + port))
}

func initializeMongoDB() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(getMongoURI()))
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %v", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("failed to ping MongoDB: %v", err)
	}

	mongoClient = client
	database = client.Database(getMongoDB())
	jobsCollection = database.Collection("analysis_jobs")
	generationsCollection = database.Collection("generation_jobs")
	batchesCollection = database.Collection("batch_jobs")

	if err := createIndexes(); err != nil {
		return fmt.Errorf("failed to create indexes: %v", err)
	}

	fmt.Println("✓ MongoDB connected successfully")
	return nil
}

func createIndexes() error {
	ctx := context.Background()

	_, err := jobsCollection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "created_at", Value: -1}},
		},
	})
	if err != nil {
		return err
	}

	_, err = generationsCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}},
	})
	if err != nil {
		return err
	}

	_, err = batchesCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "created_at", Value: -1}},
	})
	return err
}

func initializeServices() error {
	apiKey := getAPIKey()
	if apiKey == "" {
		return fmt.Errorf("API key not found. Set GEMINI_API_KEY environment variable")
	}

	geminiService = NewGeminiService(apiKey)
	promptService = NewPromptService()
	analysisService = NewAnalysisService(geminiService, promptService)
	integrationService = NewIntegrationService()

	fmt.Println("✓ All services initialized")
	return nil
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func analyzeHandler(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	file, header, err := c.Request.FormFile("video")
	if err != nil {
		respondWithError(c, http.StatusBadRequest, "No video file provided in 'video' field")
		return
	}
	defer file.Close()

	if !isValidVideoFile(header.Filename) {
		respondWithError(c, http.StatusBadRequest, "Supported formats: mp4, mov, webm, mkv, avi")
		return
	}

	// Sniff the content type rather than trusting the extension
	buff := make([]byte, 512)
	n, err := file.Read(buff)
	if err != nil && err != io.EOF {
		respondWithError(c, http.StatusInternalServerError, "Failed to read uploaded file")
		return
	}
	contentType := http.DetectContentType(buff[:n])
	if !strings.HasPrefix(contentType, "video/") && contentType != "application/octet-stream" {
		respondWithError(c, http.StatusBadRequest, "The uploaded file is not a video")
		return
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		respondWithError(c, http.StatusInternalServerError, "Failed to rewind uploaded file")
		return
	}

	fileID := uuid.New().String()
	storedPath := filepath.Join(uploadDir, fileID+filepath.Ext(header.Filename))

	out, err := os.Create(storedPath)
	if err != nil {
		respondWithError(c, http.StatusInternalServerError, "Failed to save uploaded file")
		return
	}
	defer out.Close()

	size, err := io.Copy(out, file)
	if err != nil {
		respondWithError(c, http.StatusInternalServerError, "Failed to save uploaded file")
		return
	}

	ptdOptimized := c.PostForm("ptd_optimized") == "true" || c.PostForm("ptd_optimized") == "1"

	job := &AnalysisJob{
		OriginalName: header.Filename,
		StoredPath:   storedPath,
		ContentType:  contentType,
		SizeBytes:    size,
		Status:       StatusPending,
		PTDOptimized: ptdOptimized,
		CreatedAt:    time.Now(),
	}

	result, err := jobsCollection.InsertOne(context.Background(), job)
	if err != nil {
		respondWithError(c, http.StatusInternalServerError, fmt.Sprintf("Failed to create job record: %v", err))
		return
	}
	jobID := result.InsertedID.(primitive.ObjectID)

	go processAnalysis(jobID, storedPath, contentType, ptdOptimized)

	c.JSON(http.StatusOK, AnalyzeResponse{
		Success: true,
		JobID:   jobID.Hex(),
		Message: "Analysis started",
		Status:  StatusProcessing,
	})

	log.Printf("✓ Analysis started for %s | ID: %s | PTD: %t", header.Filename, jobID.Hex(), ptdOptimized)
}

func processAnalysis(jobID primitive.ObjectID, storedPath, contentType string, ptdOptimized bool) {
	startTime := time.Now()
	err := updateJobInDB(jobID, bson.M{
		"status":     StatusProcessing,
		"started_at": startTime,
	})
	if err != nil {
		log.Printf("Warning: failed to mark job processing: %v", err)
	}

	analysisResult, framesSampled, warning, err := analysisService.Analyze(storedPath, contentType, ptdOptimized)
	processingTime := time.Since(startTime).Seconds()

	if err != nil {
		now := time.Now()
		updateJobInDB(jobID, bson.M{
			"status":                  StatusFailed,
			"error_message":           err.Error(),
			"frames_sampled":          framesSampled,
			"processing_time_seconds": processingTime,
			"completed_at":            &now,
		})
		log.Printf("❌ Analysis failed for ID: %s | Error: %v", jobID.Hex(), err)
		return
	}

	now := time.Now()
	updateData := bson.M{
		"status":                  StatusCompleted,
		"result":                  analysisResult,
		"frames_sampled":          framesSampled,
		"processing_time_seconds": processingTime,
		"completed_at":            &now,
	}
	if warning != "" {
		updateData["parse_warning"] = warning
	}
	if err := updateJobInDB(jobID, updateData); err != nil {
		log.Printf("Warning: failed to record completed job: %v", err)
	}

	log.Printf("✅ Analysis completed for ID: %s | Score: %.1f | Time: %.2fs",
		jobID.Hex(), analysisResult.QualityScore, processingTime)

	// Fire-and-forget integrations
	go func() {
		job, err := getJobByID(jobID)
		if err != nil {
			log.Printf("Warning: could not load job for integrations: %v", err)
			return
		}
		integrationService.RunAll(job)
	}()
}

func analyzeBatchHandler(c *gin.Context) {
	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, http.StatusBadRequest, "Invalid JSON request body")
		return
	}
	if len(req.Paths) == 0 {
		respondWithError(c, http.StatusBadRequest, "At least one path is required")
		return
	}

	items := make([]BatchItem, 0, len(req.Paths))
	for _, path := range req.Paths {
		// Only previously stored uploads are eligible; arbitrary server
		// paths must not reach the model.
		if !isUnderUploadDir(path) {
			items = append(items, BatchItem{
				StoredPath:   path,
				Status:       StatusFailed,
				ErrorMessage: "path outside the upload directory",
			})
			continue
		}
		if _, err := os.Stat(path); err != nil {
			items = append(items, BatchItem{
				StoredPath:   path,
				Status:       StatusFailed,
				ErrorMessage: "file not found",
			})
			continue
		}
		items = append(items, BatchItem{StoredPath: path, Status: StatusPending})
	}

	batch := &BatchJob{
		Status:     StatusPending,
		TotalItems: len(items),
		Items:      items,
		CreatedAt:  time.Now(),
	}
	result, err := batchesCollection.InsertOne(context.Background(), batch)
	if err != nil {
		respondWithError(c, http.StatusInternalServerError, fmt.Sprintf("Failed to create batch record: %v", err))
		return
	}
	batchID := result.InsertedID.(primitive.ObjectID)

	go processBatch(batchID, items, req.PTDOptimized)

	c.JSON(http.StatusOK, AnalyzeResponse{
		Success: true,
		JobID:   batchID.Hex(),
		Message: fmt.Sprintf("Batch of %d videos started", len(items)),
		Status:  StatusProcessing,
	})

	log.Printf("✓ Batch started: %s | %d items", batchID.Hex(), len(items))
}

func generateVideoHandler(c *gin.Context) {
	var req GenerateVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, http.StatusBadRequest, "Invalid JSON request body")
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		respondWithError(c, http.StatusBadRequest, "Prompt cannot be empty")
		return
	}

	prompt := promptService.BuildGenerationPrompt(req.Prompt, req.Style)

	gen := &GenerationJob{
		Prompt:    prompt,
		Style:     req.Style,
		Status:    StatusPending,
		CreatedAt: time.Now(),
	}
	result, err := generationsCollection.InsertOne(context.Background(), gen)
	if err != nil {
		respondWithError(c, http.StatusInternalServerError, fmt.Sprintf("Failed to create generation record: %v", err))
		return
	}
	genID := result.InsertedID.(primitive.ObjectID)

	go processVideoGeneration(genID, prompt)

	c.JSON(http.StatusOK, AnalyzeResponse{
		Success: true,
		JobID:   genID.Hex(),
		Message: "Video generation started",
		Status:  StatusProcessing,
	})
}

func getJobHandler(c *gin.Context) {
	jobID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondWithError(c, http.StatusBadRequest, "Invalid job ID format")
		return
	}

	job, err := getJobByID(jobID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusNotFound, "Job not found")
			return
		}
		respondWithError(c, http.StatusInternalServerError, fmt.Sprintf("Database error: %v", err))
		return
	}

	c.JSON(http.StatusOK, job)
}

func listJobsHandler(c *gin.Context) {
	cursor, err := jobsCollection.Find(
		context.Background(),
		bson.M{},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(50),
	)
	if err != nil {
		respondWithError(c, http.StatusInternalServerError, fmt.Sprintf("Database error: %v", err))
		return
	}
	defer cursor.Close(context.Background())

	var jobs []AnalysisJob
	if err = cursor.All(context.Background(), &jobs); err != nil {
		respondWithError(c, http.StatusInternalServerError, fmt.Sprintf("Error decoding jobs: %v", err))
		return
	}
	if jobs == nil {
		jobs = []AnalysisJob{}
	}

	c.JSON(http.StatusOK, jobs)
}

func getGenerationHandler(c *gin.Context) {
	genID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondWithError(c, http.StatusBadRequest, "Invalid generation ID format")
		return
	}

	gen, err := getGenerationByID(genID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusNotFound, "Generation not found")
			return
		}
		respondWithError(c, http.StatusInternalServerError, fmt.Sprintf("Database error: %v", err))
		return
	}

	c.JSON(http.StatusOK, gen)
}

func getBatchHandler(c *gin.Context) {
	batchID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondWithError(c, http.StatusBadRequest, "Invalid batch ID format")
		return
	}

	batch, err := getBatchByID(batchID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusNotFound, "Batch not found")
			return
		}
		respondWithError(c, http.StatusInternalServerError, fmt.Sprintf("Database error: %v", err))
		return
	}

	c.JSON(http.StatusOK, batch)
}

func listTemplatesHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"templates": GetAdTemplates(),
	})
}

func healthHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	mongoStatus := "healthy"
	if err := mongoClient.Ping(ctx, nil); err != nil {
		mongoStatus = "unhealthy: " + err.Error()
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   "Video Ad Analyzer API",
		"mongodb":   mongoStatus,
	})
}

func respondWithError(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, AnalyzeResponse{
		Success: false,
		Error:   message,
	})
	log.Printf("❌ Error: %s", message)
}
