package main

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// IntegrationService fires the optional third-party calls after an analysis
// completes: CRM contact update, workflow webhook, object storage upload and
// a hashed-identifier conversion event. Each one is gated on its env vars
// and skipped silently when unconfigured; a failure never fails the job.
type IntegrationService struct {
	client *http.Client
}

func NewIntegrationService() *IntegrationService {
	return &IntegrationService{
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// RunAll fires every configured integration for a completed job.
func (s *IntegrationService) RunAll(job *AnalysisJob) {
	if err := s.UpdateCRMContact(job); err != nil {
		log.Printf("Warning: CRM update failed for job %s: %v", job.ID.Hex(), err)
	}
	if err := s.TriggerWorkflowWebhook(job); err != nil {
		log.Printf("Warning: webhook trigger failed for job %s: %v", job.ID.Hex(), err)
	}
	if err := s.UploadToObjectStorage(job); err != nil {
		log.Printf("Warning: storage upload failed for job %s: %v", job.ID.Hex(), err)
	}
	if err := s.SendConversionEvent(job); err != nil {
		log.Printf("Warning: conversion event failed for job %s: %v", job.ID.Hex(), err)
	}
}

// UpdateCRMContact pushes the analysis score onto the contact record.
func (s *IntegrationService) UpdateCRMContact(job *AnalysisJob) error {
	apiURL := os.Getenv("CRM_API_URL")
	apiKey := os.Getenv("CRM_API_KEY")
	contactEmail := os.Getenv("CRM_CONTACT_EMAIL")
	if apiURL == "" || apiKey == "" || contactEmail == "" {
		return nil
	}

	payload := map[string]interface{}{
		"email": contactEmail,
		"properties": map[string]interface{}{
			"last_video_analyzed": job.OriginalName,
			"last_video_score":    0.0,
			"last_analysis_at":    time.Now().Format(time.RFC3339),
		},
	}
	if job.Result != nil {
		payload["properties"].(map[string]interface{})["last_video_score"] = job.Result.QualityScore
	}

	return s.postJSON(fmt.Sprintf("%s/contacts/update", strings.TrimSuffix(apiURL, "/")), apiKey, payload)
}

// TriggerWorkflowWebhook posts the full job to the configured webhook URL.
func (s *IntegrationService) TriggerWorkflowWebhook(job *AnalysisJob) error {
	webhookURL := os.Getenv("WORKFLOW_WEBHOOK_URL")
	if webhookURL == "" {
		return nil
	}

	payload := map[string]interface{}{
		"event":  "video.analysis.completed",
		"job_id": job.ID.Hex(),
		"status": job.Status,
		"result": job.Result,
	}

	return s.postJSON(webhookURL, os.Getenv("WORKFLOW_WEBHOOK_TOKEN"), payload)
}

// UploadToObjectStorage puts the analyzed video into the configured bucket
// endpoint with a bearer-authenticated PUT.
func (s *IntegrationService) UploadToObjectStorage(job *AnalysisJob) error {
	storageURL := os.Getenv("STORAGE_API_URL")
	storageToken := os.Getenv("STORAGE_API_TOKEN")
	if storageURL == "" || storageToken == "" {
		return nil
	}

	file, err := os.Open(job.StoredPath)
	if err != nil {
		return fmt.Errorf("opening video for upload: %w", err)
	}
	defer file.Close()

	objectKey := fmt.Sprintf("analyzed/%s%s", job.ID.Hex(), filepath.Ext(job.StoredPath))
	url := fmt.Sprintf("%s/%s", strings.TrimSuffix(storageURL, "/"), objectKey)

	req, err := http.NewRequest("PUT", url, file)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", storageToken))
	req.Header.Set("Content-Type", job.ContentType)
	req.ContentLength = job.SizeBytes

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("storage upload failed with status %d: %s", resp.StatusCode, string(body))
	}

	log.Printf("✓ Uploaded %s to object storage", objectKey)
	return nil
}

// SendConversionEvent reports the analysis as a conversion with the user
// identifier sha256-hashed, the way ad platforms expect it.
func (s *IntegrationService) SendConversionEvent(job *AnalysisJob) error {
	eventsURL := os.Getenv("CONVERSION_API_URL")
	eventsToken := os.Getenv("CONVERSION_API_TOKEN")
	userEmail := os.Getenv("CRM_CONTACT_EMAIL")
	if eventsURL == "" || eventsToken == "" || userEmail == "" {
		return nil
	}

	payload := map[string]interface{}{
		"event_name": "VideoAnalyzed",
		"event_time": time.Now().Unix(),
		"user_data": map[string]string{
			"em": HashIdentifier(userEmail),
		},
		"custom_data": map[string]interface{}{
			"job_id": job.ID.Hex(),
		},
	}

	return s.postJSON(eventsURL, eventsToken, payload)
}

// HashIdentifier normalizes and sha256-hashes a user identifier.
func HashIdentifier(identifier string) string {
	normalized := strings.ToLower(strings.TrimSpace(identifier))
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}

func (s *IntegrationService) postJSON(url, token string, payload interface{}) error {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshalling JSON: %w", err)
	}

	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(body))
	}

	return nil
}
