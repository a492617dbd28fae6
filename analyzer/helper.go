package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// parseClockSeconds converts "MM:SS" or "HH:MM:SS" (optionally with
// ",mmm" or ".mmm" milliseconds) into seconds.
func parseClockSeconds(timestamp string) (float64, error) {
	timestamp = strings.TrimSpace(timestamp)
	if timestamp == "" {
		return 0, fmt.Errorf("empty timestamp")
	}

	// Strip milliseconds
	if idx := strings.IndexAny(timestamp, ",."); idx != -1 {
		timestamp = timestamp[:idx]
	}

	parts := strings.Split(timestamp, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("invalid timestamp format: %s", timestamp)
	}

	total := 0.0
	for _, part := range parts {
		value, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return 0, fmt.Errorf("invalid timestamp component %q: %w", part, err)
		}
		total = total*60 + float64(value)
	}

	return total, nil
}

func isValidVideoFile(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	validExts := []string{".mp4", ".mov", ".webm", ".mkv", ".avi"}

	for _, validExt := range validExts {
		if ext == validExt {
			return true
		}
	}
	return false
}

// videoMimeType picks the mime type for an inline video part. A sniffed
// video/* type wins; otherwise fall back on the file extension.
func videoMimeType(filename, sniffed string) string {
	if strings.HasPrefix(sniffed, "video/") {
		return sniffed
	}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".mov":
		return "video/quicktime"
	case ".webm":
		return "video/webm"
	case ".mkv":
		return "video/x-matroska"
	case ".avi":
		return "video/x-msvideo"
	default:
		return "video/mp4"
	}
}

// isUnderUploadDir reports whether path resolves inside uploadDir.
// Absolute paths and anything that climbs out via ".." are rejected.
func isUnderUploadDir(path string) bool {
	rel, err := filepath.Rel(uploadDir, filepath.Clean(path))
	if err != nil {
		return false
	}
	return rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
