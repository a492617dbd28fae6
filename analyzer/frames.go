package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

type ffprobeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// ProbeDuration returns the video duration in seconds via ffprobe.
func ProbeDuration(videoPath string) (float64, error) {
	cmd := exec.Command("ffprobe",
		"-v", "error",
		"-print_format", "json",
		"-show_entries", "format=duration",
		videoPath,
	)

	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return 0, fmt.Errorf("ffprobe failed: %w", err)
	}

	var probe ffprobeOutput
	if err := json.Unmarshal(out.Bytes(), &probe); err != nil {
		return 0, fmt.Errorf("parsing ffprobe output: %w", err)
	}

	duration, err := strconv.ParseFloat(strings.TrimSpace(probe.Format.Duration), 64)
	if err != nil {
		return 0, fmt.Errorf("parsing duration %q: %w", probe.Format.Duration, err)
	}

	return duration, nil
}

// ExtractFrames samples frameCount evenly spaced JPEG frames from the video
// into a job-specific directory. Returns the frame paths in order.
func ExtractFrames(videoPath, outputDir string, frameCount int) ([]string, error) {
	if frameCount <= 0 {
		frameCount = defaultFrameCount
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating frame dir: %w", err)
	}

	duration, err := ProbeDuration(videoPath)
	if err != nil {
		return nil, err
	}
	if duration <= 0 {
		return nil, fmt.Errorf("video has no duration")
	}

	// One frame every duration/frameCount seconds, qscale 2 keeps the
	// JPEGs clean enough for the model without blowing up the payload.
	fps := float64(frameCount) / duration

	outputPattern := filepath.Join(outputDir, "frame_%03d.jpg")
	cmd := exec.Command("ffmpeg",
		"-y",
		"-i", videoPath,
		"-vf", fmt.Sprintf("fps=%f", fps),
		"-frames:v", strconv.Itoa(frameCount),
		"-qscale:v", "2",
		outputPattern,
	)

	output, err := cmd.CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("ffmpeg frame extraction failed: %s - %s", err.Error(), string(output))
	}

	matches, err := filepath.Glob(filepath.Join(outputDir, "frame_*.jpg"))
	if err != nil {
		return nil, fmt.Errorf("listing frames: %w", err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no frames extracted from %s", videoPath)
	}
	sort.Strings(matches)

	return matches, nil
}

// CleanupFrames removes a job's frame directory. Failures are non-fatal.
func CleanupFrames(outputDir string) {
	if err := os.RemoveAll(outputDir); err != nil {
		fmt.Printf("Warning: could not remove frame dir %s: %v\n", outputDir, err)
	}
}
