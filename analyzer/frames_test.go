package main

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"testing"
)

// skipIfNoFFmpeg skips the test if ffmpeg is not available
func skipIfNoFFmpeg(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		t.Skip("ffmpeg not found in PATH")
	}
	if _, err := exec.LookPath("ffprobe"); err != nil {
		t.Skip("ffprobe not found in PATH")
	}
}

// makeTestVideo renders a short synthetic clip with ffmpeg's test source.
func makeTestVideo(t *testing.T, dir string, seconds int) string {
	t.Helper()

	videoPath := filepath.Join(dir, "test.mp4")
	cmd := exec.Command("ffmpeg",
		"-y",
		"-f", "lavfi",
		"-i", fmt.Sprintf("testsrc=duration=%d:size=320x240:rate=24", seconds),
		videoPath,
	)
	if output, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("creating test video: %v - %s", err, string(output))
	}
	return videoPath
}

func TestProbeDuration(t *testing.T) {
	skipIfNoFFmpeg(t)

	videoPath := makeTestVideo(t, t.TempDir(), 4)
	duration, err := ProbeDuration(videoPath)
	if err != nil {
		t.Fatalf("ProbeDuration: %v", err)
	}
	if duration < 3.5 || duration > 4.5 {
		t.Errorf("duration = %v, want ~4s", duration)
	}
}

func TestExtractFrames(t *testing.T) {
	skipIfNoFFmpeg(t)

	dir := t.TempDir()
	videoPath := makeTestVideo(t, dir, 4)

	frames, err := ExtractFrames(videoPath, filepath.Join(dir, "frames"), 4)
	if err != nil {
		t.Fatalf("ExtractFrames: %v", err)
	}
	if len(frames) == 0 || len(frames) > 4 {
		t.Errorf("extracted %d frames, want 1-4", len(frames))
	}
	for i := 1; i < len(frames); i++ {
		if frames[i] <= frames[i-1] {
			t.Errorf("frames not ordered: %v", frames)
			break
		}
	}
}

func TestExtractFramesMissingVideo(t *testing.T) {
	skipIfNoFFmpeg(t)

	_, err := ExtractFrames(filepath.Join(t.TempDir(), "missing.mp4"), t.TempDir(), 4)
	if err == nil {
		t.Error("expected error for missing video")
	}
}
