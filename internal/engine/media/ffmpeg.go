// Package media shells out to ffmpeg for the audio conversions whisper needs.
package media

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// CommandRunner abstracts process execution so conversions are testable
// without ffmpeg installed.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// Converter produces whisper-ready audio files in a working directory.
type Converter struct {
	dir    string
	runner CommandRunner
}

// New returns a Converter writing into dir.
func New(dir string) *Converter {
	return &Converter{dir: dir, runner: ExecRunner{}}
}

// NewWithRunner is for tests.
func NewWithRunner(dir string, r CommandRunner) *Converter {
	return &Converter{dir: dir, runner: r}
}

// ConvertToWAV converts src into 16 kHz mono PCM WAV, the input format
// whisper models expect. The output path is deterministic per directory, so
// repeated conversions overwrite.
func (c *Converter) ConvertToWAV(ctx context.Context, src string) (string, error) {
	out := filepath.Join(c.dir, "temp_audio.wav")
	args := []string{
		"-y",
		"-i", src,
		"-ar", "16000",
		"-ac", "1",
		"-c:a", "pcm_s16le",
		out,
	}
	if output, err := c.runner.Run(ctx, "ffmpeg", args...); err != nil {
		return "", fmt.Errorf("ffmpeg convert: %w: %s", err, tail(output))
	}
	return out, nil
}

// Trim cuts [start, end) out of src into a sibling clip file.
// Re-encodes rather than stream-copies: copy cuts land on keyframes and can
// shift clip boundaries by seconds.
func (c *Converter) Trim(ctx context.Context, src string, start, end time.Duration) (string, error) {
	base := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	out := filepath.Join(c.dir, fmt.Sprintf("%s_clip%s", base, filepath.Ext(src)))
	args := []string{
		"-y",
		"-i", src,
		"-ss", formatOffset(start),
		"-to", formatOffset(end),
		"-c:v", "libx264",
		"-c:a", "aac",
		out,
	}
	if output, err := c.runner.Run(ctx, "ffmpeg", args...); err != nil {
		return "", fmt.Errorf("ffmpeg trim: %w: %s", err, tail(output))
	}
	return out, nil
}

// IsVideoFile reports whether path looks like a video container that needs
// audio extraction before transcription.
func IsVideoFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp4", ".mkv", ".webm", ".mov", ".avi":
		return true
	}
	return false
}

func formatOffset(d time.Duration) string {
	total := int(d.Seconds())
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, total%3600/60, total%60)
}

// tail keeps the last part of ffmpeg output, where the actual error lands.
func tail(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) > 300 {
		s = "..." + s[len(s)-300:]
	}
	return s
}
