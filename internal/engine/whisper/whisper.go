// Package whisper transcribes audio by shelling out to whisper-cli
// (whisper.cpp). The model file and device are resolved once at startup; the
// process is spawned per transcription.
package whisper

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/mrunalinidudhagawali8/trending-youtube-transcript-fetcher/internal/engine"
)

const defaultModelSize = "base"

// Config controls model resolution.
type Config struct {
	// ModelSize is a whisper.cpp model size name ("tiny", "base", "small", ...).
	ModelSize string
	// ModelDir holds ggml model files. Defaults to ~/.cache/whisper.
	ModelDir string
	// BinPath overrides the whisper-cli binary location.
	BinPath string
	// Device forces "cpu" or "cuda". Empty means autodetect.
	Device string
}

// commandRunner abstracts process execution for tests.
type commandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// Model is a resolved whisper setup ready to transcribe. It satisfies
// engine.Transcriber.
type Model struct {
	bin       string
	modelPath string
	device    string
	runner    commandRunner
}

// New resolves the whisper binary, model file, and compute device.
// Resolution failures are returned so the caller can run captions-only.
func New(c Config) (*Model, error) {
	bin := c.BinPath
	if bin == "" {
		var err error
		bin, err = exec.LookPath("whisper-cli")
		if err != nil {
			return nil, fmt.Errorf("whisper-cli not found: %w", err)
		}
	}

	size := c.ModelSize
	if size == "" {
		size = defaultModelSize
	}
	dir := c.ModelDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(home, ".cache", "whisper")
	}
	modelPath := filepath.Join(dir, "ggml-"+size+".bin")
	if _, err := os.Stat(modelPath); err != nil {
		return nil, fmt.Errorf("whisper model %s: %w", modelPath, err)
	}

	device := c.Device
	if device == "" {
		device = DetectDevice()
	}
	slog.Info("whisper: model ready",
		slog.String("model", modelPath), slog.String("device", device))

	return &Model{bin: bin, modelPath: modelPath, device: device, runner: execRunner{}}, nil
}

// DetectDevice picks cuda when an NVIDIA GPU is plausibly present, cpu otherwise.
func DetectDevice() string {
	if v := os.Getenv("CUDA_VISIBLE_DEVICES"); v != "" && v != "-1" {
		return "cuda"
	}
	if _, err := exec.LookPath("nvidia-smi"); err == nil {
		return "cuda"
	}
	return "cpu"
}

// Transcribe runs whisper-cli over a 16 kHz mono WAV file and returns timed
// segments. An empty result is valid (silent audio).
func (m *Model) Transcribe(ctx context.Context, audioPath string) ([]engine.TranscriptSegment, error) {
	outPrefix := audioPath + ".whisper"
	args := []string{
		"-m", m.modelPath,
		"-f", audioPath,
		"-l", "en",
		"-oj",
		"-of", outPrefix,
	}
	if m.device == "cpu" {
		args = append(args, "-ng")
	}

	engine.IncrWhisperRuns()
	start := time.Now()
	if output, err := m.runner.Run(ctx, m.bin, args...); err != nil {
		engine.IncrWhisperErrors()
		return nil, &engine.TranscriptionError{
			Path: audioPath,
			Err:  fmt.Errorf("whisper-cli: %w: %s", err, engine.Truncate(string(output), 300)),
		}
	}

	jsonPath := outPrefix + ".json"
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		engine.IncrWhisperErrors()
		return nil, &engine.TranscriptionError{Path: audioPath, Err: err}
	}
	defer os.Remove(jsonPath)

	segments, err := parseOutput(data)
	if err != nil {
		engine.IncrWhisperErrors()
		return nil, &engine.TranscriptionError{Path: audioPath, Err: err}
	}
	slog.Debug("whisper: transcribed",
		slog.String("path", audioPath),
		slog.Int("segments", len(segments)),
		slog.Duration("took", time.Since(start)))
	return segments, nil
}

// --- whisper-cli JSON output ---

type whisperOutput struct {
	Transcription []whisperSegment `json:"transcription"`
}

type whisperSegment struct {
	Offsets struct {
		From int64 `json:"from"` // milliseconds
		To   int64 `json:"to"`
	} `json:"offsets"`
	Text string `json:"text"`
}

// parseOutput decodes whisper-cli -oj JSON into timed segments.
func parseOutput(data []byte) ([]engine.TranscriptSegment, error) {
	var out whisperOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parse whisper output: %w", err)
	}

	segments := make([]engine.TranscriptSegment, 0, len(out.Transcription))
	for _, s := range out.Transcription {
		segments = append(segments, engine.TranscriptSegment{
			Start: time.Duration(s.Offsets.From) * time.Millisecond,
			End:   time.Duration(s.Offsets.To) * time.Millisecond,
			Text:  s.Text,
		})
	}
	return segments, nil
}
