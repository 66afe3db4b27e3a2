package engine

import (
	"context"
	"errors"
	"log/slog"
)

// Resolver obtains a transcript for a video through two tiers:
//
//	1. captions: pre-existing platform captions, cheap, always tried first
//	2. synthesis: audio extraction + local speech-to-text, only when the
//	   captions tier misses and the fallback policy enables it
//
// Capabilities are explicit fields so callers (and tests) control each tier.
type Resolver struct {
	// FetchCaptions returns English plain-text captions for a video ID.
	FetchCaptions func(ctx context.Context, videoID string) (string, error)
	// PrepareAudio resolves, downloads, and normalizes the audio for a
	// video URL, returning a local file path ready for transcription.
	PrepareAudio func(ctx context.Context, videoURL string) (string, error)
	// Transcriber runs speech-to-text on a prepared audio file.
	Transcriber Transcriber
	// Synthesis enables the fallback tier. Off means a captions miss is a
	// skip, not a whisper run.
	Synthesis bool
}

// Resolve returns the transcript text and whether one was obtained.
// Failures in either tier are logged and reported as unavailable; Resolve
// never fails a batch.
func (r *Resolver) Resolve(ctx context.Context, videoID string) (string, bool) {
	text, err := r.FetchCaptions(ctx, videoID)
	if err == nil {
		IncrVideosResolved()
		return text, true
	}
	if errors.Is(err, ErrCaptionsUnavailable) {
		slog.Debug("resolver: no captions", slog.String("id", videoID), slog.Any("reason", err))
	} else {
		slog.Warn("resolver: captions fetch failed", slog.String("id", videoID), slog.Any("error", err))
	}

	if !r.Synthesis || r.Transcriber == nil {
		return "", false
	}

	slog.Info("resolver: falling back to speech-to-text", slog.String("id", videoID))
	audioPath, err := r.PrepareAudio(ctx, VideoURL(videoID))
	if err != nil {
		slog.Warn("resolver: audio preparation failed", slog.String("id", videoID), slog.Any("error", err))
		return "", false
	}

	segments, err := r.Transcriber.Transcribe(ctx, audioPath)
	if err != nil {
		slog.Warn("resolver: transcription failed", slog.String("id", videoID), slog.Any("error", err))
		return "", false
	}

	IncrVideosResolved()
	return JoinSegments(segments), true
}
