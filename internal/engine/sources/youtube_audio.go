package sources

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/mrunalinidudhagawali8/trending-youtube-transcript-fetcher/internal/engine"
)

// Audio tier: resolve a direct audio stream URL through the ANDROID player
// and download it for whisper. Used only when captions miss and synthesis is
// enabled.

const audioFileName = "temp_audio.m4a"

// ResolveAudioStream resolves a direct audio stream URL for a video.
//
// Attempts are bounded by Cfg.ExtractRetries with a fixed Cfg.ExtractBackoff
// wait between them. Every attempt failing yields *engine.ExtractionError
// carrying the exact attempt count.
func ResolveAudioStream(ctx context.Context, videoURL string) (string, error) {
	engine.IncrAudioExtractions()

	videoID := ExtractVideoID(videoURL)
	if videoID == "" {
		engine.IncrExtractionFailures()
		return "", &engine.ExtractionError{
			URL:      videoURL,
			Attempts: 0,
			Err:      errors.New("could not extract video ID"),
		}
	}

	attempts := engine.Cfg.ExtractRetries
	if attempts <= 0 {
		attempts = 1
	}

	calls := 0
	streamURL, err := engine.RetryDo(ctx, engine.FixedRetryConfig(attempts, engine.Cfg.ExtractBackoff), func() (string, error) {
		calls++
		u, err := resolveOnce(ctx, videoID)
		if err != nil {
			slog.Warn("audio: stream resolution attempt failed",
				slog.String("id", videoID),
				slog.Int("attempt", calls),
				slog.Int("max", attempts),
				slog.Any("error", err))
		}
		return u, err
	})
	if err != nil {
		engine.IncrExtractionFailures()
		return "", &engine.ExtractionError{URL: videoURL, Attempts: calls, Err: err}
	}
	return streamURL, nil
}

// resolveOnce makes a single player request and picks an audio format.
func resolveOnce(ctx context.Context, videoID string) (string, error) {
	playerResp, err := fetchAndroidPlayer(ctx, videoID)
	if err != nil {
		return "", err
	}
	if playerResp.StreamingData == nil {
		reason := "no streaming data"
		if playerResp.PlayabilityStatus != nil && playerResp.PlayabilityStatus.Reason != "" {
			reason = playerResp.PlayabilityStatus.Reason
		}
		return "", errors.New(reason)
	}

	format, ok := pickAudioFormat(playerResp.StreamingData.AdaptiveFormats, playerResp.StreamingData.Formats)
	if !ok {
		return "", errors.New("no usable audio format")
	}
	return format.URL, nil
}

// pickAudioFormat picks the best stream for transcription: highest-bitrate
// audio/mp4, then any audio-only format, then the best combined format.
func pickAudioFormat(adaptive, combined []streamFormat) (streamFormat, bool) {
	var best streamFormat
	found := false
	for _, f := range adaptive {
		if f.URL == "" || !strings.HasPrefix(f.MimeType, "audio/mp4") {
			continue
		}
		if !found || f.Bitrate > best.Bitrate {
			best, found = f, true
		}
	}
	if found {
		return best, true
	}

	for _, f := range adaptive {
		if f.URL == "" || !strings.HasPrefix(f.MimeType, "audio/") {
			continue
		}
		if !found || f.Bitrate > best.Bitrate {
			best, found = f, true
		}
	}
	if found {
		return best, true
	}

	for _, f := range combined {
		if f.URL == "" {
			continue
		}
		if !found || f.Bitrate > best.Bitrate {
			best, found = f, true
		}
	}
	return best, found
}

// DownloadAudio streams the resolved audio URL to a deterministic temp file
// and returns its path. The file is overwritten on each call.
func DownloadAudio(ctx context.Context, streamURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, streamURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", ytAndroidUA)

	resp, err := engine.Cfg.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("download audio: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download audio: HTTP %d", resp.StatusCode)
	}

	path := filepath.Join(engine.Cfg.TempDir, audioFileName)
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	written, err := io.Copy(f, resp.Body)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write audio file: %w", err)
	}

	slog.Debug("audio: downloaded", slog.String("path", path), slog.Int64("bytes", written))
	return path, nil
}
