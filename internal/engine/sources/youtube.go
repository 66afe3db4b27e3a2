package sources

// YouTube implementation is split across four files by responsibility:
//   youtube_innertube.go — Innertube API types, constants, and low-level HTTP primitives
//   youtube_search.go    — video discovery via the Data API v3 (minimal-field snippets)
//   youtube_captions.go  — captions tier (watch-page scrape + ANDROID player fallback)
//   youtube_audio.go     — audio stream resolution, bounded retry, and download

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/mrunalinidudhagawali8/trending-youtube-transcript-fetcher/internal/engine"
	"github.com/mrunalinidudhagawali8/trending-youtube-transcript-fetcher/internal/engine/media"
)

// NewResolver wires a transcript resolver to the production tiers:
// platform captions first, audio extraction + the configured transcriber as
// the optional fallback.
func NewResolver() *engine.Resolver {
	return &engine.Resolver{
		FetchCaptions: FetchCaptions,
		PrepareAudio:  PrepareAudio,
		Transcriber:   engine.Cfg.Transcriber,
		Synthesis:     engine.Cfg.WhisperFallback,
	}
}

// NewPipeline wires a batch driver from the current configuration.
func NewPipeline() *engine.Pipeline {
	limiter := rate.NewLimiter(rate.Inf, 1)
	if engine.Cfg.SearchInterval > 0 {
		limiter = rate.NewLimiter(rate.Every(engine.Cfg.SearchInterval), 1)
	}
	return &engine.Pipeline{
		Discover:   SearchVideos,
		Keep:       engine.KeepCandidate,
		Resolver:   NewResolver(),
		Terms:      engine.Cfg.SearchTerms,
		Categories: engine.Cfg.Categories,
		MaxResults: engine.Cfg.MaxResults,
		Limiter:    limiter,
	}
}

// PrepareAudio resolves the best audio stream for a video URL, downloads it,
// and converts it to a whisper-ready WAV file. All steps write deterministic
// temp filenames, so repeated calls overwrite rather than accumulate.
func PrepareAudio(ctx context.Context, videoURL string) (string, error) {
	streamURL, err := ResolveAudioStream(ctx, videoURL)
	if err != nil {
		return "", err
	}
	audioPath, err := DownloadAudio(ctx, streamURL)
	if err != nil {
		return "", err
	}
	return media.New(engine.Cfg.TempDir).ConvertToWAV(ctx, audioPath)
}
