package engine

import (
	"context"
	"net/http"
	"time"
)

// Transcriber converts a local audio file into ordered timed segments.
// The production implementation (internal/engine/whisper) is constructed once
// in main and injected here, so tests can substitute a double.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) ([]TranscriptSegment, error)
}

// Config holds all engine configuration, injected from main.
type Config struct {
	YouTubeAPIKey   string
	SearchTerms     []string
	Categories      []int
	MaxResults      int           // candidates per (term, category) query
	SearchInterval  time.Duration // fixed delay between discovery calls
	ExtractRetries  int           // audio stream resolution attempt bound
	ExtractBackoff  time.Duration // fixed wait between extraction attempts
	WhisperFallback bool          // synthesize transcripts when captions miss
	TempDir         string        // intermediate audio artifacts

	CacheMaxEntries      int
	CacheCleanupInterval time.Duration

	HTTPClient  *http.Client
	Transcriber Transcriber // nil = synthesis tier disabled
}

var cfg Config

// Cfg exposes the engine configuration for sub-packages (sources, servers).
// Always points to the current cfg value.
var Cfg = &cfg

// Init initializes the engine with the given configuration.
func Init(c Config) {
	cfg = c
	Cfg = &cfg
}

// Validate reports whether the config can drive a discovery run.
// Called before any network work so a missing credential fails fast.
func (c *Config) Validate() error {
	if c.YouTubeAPIKey == "" {
		return &ConfigurationError{Setting: "YOUTUBE_API_KEY", Reason: "required for video discovery"}
	}
	return nil
}

// DefaultSearchTerms mirror the trending topics the service ships with.
var DefaultSearchTerms = []string{
	"What's trending now", "Top stories today", "Viral videos",
	"Celebrity news", "Movie trailers", "Game highlights",
	"Funny moments", "Latest updates", "Explained", "Reaction videos",
}

// DefaultCategories are YouTube category IDs: entertainment, music, people &
// blogs, news & politics, sports, comedy.
var DefaultCategories = []int{24, 10, 22, 25, 17, 23}
