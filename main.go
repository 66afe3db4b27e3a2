// trending-youtube-transcript-fetcher — Trending YouTube Transcript MCP server.
//
// Exposes three MCP tools: trending_search, video_transcript,
// generate_subtitles. Searches YouTube for trending videos across configured
// terms and categories, filters out Shorts and non-English videos, and
// resolves a transcript for each: platform captions first, local
// speech-to-text as an optional fallback.
package main

import (
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/anatolykoptev/go-mcpserver"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mrunalinidudhagawali8/trending-youtube-transcript-fetcher/internal/engine"
	"github.com/mrunalinidudhagawali8/trending-youtube-transcript-fetcher/internal/engine/whisper"
	"github.com/mrunalinidudhagawali8/trending-youtube-transcript-fetcher/internal/transcriptserver"
)

var (
	version = "dev"
	mcpPort = env.Str("MCP_PORT", "8893")
)

func main() {
	initEngine()

	slog.Info("starting trending-youtube-transcript-fetcher",
		slog.String("port", mcpPort),
	)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "trending-youtube-transcript-fetcher",
		Version: version,
	}, nil)

	transcriptserver.RegisterTools(server)
	slog.Info("tools registered", slog.Int("count", 3))

	if err := mcpserver.Run(server, mcpserver.Config{
		Name:         "trending-youtube-transcript-fetcher",
		Version:      version,
		Port:         mcpPort,
		WriteTimeout: 600 * time.Second,
		Metrics:      engine.FormatMetrics,
	}); err != nil {
		slog.Error("server failed", slog.Any("error", err))
	}
}

func initEngine() {
	c := engine.Config{
		YouTubeAPIKey:        env.Str("YOUTUBE_API_KEY", ""),
		SearchTerms:          env.List("SEARCH_TERMS", ""),
		Categories:           parseCategories(env.Str("CATEGORIES", "")),
		MaxResults:           env.Int("MAX_RESULTS", 3),
		SearchInterval:       env.Duration("SEARCH_INTERVAL", 1*time.Second),
		ExtractRetries:       env.Int("EXTRACT_RETRIES", 3),
		ExtractBackoff:       env.Duration("EXTRACT_BACKOFF", 2*time.Second),
		WhisperFallback:      envBool("WHISPER_FALLBACK"),
		TempDir:              env.Str("TEMP_DIR", "/tmp"),
		CacheMaxEntries:      env.Int("CACHE_MAX_ENTRIES", 1000),
		CacheCleanupInterval: env.Duration("CACHE_CLEANUP_INTERVAL", 300*time.Second),
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     60 * time.Second,
			},
		},
	}
	if len(c.SearchTerms) == 0 {
		c.SearchTerms = engine.DefaultSearchTerms
	}
	if len(c.Categories) == 0 {
		c.Categories = engine.DefaultCategories
	}

	// Speech-to-text (optional: captions-only mode if the model is missing)
	model, err := whisper.New(whisper.Config{
		ModelSize: env.Str("WHISPER_MODEL", "base"),
		ModelDir:  env.Str("WHISPER_MODEL_DIR", ""),
		BinPath:   env.Str("WHISPER_BIN", ""),
		Device:    env.Str("WHISPER_DEVICE", ""),
	})
	if err != nil {
		slog.Warn("whisper init failed, captions-only mode", slog.Any("error", err))
	} else {
		c.Transcriber = model
	}

	engine.Init(c)

	cacheTTL := env.Duration("CACHE_TTL", 15*time.Minute)
	engine.InitCache(env.Str("REDIS_URL", ""), cacheTTL, c.CacheMaxEntries, c.CacheCleanupInterval)
}

func parseCategories(raw string) []int {
	var out []int
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			slog.Warn("ignoring invalid category", slog.String("value", part))
			continue
		}
		out = append(out, n)
	}
	return out
}

func envBool(key string) bool {
	v := strings.TrimSpace(os.Getenv(key))
	return strings.EqualFold(v, "true") || v == "1"
}
