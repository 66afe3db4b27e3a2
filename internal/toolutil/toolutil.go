// Package toolutil holds small helpers shared by MCP tool handlers.
package toolutil

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/mrunalinidudhagawali8/trending-youtube-transcript-fetcher/internal/engine"
)

// CacheLoadJSON returns the cached value for key, if present and decodable.
func CacheLoadJSON[T any](ctx context.Context, key string) (T, bool) {
	var zero T
	data, ok := engine.CacheGet(ctx, key)
	if !ok {
		return zero, false
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		slog.Warn("cache: stale entry, dropping", slog.String("key", key), slog.Any("error", err))
		return zero, false
	}
	return v, true
}

// CacheStoreJSON stores v under key. Encoding failures are logged, not fatal.
func CacheStoreJSON[T any](ctx context.Context, key string, v T) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Warn("cache: encode failed", slog.String("key", key), slog.Any("error", err))
		return
	}
	engine.CacheSet(ctx, key, data)
}
