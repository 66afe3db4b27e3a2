package engine

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Metrics tracks operational counters across the engine.
var metrics struct {
	SearchRequests     atomic.Int64
	CaptionsRequests   atomic.Int64
	CaptionsHits       atomic.Int64
	AudioExtractions   atomic.Int64
	ExtractionFailures atomic.Int64
	WhisperRuns        atomic.Int64
	WhisperErrors      atomic.Int64
	VideosFiltered     atomic.Int64
	VideosResolved     atomic.Int64
}

func IncrSearchRequests()     { metrics.SearchRequests.Add(1) }
func IncrCaptionsRequests()   { metrics.CaptionsRequests.Add(1) }
func IncrCaptionsHits()       { metrics.CaptionsHits.Add(1) }
func IncrAudioExtractions()   { metrics.AudioExtractions.Add(1) }
func IncrExtractionFailures() { metrics.ExtractionFailures.Add(1) }
func IncrWhisperRuns()        { metrics.WhisperRuns.Add(1) }
func IncrWhisperErrors()      { metrics.WhisperErrors.Add(1) }
func IncrVideosFiltered()     { metrics.VideosFiltered.Add(1) }
func IncrVideosResolved()     { metrics.VideosResolved.Add(1) }

// GetMetrics returns a snapshot of all metrics including cache stats.
func GetMetrics() map[string]int64 {
	hits, misses := CacheStats()
	return map[string]int64{
		"search_requests":     metrics.SearchRequests.Load(),
		"captions_requests":   metrics.CaptionsRequests.Load(),
		"captions_hits":       metrics.CaptionsHits.Load(),
		"audio_extractions":   metrics.AudioExtractions.Load(),
		"extraction_failures": metrics.ExtractionFailures.Load(),
		"whisper_runs":        metrics.WhisperRuns.Load(),
		"whisper_errors":      metrics.WhisperErrors.Load(),
		"videos_filtered":     metrics.VideosFiltered.Load(),
		"videos_resolved":     metrics.VideosResolved.Load(),
		"cache_hits":          hits,
		"cache_misses":        misses,
	}
}

// FormatMetrics returns metrics as a simple text format for HTTP endpoint.
func FormatMetrics() string {
	m := GetMetrics()
	var sb strings.Builder
	keys := []string{
		"search_requests",
		"captions_requests", "captions_hits",
		"audio_extractions", "extraction_failures",
		"whisper_runs", "whisper_errors",
		"videos_filtered", "videos_resolved",
		"cache_hits", "cache_misses",
	}
	for _, k := range keys {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}
