package engine

import (
	"errors"
	"fmt"
)

// ErrCaptionsUnavailable marks a captions miss: the video exists but has no
// usable English caption track. Distinct from transport failures so the
// resolver can decide between falling back and logging an error.
var ErrCaptionsUnavailable = errors.New("captions unavailable")

// ConfigurationError is a missing or invalid setting detected before any
// network work. Aborts a batch run immediately.
type ConfigurationError struct {
	Setting string
	Reason  string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration: %s: %s", e.Setting, e.Reason)
}

// DiscoveryError is a failed search query. The driver skips the query and
// continues the batch.
type DiscoveryError struct {
	Term     string
	Category int
	Err      error
}

func (e *DiscoveryError) Error() string {
	return fmt.Sprintf("discovery %q category %d: %v", e.Term, e.Category, e.Err)
}

func (e *DiscoveryError) Unwrap() error { return e.Err }

// ExtractionError is an exhausted audio stream resolution: every bounded
// attempt failed. Attempts carries the exact count performed.
type ExtractionError struct {
	URL      string
	Attempts int
	Err      error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("audio extraction for %s failed after %d attempts: %v", e.URL, e.Attempts, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// TranscriptionError is a failed speech-to-text run over a local audio file.
type TranscriptionError struct {
	Path string
	Err  error
}

func (e *TranscriptionError) Error() string {
	return fmt.Sprintf("transcription of %s: %v", e.Path, e.Err)
}

func (e *TranscriptionError) Unwrap() error { return e.Err }
