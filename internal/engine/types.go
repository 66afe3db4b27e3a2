package engine

import "time"

// --- Pipeline types ---

// SearchQuery is one (term, category) pair from the driver's cross product.
type SearchQuery struct {
	Term     string
	Category int
}

// VideoCandidate is a video returned by discovery, not yet accepted.
type VideoCandidate struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// VideoRecord is a fully resolved result. Immutable once appended.
type VideoRecord struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	URL        string `json:"url"`
	Transcript string `json:"transcript"`
}

// TranscriptSegment is a timed span of recognized speech.
type TranscriptSegment struct {
	Start time.Duration `json:"start"`
	End   time.Duration `json:"end"`
	Text  string        `json:"text"`
}

// --- Tool input types ---

type TrendingSearchInput struct {
	Terms      []string `json:"terms,omitempty" jsonschema:"Search terms (default: configured trending set)"`
	Categories []int    `json:"categories,omitempty" jsonschema:"YouTube category IDs (default: configured set)"`
	MaxResults int      `json:"max_results,omitempty" jsonschema:"Candidates per query (default: 3, max: 25)"`
}

type VideoTranscriptInput struct {
	URL string `json:"url" jsonschema:"YouTube video URL or 11-char video ID"`
}

type SubtitlesInput struct {
	Path   string `json:"path" jsonschema:"Local audio or video file path"`
	Output string `json:"output,omitempty" jsonschema:"Optional .srt output path; omit to return inline"`
}

// --- Tool output types (JSON responses) ---

type TrendingSearchOutput struct {
	Total  int           `json:"total"`
	Videos []VideoRecord `json:"videos"`
}

type VideoTranscriptOutput struct {
	VideoID    string `json:"video_id"`
	URL        string `json:"url"`
	Transcript string `json:"transcript,omitempty"`
	Available  bool   `json:"available"`
}

type SubtitlesOutput struct {
	Path     string `json:"path"`
	Segments int    `json:"segments"`
	SRT      string `json:"srt,omitempty"`
	Output   string `json:"output,omitempty"`
}
