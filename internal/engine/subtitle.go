package engine

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// FormatSRT renders segments as a SubRip subtitle document:
// sequence number, "HH:MM:SS,mmm --> HH:MM:SS,mmm", text, blank separator.
//
// Timestamps are truncated to whole seconds (milliseconds always ",000"),
// matching the generator this replaces. Sub-second cue precision is not
// preserved.
func FormatSRT(segments []TranscriptSegment) string {
	var sb strings.Builder
	for i, seg := range segments {
		fmt.Fprintf(&sb, "%d\n%s --> %s\n%s\n\n",
			i+1, srtTimestamp(seg.Start), srtTimestamp(seg.End), strings.TrimSpace(seg.Text))
	}
	return sb.String()
}

// WriteSRT writes the rendered subtitle document to path.
func WriteSRT(path string, segments []TranscriptSegment) error {
	return os.WriteFile(path, []byte(FormatSRT(segments)), 0o644)
}

func srtTimestamp(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Truncate(time.Second)
	h := d / time.Hour
	m := (d % time.Hour) / time.Minute
	s := (d % time.Minute) / time.Second
	return fmt.Sprintf("%02d:%02d:%02d,000", h, m, s)
}
