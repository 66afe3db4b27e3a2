package engine

import (
	"strings"

	"github.com/RadhiFadlillah/whatlanggo"
)

// shortsMarker flags short-form content in titles and descriptions.
const shortsMarker = "shorts"

// KeepCandidate decides whether a discovered video is worth the costly
// transcript steps. Pure predicate, no I/O: runs before captions or audio
// work.
//
// Rejects short-form content (marker substring in title or description,
// case-insensitive) and videos whose title does not reliably detect as
// English. An unreliable detection rejects: a wrong accept costs an audio
// download and a whisper run.
func KeepCandidate(c VideoCandidate) bool {
	if strings.Contains(strings.ToLower(c.Title), shortsMarker) ||
		strings.Contains(strings.ToLower(c.Description), shortsMarker) {
		return false
	}

	info := whatlanggo.Detect(c.Title)
	if !info.IsReliable() || info.Lang != whatlanggo.Eng {
		return false
	}
	return true
}
