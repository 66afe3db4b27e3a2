package sources

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/watch?list=PL123&v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/shorts/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://example.com/watch?v=dQw4w9WgXcQ", ""},
		{"not a video", ""},
		{"tooshort", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ExtractVideoID(tt.in), "input %q", tt.in)
	}
}

func TestClampLimit(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, 3},
		{-1, 3},
		{1, 1},
		{3, 3},
		{25, 25},
		{26, 25},
		{100, 25},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, clampLimit(tt.in), "limit %d", tt.in)
	}
}

func TestSearchCandidates(t *testing.T) {
	payload := `{
		"items": [
			{
				"id": {"videoId": "aaaaaaaaaaa"},
				"snippet": {"title": "First video", "description": "About something"}
			},
			{
				"id": {},
				"snippet": {"title": "Channel result, no video id", "description": ""}
			},
			{
				"id": {"videoId": "bbbbbbbbbbb"},
				"snippet": {"title": "Second video", "description": "More details"}
			}
		]
	}`

	var resp ytDataSearchResp
	require.NoError(t, json.Unmarshal([]byte(payload), &resp))

	candidates := searchCandidates(resp)
	require.Len(t, candidates, 2)
	assert.Equal(t, "aaaaaaaaaaa", candidates[0].ID)
	assert.Equal(t, "First video", candidates[0].Title)
	assert.Equal(t, "About something", candidates[0].Description)
	assert.Equal(t, "bbbbbbbbbbb", candidates[1].ID)
}
