package sources

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPickEnglishTrack(t *testing.T) {
	manual := captionTrack{BaseURL: "https://yt/manual", LanguageCode: "en"}
	manualGB := captionTrack{BaseURL: "https://yt/gb", LanguageCode: "en-GB"}
	auto := captionTrack{BaseURL: "https://yt/auto", LanguageCode: "en", Kind: "asr"}
	french := captionTrack{BaseURL: "https://yt/fr", LanguageCode: "fr"}

	t.Run("manual preferred over auto", func(t *testing.T) {
		got, ok := pickEnglishTrack([]captionTrack{auto, manual})
		require.True(t, ok)
		assert.Equal(t, manual.BaseURL, got.BaseURL)
	})

	t.Run("regional english counts", func(t *testing.T) {
		got, ok := pickEnglishTrack([]captionTrack{french, manualGB})
		require.True(t, ok)
		assert.Equal(t, manualGB.BaseURL, got.BaseURL)
	})

	t.Run("auto english when no manual", func(t *testing.T) {
		got, ok := pickEnglishTrack([]captionTrack{french, auto})
		require.True(t, ok)
		assert.Equal(t, auto.BaseURL, got.BaseURL)
	})

	t.Run("no english", func(t *testing.T) {
		_, ok := pickEnglishTrack([]captionTrack{french})
		assert.False(t, ok)
	})

	t.Run("empty", func(t *testing.T) {
		_, ok := pickEnglishTrack(nil)
		assert.False(t, ok)
	})
}

func TestParseTimedText(t *testing.T) {
	xmlBody := `<?xml version="1.0" encoding="utf-8"?>
<transcript>
	<text start="0.0" dur="1.5">hello <b>there</b></text>
	<text start="1.5" dur="2.0">   </text>
	<text start="3.5" dur="1.0">general &amp; kenobi</text>
</transcript>`

	got, err := parseTimedText([]byte(xmlBody))
	require.NoError(t, err)
	assert.Equal(t, "hello there general & kenobi", got)
}

func TestParseTimedTextInvalid(t *testing.T) {
	_, err := parseTimedText([]byte("not xml at all <"))
	assert.Error(t, err)
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple object", `{"a":1};var next`, `{"a":1}`},
		{"nested braces", `{"a":{"b":2}} trailing`, `{"a":{"b":2}}`},
		{"braces inside strings", `{"a":"}{"} rest`, `{"a":"}{"}`},
		{"escaped quote", `{"a":"say \"hi\""}`, `{"a":"say \"hi\""}`},
		{"unterminated", `{"a":1`, ""},
		{"not an object", `[1,2]`, ""},
		{"empty", ``, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractJSON([]byte(tt.in))
			if tt.want == "" {
				assert.Nil(t, got)
			} else {
				assert.Equal(t, tt.want, string(got))
			}
		})
	}
}
