package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeepCandidate(t *testing.T) {
	tests := []struct {
		name string
		c    VideoCandidate
		want bool
	}{
		{
			name: "plain english video",
			c: VideoCandidate{
				ID:          "abc123def45",
				Title:       "The complete history of the space program explained",
				Description: "A documentary covering every mission from the beginning.",
			},
			want: true,
		},
		{
			name: "shorts marker in title",
			c: VideoCandidate{
				Title:       "Best moments #Shorts compilation from this week",
				Description: "Funny clips",
			},
			want: false,
		},
		{
			name: "shorts marker in description",
			c: VideoCandidate{
				Title:       "The funniest animal moments caught on camera this year",
				Description: "Subscribe for daily SHORTS and more content",
			},
			want: false,
		},
		{
			name: "shorts marker case insensitive",
			c: VideoCandidate{
				Title:       "Reaction to the new trailer ShOrTs edition",
				Description: "",
			},
			want: false,
		},
		{
			name: "non-english title",
			c: VideoCandidate{
				Title:       "Повний огляд нового фільму українською мовою сьогодні",
				Description: "опис відео",
			},
			want: false,
		},
		{
			name: "empty title",
			c:    VideoCandidate{Title: "", Description: "some description"},
			want: false,
		},
		{
			name: "digits only title",
			c:    VideoCandidate{Title: "12345 67890", Description: ""},
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KeepCandidate(tt.c))
		})
	}
}
