package engine

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPipeline(discover func(ctx context.Context, q SearchQuery, limit int) ([]VideoCandidate, error), resolve func(ctx context.Context, videoID string) (string, error)) *Pipeline {
	return &Pipeline{
		Discover: discover,
		Keep:     func(c VideoCandidate) bool { return true },
		Resolver: &Resolver{FetchCaptions: resolve},
	}
}

func TestPipelineRun(t *testing.T) {
	Init(Config{YouTubeAPIKey: "test-key"})

	t.Run("filters and resolves in discovery order", func(t *testing.T) {
		p := testPipeline(
			func(_ context.Context, q SearchQuery, _ int) ([]VideoCandidate, error) {
				return []VideoCandidate{
					{ID: "aaaaaaaaaaa", Title: "An interesting documentary about deep sea life"},
					{ID: "bbbbbbbbbbb", Title: "Funny cats #shorts"},
					{ID: "ccccccccccc", Title: "Повне відео огляд"},
				}, nil
			},
			func(_ context.Context, videoID string) (string, error) {
				return "transcript for " + videoID, nil
			},
		)
		p.Keep = KeepCandidate
		p.Terms = []string{"deep sea"}
		p.Categories = []int{24}

		records, err := p.Run(context.Background())
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "aaaaaaaaaaa", records[0].ID)
		assert.Equal(t, "https://www.youtube.com/watch?v=aaaaaaaaaaa", records[0].URL)
		assert.Equal(t, "transcript for aaaaaaaaaaa", records[0].Transcript)
	})

	t.Run("runs full term by category cross product in order", func(t *testing.T) {
		var queries []string
		p := testPipeline(
			func(_ context.Context, q SearchQuery, _ int) ([]VideoCandidate, error) {
				queries = append(queries, fmt.Sprintf("%s/%d", q.Term, q.Category))
				return nil, nil
			},
			nil,
		)
		p.Terms = []string{"one", "two"}
		p.Categories = []int{10, 24}

		_, err := p.Run(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"one/10", "one/24", "two/10", "two/24"}, queries)
	})

	t.Run("discovery failure skips only that query", func(t *testing.T) {
		p := testPipeline(
			func(_ context.Context, q SearchQuery, _ int) ([]VideoCandidate, error) {
				if q.Term == "bad" {
					return nil, &DiscoveryError{Term: q.Term, Category: q.Category, Err: errors.New("quota exceeded")}
				}
				return []VideoCandidate{{ID: "ddddddddddd", Title: "A long walk through the old city streets"}}, nil
			},
			func(_ context.Context, videoID string) (string, error) { return "text", nil },
		)
		p.Terms = []string{"bad", "good"}
		p.Categories = []int{24}

		records, err := p.Run(context.Background())
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "ddddddddddd", records[0].ID)
	})

	t.Run("unresolvable video is skipped", func(t *testing.T) {
		p := testPipeline(
			func(_ context.Context, _ SearchQuery, _ int) ([]VideoCandidate, error) {
				return []VideoCandidate{
					{ID: "eeeeeeeeeee", Title: "Silent film restoration process shown step by step"},
					{ID: "fffffffffff", Title: "Captioned lecture on modern European history"},
				}, nil
			},
			func(_ context.Context, videoID string) (string, error) {
				if videoID == "eeeeeeeeeee" {
					return "", ErrCaptionsUnavailable
				}
				return "lecture text", nil
			},
		)
		p.Terms = []string{"history"}
		p.Categories = []int{25}

		records, err := p.Run(context.Background())
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "fffffffffff", records[0].ID)
	})
}

func TestPipelineRunMissingAPIKey(t *testing.T) {
	Init(Config{})
	t.Cleanup(func() { Init(Config{YouTubeAPIKey: "test-key"}) })

	discoveryCalls := 0
	p := testPipeline(
		func(_ context.Context, _ SearchQuery, _ int) ([]VideoCandidate, error) {
			discoveryCalls++
			return nil, nil
		},
		nil,
	)
	p.Terms = []string{"anything"}
	p.Categories = []int{24}

	_, err := p.Run(context.Background())
	var cerr *ConfigurationError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "YOUTUBE_API_KEY", cerr.Setting)
	assert.Zero(t, discoveryCalls, "credential check must precede any discovery call")
}
