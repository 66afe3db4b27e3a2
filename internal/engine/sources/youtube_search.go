package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"

	"github.com/mrunalinidudhagawali8/trending-youtube-transcript-fetcher/internal/engine"
)

// Video discovery via the YouTube Data API v3.

const (
	ytDataAPIBase = "https://www.googleapis.com/youtube/v3"
	// ytSearchFields masks the response down to the three fields the
	// pipeline consumes, conserving per-request quota.
	ytSearchFields = "items(id/videoId,snippet/title,snippet/description)"

	defaultMaxResults = 3
	maxMaxResults     = 25
)

var (
	videoIDRE     = regexp.MustCompile(`(?:youtube\.com/(?:watch\?(?:.*&)?v=|shorts/)|youtu\.be/)([a-zA-Z0-9_-]{11})`)
	bareVideoIDRE = regexp.MustCompile(`^[a-zA-Z0-9_-]{11}$`)
)

// ExtractVideoID pulls the 11-char video ID from any YouTube URL format.
// A bare valid video ID is returned as-is.
func ExtractVideoID(raw string) string {
	if m := videoIDRE.FindStringSubmatch(raw); len(m) >= 2 {
		return m[1]
	}
	if bareVideoIDRE.MatchString(raw) {
		return raw
	}
	return ""
}

// clampLimit keeps maxResults within the Data API's accepted range:
// unset defaults to 3, oversized caps at 25.
func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return defaultMaxResults
	case limit > maxMaxResults:
		return maxMaxResults
	}
	return limit
}

// --- YouTube Data API v3 types ---

type ytDataSearchResp struct {
	Items []ytDataItem `json:"items"`
}

type ytDataItem struct {
	ID      ytDataItemID      `json:"id"`
	Snippet ytDataItemSnippet `json:"snippet"`
}

type ytDataItemID struct {
	VideoID string `json:"videoId"`
}

type ytDataItemSnippet struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// SearchVideos runs one discovery query against the Data API v3.
// Transport, auth, and quota failures wrap into *engine.DiscoveryError; the
// driver treats those as skip-this-query, not abort-the-run.
func SearchVideos(ctx context.Context, q engine.SearchQuery, limit int) ([]engine.VideoCandidate, error) {
	engine.IncrSearchRequests()
	limit = clampLimit(limit)

	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("q", q.Term)
	params.Set("type", "video")
	params.Set("videoCategoryId", strconv.Itoa(q.Category))
	params.Set("maxResults", strconv.Itoa(limit))
	params.Set("fields", ytSearchFields)
	params.Set("key", engine.Cfg.YouTubeAPIKey)

	apiURL := ytDataAPIBase + "/search?" + params.Encode()
	resp, err := engine.RetryHTTP(ctx, engine.DefaultRetryConfig, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", engine.UserAgentBot)
		return engine.Cfg.HTTPClient.Do(req)
	})
	if err != nil {
		return nil, &engine.DiscoveryError{Term: q.Term, Category: q.Category, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &engine.DiscoveryError{
			Term:     q.Term,
			Category: q.Category,
			Err:      fmt.Errorf("youtube data API %d: %s", resp.StatusCode, body),
		}
	}

	var result ytDataSearchResp
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &engine.DiscoveryError{
			Term:     q.Term,
			Category: q.Category,
			Err:      fmt.Errorf("decode youtube data API: %w", err),
		}
	}

	return searchCandidates(result), nil
}

// searchCandidates converts a Data API response into pipeline candidates,
// preserving response order.
func searchCandidates(resp ytDataSearchResp) []engine.VideoCandidate {
	candidates := make([]engine.VideoCandidate, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.ID.VideoID == "" {
			continue
		}
		candidates = append(candidates, engine.VideoCandidate{
			ID:          item.ID.VideoID,
			Title:       item.Snippet.Title,
			Description: item.Snippet.Description,
		})
	}
	return candidates
}
