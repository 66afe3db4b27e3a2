package sources

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mrunalinidudhagawali8/trending-youtube-transcript-fetcher/internal/engine"
)

// Captions tier: pre-existing platform captions, English only.
// Primary:  scrape watch page ytInitialPlayerResponse → caption XML (works from any IP)
// Fallback: ANDROID Innertube /player → captionTracks

// ytInitialPlayerResponseMarker marks the start of the player response JSON in watch page HTML.
const ytInitialPlayerResponseMarker = "ytInitialPlayerResponse = "

// FetchCaptions fetches English plain-text captions for a video.
// A captions miss (transcripts disabled, no tracks, no English track) wraps
// engine.ErrCaptionsUnavailable so the resolver can tell a miss from a
// transport failure.
func FetchCaptions(ctx context.Context, videoID string) (string, error) {
	engine.IncrCaptionsRequests()

	text, err := fetchCaptionsViaPageScrape(ctx, videoID)
	if err == nil {
		engine.IncrCaptionsHits()
		return text, nil
	}
	slog.Debug("captions: page scrape failed, trying player",
		slog.String("id", videoID), slog.Any("err", err))

	text, err = fetchCaptionsViaPlayer(ctx, videoID)
	if err != nil {
		return "", err
	}
	engine.IncrCaptionsHits()
	return text, nil
}

// fetchCaptionsViaPageScrape scrapes the YouTube watch page HTML and extracts
// the caption track XML URL from ytInitialPlayerResponse.
func fetchCaptionsViaPageScrape(ctx context.Context, videoID string) (string, error) {
	resp, err := engine.RetryHTTP(ctx, engine.DefaultRetryConfig, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, engine.VideoURL(videoID), nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", engine.UserAgentChrome)
		req.Header.Set("Accept-Language", "en-US,en;q=0.9")
		req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
		return engine.Cfg.HTTPClient.Do(req)
	})
	if err != nil {
		return "", fmt.Errorf("watch page: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 6*1024*1024))
	if err != nil {
		return "", fmt.Errorf("read watch page: %w", err)
	}

	idx := strings.Index(string(body), ytInitialPlayerResponseMarker)
	if idx < 0 {
		return "", errors.New("ytInitialPlayerResponse not found in watch page")
	}
	jsonData := extractJSON(body[idx+len(ytInitialPlayerResponseMarker):])
	if jsonData == nil {
		return "", errors.New("failed to extract ytInitialPlayerResponse JSON")
	}

	var playerResp innertubePlayerResp
	if err := json.Unmarshal(jsonData, &playerResp); err != nil {
		return "", fmt.Errorf("decode ytInitialPlayerResponse: %w", err)
	}
	return captionsFromPlayer(ctx, &playerResp)
}

// fetchCaptionsViaPlayer uses the ANDROID Innertube /player endpoint.
func fetchCaptionsViaPlayer(ctx context.Context, videoID string) (string, error) {
	playerResp, err := fetchAndroidPlayer(ctx, videoID)
	if err != nil {
		return "", err
	}
	return captionsFromPlayer(ctx, playerResp)
}

// captionsFromPlayer selects the best English track from a player response
// and fetches its timedtext.
func captionsFromPlayer(ctx context.Context, playerResp *innertubePlayerResp) (string, error) {
	if playerResp.Captions == nil {
		reason := "no captions in player response"
		if playerResp.PlayabilityStatus != nil && playerResp.PlayabilityStatus.Reason != "" {
			reason = playerResp.PlayabilityStatus.Reason
		}
		return "", fmt.Errorf("%s: %w", reason, engine.ErrCaptionsUnavailable)
	}
	tracks := playerResp.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks
	if len(tracks) == 0 {
		return "", fmt.Errorf("no caption tracks: %w", engine.ErrCaptionsUnavailable)
	}
	track, ok := pickEnglishTrack(tracks)
	if !ok {
		return "", fmt.Errorf("no English caption track: %w", engine.ErrCaptionsUnavailable)
	}
	return fetchTimedText(ctx, track.BaseURL)
}

// pickEnglishTrack selects an English caption track, preferring
// manually-authored tracks over auto-generated ("asr") ones.
func pickEnglishTrack(tracks []captionTrack) (captionTrack, bool) {
	for _, t := range tracks {
		if strings.HasPrefix(t.LanguageCode, "en") && t.Kind != "asr" {
			return t, true
		}
	}
	for _, t := range tracks {
		if strings.HasPrefix(t.LanguageCode, "en") {
			return t, true
		}
	}
	return captionTrack{}, false
}

// fetchTimedText fetches and parses a YouTube timedtext XML caption URL,
// stripping timing and markup into plain text.
func fetchTimedText(ctx context.Context, baseURL string) (string, error) {
	resp, err := engine.RetryHTTP(ctx, engine.DefaultRetryConfig, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", engine.UserAgentBot)
		return engine.Cfg.HTTPClient.Do(req)
	})
	if err != nil {
		return "", fmt.Errorf("fetch timedtext: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 512*1024))
	if err != nil {
		return "", err
	}
	return parseTimedText(body)
}

// parseTimedText converts timedtext XML into single-space-joined plain text.
func parseTimedText(body []byte) (string, error) {
	var tt ytTimedText
	if err := xml.Unmarshal(body, &tt); err != nil {
		return "", fmt.Errorf("parse timedtext XML: %w", err)
	}

	var sb strings.Builder
	for _, line := range tt.Lines {
		text := engine.CleanHTML(line.Text)
		if text != "" {
			if sb.Len() > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(text)
		}
	}
	return sb.String(), nil
}
