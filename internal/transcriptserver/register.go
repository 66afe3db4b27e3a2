// Package transcriptserver registers the transcript-acquisition MCP tools.
package transcriptserver

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mrunalinidudhagawali8/trending-youtube-transcript-fetcher/internal/engine"
	"github.com/mrunalinidudhagawali8/trending-youtube-transcript-fetcher/internal/engine/media"
	"github.com/mrunalinidudhagawali8/trending-youtube-transcript-fetcher/internal/engine/sources"
	"github.com/mrunalinidudhagawali8/trending-youtube-transcript-fetcher/internal/toolutil"
)

// RegisterTools registers all transcript tools on the given MCP server:
// trending_search, video_transcript, generate_subtitles.
func RegisterTools(server *mcp.Server) {
	registerTrendingSearch(server)
	registerVideoTranscript(server)
	registerGenerateSubtitles(server)
}

func registerTrendingSearch(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "trending_search",
		Description: "Run a trending-video transcript batch: search YouTube for every (term x category) pair, filter out Shorts and non-English videos, and return each remaining video with its full transcript. Terms, categories, and per-query result count default to the configured trending set.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input engine.TrendingSearchInput) (*mcp.CallToolResult, engine.TrendingSearchOutput, error) {
		cacheKey := engine.CacheKey("trending_search",
			strings.Join(input.Terms, ","), intsKey(input.Categories), strconv.Itoa(input.MaxResults))
		if out, ok := toolutil.CacheLoadJSON[engine.TrendingSearchOutput](ctx, cacheKey); ok {
			return nil, out, nil
		}

		p := sources.NewPipeline()
		if len(input.Terms) > 0 {
			p.Terms = input.Terms
		}
		if len(input.Categories) > 0 {
			p.Categories = input.Categories
		}
		if input.MaxResults > 0 {
			p.MaxResults = input.MaxResults
		}

		records, err := p.Run(ctx)
		if err != nil {
			return nil, engine.TrendingSearchOutput{}, err
		}

		out := engine.TrendingSearchOutput{Total: len(records), Videos: records}
		toolutil.CacheStoreJSON(ctx, cacheKey, out)
		return nil, out, nil
	})
}

func registerVideoTranscript(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "video_transcript",
		Description: "Fetch the English transcript of a single YouTube video by URL or video ID. Uses platform captions when available; falls back to local speech-to-text when enabled.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input engine.VideoTranscriptInput) (*mcp.CallToolResult, engine.VideoTranscriptOutput, error) {
		videoID := sources.ExtractVideoID(input.URL)
		if videoID == "" {
			return nil, engine.VideoTranscriptOutput{}, fmt.Errorf("not a YouTube URL or video ID: %q", input.URL)
		}

		cacheKey := engine.CacheKey("video_transcript", videoID)
		if out, ok := toolutil.CacheLoadJSON[engine.VideoTranscriptOutput](ctx, cacheKey); ok {
			return nil, out, nil
		}

		transcript, available := sources.NewResolver().Resolve(ctx, videoID)
		out := engine.VideoTranscriptOutput{
			VideoID:    videoID,
			URL:        engine.VideoURL(videoID),
			Transcript: transcript,
			Available:  available,
		}
		if available {
			toolutil.CacheStoreJSON(ctx, cacheKey, out)
		}
		return nil, out, nil
	})
}

func registerGenerateSubtitles(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_subtitles",
		Description: "Transcribe a local audio or video file with the configured speech-to-text model and return SRT subtitles. Video files are converted to audio first. Optionally writes the .srt next to the given output path.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input engine.SubtitlesInput) (*mcp.CallToolResult, engine.SubtitlesOutput, error) {
		if engine.Cfg.Transcriber == nil {
			return nil, engine.SubtitlesOutput{}, fmt.Errorf("speech-to-text is not configured")
		}
		if _, err := os.Stat(input.Path); err != nil {
			return nil, engine.SubtitlesOutput{}, fmt.Errorf("input file: %w", err)
		}

		audioPath := input.Path
		if media.IsVideoFile(input.Path) {
			converted, err := media.New(engine.Cfg.TempDir).ConvertToWAV(ctx, input.Path)
			if err != nil {
				return nil, engine.SubtitlesOutput{}, err
			}
			audioPath = converted
		}

		segments, err := engine.Cfg.Transcriber.Transcribe(ctx, audioPath)
		if err != nil {
			return nil, engine.SubtitlesOutput{}, err
		}

		out := engine.SubtitlesOutput{Path: input.Path, Segments: len(segments)}
		if input.Output != "" {
			if err := engine.WriteSRT(input.Output, segments); err != nil {
				return nil, engine.SubtitlesOutput{}, err
			}
			out.Output = input.Output
		} else {
			out.SRT = engine.FormatSRT(segments)
		}
		return nil, out, nil
	})
}

func intsKey(ints []int) string {
	parts := make([]string, len(ints))
	for i, n := range ints {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ",")
}
