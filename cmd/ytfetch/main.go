// ytfetch fetches the English transcript of a single YouTube video, or
// transcribes a local audio/video file, from the command line.
//
// Usage:
//
//	ytfetch [flags] <video-url | video-id | local-file>
//
// For YouTube inputs the platform captions are used when available; pass
// -whisper to fall back to local speech-to-text when they are not. Local
// files always go through speech-to-text.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mrunalinidudhagawali8/trending-youtube-transcript-fetcher/internal/engine"
	"github.com/mrunalinidudhagawali8/trending-youtube-transcript-fetcher/internal/engine/media"
	"github.com/mrunalinidudhagawali8/trending-youtube-transcript-fetcher/internal/engine/sources"
	"github.com/mrunalinidudhagawali8/trending-youtube-transcript-fetcher/internal/engine/whisper"
)

var (
	output     = flag.String("o", "", "write the result to this file instead of stdout")
	srt        = flag.Bool("srt", false, "emit SRT subtitles instead of plain text (speech-to-text only)")
	useWhisper = flag.Bool("whisper", false, "fall back to local speech-to-text when captions are unavailable")
	modelSize  = flag.String("model", "base", "whisper model size (tiny, base, small, medium, large)")
	modelDir   = flag.String("model-dir", "", "directory holding ggml whisper models")
	clipStart  = flag.Duration("from", 0, "trim local media: clip start offset (e.g. 1m30s)")
	clipEnd    = flag.Duration("to", 0, "trim local media: clip end offset")
	verbose    = flag.Bool("v", false, "verbose logging")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: ytfetch [flags] <video-url | video-id | local-file>\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, flag.Arg(0)); err != nil {
		fmt.Fprintln(os.Stderr, "ytfetch:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, target string) error {
	c := engine.Config{
		YouTubeAPIKey:   os.Getenv("YOUTUBE_API_KEY"),
		ExtractRetries:  3,
		ExtractBackoff:  2 * time.Second,
		WhisperFallback: *useWhisper,
		TempDir:         os.TempDir(),
		HTTPClient:      &http.Client{Timeout: 30 * time.Second},
	}

	needModel := *useWhisper || isLocalFile(target)
	if needModel {
		model, err := whisper.New(whisper.Config{ModelSize: *modelSize, ModelDir: *modelDir})
		if err != nil {
			return err
		}
		c.Transcriber = model
	}
	engine.Init(c)

	if isLocalFile(target) {
		return transcribeFile(ctx, target)
	}
	return fetchVideo(ctx, target)
}

func isLocalFile(target string) bool {
	info, err := os.Stat(target)
	return err == nil && !info.IsDir()
}

func transcribeFile(ctx context.Context, path string) error {
	if *clipEnd > *clipStart {
		clipped, err := media.New(engine.Cfg.TempDir).Trim(ctx, path, *clipStart, *clipEnd)
		if err != nil {
			return err
		}
		path = clipped
	}

	audioPath := path
	if media.IsVideoFile(path) {
		converted, err := media.New(engine.Cfg.TempDir).ConvertToWAV(ctx, path)
		if err != nil {
			return err
		}
		audioPath = converted
	}

	segments, err := engine.Cfg.Transcriber.Transcribe(ctx, audioPath)
	if err != nil {
		return err
	}
	if *srt {
		return emit(engine.FormatSRT(segments))
	}
	return emit(engine.JoinSegments(segments) + "\n")
}

func fetchVideo(ctx context.Context, target string) error {
	videoID := sources.ExtractVideoID(target)
	if videoID == "" {
		return fmt.Errorf("not a YouTube URL, video ID, or local file: %q", target)
	}

	if *srt {
		if !*useWhisper {
			return fmt.Errorf("-srt for a video requires -whisper (captions are plain text)")
		}
		audioPath, err := sources.PrepareAudio(ctx, engine.VideoURL(videoID))
		if err != nil {
			return err
		}
		segments, err := engine.Cfg.Transcriber.Transcribe(ctx, audioPath)
		if err != nil {
			return err
		}
		return emit(engine.FormatSRT(segments))
	}

	transcript, ok := sources.NewResolver().Resolve(ctx, videoID)
	if !ok {
		return fmt.Errorf("no transcript available for %s", videoID)
	}
	return emit(transcript + "\n")
}

func emit(text string) error {
	if *output == "" {
		_, err := os.Stdout.WriteString(text)
		return err
	}
	return os.WriteFile(*output, []byte(text), 0o644)
}
