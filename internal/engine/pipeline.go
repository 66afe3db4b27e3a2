package engine

import (
	"context"
	"log/slog"

	"golang.org/x/time/rate"
)

// Pipeline drives one batch run: for every (term × category) query it
// discovers candidates, filters them, resolves transcripts, and accumulates
// records in strict discovery order. Execution is sequential and
// single-threaded; the resolver's synthesis tier shares one transcriber.
type Pipeline struct {
	// Discover runs one search query. Wired to sources.SearchVideos in
	// production, stubbed in tests.
	Discover func(ctx context.Context, q SearchQuery, limit int) ([]VideoCandidate, error)
	// Keep is the candidate filter predicate.
	Keep func(c VideoCandidate) bool
	// Resolver obtains transcripts for accepted candidates.
	Resolver *Resolver

	Terms      []string
	Categories []int
	MaxResults int
	// Limiter spaces discovery calls to respect external rate limits.
	Limiter *rate.Limiter
}

// Run executes the full cross product and returns every record collected.
//
// A missing credential aborts immediately with *ConfigurationError before any
// discovery call. Every other failure is scoped: a failed query is logged and
// skipped, an unresolvable video is logged and skipped, and the batch always
// returns whatever was successfully collected.
func (p *Pipeline) Run(ctx context.Context) ([]VideoRecord, error) {
	if err := Cfg.Validate(); err != nil {
		return nil, err
	}

	var records []VideoRecord
	for _, term := range p.Terms {
		for _, category := range p.Categories {
			q := SearchQuery{Term: term, Category: category}

			if p.Limiter != nil {
				if err := p.Limiter.Wait(ctx); err != nil {
					return records, err
				}
			}

			candidates, err := p.Discover(ctx, q, p.MaxResults)
			if err != nil {
				slog.Warn("pipeline: discovery failed, skipping query",
					slog.String("term", q.Term), slog.Int("category", q.Category), slog.Any("error", err))
				continue
			}

			for _, c := range candidates {
				if !p.Keep(c) {
					IncrVideosFiltered()
					slog.Debug("pipeline: candidate rejected",
						slog.String("id", c.ID), slog.String("title", c.Title))
					continue
				}

				transcript, ok := p.Resolver.Resolve(ctx, c.ID)
				if !ok {
					slog.Warn("pipeline: transcript unavailable, skipping video",
						slog.String("id", c.ID), slog.String("term", q.Term))
					continue
				}

				records = append(records, VideoRecord{
					ID:         c.ID,
					Title:      c.Title,
					URL:        VideoURL(c.ID),
					Transcript: transcript,
				})
			}
		}
	}
	return records, nil
}
