package search

import (
	"context"

	"github.com/angristan/music-download-bot/internal/domain/track"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// SourceResult is what one source produced for a query: either tracks or
// the reason it produced none.
type SourceResult struct {
	Source track.Source
	Tracks []track.Track
	Err    error
}

func (r SourceResult) Failed() bool {
	return r.Err != nil
}

// Search queries every source in order and concatenates their results. A
// failing source contributes nothing and never aborts the search.
func (s SearchService) Search(ctx context.Context, query string) []track.Track {
	ctx, span := s.tracer.Start(ctx, "SearchService.Search")
	defer span.End()

	span.SetAttributes(attribute.String("query", query))

	var merged []track.Track
	for _, result := range s.Collect(ctx, query) {
		if result.Failed() {
			logrus.WithError(result.Err).
				WithField("source", result.Source).
				WithField("query", query).
				Error("Catalog search failed")
			span.RecordError(result.Err)
			continue
		}

		merged = append(merged, result.Tracks...)
	}

	span.SetAttributes(attribute.Int("results", len(merged)))

	return merged
}

// Collect runs the query against each source sequentially and reports one
// SourceResult per source, in source order.
func (s SearchService) Collect(ctx context.Context, query string) []SourceResult {
	results := make([]SourceResult, 0, len(s.sources))
	for _, source := range s.sources {
		results = append(results, s.searchSource(ctx, source, query))
	}

	return results
}

func (s SearchService) searchSource(ctx context.Context, source Source, query string) SourceResult {
	ctx, span := s.tracer.Start(ctx, "SearchService.searchSource")
	defer span.End()

	name := source.Name()
	span.SetAttributes(attribute.String("source", string(name)))

	tracks, err := source.Search(ctx, query, PerSourceLimit)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return SourceResult{Source: name, Err: err}
	}

	if len(tracks) > PerSourceLimit {
		tracks = tracks[:PerSourceLimit]
	}

	return SourceResult{Source: name, Tracks: tracks}
}
