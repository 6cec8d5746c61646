package search

import (
	"errors"

	"go.opentelemetry.io/otel/trace"
)

// PerSourceLimit caps what a single source contributes to one search.
const PerSourceLimit = 50

type SearchService struct {
	tracer  trace.Tracer
	sources []Source
}

func New(
	tracer trace.Tracer,
	sources ...Source,
) (SearchService, error) {
	if len(sources) == 0 {
		return SearchService{}, ErrNoSources
	}

	return SearchService{
		tracer:  tracer,
		sources: sources,
	}, nil
}

var (
	ErrNoSources = errors.New("no catalog source available")
)
