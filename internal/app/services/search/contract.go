package search

import (
	"context"

	"github.com/angristan/music-download-bot/internal/domain/track"
)

type Source interface {
	Name() track.Source
	Search(ctx context.Context, query string, limit int) ([]track.Track, error)
}
