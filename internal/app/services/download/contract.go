package download

import (
	"context"
	"io"

	"github.com/angristan/music-download-bot/internal/domain/track"
)

type Fetcher interface {
	Name() track.Source
	Fetch(ctx context.Context, id string) (io.ReadCloser, error)
}
