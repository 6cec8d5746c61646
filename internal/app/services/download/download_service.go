package download

import (
	"errors"

	"github.com/angristan/music-download-bot/internal/domain/track"
	"go.opentelemetry.io/otel/trace"
)

// DefaultMaxSize is the largest audio file the chat platform accepts from
// a bot.
const DefaultMaxSize int64 = 50 * 1024 * 1024

type Config struct {
	MaxSize int64
	TempDir string
}

type DownloadService struct {
	tracer   trace.Tracer
	fetchers map[track.Source]Fetcher
	maxSize  int64
	tempDir  string
}

func New(
	tracer trace.Tracer,
	cfg Config,
	fetchers ...Fetcher,
) DownloadService {
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = DefaultMaxSize
	}

	byName := make(map[track.Source]Fetcher, len(fetchers))
	for _, f := range fetchers {
		byName[f.Name()] = f
	}

	return DownloadService{
		tracer:   tracer,
		fetchers: byName,
		maxSize:  cfg.MaxSize,
		tempDir:  cfg.TempDir,
	}
}

func (s DownloadService) MaxSize() int64 {
	return s.maxSize
}

var (
	ErrUnknownSource = errors.New("no fetcher for source")
	ErrFetch         = errors.New("download failed")
	ErrTooLarge      = errors.New("audio exceeds size limit")
)
