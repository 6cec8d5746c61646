package music

import (
	"context"

	"github.com/angristan/music-download-bot/internal/app/services/download"
	"github.com/angristan/music-download-bot/internal/domain/track"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type BotAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type SearchService interface {
	Search(ctx context.Context, query string) []track.Track
}

type DownloadService interface {
	Download(ctx context.Context, t track.Track) (download.Audio, error)
	MaxSize() int64
}

// SessionCache maps a search session key to the ordered results of that
// search. A miss is reported through the bool, never as an error.
type SessionCache interface {
	Put(key string, results []track.Track) (string, error)
	Get(key string) ([]track.Track, bool)
}
