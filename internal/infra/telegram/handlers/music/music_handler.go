package music

import (
	"context"

	"github.com/angristan/music-download-bot/internal/domain/track"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/trace"
)

type MusicHandler struct {
	tracer          trace.Tracer
	bot             BotAPI
	searchService   SearchService
	downloadService DownloadService
	cache           SessionCache
	sources         []track.Source
}

func New(
	tracer trace.Tracer,
	bot BotAPI,
	searchService SearchService,
	downloadService DownloadService,
	cache SessionCache,
	sources []track.Source,
) *MusicHandler {
	return &MusicHandler{
		tracer:          tracer,
		bot:             bot,
		searchService:   searchService,
		downloadService: downloadService,
		cache:           cache,
		sources:         sources,
	}
}

// Handle routes one update. It blocks for the whole interaction, network
// calls included, so callers run it off the receive loop.
func (h *MusicHandler) Handle(ctx context.Context, update tgbotapi.Update) {
	ctx, span := h.tracer.Start(ctx, "MusicHandler.Handle")
	defer span.End()

	switch {
	case update.CallbackQuery != nil:
		h.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil && update.Message.IsCommand():
		h.handleCommand(ctx, update.Message)
	case update.Message != nil && update.Message.Text != "":
		h.handleText(ctx, update.Message)
	}
}

func (h *MusicHandler) reply(chatID int64, text string) (tgbotapi.Message, error) {
	return h.bot.Send(tgbotapi.NewMessage(chatID, text))
}

func (h *MusicHandler) editText(chatID int64, messageID int, text string) {
	if _, err := h.bot.Request(tgbotapi.NewEditMessageText(chatID, messageID, text)); err != nil {
		logrus.WithError(err).WithField("chat_id", chatID).Error("Failed to edit message")
	}
}

func (h *MusicHandler) answer(callbackID, text string) {
	if _, err := h.bot.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		logrus.WithError(err).Warn("Failed to answer callback")
	}
}
