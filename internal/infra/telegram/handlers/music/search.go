package music

import (
	"context"
	"fmt"

	"github.com/angristan/music-download-bot/internal/app/pager"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

// SessionKey derives the cache key of a search from the message that
// triggered it. Message ids are only unique within a chat.
func SessionKey(msg *tgbotapi.Message) string {
	return fmt.Sprintf("%d:%d", msg.Chat.ID, msg.MessageID)
}

func (h *MusicHandler) search(ctx context.Context, msg *tgbotapi.Message, query string) {
	ctx, span := h.tracer.Start(ctx, "MusicHandler.search")
	defer span.End()

	chatID := msg.Chat.ID
	logger := logrus.WithField("chat_id", chatID).WithField("query", query)
	span.SetAttributes(attribute.String("query", query))

	status, err := h.reply(chatID, fmt.Sprintf(msgSearching, query))
	if err != nil {
		logger.WithError(err).Error("Failed to send search status")
		return
	}

	results := h.searchService.Search(ctx, query)
	if len(results) == 0 {
		h.editText(chatID, status.MessageID, msgNothingFound)
		return
	}

	key, err := h.cache.Put(SessionKey(msg), results)
	if err != nil {
		logger.WithError(err).Error("Failed to cache results")
		h.editText(chatID, status.MessageID, msgSearchFailed)
		return
	}

	page, err := pager.Render(key, results, 0)
	if err != nil {
		logger.WithError(err).Error("Failed to render first page")
		h.editText(chatID, status.MessageID, msgSearchFailed)
		return
	}

	edit := tgbotapi.NewEditMessageTextAndMarkup(
		chatID,
		status.MessageID,
		fmt.Sprintf(msgFound, len(results), page.Count),
		keyboard(page),
	)
	if _, err := h.bot.Request(edit); err != nil {
		logger.WithError(err).Error("Failed to show results")
		return
	}

	logger.WithField("session", key).WithField("results", len(results)).Info("Search completed")
}
