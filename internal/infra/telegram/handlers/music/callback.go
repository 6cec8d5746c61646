package music

import (
	"context"
	"errors"
	"fmt"

	"github.com/angristan/music-download-bot/internal/app/pager"
	"github.com/angristan/music-download-bot/internal/app/services/download"
	"github.com/dustin/go-humanize"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

func (h *MusicHandler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	token, err := pager.ParseToken(cb.Data)
	if err != nil {
		logrus.WithError(err).Warn("Ignoring callback")
		h.answer(cb.ID, "")
		return
	}

	switch token.Action {
	case pager.ActionNoop:
		h.answer(cb.ID, "")
	case pager.ActionPage:
		h.showPage(cb, token)
	case pager.ActionSelect:
		h.selectTrack(ctx, cb, token)
	}
}

func (h *MusicHandler) showPage(cb *tgbotapi.CallbackQuery, token pager.Token) {
	results, ok := h.cache.Get(token.Key)
	if !ok || cb.Message == nil {
		h.answer(cb.ID, msgExpired)
		return
	}

	page, err := pager.Render(token.Key, results, pager.Clamp(token.Value, len(results)))
	if err != nil {
		logrus.WithError(err).WithField("session", token.Key).Error("Failed to render page")
		h.answer(cb.ID, msgExpired)
		return
	}

	edit := tgbotapi.NewEditMessageReplyMarkup(cb.Message.Chat.ID, cb.Message.MessageID, keyboard(page))
	if _, err := h.bot.Request(edit); err != nil {
		logrus.WithError(err).WithField("session", token.Key).Error("Failed to switch page")
	}

	h.answer(cb.ID, "")
}

func (h *MusicHandler) selectTrack(ctx context.Context, cb *tgbotapi.CallbackQuery, token pager.Token) {
	ctx, span := h.tracer.Start(ctx, "MusicHandler.selectTrack")
	defer span.End()

	results, ok := h.cache.Get(token.Key)
	if !ok || token.Value >= len(results) || cb.Message == nil {
		h.answer(cb.ID, msgExpired)
		return
	}

	t := results[token.Value]
	chatID := cb.Message.Chat.ID
	logger := logrus.WithField("chat_id", chatID).
		WithField("session", token.Key).
		WithField("index", token.Value).
		WithField("source", t.Source)
	span.SetAttributes(attribute.String("source", string(t.Source)))

	h.answer(cb.ID, msgDownloading)

	status, err := h.reply(chatID, fmt.Sprintf(msgDownloadStatus, t.Source.DisplayName(), t.Artist, t.Title))
	if err != nil {
		logger.WithError(err).Error("Failed to send download status")
		return
	}

	audio, err := h.downloadService.Download(ctx, t)
	switch {
	case errors.Is(err, download.ErrTooLarge):
		logger.WithError(err).Warn("Audio over size limit")
		h.editText(chatID, status.MessageID, fmt.Sprintf(msgTooLarge, humanize.IBytes(uint64(h.downloadService.MaxSize()))))
		return
	case err != nil:
		logger.WithError(err).Error("Download failed")
		h.editText(chatID, status.MessageID, msgDownloadFailed)
		return
	}

	h.editText(chatID, status.MessageID, msgUploading)

	upload := tgbotapi.NewAudio(chatID, tgbotapi.FileBytes{Name: audio.FileName(), Bytes: audio.Data})
	upload.Title = t.Title
	upload.Performer = t.Artist
	upload.Duration = t.DurationSeconds

	if _, err := h.bot.Send(upload); err != nil {
		logger.WithError(err).Error("Failed to deliver audio")
		h.editText(chatID, status.MessageID, msgDeliveryFailed)
		return
	}

	if _, err := h.bot.Request(tgbotapi.NewDeleteMessage(chatID, status.MessageID)); err != nil {
		logger.WithError(err).Warn("Failed to delete status message")
	}

	logger.WithField("bytes", humanize.IBytes(uint64(audio.Size()))).Info("Audio delivered")
}
