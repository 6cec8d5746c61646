package music

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/angristan/music-download-bot/internal/domain/track"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

// Free text shorter than this is ignored rather than searched.
const minQueryLength = 3

var findPrefix = regexp.MustCompile(`^[Нн]айти\s+(.+)$`)

func (h *MusicHandler) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start", "help":
		h.greet(msg.Chat.ID)
	case "search", "find":
		query := strings.TrimSpace(msg.CommandArguments())
		if query == "" {
			if _, err := h.reply(msg.Chat.ID, msgSearchUsage); err != nil {
				logrus.WithError(err).Error("Failed to send usage")
			}
			return
		}
		h.search(ctx, msg, query)
	}
}

func (h *MusicHandler) handleText(ctx context.Context, msg *tgbotapi.Message) {
	if query, ok := QueryFromText(msg.Text); ok {
		h.search(ctx, msg, query)
	}
}

// QueryFromText extracts the search query from a plain chat message: an
// explicit "найти <q>" prefix, or any text long enough to be a query.
func QueryFromText(text string) (string, bool) {
	text = strings.TrimSpace(text)

	if m := findPrefix.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1]), true
	}
	if utf8.RuneCountInString(text) >= minQueryLength {
		return text, true
	}

	return "", false
}

func (h *MusicHandler) greet(chatID int64) {
	if _, err := h.reply(chatID, fmt.Sprintf(msgGreeting, sourcesLine(h.sources))); err != nil {
		logrus.WithError(err).WithField("chat_id", chatID).Error("Failed to send greeting")
	}
}

func sourcesLine(sources []track.Source) string {
	names := make([]string, 0, len(sources))
	for _, s := range sources {
		names = append(names, s.Icon()+" "+s.DisplayName())
	}

	return strings.Join(names, ", ")
}
