package music

import (
	"github.com/angristan/music-download-bot/internal/app/pager"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func keyboard(page pager.Page) tgbotapi.InlineKeyboardMarkup {
	layout := page.Rows()

	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(layout))
	for _, row := range layout {
		buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, b := range row {
			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(b.Label, b.Data))
		}
		rows = append(rows, buttons)
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
