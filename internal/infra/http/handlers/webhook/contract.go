package webhook

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type UpdateDispatcher interface {
	Dispatch(ctx context.Context, update tgbotapi.Update)
}
