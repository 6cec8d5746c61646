package mocks

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/mock"
)

type MockUpdateDispatcher struct {
	mock.Mock
}

func (m *MockUpdateDispatcher) Dispatch(ctx context.Context, update tgbotapi.Update) {
	m.Called(ctx, update)
}
