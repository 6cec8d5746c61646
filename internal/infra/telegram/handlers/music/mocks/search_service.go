package mocks

import (
	"context"

	"github.com/angristan/music-download-bot/internal/domain/track"
	"github.com/stretchr/testify/mock"
)

type MockSearchService struct {
	mock.Mock
}

func (m *MockSearchService) Search(ctx context.Context, query string) []track.Track {
	args := m.Called(ctx, query)

	if v := args.Get(0); v != nil {
		return v.([]track.Track)
	}

	return nil
}
