package mocks

import (
	"context"

	"github.com/angristan/music-download-bot/internal/domain/track"
	"github.com/stretchr/testify/mock"
)

type MockSource struct {
	mock.Mock
}

func (m *MockSource) Name() track.Source {
	args := m.Called()
	return args.Get(0).(track.Source)
}

func (m *MockSource) Search(ctx context.Context, query string, limit int) ([]track.Track, error) {
	args := m.Called(ctx, query, limit)

	var tracks []track.Track
	if v := args.Get(0); v != nil {
		tracks = v.([]track.Track)
	}

	return tracks, args.Error(1)
}
