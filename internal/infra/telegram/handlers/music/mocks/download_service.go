package mocks

import (
	"context"

	"github.com/angristan/music-download-bot/internal/app/services/download"
	"github.com/angristan/music-download-bot/internal/domain/track"
	"github.com/stretchr/testify/mock"
)

type MockDownloadService struct {
	mock.Mock
}

func (m *MockDownloadService) Download(ctx context.Context, t track.Track) (download.Audio, error) {
	args := m.Called(ctx, t)
	return args.Get(0).(download.Audio), args.Error(1)
}

func (m *MockDownloadService) MaxSize() int64 {
	args := m.Called()
	return args.Get(0).(int64)
}
