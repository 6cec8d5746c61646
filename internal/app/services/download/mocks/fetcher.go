package mocks

import (
	"context"
	"io"

	"github.com/angristan/music-download-bot/internal/domain/track"
	"github.com/stretchr/testify/mock"
)

type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) Name() track.Source {
	args := m.Called()
	return args.Get(0).(track.Source)
}

func (m *MockFetcher) Fetch(ctx context.Context, id string) (io.ReadCloser, error) {
	args := m.Called(ctx, id)

	var body io.ReadCloser
	if v := args.Get(0); v != nil {
		body = v.(io.ReadCloser)
	}

	return body, args.Error(1)
}
