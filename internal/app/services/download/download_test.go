package download_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"testing"

	"github.com/angristan/music-download-bot/internal/app/services/download"
	"github.com/angristan/music-download-bot/internal/app/services/download/mocks"
	"github.com/angristan/music-download-bot/internal/domain/track"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

type zeroReader struct{}

func (zeroReader) Read(p []byte) (int, error) {
	clear(p)
	return len(p), nil
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("connection reset")
}

func newFetcher(name track.Source) *mocks.MockFetcher {
	m := &mocks.MockFetcher{}
	m.On("Name").Return(name)

	return m
}

func assertNoArtifacts(t *testing.T, dir string) {
	t.Helper()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDownloadService_Download(t *testing.T) {
	vkTrack := track.New("https://cdn.example/a.mp3", "Song", "Artist", 200, track.SourceVK)

	t.Run("success", func(t *testing.T) {
		dir := t.TempDir()
		payload := bytes.Repeat([]byte{0xFF, 0xFB, 0x90, 0x64}, 4096)

		fetcher := newFetcher(track.SourceVK)
		fetcher.On("Fetch", mock.Anything, vkTrack.ID).
			Return(io.NopCloser(bytes.NewReader(payload)), nil).
			Once()

		s := download.New(otel.Tracer("test"), download.Config{TempDir: dir}, fetcher)
		audio, err := s.Download(context.Background(), vkTrack)
		require.NoError(t, err)

		assert.Equal(t, vkTrack, audio.Track)
		assert.True(t, bytes.HasPrefix(audio.Data, []byte("ID3")), "expected ID3 tag to be written")
		assert.True(t, bytes.HasSuffix(audio.Data, payload))
		assert.Equal(t, int64(len(audio.Data)), audio.Size())
		assert.Equal(t, "Artist - Song.mp3", audio.FileName())
		assertNoArtifacts(t, dir)
		fetcher.AssertExpectations(t)
	})

	t.Run("exactly at the limit", func(t *testing.T) {
		dir := t.TempDir()
		limit := int64(1024)

		fetcher := newFetcher(track.SourceVK)
		fetcher.On("Fetch", mock.Anything, vkTrack.ID).
			Return(io.NopCloser(io.LimitReader(zeroReader{}, limit)), nil).
			Once()

		s := download.New(otel.Tracer("test"), download.Config{TempDir: dir, MaxSize: limit}, fetcher)
		audio, err := s.Download(context.Background(), vkTrack)
		require.NoError(t, err)

		assert.Equal(t, limit, audio.Size())
		assertNoArtifacts(t, dir)
	})

	t.Run("one byte over 50 MiB", func(t *testing.T) {
		dir := t.TempDir()

		fetcher := newFetcher(track.SourceVK)
		fetcher.On("Fetch", mock.Anything, vkTrack.ID).
			Return(io.NopCloser(io.LimitReader(zeroReader{}, download.DefaultMaxSize+1)), nil).
			Once()

		s := download.New(otel.Tracer("test"), download.Config{TempDir: dir}, fetcher)
		_, err := s.Download(context.Background(), vkTrack)

		assert.ErrorIs(t, err, download.ErrTooLarge)
		assert.Equal(t, download.DefaultMaxSize, s.MaxSize())
		assertNoArtifacts(t, dir)
	})

	t.Run("fetch error", func(t *testing.T) {
		dir := t.TempDir()
		cause := errors.New("status 403")

		fetcher := newFetcher(track.SourceVK)
		fetcher.On("Fetch", mock.Anything, vkTrack.ID).Return(nil, cause).Once()

		s := download.New(otel.Tracer("test"), download.Config{TempDir: dir}, fetcher)
		_, err := s.Download(context.Background(), vkTrack)

		assert.ErrorIs(t, err, download.ErrFetch)
		assert.ErrorIs(t, err, cause)
		assertNoArtifacts(t, dir)
		fetcher.AssertNumberOfCalls(t, "Fetch", 1)
	})

	t.Run("stream breaks mid-download", func(t *testing.T) {
		dir := t.TempDir()

		fetcher := newFetcher(track.SourceVK)
		fetcher.On("Fetch", mock.Anything, vkTrack.ID).
			Return(io.NopCloser(failingReader{}), nil).
			Once()

		s := download.New(otel.Tracer("test"), download.Config{TempDir: dir}, fetcher)
		_, err := s.Download(context.Background(), vkTrack)

		assert.ErrorIs(t, err, download.ErrFetch)
		assertNoArtifacts(t, dir)
	})

	t.Run("unknown source", func(t *testing.T) {
		dir := t.TempDir()
		s := download.New(otel.Tracer("test"), download.Config{TempDir: dir}, newFetcher(track.SourceVK))

		_, err := s.Download(context.Background(), track.New("1", "t", "a", 0, track.SourceYandex))

		assert.ErrorIs(t, err, download.ErrUnknownSource)
		assertNoArtifacts(t, dir)
	})
}
