package search_test

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/angristan/music-download-bot/internal/app/services/search"
	"github.com/angristan/music-download-bot/internal/app/services/search/mocks"
	"github.com/angristan/music-download-bot/internal/domain/track"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func makeTracks(source track.Source, n int) []track.Track {
	out := make([]track.Track, n)
	for i := range out {
		out[i] = track.New(string(source)+"-"+strconv.Itoa(i), "Song", "Artist", 60, source)
	}

	return out
}

func newSource(name track.Source) *mocks.MockSource {
	m := &mocks.MockSource{}
	m.On("Name").Return(name)

	return m
}

func TestNew_RequiresSource(t *testing.T) {
	_, err := search.New(otel.Tracer("test"))
	assert.ErrorIs(t, err, search.ErrNoSources)
}

func TestSearchService_Search(t *testing.T) {
	t.Run("concatenates in source order", func(t *testing.T) {
		yandex := newSource(track.SourceYandex)
		vk := newSource(track.SourceVK)
		yandexTracks := makeTracks(track.SourceYandex, 3)
		vkTracks := makeTracks(track.SourceVK, 2)

		yandex.On("Search", mock.Anything, "test song", search.PerSourceLimit).Return(yandexTracks, nil).Once()
		vk.On("Search", mock.Anything, "test song", search.PerSourceLimit).Return(vkTracks, nil).Once()

		s, err := search.New(otel.Tracer("test"), yandex, vk)
		require.NoError(t, err)

		got := s.Search(context.Background(), "test song")

		require.Len(t, got, 5)
		assert.Equal(t, yandexTracks, got[:3])
		assert.Equal(t, vkTracks, got[3:])
		yandex.AssertExpectations(t)
		vk.AssertExpectations(t)
	})

	t.Run("failing source is skipped", func(t *testing.T) {
		yandex := newSource(track.SourceYandex)
		vk := newSource(track.SourceVK)
		vkTracks := makeTracks(track.SourceVK, 2)

		yandex.On("Search", mock.Anything, "q", search.PerSourceLimit).Return(nil, errors.New("boom")).Once()
		vk.On("Search", mock.Anything, "q", search.PerSourceLimit).Return(vkTracks, nil).Once()

		s, err := search.New(otel.Tracer("test"), yandex, vk)
		require.NoError(t, err)

		assert.Equal(t, vkTracks, s.Search(context.Background(), "q"))
	})

	t.Run("duplicates across sources are kept", func(t *testing.T) {
		a := newSource(track.SourceYandex)
		b := newSource(track.SourceVK)
		same := []track.Track{track.New("1", "Song", "Artist", 60, track.SourceYandex)}

		a.On("Search", mock.Anything, "q", search.PerSourceLimit).Return(same, nil).Once()
		b.On("Search", mock.Anything, "q", search.PerSourceLimit).Return(same, nil).Once()

		s, err := search.New(otel.Tracer("test"), a, b)
		require.NoError(t, err)

		assert.Len(t, s.Search(context.Background(), "q"), 2)
	})

	t.Run("caps each source", func(t *testing.T) {
		greedy := newSource(track.SourceVK)
		greedy.On("Search", mock.Anything, "q", search.PerSourceLimit).
			Return(makeTracks(track.SourceVK, 80), nil).
			Once()

		s, err := search.New(otel.Tracer("test"), greedy)
		require.NoError(t, err)

		assert.Len(t, s.Search(context.Background(), "q"), search.PerSourceLimit)
	})

	t.Run("all sources empty", func(t *testing.T) {
		a := newSource(track.SourceYandex)
		a.On("Search", mock.Anything, "q", search.PerSourceLimit).Return(nil, nil).Once()

		s, err := search.New(otel.Tracer("test"), a)
		require.NoError(t, err)

		assert.Empty(t, s.Search(context.Background(), "q"))
	})
}

func TestSearchService_Collect(t *testing.T) {
	failure := errors.New("malformed response")
	yandex := newSource(track.SourceYandex)
	vk := newSource(track.SourceVK)

	yandex.On("Search", mock.Anything, "q", search.PerSourceLimit).Return(nil, failure).Once()
	vk.On("Search", mock.Anything, "q", search.PerSourceLimit).Return(makeTracks(track.SourceVK, 1), nil).Once()

	s, err := search.New(otel.Tracer("test"), yandex, vk)
	require.NoError(t, err)

	results := s.Collect(context.Background(), "q")

	require.Len(t, results, 2)
	assert.Equal(t, track.SourceYandex, results[0].Source)
	assert.True(t, results[0].Failed())
	assert.ErrorIs(t, results[0].Err, failure)
	assert.Equal(t, track.SourceVK, results[1].Source)
	assert.False(t, results[1].Failed())
	assert.Len(t, results[1].Tracks, 1)
}
