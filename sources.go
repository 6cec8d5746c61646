package main

import (
	"context"

	"github.com/angristan/music-download-bot/internal/app/services/download"
	"github.com/angristan/music-download-bot/internal/app/services/search"
	"github.com/angristan/music-download-bot/internal/domain/track"
	"github.com/angristan/music-download-bot/internal/infra/repository/spotify"
	"github.com/angristan/music-download-bot/internal/infra/repository/vk"
	"github.com/angristan/music-download-bot/internal/infra/repository/yandex"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/trace"
)

type catalog interface {
	search.Source
	download.Fetcher
}

// initCatalogs connects every source that has credentials. A source that
// fails to connect is left out; the caller decides whether none is fatal.
func initCatalogs(ctx context.Context, config *Env, tracer trace.Tracer) []catalog {
	var catalogs []catalog

	if config.YandexToken != "" {
		client, err := yandex.New(ctx, yandex.NewYandexClientConfig(config.YandexToken, "", nil, tracer))
		if err != nil {
			logrus.WithError(err).Error("Yandex Music unavailable")
		} else {
			logrus.Info("Yandex Music connected")
			catalogs = append(catalogs, client)
		}
	}

	if config.VKToken != "" {
		logrus.Info("VK Music connected")
		catalogs = append(catalogs, vk.New(vk.NewVKClientConfig(config.VKToken, "", nil, tracer)))
	}

	if config.SpotifyClientID != "" && config.SpotifyClientSecret != "" {
		client, err := spotify.New(ctx, spotify.NewSpotifyClientConfig(config.SpotifyClientID, config.SpotifyClientSecret, nil, tracer))
		if err != nil {
			logrus.WithError(err).Error("Spotify unavailable")
		} else {
			logrus.Info("Spotify connected")
			catalogs = append(catalogs, client)
		}
	}

	return catalogs
}

func splitCatalogs(catalogs []catalog) ([]search.Source, []download.Fetcher, []track.Source) {
	sources := make([]search.Source, 0, len(catalogs))
	fetchers := make([]download.Fetcher, 0, len(catalogs))
	names := make([]track.Source, 0, len(catalogs))

	for _, c := range catalogs {
		sources = append(sources, c)
		fetchers = append(fetchers, c)
		names = append(names, c.Name())
	}

	return sources, fetchers, names
}
