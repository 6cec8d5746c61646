package download

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/angristan/music-download-bot/internal/domain/track"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Room left for the ID3 frames added to the temp file.
const tagHeadroom = 4 * 1024

type Audio struct {
	Track track.Track
	Data  []byte
}

func (a Audio) Size() int64 {
	return int64(len(a.Data))
}

func (a Audio) FileName() string {
	return fmt.Sprintf("%s - %s.mp3", a.Track.Artist, a.Track.Title)
}

// Download fetches the audio of t through a temp file which is removed on
// every return path. Payloads larger than the configured limit are dropped.
func (s DownloadService) Download(ctx context.Context, t track.Track) (audio Audio, err error) {
	ctx, span := s.tracer.Start(ctx, "DownloadService.Download")
	defer span.End()

	span.SetAttributes(
		attribute.String("source", string(t.Source)),
		attribute.String("id", t.ID),
	)
	defer func() {
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
			span.RecordError(err)
		}
	}()

	fetcher, ok := s.fetchers[t.Source]
	if !ok {
		return Audio{}, fmt.Errorf("%w: %s", ErrUnknownSource, t.Source)
	}

	body, err := fetcher.Fetch(ctx, t.ID)
	if err != nil {
		return Audio{}, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	defer body.Close()

	tmp, err := os.CreateTemp(s.tempDir, "track-*.mp3")
	if err != nil {
		return Audio{}, fmt.Errorf("create temp file: %w", err)
	}
	path := tmp.Name()
	defer func() {
		if rmErr := os.Remove(path); rmErr != nil && !os.IsNotExist(rmErr) {
			logrus.WithError(rmErr).WithField("path", path).Warn("Failed to remove temp file")
		}
	}()

	written, err := io.Copy(tmp, io.LimitReader(body, s.maxSize+1))
	closeErr := tmp.Close()
	if err != nil {
		return Audio{}, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	if closeErr != nil {
		return Audio{}, fmt.Errorf("close temp file: %w", closeErr)
	}
	if written > s.maxSize {
		return Audio{}, fmt.Errorf("%w: more than %d bytes", ErrTooLarge, s.maxSize)
	}

	span.SetAttributes(attribute.Int64("bytes", written))

	if written <= s.maxSize-tagHeadroom {
		if err := writeTags(path, t); err != nil {
			logrus.WithError(err).WithField("source", t.Source).Warn("Failed to tag audio")
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Audio{}, fmt.Errorf("read temp file: %w", err)
	}
	if int64(len(data)) > s.maxSize {
		return Audio{}, fmt.Errorf("%w: %d bytes", ErrTooLarge, len(data))
	}

	return Audio{Track: t, Data: data}, nil
}
