package spotify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/angristan/music-download-bot/internal/domain/track"
	spotifyLib "github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// Spotify caps search pages at 50 items.
const maxSearchLimit = 50

var (
	ErrNoPreview = errors.New("spotify: track has no preview")
)

type SpotifyClientConfig struct {
	clientID     string
	clientSecret string
	httpClient   *http.Client
	tracer       trace.Tracer
}

func NewSpotifyClientConfig(
	clientID string,
	clientSecret string,
	httpClient *http.Client,
	tracer trace.Tracer,
) *SpotifyClientConfig {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &SpotifyClientConfig{
		clientID:     clientID,
		clientSecret: clientSecret,
		httpClient:   httpClient,
		tracer:       tracer,
	}
}

// SpotifyClient exposes Spotify as a catalog source. Full tracks are not
// downloadable, so only tracks with a 30 second preview are returned and
// Fetch streams that preview.
type SpotifyClient struct {
	tracer     trace.Tracer
	httpClient *http.Client
	config     clientcredentials.Config

	mu        sync.RWMutex
	apiClient *spotifyLib.Client
}

func New(ctx context.Context, config *SpotifyClientConfig) (*SpotifyClient, error) {
	client := &SpotifyClient{
		tracer:     config.tracer,
		httpClient: config.httpClient,
		config: clientcredentials.Config{
			ClientID:     config.clientID,
			ClientSecret: config.clientSecret,
			TokenURL:     spotifyauth.TokenURL,
		},
	}

	if err := client.renewToken(ctx); err != nil {
		return nil, err
	}

	return client, nil
}

func (client *SpotifyClient) Name() track.Source {
	return track.SourceSpotify
}

func (client *SpotifyClient) Search(ctx context.Context, query string, limit int) ([]track.Track, error) {
	ctx, span := client.tracer.Start(ctx, "SpotifyClient.Search")
	defer span.End()

	if err := client.RenewTokenIfNeeded(ctx); err != nil {
		return nil, fmt.Errorf("client.RenewTokenIfNeeded: %w", err)
	}

	results, err := client.api().Search(ctx, query, spotifyLib.SearchTypeTrack, spotifyLib.Limit(min(limit, maxSearchLimit)))
	if err != nil {
		return nil, err
	}
	if results.Tracks == nil {
		return nil, nil
	}

	tracks := toTracks(results.Tracks.Tracks, limit)
	span.SetAttributes(attribute.Int("results", len(tracks)))

	return tracks, nil
}

func (client *SpotifyClient) Fetch(ctx context.Context, id string) (io.ReadCloser, error) {
	ctx, span := client.tracer.Start(ctx, "SpotifyClient.Fetch")
	defer span.End()

	if err := client.RenewTokenIfNeeded(ctx); err != nil {
		return nil, fmt.Errorf("client.RenewTokenIfNeeded: %w", err)
	}

	full, err := client.api().GetTrack(ctx, spotifyLib.ID(id))
	if err != nil {
		return nil, err
	}
	if full.PreviewURL == "" {
		return nil, ErrNoPreview
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, full.PreviewURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := client.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status: %s", resp.Status)
	}

	return resp.Body, nil
}

// RenewTokenIfNeeded recreates the API client when the token expires in
// less than five minutes.
func (client *SpotifyClient) RenewTokenIfNeeded(ctx context.Context) error {
	ctx, span := client.tracer.Start(ctx, "SpotifyClient.RenewTokenIfNeeded")
	defer span.End()

	spotifyToken, err := client.api().Token()
	if err != nil {
		return fmt.Errorf("client.apiClient.Token: %w", err)
	}
	if time.Until(spotifyToken.Expiry) > time.Minute*5 {
		span.AddEvent("Token is still valid, no need to refresh", trace.WithAttributes(
			attribute.Float64("minutes_until_expiry", time.Until(spotifyToken.Expiry).Minutes()),
		))
		return nil
	}

	if err := client.renewToken(ctx); err != nil {
		return err
	}

	span.AddEvent("Token refreshed")

	return nil
}

func (client *SpotifyClient) renewToken(ctx context.Context) error {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, client.httpClient)

	token, err := client.config.Token(ctx)
	if err != nil {
		return fmt.Errorf("client.config.Token: %w", err)
	}

	httpClient := spotifyauth.New().Client(ctx, token)

	client.mu.Lock()
	client.apiClient = spotifyLib.New(httpClient)
	client.mu.Unlock()

	return nil
}

func (client *SpotifyClient) api() *spotifyLib.Client {
	client.mu.RLock()
	defer client.mu.RUnlock()

	return client.apiClient
}

func toTracks(found []spotifyLib.FullTrack, limit int) []track.Track {
	tracks := make([]track.Track, 0, min(len(found), limit))
	for _, t := range found {
		if len(tracks) >= limit {
			break
		}
		if t.PreviewURL == "" {
			continue
		}

		names := make([]string, 0, len(t.Artists))
		for _, a := range t.Artists {
			names = append(names, a.Name)
		}

		tracks = append(tracks, track.New(
			string(t.ID),
			t.Name,
			track.JoinArtists(names),
			int(t.Duration)/1000,
			track.SourceSpotify,
		))
	}

	return tracks
}
