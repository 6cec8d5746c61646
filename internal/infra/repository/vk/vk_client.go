package vk

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/angristan/music-download-bot/internal/domain/track"
	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	DefaultBaseURL = "https://api.vk.com/method"
	APIVersion     = "5.131"
)

var (
	ErrAPI      = errors.New("vk api error")
	ErrNoStream = errors.New("vk: track has no stream url")
)

type VKClientConfig struct {
	token      string
	baseURL    string
	httpClient *http.Client
	tracer     trace.Tracer
}

func NewVKClientConfig(
	token string,
	baseURL string,
	httpClient *http.Client,
	tracer trace.Tracer,
) *VKClientConfig {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &VKClientConfig{
		token:      token,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		tracer:     tracer,
	}
}

// VKClient searches the VK audio catalog. A track's ID is its direct
// stream URL, so fetching needs no further API call.
type VKClient struct {
	tracer     trace.Tracer
	token      string
	baseURL    string
	httpClient *http.Client
}

func New(config *VKClientConfig) *VKClient {
	return &VKClient{
		tracer:     config.tracer,
		token:      config.token,
		baseURL:    config.baseURL,
		httpClient: config.httpClient,
	}
}

func (client *VKClient) Name() track.Source {
	return track.SourceVK
}

func (client *VKClient) Search(ctx context.Context, query string, limit int) ([]track.Track, error) {
	ctx, span := client.tracer.Start(ctx, "VKClient.Search")
	defer span.End()

	params := url.Values{}
	params.Set("q", query)
	params.Set("count", strconv.Itoa(limit))
	params.Set("access_token", client.token)
	params.Set("v", APIVersion)

	body, err := client.get(ctx, client.baseURL+"/audio.search?"+params.Encode())
	if err != nil {
		return nil, err
	}

	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: malformed response", ErrAPI)
	}

	result := gjson.ParseBytes(body)
	if apiErr := result.Get("error"); apiErr.Exists() {
		return nil, fmt.Errorf("%w %d: %s", ErrAPI, apiErr.Get("error_code").Int(), apiErr.Get("error_msg").String())
	}

	var tracks []track.Track
	result.Get("response.items").ForEach(func(_, item gjson.Result) bool {
		if len(tracks) >= limit {
			return false
		}

		tracks = append(tracks, track.New(
			item.Get("url").String(),
			item.Get("title").String(),
			item.Get("artist").String(),
			int(item.Get("duration").Int()),
			track.SourceVK,
		))

		return true
	})

	span.SetAttributes(attribute.Int("results", len(tracks)))

	return tracks, nil
}

func (client *VKClient) Fetch(ctx context.Context, id string) (io.ReadCloser, error) {
	ctx, span := client.tracer.Start(ctx, "VKClient.Fetch")
	defer span.End()

	if id == "" {
		return nil, ErrNoStream
	}

	return client.open(ctx, id)
}

func (client *VKClient) get(ctx context.Context, rawURL string) ([]byte, error) {
	body, err := client.open(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	return data, nil
}

func (client *VKClient) open(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
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
