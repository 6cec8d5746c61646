package yandex

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/angristan/music-download-bot/internal/domain/track"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/oauth2"
)

const (
	DefaultBaseURL = "https://api.music.yandex.net"

	// Salt mixed into the signature of get-mp3 links.
	signSalt = "XGRlBW9FXlekgbPrRHuSiA"
)

var (
	ErrNoDownloadInfo = errors.New("yandex: no mp3 download info")
	ErrUnauthorized   = errors.New("yandex: token rejected")
)

type YandexClientConfig struct {
	token      string
	baseURL    string
	httpClient *http.Client
	tracer     trace.Tracer
}

func NewYandexClientConfig(
	token string,
	baseURL string,
	httpClient *http.Client,
	tracer trace.Tracer,
) *YandexClientConfig {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &YandexClientConfig{
		token:      token,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		tracer:     tracer,
	}
}

type YandexClient struct {
	tracer     trace.Tracer
	baseURL    string
	apiClient  *http.Client
	fileClient *http.Client
}

// New builds a client that authenticates with "Authorization: OAuth
// <token>" and checks the token against the account endpoint.
func New(ctx context.Context, config *YandexClientConfig) (*YandexClient, error) {
	tokenSource := oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: config.token,
		TokenType:   "OAuth",
	})

	ctx = context.WithValue(ctx, oauth2.HTTPClient, config.httpClient)

	client := &YandexClient{
		tracer:     config.tracer,
		baseURL:    config.baseURL,
		apiClient:  oauth2.NewClient(ctx, tokenSource),
		fileClient: config.httpClient,
	}

	if err := client.checkAccount(ctx); err != nil {
		return nil, err
	}

	return client, nil
}

func (client *YandexClient) Name() track.Source {
	return track.SourceYandex
}

type flexibleID string

// Track ids come back as numbers from some endpoints and strings from
// others.
func (id *flexibleID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = flexibleID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("track id: %w", err)
	}
	*id = flexibleID(n.String())

	return nil
}

type apiTrack struct {
	ID         flexibleID `json:"id"`
	Title      string     `json:"title"`
	DurationMs int        `json:"durationMs"`
	Artists    []struct {
		Name string `json:"name"`
	} `json:"artists"`
}

type searchResponse struct {
	Result struct {
		Tracks *struct {
			Results []apiTrack `json:"results"`
		} `json:"tracks"`
	} `json:"result"`
}

type downloadInfo struct {
	Codec           string `json:"codec"`
	BitrateInKbps   int    `json:"bitrateInKbps"`
	DownloadInfoURL string `json:"downloadInfoUrl"`
}

type downloadInfoResponse struct {
	Result []downloadInfo `json:"result"`
}

type fileLocation struct {
	XMLName xml.Name `xml:"download-info"`
	Host    string   `xml:"host"`
	Path    string   `xml:"path"`
	TS      string   `xml:"ts"`
	S       string   `xml:"s"`
}

func (client *YandexClient) Search(ctx context.Context, query string, limit int) ([]track.Track, error) {
	ctx, span := client.tracer.Start(ctx, "YandexClient.Search")
	defer span.End()

	params := url.Values{}
	params.Set("text", query)
	params.Set("type", "track")
	params.Set("page", "0")
	params.Set("nocorrect", "false")

	var resp searchResponse
	if err := client.getJSON(ctx, "/search?"+params.Encode(), &resp); err != nil {
		return nil, err
	}

	if resp.Result.Tracks == nil {
		return nil, nil
	}

	found := resp.Result.Tracks.Results
	if len(found) > limit {
		found = found[:limit]
	}

	tracks := make([]track.Track, 0, len(found))
	for _, t := range found {
		tracks = append(tracks, toTrack(t))
	}

	span.SetAttributes(attribute.Int("results", len(tracks)))

	return tracks, nil
}

// Fetch resolves the best mp3 variant of a track to a signed file URL and
// opens it.
func (client *YandexClient) Fetch(ctx context.Context, id string) (io.ReadCloser, error) {
	ctx, span := client.tracer.Start(ctx, "YandexClient.Fetch")
	defer span.End()

	span.SetAttributes(attribute.String("id", id))

	var infos downloadInfoResponse
	if err := client.getJSON(ctx, "/tracks/"+url.PathEscape(id)+"/download-info", &infos); err != nil {
		return nil, err
	}

	info, err := bestMP3(infos.Result)
	if err != nil {
		return nil, err
	}

	location, err := client.resolveLocation(ctx, info.DownloadInfoURL)
	if err != nil {
		return nil, err
	}

	return client.open(ctx, client.fileClient, location.URL())
}

func (client *YandexClient) checkAccount(ctx context.Context) error {
	var status struct {
		Result struct {
			Account struct {
				UID int64 `json:"uid"`
			} `json:"account"`
		} `json:"result"`
	}

	if err := client.getJSON(ctx, "/account/status", &status); err != nil {
		return fmt.Errorf("account status: %w", err)
	}
	if status.Result.Account.UID == 0 {
		return ErrUnauthorized
	}

	return nil
}

func (client *YandexClient) resolveLocation(ctx context.Context, infoURL string) (fileLocation, error) {
	body, err := client.open(ctx, client.apiClient, infoURL)
	if err != nil {
		return fileLocation{}, err
	}
	defer body.Close()

	var location fileLocation
	if err := xml.NewDecoder(body).Decode(&location); err != nil {
		return fileLocation{}, fmt.Errorf("decode download info: %w", err)
	}

	return location, nil
}

// URL builds the signed get-mp3 link for a resolved location.
func (l fileLocation) URL() string {
	return fmt.Sprintf("https://%s/get-mp3/%s/%s%s", l.Host, signPath(l.Path, l.S), l.TS, l.Path)
}

func signPath(path, s string) string {
	sum := md5.Sum([]byte(signSalt + strings.TrimPrefix(path, "/") + s))
	return hex.EncodeToString(sum[:])
}

func bestMP3(infos []downloadInfo) (downloadInfo, error) {
	mp3 := make([]downloadInfo, 0, len(infos))
	for _, info := range infos {
		if info.Codec == "mp3" && info.DownloadInfoURL != "" {
			mp3 = append(mp3, info)
		}
	}
	if len(mp3) == 0 {
		return downloadInfo{}, ErrNoDownloadInfo
	}

	sort.SliceStable(mp3, func(i, j int) bool {
		return mp3[i].BitrateInKbps > mp3[j].BitrateInKbps
	})

	return mp3[0], nil
}

func toTrack(t apiTrack) track.Track {
	names := make([]string, 0, len(t.Artists))
	for _, a := range t.Artists {
		names = append(names, a.Name)
	}

	return track.New(string(t.ID), t.Title, track.JoinArtists(names), t.DurationMs/1000, track.SourceYandex)
}

func (client *YandexClient) getJSON(ctx context.Context, path string, out any) error {
	body, err := client.open(ctx, client.apiClient, client.baseURL+path)
	if err != nil {
		return err
	}
	defer body.Close()

	if err := json.NewDecoder(body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

func (client *YandexClient) open(ctx context.Context, httpClient *http.Client, rawURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		resp.Body.Close()
		return nil, fmt.Errorf("%w: %s", ErrUnauthorized, resp.Status)
	case resp.StatusCode != http.StatusOK:
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status: %s", resp.Status)
	}

	return resp.Body, nil
}
