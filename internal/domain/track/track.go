// Package track holds the normalized record every catalog source maps its
// search results to.
package track

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

type Source string

const (
	SourceYandex  Source = "yandex"
	SourceVK      Source = "vk"
	SourceSpotify Source = "spotify"
)

const (
	MaxTitleLength  = 50
	MaxArtistLength = 30

	unknown = "?"
)

// Icon is the marker shown in front of a result button.
func (s Source) Icon() string {
	switch s {
	case SourceYandex:
		return "🟡"
	case SourceVK:
		return "🔵"
	case SourceSpotify:
		return "🟢"
	}

	return "⚪"
}

func (s Source) DisplayName() string {
	switch s {
	case SourceYandex:
		return "Yandex"
	case SourceVK:
		return "VK"
	case SourceSpotify:
		return "Spotify"
	}

	return string(s)
}

// Track is one search hit. ID together with Source is enough to fetch the
// audio again.
type Track struct {
	ID              string
	Title           string
	Artist          string
	DurationSeconds int
	Source          Source
}

// New normalizes raw catalog metadata: empty strings become "?", title and
// artist are cut to their display limits and negative durations become 0.
func New(id, title, artist string, durationSeconds int, source Source) Track {
	if durationSeconds < 0 {
		durationSeconds = 0
	}

	return Track{
		ID:              id,
		Title:           Truncate(orUnknown(title), MaxTitleLength),
		Artist:          Truncate(orUnknown(artist), MaxArtistLength),
		DurationSeconds: durationSeconds,
		Source:          source,
	}
}

// JoinArtists renders a multi-artist credit the way catalogs display it.
func JoinArtists(names []string) string {
	kept := make([]string, 0, len(names))
	for _, name := range names {
		if name = strings.TrimSpace(name); name != "" {
			kept = append(kept, name)
		}
	}

	return strings.Join(kept, ", ")
}

// Truncate cuts s to at most n runes.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}

	runes := []rune(s)
	return string(runes[:n])
}

// FormatDuration renders seconds as m:ss, or "" for an unknown duration.
func FormatDuration(seconds int) string {
	if seconds <= 0 {
		return ""
	}

	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return unknown
	}

	return s
}
