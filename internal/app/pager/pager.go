// Package pager slices a cached result list into fixed-size pages and
// describes the buttons that show one page.
package pager

import (
	"errors"
	"fmt"
	"strings"

	"github.com/angristan/music-download-bot/internal/domain/track"
)

const PageSize = 5

const (
	prevLabel = "⬅️"
	nextLabel = "➡️"

	labelArtistLength = 10
	labelTitleLength  = 18
)

var (
	ErrPageOutOfRange = errors.New("page out of range")
)

// Item is one result on a page. Index is its position in the full list.
type Item struct {
	Index int
	Track track.Track
}

type Button struct {
	Label string
	Data  string
}

type Page struct {
	Key   string
	Index int
	Count int
	Items []Item
}

// PageCount returns the number of pages for n results, never less than 1.
func PageCount(n int) int {
	if n <= 0 {
		return 1
	}

	return (n + PageSize - 1) / PageSize
}

// Clamp brings a page index coming from user input back into range.
func Clamp(page, n int) int {
	if page < 0 {
		return 0
	}
	if last := PageCount(n) - 1; page > last {
		return last
	}

	return page
}

// Render returns the window of results shown on page. Callers clamp page
// first; an out-of-range page is an error.
func Render(key string, results []track.Track, page int) (Page, error) {
	count := PageCount(len(results))
	if page < 0 || page >= count {
		return Page{}, fmt.Errorf("%w: %d not in [0, %d)", ErrPageOutOfRange, page, count)
	}

	start := page * PageSize
	end := min(start+PageSize, len(results))

	items := make([]Item, 0, end-start)
	for i := start; i < end; i++ {
		items = append(items, Item{Index: i, Track: results[i]})
	}

	return Page{Key: key, Index: page, Count: count, Items: items}, nil
}

func (p Page) HasPrev() bool {
	return p.Index > 0
}

func (p Page) HasNext() bool {
	return p.Index < p.Count-1
}

func (p Page) Label() string {
	return fmt.Sprintf("%d/%d", p.Index+1, p.Count)
}

// Rows lays out one selection button per item followed by the navigation
// row.
func (p Page) Rows() [][]Button {
	rows := make([][]Button, 0, len(p.Items)+1)
	for _, item := range p.Items {
		rows = append(rows, []Button{{
			Label: ItemLabel(item.Track),
			Data:  SelectToken(p.Key, item.Index).String(),
		}})
	}

	nav := make([]Button, 0, 3)
	if p.HasPrev() {
		nav = append(nav, Button{Label: prevLabel, Data: PageToken(p.Key, p.Index-1).String()})
	}
	nav = append(nav, Button{Label: p.Label(), Data: NoopToken})
	if p.HasNext() {
		nav = append(nav, Button{Label: nextLabel, Data: PageToken(p.Key, p.Index+1).String()})
	}

	return append(rows, nav)
}

// ItemLabel renders "<icon> <artist> - <title> [m:ss]".
func ItemLabel(t track.Track) string {
	var b strings.Builder
	b.WriteString(t.Source.Icon())
	b.WriteString(" ")
	b.WriteString(track.Truncate(t.Artist, labelArtistLength))
	b.WriteString(" - ")
	b.WriteString(track.Truncate(t.Title, labelTitleLength))

	if d := track.FormatDuration(t.DurationSeconds); d != "" {
		b.WriteString(" [")
		b.WriteString(d)
		b.WriteString("]")
	}

	return b.String()
}
