package pager_test

import (
	"strconv"
	"testing"

	"github.com/angristan/music-download-bot/internal/app/pager"
	"github.com/angristan/music-download-bot/internal/domain/track"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tracks(n int) []track.Track {
	out := make([]track.Track, n)
	for i := range out {
		out[i] = track.New(strconv.Itoa(i), "Song "+strconv.Itoa(i+1), "Artist", 185, track.SourceYandex)
	}

	return out
}

func TestPageCount(t *testing.T) {
	tests := map[int]int{
		0:  1,
		1:  1,
		5:  1,
		6:  2,
		10: 2,
		11: 3,
		50: 10,
		51: 11,
	}

	for n, want := range tests {
		assert.Equal(t, want, pager.PageCount(n), "n=%d", n)
	}
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0, pager.Clamp(-3, 7))
	assert.Equal(t, 1, pager.Clamp(1, 7))
	assert.Equal(t, 1, pager.Clamp(9, 7))
	assert.Equal(t, 0, pager.Clamp(4, 0))
}

func TestRender_ItemCountsAndAbsoluteIndexes(t *testing.T) {
	for _, n := range []int{1, 4, 5, 6, 12, 23} {
		results := tracks(n)
		for page := 0; page < pager.PageCount(n); page++ {
			p, err := pager.Render("k", results, page)
			require.NoError(t, err)

			assert.Len(t, p.Items, min(pager.PageSize, n-page*pager.PageSize), "n=%d page=%d", n, page)
			for i, item := range p.Items {
				assert.Equal(t, page*pager.PageSize+i, item.Index)
				assert.Equal(t, results[item.Index], item.Track)
			}
		}
	}
}

func TestRender_OutOfRange(t *testing.T) {
	_, err := pager.Render("k", tracks(7), 2)
	assert.ErrorIs(t, err, pager.ErrPageOutOfRange)

	_, err = pager.Render("k", tracks(7), -1)
	assert.ErrorIs(t, err, pager.ErrPageOutOfRange)
}

func TestRender_SevenResults(t *testing.T) {
	results := tracks(7)

	first, err := pager.Render("42", results, 0)
	require.NoError(t, err)
	assert.Len(t, first.Items, 5)
	assert.False(t, first.HasPrev())
	assert.True(t, first.HasNext())

	rows := first.Rows()
	require.Len(t, rows, 6)
	assert.Equal(t, "s_42_0", rows[0][0].Data)
	assert.Equal(t, "s_42_4", rows[4][0].Data)
	assert.Equal(t, []pager.Button{
		{Label: "1/2", Data: pager.NoopToken},
		{Label: "➡️", Data: "p_42_1"},
	}, rows[5])

	second, err := pager.Render("42", results, 1)
	require.NoError(t, err)
	assert.Len(t, second.Items, 2)
	assert.True(t, second.HasPrev())
	assert.False(t, second.HasNext())

	rows = second.Rows()
	require.Len(t, rows, 3)
	assert.Equal(t, "s_42_5", rows[0][0].Data)
	assert.Equal(t, "s_42_6", rows[1][0].Data)
	assert.Equal(t, []pager.Button{
		{Label: "⬅️", Data: "p_42_0"},
		{Label: "2/2", Data: pager.NoopToken},
	}, rows[2])
}

func TestRender_SinglePageHasOnlyLabel(t *testing.T) {
	p, err := pager.Render("k", tracks(3), 0)
	require.NoError(t, err)

	rows := p.Rows()
	assert.Equal(t, []pager.Button{{Label: "1/1", Data: pager.NoopToken}}, rows[len(rows)-1])
}

func TestItemLabel(t *testing.T) {
	tr := track.New("1", "A very long song title indeed", "Somebody Famous", 185, track.SourceYandex)
	assert.Equal(t, "🟡 Somebody F - A very long song t [3:05]", pager.ItemLabel(tr))

	tr = track.New("2", "Short", "VK Artist", 0, track.SourceVK)
	assert.Equal(t, "🔵 VK Artist - Short", pager.ItemLabel(tr))
}
