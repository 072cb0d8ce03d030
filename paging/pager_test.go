package paging

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/facedeck/dataset"
	"github.com/rshade/facedeck/prep"
)

func makeDeck(t *testing.T, rows int) *prep.Deck {
	t.Helper()

	labels := make([]string, rows)
	xs := make([]float64, rows)
	ys := make([]float64, rows)
	for i := range rows {
		labels[i] = fmt.Sprintf("row-%03d", i)
		xs[i] = float64(i)
		ys[i] = float64(rows - i)
	}

	ds := dataset.MustNew(
		dataset.Strings("name", labels),
		dataset.Numbers("x", xs),
		dataset.Numbers("y", ys),
	)

	deck, err := prep.Prepare(context.Background(), ds, prep.DefaultOptions())
	require.NoError(t, err)
	return deck
}

func emptyDeck(t *testing.T) *prep.Deck {
	t.Helper()

	m, err := prep.NewMatrix([]string{"x", "y"}, 0, nil)
	require.NoError(t, err)
	return &prep.Deck{Version: "empty", Matrix: m}
}

func TestNew(t *testing.T) {
	deck := makeDeck(t, 10)

	tests := []struct {
		name      string
		deck      *prep.Deck
		pageSize  int
		wantCount int
		wantErr   error
	}{
		{
			name:      "even split",
			deck:      deck,
			pageSize:  5,
			wantCount: 2,
		},
		{
			name:      "uneven split rounds up",
			deck:      deck,
			pageSize:  3,
			wantCount: 4,
		},
		{
			name:      "page larger than deck",
			deck:      deck,
			pageSize:  100,
			wantCount: 1,
		},
		{
			name:     "zero page size",
			deck:     deck,
			pageSize: 0,
			wantErr:  ErrInvalidPageSize,
		},
		{
			name:     "negative page size",
			deck:     deck,
			pageSize: -5,
			wantErr:  ErrInvalidPageSize,
		},
		{
			name:     "nil deck",
			deck:     nil,
			pageSize: 5,
			wantErr:  ErrNilDeck,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pager, err := New(tt.deck, tt.pageSize)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCount, pager.Count())
		})
	}
}

func TestPager_PartitionsRowsExactly(t *testing.T) {
	deck := makeDeck(t, 150)
	pager, err := New(deck, 50)
	require.NoError(t, err)

	require.Equal(t, 3, pager.Count())

	wantBounds := [][2]int{{0, 50}, {50, 100}, {100, 150}}
	covered := 0
	for i := range pager.Count() {
		page, err := pager.Get(i)
		require.NoError(t, err)

		assert.Equal(t, i, page.Index)
		assert.Equal(t, wantBounds[i][0], page.Start)
		assert.Equal(t, wantBounds[i][1], page.End)
		assert.Equal(t, page.Rows(), page.Matrix.Rows())
		assert.Len(t, page.Labels, page.Rows())
		covered += page.Rows()
	}
	assert.Equal(t, deck.Rows(), covered)
}

func TestPager_ShortLastPage(t *testing.T) {
	deck := makeDeck(t, 7)
	pager, err := New(deck, 3)
	require.NoError(t, err)

	require.Equal(t, 3, pager.Count())

	last, err := pager.Get(2)
	require.NoError(t, err)
	assert.Equal(t, 6, last.Start)
	assert.Equal(t, 7, last.End)
	assert.Equal(t, 1, last.Rows())
}

func TestPager_PageValuesAndLabelsAligned(t *testing.T) {
	deck := makeDeck(t, 20)
	pager, err := New(deck, 6)
	require.NoError(t, err)

	for i := range pager.Count() {
		page, err := pager.Get(i)
		require.NoError(t, err)

		for r := range page.Rows() {
			global := page.Start + r
			assert.Equal(t, fmt.Sprintf("row-%03d", global), page.Labels[r])
			assert.InDelta(t, deck.Matrix.At(global, 0), page.Matrix.At(r, 0), 0)
			assert.InDelta(t, deck.Matrix.At(global, 1), page.Matrix.At(r, 1), 0)
		}
	}
}

func TestPager_GetOutOfRange(t *testing.T) {
	pager, err := New(makeDeck(t, 10), 5)
	require.NoError(t, err)

	for _, i := range []int{-1, 2, 99} {
		_, err := pager.Get(i)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrPageOutOfRange)
	}
}

func TestPager_CursorClampsAtEnds(t *testing.T) {
	pager, err := New(makeDeck(t, 10), 4)
	require.NoError(t, err)
	require.Equal(t, 3, pager.Count())

	// Previous at the first page leaves the cursor unchanged.
	assert.False(t, pager.Previous())
	assert.Equal(t, 0, pager.Current())

	assert.True(t, pager.Next())
	assert.True(t, pager.Next())
	assert.Equal(t, 2, pager.Current())

	// Next at the last page leaves the cursor unchanged.
	assert.False(t, pager.Next())
	assert.Equal(t, 2, pager.Current())

	page, err := pager.CurrentPage()
	require.NoError(t, err)
	assert.Equal(t, 2, page.Index)
}

func TestPager_Goto(t *testing.T) {
	pager, err := New(makeDeck(t, 30), 10)
	require.NoError(t, err)

	require.NoError(t, pager.Goto(2))
	assert.Equal(t, 2, pager.Current())

	err = pager.Goto(3)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPageOutOfRange)
	// Failed Goto leaves the cursor where it was.
	assert.Equal(t, 2, pager.Current())
}

func TestPager_EmptyDeck(t *testing.T) {
	pager, err := New(emptyDeck(t), 25)
	require.NoError(t, err)

	assert.Equal(t, 0, pager.Count())

	_, err = pager.Get(0)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPageOutOfRange)

	assert.False(t, pager.Next())
	assert.False(t, pager.Previous())
	assert.Equal(t, 0, pager.Current())

	_, err = pager.CurrentPage()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPageOutOfRange)
}

func TestPager_CursorSaturatesUnderConcurrentNext(t *testing.T) {
	pager, err := New(makeDeck(t, 30), 10)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			pager.Next()
		}()
	}
	wg.Wait()

	// Far more Next calls than pages: the cursor stops at the last page.
	assert.Equal(t, pager.Count()-1, pager.Current())
}

func TestPager_Meta(t *testing.T) {
	pager, err := New(makeDeck(t, 23), 10)
	require.NoError(t, err)

	first, err := pager.Meta(0)
	require.NoError(t, err)
	assert.Equal(t, PageMeta{
		Index:     0,
		PageSize:  10,
		PageCount: 3,
		TotalRows: 23,
		RowStart:  0,
		RowEnd:    10,
		HasNext:   true,
	}, first)

	last, err := pager.Meta(2)
	require.NoError(t, err)
	assert.Equal(t, 20, last.RowStart)
	assert.Equal(t, 23, last.RowEnd)
	assert.True(t, last.HasPrevious)
	assert.False(t, last.HasNext)

	_, err = pager.Meta(3)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPageOutOfRange)
}
