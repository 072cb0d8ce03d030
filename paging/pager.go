package paging

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rshade/facedeck/prep"
)

// Page size bounds.
const (
	DefaultPageSize = 25
	MinPageSize     = 1
)

// Pager validation and access errors.
var (
	ErrInvalidPageSize = errors.New("page size must be >= 1")
	ErrPageOutOfRange  = errors.New("page index out of range")
	ErrNilDeck         = errors.New("pager requires a prepared deck")
)

// Page is one fixed-size window of a prepared deck. Matrix and Labels are
// views sharing the deck's backing data; treat them as read-only.
type Page struct {
	// Index is the zero-based page number.
	Index int

	// Start and End bound the page's rows as the half-open interval
	// [Start, End) in deck row coordinates.
	Start int
	End   int

	// Columns names the feature columns, in matrix order.
	Columns []string

	// Matrix holds the page's scaled feature rows.
	Matrix *prep.Matrix

	// Labels holds the page's display labels, aligned with Matrix rows, or
	// nil when the deck has no label set.
	Labels []string
}

// Rows returns the number of rows on the page.
func (p Page) Rows() int { return p.End - p.Start }

// Pager partitions one deck into pages and carries a cursor over them. The
// cursor is safe for concurrent use; page extraction itself is read-only.
type Pager struct {
	deck     *prep.Deck
	pageSize int
	count    int

	mu      sync.Mutex
	current int
}

// New builds a Pager over a prepared deck. pageSize must be at least
// MinPageSize. An empty deck is valid: the pager has zero pages and every
// Get fails with ErrPageOutOfRange.
func New(deck *prep.Deck, pageSize int) (*Pager, error) {
	if deck == nil {
		return nil, ErrNilDeck
	}
	if pageSize < MinPageSize {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidPageSize, pageSize)
	}

	rows := deck.Rows()
	count := rows / pageSize
	if rows%pageSize > 0 {
		count++
	}

	return &Pager{
		deck:     deck,
		pageSize: pageSize,
		count:    count,
	}, nil
}

// Count returns the total number of pages: ceil(rows/pageSize).
func (p *Pager) Count() int { return p.count }

// PageSize returns the configured rows per page.
func (p *Pager) PageSize() int { return p.pageSize }

// TotalRows returns the number of rows in the underlying deck.
func (p *Pager) TotalRows() int { return p.deck.Rows() }

// Deck returns the underlying prepared deck.
func (p *Pager) Deck() *prep.Deck { return p.deck }

// Get extracts the page at index i. Fails with ErrPageOutOfRange when i is
// outside [0, Count()). The returned page shares backing data with the deck.
func (p *Pager) Get(i int) (Page, error) {
	if i < 0 || i >= p.count {
		return Page{}, fmt.Errorf("%w: page %d of %d", ErrPageOutOfRange, i, p.count)
	}

	start := i * p.pageSize
	end := min(start+p.pageSize, p.deck.Rows())

	matrix, err := p.deck.Matrix.Slice(start, end)
	if err != nil {
		return Page{}, err
	}

	page := Page{
		Index:   i,
		Start:   start,
		End:     end,
		Columns: p.deck.Matrix.Names(),
		Matrix:  matrix,
	}
	if p.deck.Labels != nil {
		page.Labels = p.deck.Labels[start:end]
	}
	return page, nil
}

// Current returns the cursor's page index. The index of an empty pager is 0
// even though no page exists at it.
func (p *Pager) Current() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// CurrentPage extracts the page under the cursor.
func (p *Pager) CurrentPage() (Page, error) {
	return p.Get(p.Current())
}

// Next advances the cursor one page and reports whether it moved. At the
// last page (or on an empty pager) the cursor stays put.
func (p *Pager) Next() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current+1 >= p.count {
		return false
	}
	p.current++
	return true
}

// Previous moves the cursor back one page and reports whether it moved. At
// the first page the cursor stays put.
func (p *Pager) Previous() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == 0 {
		return false
	}
	p.current--
	return true
}

// Goto moves the cursor to page i. Fails with ErrPageOutOfRange when i is
// outside [0, Count()); the cursor does not move on failure.
func (p *Pager) Goto(i int) error {
	if i < 0 || i >= p.count {
		return fmt.Errorf("%w: page %d of %d", ErrPageOutOfRange, i, p.count)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.current = i
	return nil
}
