// Package listing implements forward-only cursor pagination over a remote,
// filterable collection. The backend hands out opaque continuation cursors
// and cannot page backwards, so the pager records the cursor for every page
// it has visited and replays recorded cursors on revisit.
package listing

import (
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrNoMorePages is returned by Next when the collection is exhausted.
	ErrNoMorePages = errors.New("no more pages")
	// ErrFirstPage is returned by Previous on page zero.
	ErrFirstPage = errors.New("already on first page")
	// ErrSuperseded reports that a response arrived after the filter changed
	// and was discarded without touching pager state.
	ErrSuperseded = errors.New("superseded by a newer query")
)

// Source fetches one page: the items after cursor, plus the continuation
// cursor ("" when exhausted). A Source closes over its filter; changing the
// filter means swapping the Source via Reset.
type Source[T any] func(cursor string, limit int) (items []T, next string, err error)

type Pager[T any] struct {
	mu      sync.Mutex
	source  Source[T]
	limit   int
	cursors []string // cursors[i] loads page i; cursors[0] is always ""
	page    int
	hasMore bool
	items   []T
	gen     uint64
}

func NewPager[T any](source Source[T], limit int) *Pager[T] {
	return &Pager[T]{
		source:  source,
		limit:   limit,
		cursors: []string{""},
		hasMore: true,
	}
}

// LoadPage fetches the page at index, which must already have a recorded
// cursor: a visited page or the immediate next one. On a fetch error the
// displayed items and all cursor state stay untouched.
func (p *Pager[T]) LoadPage(index int) error {
	p.mu.Lock()
	if index < 0 || index > len(p.cursors)-1 {
		p.mu.Unlock()
		return fmt.Errorf("page %d has no recorded cursor", index)
	}
	gen := p.gen
	source := p.source
	cursor := p.cursors[index]
	limit := p.limit
	p.mu.Unlock()

	items, next, err := source(cursor, limit)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.gen != gen {
		// The filter changed while this request was in flight.
		return ErrSuperseded
	}

	p.items = items
	p.page = index
	p.hasMore = next != ""
	if next != "" && index == len(p.cursors)-1 {
		p.cursors = append(p.cursors, next)
	}
	return nil
}

// Next advances one page. Valid only while HasMore reports true.
func (p *Pager[T]) Next() error {
	p.mu.Lock()
	if !p.hasMore {
		p.mu.Unlock()
		return ErrNoMorePages
	}
	index := p.page + 1
	p.mu.Unlock()
	return p.LoadPage(index)
}

// Previous steps back one page, reusing the cursor recorded on the way
// forward. The revisited page returns a continuation cursor again, which
// turns hasMore back on. That assumes page sets are stable for the session.
func (p *Pager[T]) Previous() error {
	p.mu.Lock()
	if p.page == 0 {
		p.mu.Unlock()
		return ErrFirstPage
	}
	index := p.page - 1
	p.mu.Unlock()
	return p.LoadPage(index)
}

// Reset rebinds the pager to a new source (a new filter), drops every
// recorded cursor, and loads page zero. Responses still in flight for the
// old source are discarded when they resolve.
func (p *Pager[T]) Reset(source Source[T]) error {
	p.mu.Lock()
	p.source = source
	p.cursors = []string{""}
	p.page = 0
	p.hasMore = true
	p.items = nil
	p.gen++
	p.mu.Unlock()
	return p.LoadPage(0)
}

// Items returns the currently displayed page.
func (p *Pager[T]) Items() []T {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.items
}

func (p *Pager[T]) Page() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.page
}

func (p *Pager[T]) HasMore() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hasMore
}

// Visited reports how many pages have recorded cursors, counting the start.
func (p *Pager[T]) Visited() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.cursors)
}
