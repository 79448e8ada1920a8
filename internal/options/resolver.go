package options

import (
	"errors"
	"sync"
	"time"
)

// ErrSuperseded reports a response that arrived after a newer query was
// issued; its options were discarded.
var ErrSuperseded = errors.New("superseded by a newer search")

// DefaultDelay is the quiet period before a scheduled query fires.
const DefaultDelay = 800 * time.Millisecond

// FetchFunc queries the backend for options matching a search term.
type FetchFunc func(term string) ([]Option, error)

// Resolver converts search-as-you-type input into remote option queries
// without flooding the backend. Each issued query carries a sequence number;
// only the response matching the latest sequence is delivered.
type Resolver struct {
	fetch   FetchFunc
	deliver func([]Option, error)
	delay   time.Duration
	minLen  int

	mu    sync.Mutex
	seq   uint64
	timer *time.Timer
}

type ResolverOption func(*Resolver)

func WithDelay(d time.Duration) ResolverOption {
	return func(r *Resolver) { r.delay = d }
}

// WithMinLength sets the shortest input that triggers a remote query;
// anything shorter short-circuits to an empty option set.
func WithMinLength(n int) ResolverOption {
	return func(r *Resolver) { r.minLen = n }
}

func NewResolver(fetch FetchFunc, deliver func([]Option, error), opts ...ResolverOption) *Resolver {
	r := &Resolver{
		fetch:   fetch,
		deliver: deliver,
		delay:   DefaultDelay,
		minLen:  1,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Search schedules a query for term after the quiet period. A call before
// the period elapses cancels the pending schedule and restarts it.
func (r *Resolver) Search(term string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.timer != nil {
		r.timer.Stop()
	}

	if len(term) < r.minLen {
		// Too-short input resolves immediately and empties the options,
		// invalidating any in-flight query.
		r.seq++
		if r.deliver != nil {
			r.deliver(nil, nil)
		}
		return
	}

	r.timer = time.AfterFunc(r.delay, func() {
		r.mu.Lock()
		r.seq++
		seq := r.seq
		r.mu.Unlock()

		opts, err := r.fetch(term)

		r.mu.Lock()
		stale := seq != r.seq
		r.mu.Unlock()
		if stale {
			// A newer query was issued while this one was in flight.
			return
		}
		if r.deliver != nil {
			r.deliver(opts, err)
		}
	})
}

// Resolve runs a query immediately, skipping the debounce but keeping the
// stale-discard contract: if a newer Resolve or Search is issued while this
// one is in flight, the result is dropped and ErrSuperseded returned.
func (r *Resolver) Resolve(term string) ([]Option, error) {
	r.mu.Lock()
	if len(term) < r.minLen {
		r.seq++
		r.mu.Unlock()
		return nil, nil
	}
	r.seq++
	seq := r.seq
	r.mu.Unlock()

	opts, err := r.fetch(term)

	r.mu.Lock()
	stale := seq != r.seq
	r.mu.Unlock()
	if stale {
		return nil, ErrSuperseded
	}
	return opts, err
}

// Close cancels any pending scheduled query.
func (r *Resolver) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	r.seq++
}
