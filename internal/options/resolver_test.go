package options

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capture struct {
	mu   sync.Mutex
	got  [][]Option
	errs []error
}

func (c *capture) deliver(opts []Option, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.got = append(c.got, opts)
	c.errs = append(c.errs, err)
}

func (c *capture) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.got)
}

func (c *capture) last() []Option {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.got) == 0 {
		return nil
	}
	return c.got[len(c.got)-1]
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestSearchDebouncesRapidInput(t *testing.T) {
	var mu sync.Mutex
	var fetched []string
	fetch := func(term string) ([]Option, error) {
		mu.Lock()
		fetched = append(fetched, term)
		mu.Unlock()
		return []Option{{Label: term, Value: term}}, nil
	}

	c := &capture{}
	r := NewResolver(fetch, c.deliver, WithDelay(30*time.Millisecond))
	defer r.Close()

	r.Search("s")
	r.Search("so")
	r.Search("sol")

	waitFor(t, func() bool { return c.count() == 1 })
	mu.Lock()
	defer mu.Unlock()
	// Only the final keystroke reached the backend.
	assert.Equal(t, []string{"sol"}, fetched)
	assert.Equal(t, "sol", c.last()[0].Value)
}

func TestSearchDiscardsStaleResponse(t *testing.T) {
	block := make(chan struct{})
	fetch := func(term string) ([]Option, error) {
		if term == "slow" {
			<-block
		}
		return []Option{{Label: term, Value: term}}, nil
	}

	c := &capture{}
	r := NewResolver(fetch, c.deliver, WithDelay(time.Millisecond))
	defer r.Close()

	r.Search("slow")
	// Let the slow query get issued before superseding it.
	time.Sleep(20 * time.Millisecond)
	r.Search("fast")

	waitFor(t, func() bool { return c.count() >= 1 })
	close(block)
	time.Sleep(30 * time.Millisecond)

	// The slow response resolved after "fast" and was dropped.
	assert.Equal(t, 1, c.count())
	assert.Equal(t, "fast", c.last()[0].Value)
}

func TestSearchShortInputSkipsRemote(t *testing.T) {
	called := false
	fetch := func(term string) ([]Option, error) {
		called = true
		return nil, nil
	}

	c := &capture{}
	r := NewResolver(fetch, c.deliver, WithDelay(time.Millisecond), WithMinLength(3))
	defer r.Close()

	r.Search("ab")
	waitFor(t, func() bool { return c.count() == 1 })

	assert.False(t, called)
	assert.Empty(t, c.last())
}

func TestResolveReturnsOptions(t *testing.T) {
	fetch := func(term string) ([]Option, error) {
		return []Option{{Label: "Energy", Value: "energy"}}, nil
	}
	r := NewResolver(fetch, nil)
	defer r.Close()

	opts, err := r.Resolve("ener")
	require.NoError(t, err)
	require.Len(t, opts, 1)
	assert.Equal(t, "energy", opts[0].Value)
}

func TestResolveShortInputReturnsEmpty(t *testing.T) {
	fetch := func(term string) ([]Option, error) {
		t.Fatal("fetch should not run for short input")
		return nil, nil
	}
	r := NewResolver(fetch, nil, WithMinLength(2))
	defer r.Close()

	opts, err := r.Resolve("a")
	require.NoError(t, err)
	assert.Empty(t, opts)
}

func TestResolveSupersededByNewerQuery(t *testing.T) {
	started := make(chan struct{})
	block := make(chan struct{})
	fetch := func(term string) ([]Option, error) {
		if term == "slow" {
			close(started)
			<-block
		}
		return []Option{{Label: term, Value: term}}, nil
	}
	r := NewResolver(fetch, nil)
	defer r.Close()

	done := make(chan error, 1)
	go func() {
		_, err := r.Resolve("slow")
		done <- err
	}()

	<-started
	_, err := r.Resolve("fast")
	require.NoError(t, err)
	close(block)

	assert.ErrorIs(t, <-done, ErrSuperseded)
}
