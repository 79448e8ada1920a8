package options

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryKeysResolversPerOwner(t *testing.T) {
	reg := NewRegistry()
	build := func() *Resolver {
		return NewResolver(func(term string) ([]Option, error) { return nil, nil }, nil)
	}

	a := reg.For("u1|tags", build)
	b := reg.For("u2|tags", build)
	assert.NotSame(t, a, b)
	assert.Same(t, a, reg.For("u1|tags", build))

	reg.Drop("u1|tags")
	assert.NotSame(t, a, reg.For("u1|tags", build))
}

func TestRegistryIsolatesSupersession(t *testing.T) {
	reg := NewRegistry()
	started := make(chan struct{})
	block := make(chan struct{})
	slow := func(term string) ([]Option, error) {
		close(started)
		<-block
		return []Option{{Label: term, Value: term}}, nil
	}
	fast := func(term string) ([]Option, error) {
		return []Option{{Label: term, Value: term}}, nil
	}

	r1 := reg.For("u1|tags", func() *Resolver { return NewResolver(slow, nil) })
	r2 := reg.For("u2|tags", func() *Resolver { return NewResolver(fast, nil) })

	done := make(chan error, 1)
	go func() {
		_, err := r1.Resolve("solar")
		done <- err
	}()

	// Another user searching while the first query is in flight must not
	// supersede it.
	<-started
	_, err := r2.Resolve("wind")
	require.NoError(t, err)
	close(block)

	assert.NoError(t, <-done)
}
