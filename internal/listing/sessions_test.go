package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionsResolveCreatesAndReuses(t *testing.T) {
	s := NewSessions[int]()
	src := newFakeSource(30)

	pager, loaded, err := s.Resolve("u1|projects", "pending|", 12, src.fetch)
	require.NoError(t, err)
	assert.True(t, loaded)
	assert.Len(t, pager.Items(), 12)

	require.NoError(t, pager.Next())

	// Same key and filter: the same pager comes back, state intact.
	again, loaded, err := s.Resolve("u1|projects", "pending|", 12, src.fetch)
	require.NoError(t, err)
	assert.False(t, loaded)
	assert.Same(t, pager, again)
	assert.Equal(t, 1, again.Page())
}

func TestSessionsResolveResetsOnFilterChange(t *testing.T) {
	s := NewSessions[int]()
	src := newFakeSource(30)

	pager, _, err := s.Resolve("u1|projects", "pending|", 12, src.fetch)
	require.NoError(t, err)
	require.NoError(t, pager.Next())
	require.Equal(t, 1, pager.Page())

	filtered := newFakeSource(3)
	pager, loaded, err := s.Resolve("u1|projects", "approved|solar", 12, filtered.fetch)
	require.NoError(t, err)
	assert.True(t, loaded)
	assert.Equal(t, 0, pager.Page())
	assert.Len(t, pager.Items(), 3)
	assert.False(t, pager.HasMore())
}

func TestSessionsAreIsolatedByKey(t *testing.T) {
	s := NewSessions[int]()

	a, _, err := s.Resolve("u1|projects", "", 12, newFakeSource(30).fetch)
	require.NoError(t, err)
	b, _, err := s.Resolve("u2|projects", "", 12, newFakeSource(30).fetch)
	require.NoError(t, err)
	assert.NotSame(t, a, b)

	require.NoError(t, a.Next())
	assert.Equal(t, 1, a.Page())
	assert.Equal(t, 0, b.Page())
}

func TestSessionsDrop(t *testing.T) {
	s := NewSessions[int]()
	src := newFakeSource(30)

	pager, _, err := s.Resolve("u1|projects", "", 12, src.fetch)
	require.NoError(t, err)
	require.NoError(t, pager.Next())

	s.Drop("u1|projects")

	fresh, loaded, err := s.Resolve("u1|projects", "", 12, src.fetch)
	require.NoError(t, err)
	assert.True(t, loaded)
	assert.NotSame(t, pager, fresh)
	assert.Equal(t, 0, fresh.Page())
}
