package listing

import "sync"

// Sessions keeps one pager per caller and view so a user stepping back
// through an admin table reuses the cursors their own session recorded.
// Each session remembers the filter configuration it was built for; a
// different filter resets the pager.
type Sessions[T any] struct {
	mu sync.Mutex
	m  map[string]*session[T]
}

type session[T any] struct {
	pager  *Pager[T]
	filter string
}

func NewSessions[T any]() *Sessions[T] {
	return &Sessions[T]{m: make(map[string]*session[T])}
}

// Resolve returns the pager for key, creating it (and loading page zero) on
// first use or whenever the filter configuration changed. The returned bool
// reports whether the pager was (re)loaded, in which case navigation actions
// should not additionally apply.
func (s *Sessions[T]) Resolve(key, filter string, limit int, source Source[T]) (*Pager[T], bool, error) {
	s.mu.Lock()
	sess, ok := s.m[key]
	if !ok {
		sess = &session[T]{pager: NewPager(source, limit), filter: filter}
		s.m[key] = sess
		s.mu.Unlock()
		return sess.pager, true, sess.pager.LoadPage(0)
	}
	if sess.filter != filter {
		sess.filter = filter
		pager := sess.pager
		s.mu.Unlock()
		return pager, true, pager.Reset(source)
	}
	pager := sess.pager
	s.mu.Unlock()
	return pager, false, nil
}

func (s *Sessions[T]) Drop(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, key)
}
