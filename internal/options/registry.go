package options

import "sync"

// Registry keeps one resolver per owner key. The sequence-discard contract
// belongs to a single input box, so concurrent users must not share a
// resolver and supersede each other's searches.
type Registry struct {
	mu sync.Mutex
	m  map[string]*Resolver
}

func NewRegistry() *Registry {
	return &Registry{m: make(map[string]*Resolver)}
}

// For returns the resolver stored under key, building it on first use.
func (r *Registry) For(key string, build func() *Resolver) *Resolver {
	r.mu.Lock()
	defer r.mu.Unlock()
	resolver, ok := r.m[key]
	if !ok {
		resolver = build()
		r.m[key] = resolver
	}
	return resolver
}

// Drop removes and closes the resolver stored under key.
func (r *Registry) Drop(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if resolver, ok := r.m[key]; ok {
		resolver.Close()
		delete(r.m, key)
	}
}
