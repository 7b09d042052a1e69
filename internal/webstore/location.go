package webstore

import (
	"net/url"
	"sync"
)

// the visible URL of the page-equivalent surface. the redirect handler
// reads callback state from it and rewrites it to a clean URL before any
// asynchronous work, so credentials never linger in visible state.
type Location interface {
	Current() *url.URL
	Replace(u *url.URL)
}

// in-memory Location used by the loopback callback listener and tests
type MemoryLocation struct {
	mu sync.Mutex
	u  *url.URL
}

// creates a location pointing at the given URL
func NewMemoryLocation(u *url.URL) *MemoryLocation {
	copied := *u
	return &MemoryLocation{u: &copied}
}

// returns a copy of the current URL
func (l *MemoryLocation) Current() *url.URL {
	l.mu.Lock()
	defer l.mu.Unlock()

	copied := *l.u
	return &copied
}

// replaces the current URL
func (l *MemoryLocation) Replace(u *url.URL) {
	l.mu.Lock()
	defer l.mu.Unlock()

	copied := *u
	l.u = &copied
}
