package webstore

import "sync"

// in-memory key/value store scoped to the process lifetime.
// plays the role sessionStorage plays for the web client: values written
// before an OAuth redirect are read back on the return leg and never
// outlive the run.
type SessionStore struct {
	mu     sync.Mutex
	values map[string]string
}

// creates an empty session store
func NewSessionStore() *SessionStore {
	return &SessionStore{values: make(map[string]string)}
}

// returns the value for a key without consuming it
func (s *SessionStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, ok := s.values[key]
	return value, ok
}

// writes or replaces the value for a key
func (s *SessionStore) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

// returns and removes the value for a key. the tracking payload is
// consumed exactly once through this.
func (s *SessionStore) Take(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, ok := s.values[key]
	if ok {
		delete(s.values, key)
	}

	return value, ok
}

// removes a key
func (s *SessionStore) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
}
