package webstore

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// a single named cookie record in the profile jar
type Cookie struct {
	Name     string    `json:"name"`
	Value    string    `json:"value"`
	Expires  time.Time `json:"expires,omitzero"`
	SameSite string    `json:"same_site,omitempty"`
	Secure   bool      `json:"secure,omitempty"`
}

// reports whether the cookie is expired at the given time
func (c Cookie) expired(now time.Time) bool {
	return !c.Expires.IsZero() && now.After(c.Expires)
}

// file-backed cookie jar, one JSON file per profile directory.
// plays the role the browser cookie store plays for the web client.
type CookieJar struct {
	path   string
	mu     sync.Mutex
	notify chan struct{}
}

// creates a jar backed by the given file path
func NewCookieJar(path string) *CookieJar {
	return &CookieJar{
		path:   path,
		notify: make(chan struct{}, 1),
	}
}

// returns the value of a non-expired cookie by name
func (j *CookieJar) Get(name string) (string, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()

	cookies, err := j.load()
	if err != nil {
		return "", false
	}

	now := time.Now()

	for _, c := range cookies {
		if c.Name == name && !c.expired(now) {
			return c.Value, true
		}
	}

	return "", false
}

// writes or replaces a cookie, pruning expired records
func (j *CookieJar) Set(cookie Cookie) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	cookies, err := j.load()
	if err != nil {
		return err
	}

	now := time.Now()
	kept := make([]Cookie, 0, len(cookies)+1)

	for _, c := range cookies {
		if c.Name == cookie.Name || c.expired(now) {
			continue
		}
		kept = append(kept, c)
	}

	kept = append(kept, cookie)

	if err := j.save(kept); err != nil {
		return err
	}

	j.pulse()
	return nil
}

// removes a cookie by name
func (j *CookieJar) Delete(name string) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	cookies, err := j.load()
	if err != nil {
		return err
	}

	kept := make([]Cookie, 0, len(cookies))
	removed := false

	for _, c := range cookies {
		if c.Name == name {
			removed = true
			continue
		}
		kept = append(kept, c)
	}

	if !removed {
		return nil
	}

	if err := j.save(kept); err != nil {
		return err
	}

	j.pulse()
	return nil
}

// returns all non-expired cookies
func (j *CookieJar) All() []Cookie {
	j.mu.Lock()
	defer j.mu.Unlock()

	cookies, err := j.load()
	if err != nil {
		return nil
	}

	now := time.Now()
	live := make([]Cookie, 0, len(cookies))

	for _, c := range cookies {
		if !c.expired(now) {
			live = append(live, c)
		}
	}

	return live
}

// returns a channel pulsed after every successful write or delete.
// the session reconciler selects on it, the same way the web client
// listens for storage events. never blocks the writer.
func (j *CookieJar) Changes() <-chan struct{} {
	return j.notify
}

func (j *CookieJar) pulse() {
	select {
	case j.notify <- struct{}{}:
	default:
	}
}

func (j *CookieJar) load() ([]Cookie, error) {
	data, err := os.ReadFile(j.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cookie jar: %w", err)
	}

	var cookies []Cookie
	if err := json.Unmarshal(data, &cookies); err != nil {
		// a corrupt jar is treated as empty rather than fatal
		return nil, nil
	}

	return cookies, nil
}

func (j *CookieJar) save(cookies []Cookie) error {
	data, err := json.MarshalIndent(cookies, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode cookie jar: %w", err)
	}

	if err := os.WriteFile(j.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write cookie jar: %w", err)
	}

	return nil
}
