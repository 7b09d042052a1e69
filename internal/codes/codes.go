package codes

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"sync"
	"time"
)

var (
	ErrCodeNotFound = errors.New("authorization code not found")
	ErrCodeExpired  = errors.New("authorization code expired")
	ErrRedirectURI  = errors.New("redirect_uri does not match")
)

// what a one-time authorization code redeems into
type Grant struct {
	UserID      string
	RedirectURI string
	NewUser     bool
	ExpiresAt   time.Time
}

// manages one-time authorization codes in memory. a code is issued on
// the provider callback and redeemed exactly once by the exchange
// endpoint.
type Store struct {
	grants map[string]*Grant
	mu     sync.Mutex
	ttl    time.Duration
}

// returns a new code store. the cleanup goroutine runs until the
// context is cancelled.
func NewStore(ctx context.Context, ttl time.Duration) *Store {
	s := &Store{
		grants: make(map[string]*Grant),
		ttl:    ttl,
	}

	go s.cleanupExpired(ctx)

	return s
}

// returns a new random authorization code
func generateCode() (string, error) {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// issues a code binding the user to the redirect URI it must be
// redeemed against
func (s *Store) Issue(userID, redirectURI string, newUser bool) (string, error) {
	code, err := generateCode()
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	s.grants[code] = &Grant{
		UserID:      userID,
		RedirectURI: redirectURI,
		NewUser:     newUser,
		ExpiresAt:   time.Now().Add(s.ttl),
	}
	s.mu.Unlock()

	return code, nil
}

// redeems a code. the code is consumed whether or not redemption
// succeeds, so a leaked code cannot be retried.
func (s *Store) Redeem(code, redirectURI string) (*Grant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	grant, exists := s.grants[code]
	if !exists {
		return nil, ErrCodeNotFound
	}

	delete(s.grants, code)

	if time.Now().After(grant.ExpiresAt) {
		return nil, ErrCodeExpired
	}

	if grant.RedirectURI != redirectURI {
		return nil, ErrRedirectURI
	}

	return grant, nil
}

// runs periodically to remove expired codes
func (s *Store) cleanupExpired(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		s.mu.Lock()
		now := time.Now()

		for code, grant := range s.grants {
			if now.After(grant.ExpiresAt) {
				delete(s.grants, code)
			}
		}

		s.mu.Unlock()
	}
}
