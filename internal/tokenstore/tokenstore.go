package tokenstore

import (
	"time"

	"codeberg.org/framegen/client/internal/logger"
	"codeberg.org/framegen/client/internal/webstore"
)

const (
	// name of the session cookie in the profile jar
	CookieName = "fg_session"

	// key of the legacy fallback copy in the local store
	FallbackKey = "framegen_token"

	// cookie lifetime, matching the backend token lifetime
	cookieTTL = 7 * 24 * time.Hour
)

// primary store for the session credential
type CookieStore interface {
	Get(name string) (string, bool)
	Set(cookie webstore.Cookie) error
	Delete(name string) error
}

// fallback store, consulted only when the cookie is missing
type FallbackStore interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(key string) error
}

// persists the bearer credential across runs. the cookie is
// authoritative; the fallback copy exists for one-time migration of
// older profiles and is cleared as soon as it is read.
type Store struct {
	cookies  CookieStore
	fallback FallbackStore

	// whether the API endpoint is served over TLS
	secure bool
}

// creates a token store over the given cookie and fallback stores
func New(cookies CookieStore, fallback FallbackStore, secure bool) *Store {
	return &Store{
		cookies:  cookies,
		fallback: fallback,
		secure:   secure,
	}
}

// returns the current credential, migrating a fallback-only copy into
// the cookie store on the way out
func (s *Store) Get() (string, bool) {
	if token, ok := s.cookies.Get(CookieName); ok {
		return token, true
	}

	token, ok := s.fallback.Get(FallbackKey)
	if !ok || token == "" {
		return "", false
	}

	// migrate-on-read: cookie becomes authoritative, fallback is cleared
	s.write(token)

	if err := s.fallback.Delete(FallbackKey); err != nil {
		logger.ErrorErr(err, "failed to clear fallback token after migration")
	}

	return token, true
}

// persists a credential in both stores. empty tokens are ignored so a
// bad response can never wipe a valid session.
func (s *Store) Set(token string) {
	if token == "" {
		return
	}

	s.write(token)

	if err := s.fallback.Set(FallbackKey, token); err != nil {
		logger.ErrorErr(err, "failed to mirror token to fallback store")
	}
}

// removes the credential from both stores
func (s *Store) Clear() {
	if err := s.cookies.Delete(CookieName); err != nil {
		logger.ErrorErr(err, "failed to delete session cookie")
	}

	if err := s.fallback.Delete(FallbackKey); err != nil {
		logger.ErrorErr(err, "failed to delete fallback token")
	}
}

func (s *Store) write(token string) {
	cookie := webstore.Cookie{
		Name:     CookieName,
		Value:    token,
		Expires:  time.Now().Add(cookieTTL),
		SameSite: "Lax",
		Secure:   s.secure,
	}

	if err := s.cookies.Set(cookie); err != nil {
		logger.ErrorErr(err, "failed to write session cookie")
	}
}
