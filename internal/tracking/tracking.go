package tracking

import (
	"encoding/json"

	"codeberg.org/framegen/client/internal/api"
	"codeberg.org/framegen/client/internal/logger"
)

// first-party click-identifier cookies set by the ad pixels
const (
	cookieFBP = "_fbp"
	cookieFBC = "_fbc"
)

// session-store key the payload is stashed under across the redirect
const stashKey = "fg_oauth_tracking"

// payload provenance markers
const (
	SourceStored = "stored"
	SourceLive   = "live"
)

// click identifiers, user agent, and referrer captured synchronously
// before navigation leaves for the identity provider. cookies observed
// on the return leg reflect the provider's context, not the browser's
// pre-redirect context, which is why this exists at all.
type Payload struct {
	FBP       *string `json:"fbp"`
	FBC       *string `json:"fbc"`
	UserAgent string  `json:"user_agent"`
	Referrer  *string `json:"referrer"`
	Source    string  `json:"source,omitempty"`
}

// converts the payload into the wire shape of the
// registration-completed signal
func (p Payload) Signal() api.RegistrationSignal {
	return api.RegistrationSignal{
		FBP:       p.FBP,
		FBC:       p.FBC,
		UserAgent: p.UserAgent,
		Referrer:  p.Referrer,
		Source:    p.Source,
	}
}

// where click-identifier cookies are read from
type CookieReader interface {
	Get(name string) (string, bool)
}

// session-scoped storage for the payload across the OAuth round trip
type SessionStore interface {
	Set(key, value string)
	Take(key string) (string, bool)
}

// snapshots the current browser-equivalent context
func Capture(cookies CookieReader, userAgent, referrer string) Payload {
	payload := Payload{UserAgent: userAgent}

	if value, ok := cookies.Get(cookieFBP); ok {
		payload.FBP = &value
	}

	if value, ok := cookies.Get(cookieFBC); ok {
		payload.FBC = &value
	}

	if referrer != "" {
		payload.Referrer = &referrer
	}

	return payload
}

// holds the captured payload across the redirect round trip
type Stash struct {
	store SessionStore
}

// creates a stash over the given session store
func NewStash(store SessionStore) *Stash {
	return &Stash{store: store}
}

// stores a payload. must run before navigation leaves the page, since
// the destination is a different origin.
func (s *Stash) Put(payload Payload) {
	data, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorErr(err, "failed to encode tracking payload")
		return
	}

	s.store.Set(stashKey, string(data))
}

// returns the stashed payload, consuming it, and falls back to the
// currently visible cookies when the stash was evicted. the fallback
// payload is marked "live" so the backend can discount attribution
// built from post-redirect cookie context.
func (s *Stash) Take(cookies CookieReader, userAgent string) Payload {
	raw, ok := s.store.Take(stashKey)
	if ok {
		var payload Payload
		if err := json.Unmarshal([]byte(raw), &payload); err == nil {
			payload.Source = SourceStored
			return payload
		}
	}

	logger.Warn("no stashed tracking payload, rebuilding from current cookies")

	payload := Capture(cookies, userAgent, "")
	payload.Source = SourceLive
	return payload
}
