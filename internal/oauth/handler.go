package oauth

import (
	"context"
	"strings"

	"codeberg.org/framegen/client/internal/api"
	"codeberg.org/framegen/client/internal/logger"
	"codeberg.org/framegen/client/internal/tracking"
	"codeberg.org/framegen/client/internal/webstore"
)

// backend operations the redirect handler needs
type Backend interface {
	Me(ctx context.Context) (*api.User, error)
	ExchangeCode(ctx context.Context, code, redirectTo string) (*api.AuthResponse, error)
	CompleteRegistration(ctx context.Context, signal api.RegistrationSignal) (bool, error)
}

// where a successfully exchanged credential is persisted
type TokenWriter interface {
	Set(token string)
}

// receives the outcome of a processed callback. the session manager
// implements this and folds outcomes into its state machine.
type Sink interface {
	LoadStarted()
	ProfileLoaded(user *api.User)
	AuthFailed(message string)
	OAuthError(message string)
	LoadAborted()
}

// processes the return-trip URL after an identity-provider redirect.
// runs once at mount; every branch rewrites the visible URL to a clean
// one synchronously, before any asynchronous step is even scheduled.
type Handler struct {
	backend   Backend
	tokens    TokenWriter
	stash     *tracking.Stash
	cookies   tracking.CookieReader
	location  webstore.Location
	userAgent string
	sink      Sink
}

// creates a redirect handler
func NewHandler(
	backend Backend,
	tokens TokenWriter,
	stash *tracking.Stash,
	cookies tracking.CookieReader,
	location webstore.Location,
	userAgent string,
	sink Sink,
) *Handler {
	return &Handler{
		backend:   backend,
		tokens:    tokens,
		stash:     stash,
		cookies:   cookies,
		location:  location,
		userAgent: userAgent,
		sink:      sink,
	}
}

// inspects the current URL and processes any callback artifacts.
// returns false when the URL is already clean; in that case no network
// call is made and no state changes.
func (h *Handler) Handle(ctx context.Context) bool {
	current := h.location.Current()
	callback := ParseCallback(current)

	if callback.Kind == KindNone {
		return false
	}

	// computed before stripping: the exchange needs the exact URI the
	// outbound authorization request used
	redirectTo := RedirectTo(current)

	// sanitize first. a concurrent observer must never see a
	// credential-bearing URL once processing has begun.
	h.location.Replace(CleanURL(current))

	switch callback.Kind {
	case KindHashToken:
		h.handleHashToken(ctx, callback.Token)
	case KindCode:
		h.handleCode(ctx, callback.Code, redirectTo)
	case KindQueryToken:
		logger.Warn("token delivered via deprecated query parameter")
		h.handleQueryToken(ctx, callback.Token)
	case KindError:
		h.handleError(callback)
	}

	return true
}

// branch 1: provider returned the token directly in the fragment. the
// account may or may not be new - only the backend can decide whether a
// conversion event should fire, so the completion signal always goes out.
func (h *Handler) handleHashToken(ctx context.Context, token string) {
	h.tokens.Set(token)
	h.validate(ctx)

	payload := h.stash.Take(h.cookies, h.userAgent)

	fired, err := h.backend.CompleteRegistration(ctx, payload.Signal())
	if err != nil {
		logger.ErrorErr(err, "failed to send registration-completed signal")
		return
	}

	logger.Debug("registration-completed signal sent", "event_fired", fired)
}

// branch 2: provider returned a one-time code; exchange it through the
// backend. the completion signal fires from this browser context, not
// server-to-server, so the backend sees real first-party cookies and a
// real user agent - but only when the backend says the account is new.
func (h *Handler) handleCode(ctx context.Context, code, redirectTo string) {
	payload := h.stash.Take(h.cookies, h.userAgent)

	resp, err := h.backend.ExchangeCode(ctx, code, redirectTo)
	if err != nil {
		logger.ErrorErr(err, "authorization code exchange failed")
		h.sink.OAuthError(err.Error())
		return
	}

	h.tokens.Set(resp.Token)

	if resp.User != nil {
		// profile came inline with the credential, skip the extra fetch
		h.sink.ProfileLoaded(resp.User)
	} else {
		h.validate(ctx)
	}

	if resp.NewUser {
		fired, err := h.backend.CompleteRegistration(ctx, payload.Signal())
		if err != nil {
			logger.ErrorErr(err, "failed to send registration-completed signal")
		} else {
			logger.Debug("registration-completed signal sent", "event_fired", fired)
		}
	}
}

// branch 3: deprecated token-in-query path
func (h *Handler) handleQueryToken(ctx context.Context, token string) {
	h.tokens.Set(token)
	h.validate(ctx)
}

// branch 4: the provider or backend reported failure. nothing is
// persisted; the message is surfaced and the URL is already clean.
func (h *Handler) handleError(callback Callback) {
	message := userFacingError(callback.ErrorCode, callback.ErrorDescription)

	logger.Warn("oauth provider returned an error",
		"code", callback.ErrorCode,
		"description", callback.ErrorDescription,
	)

	h.sink.OAuthError(message)
}

// validates a freshly persisted token by fetching the profile,
// reported to the sink the same way a mount load is. an auth failure
// means the client already evicted the token; a transient failure
// keeps the token and aborts the load, parking the machine where
// reconciliation retries it.
func (h *Handler) validate(ctx context.Context) {
	h.sink.LoadStarted()

	user, err := h.backend.Me(ctx)
	if err != nil {
		if api.IsAuthError(err) {
			h.sink.AuthFailed(err.Error())
			return
		}

		logger.ErrorErr(err, "profile fetch failed after oauth return, keeping token")
		h.sink.LoadAborted()
		return
	}

	h.sink.ProfileLoaded(user)
}

// synthesizes the user-facing message for a provider error, rewriting
// the one known misconfiguration signature into something actionable
func userFacingError(code, description string) string {
	if strings.Contains(description, "provider is not enabled") {
		return "This sign-in provider is not enabled for Framegen. Use email login or contact support."
	}

	if description != "" {
		return "Sign-in failed: " + description
	}

	if code != "" {
		return "Sign-in failed: " + code
	}

	return "Sign-in failed"
}
