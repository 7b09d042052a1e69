package session

import (
	"context"
	"strings"
	"sync"
	"time"

	"codeberg.org/framegen/client/internal/api"
	"codeberg.org/framegen/client/internal/logger"
	"codeberg.org/framegen/client/internal/oauth"
	"codeberg.org/framegen/client/internal/tracking"
	"codeberg.org/framegen/client/internal/webstore"
)

const (
	// how often the reconciler compares state against the token store
	defaultPollInterval = 5 * time.Second

	// in-app destinations
	homePath  = "/generate"
	loginPath = "/login"
)

// credential persistence as the manager sees it
type TokenStore interface {
	Get() (string, bool)
	Set(token string)
	Clear()
}

// backend operations the session lifecycle needs
type Backend interface {
	oauth.Backend
	Signup(ctx context.Context, email, password, displayName string) (*api.AuthResponse, error)
	Login(ctx context.Context, email, password string) (*api.AuthResponse, error)
	ResetPassword(ctx context.Context, email string) error
	UpdateProfile(ctx context.Context, displayName string) (*api.User, error)
}

// navigation surface. OpenURL performs a whole-page, possibly
// cross-origin navigation; GoTo moves within the app.
type Navigator interface {
	OpenURL(url string) error
	GoTo(path string)
}

// outcome of a sign-up attempt that did not establish a session
type SignUpResult struct {
	PendingVerification bool
	Message             string
}

// read-only view of the current session
type Snapshot struct {
	State     State
	User      *api.User
	LastError string
}

// dependencies for a session manager
type Options struct {
	Backend   Backend
	Tokens    TokenStore
	Cookies   tracking.CookieReader
	Stash     *tracking.Stash
	Location  webstore.Location
	Navigator Navigator

	// API origin, for building authorization URLs
	Endpoint string

	UserAgent    string
	PollInterval time.Duration

	// pulsed when credential storage changes out from under us
	Changes <-chan struct{}
}

// owns the session state machine. all triggers - mount, the redirect
// handler, the reconciliation timer, storage-change notifications -
// submit events; nothing mutates state directly.
type Manager struct {
	mu        sync.Mutex
	state     State
	prior     State
	user      *api.User
	lastError string

	backend   Backend
	tokens    TokenStore
	cookies   tracking.CookieReader
	stash     *tracking.Stash
	location  webstore.Location
	navigator Navigator
	redirects *oauth.Handler

	endpoint     string
	userAgent    string
	pollInterval time.Duration
	changes      <-chan struct{}
}

// creates a session manager in the uninitialized state
func NewManager(opts Options) *Manager {
	interval := opts.PollInterval
	if interval <= 0 {
		interval = defaultPollInterval
	}

	m := &Manager{
		state:        StateUninitialized,
		prior:        StateAnonymous,
		backend:      opts.Backend,
		tokens:       opts.Tokens,
		cookies:      opts.Cookies,
		stash:        opts.Stash,
		location:     opts.Location,
		navigator:    opts.Navigator,
		endpoint:     opts.Endpoint,
		userAgent:    opts.UserAgent,
		pollInterval: interval,
		changes:      opts.Changes,
	}

	m.redirects = oauth.NewHandler(
		opts.Backend,
		tokenSetter{opts.Tokens},
		opts.Stash,
		opts.Cookies,
		opts.Location,
		opts.UserAgent,
		m,
	)

	return m
}

// adapts the token store to the write-only surface the redirect
// handler needs
type tokenSetter struct {
	tokens TokenStore
}

func (t tokenSetter) Set(token string) {
	t.tokens.Set(token)
}

// returns the current state and profile
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	return Snapshot{State: m.state, User: m.user, LastError: m.lastError}
}

// runs the mount sequence: process any OAuth return trip first, then
// establish state from the stored credential
func (m *Manager) Initialize(ctx context.Context) {
	if m.redirects.Handle(ctx) {
		// the redirect handler drove state through its own events
		return
	}

	if _, ok := m.tokens.Get(); !ok {
		m.apply(eventTokenMissing, nil, "")
		return
	}

	m.load(ctx)
}

// fetches the profile for the stored credential and folds the result
// into the machine
func (m *Manager) load(ctx context.Context) {
	m.apply(eventLoadStarted, nil, "")

	user, err := m.backend.Me(ctx)
	if err != nil {
		if api.IsAuthError(err) {
			// the client already evicted the token
			m.apply(eventAuthFailed, nil, err.Error())
			m.redirectToLogin()
			return
		}

		// transient failure: keep the token, fall back to the prior
		// state, and let a later reconciliation retry
		logger.ErrorErr(err, "profile fetch failed, keeping stored token")
		m.apply(eventLoadAborted, nil, "")
		return
	}

	m.apply(eventProfileLoaded, user, "")
}

// creates an account. when the backend requires email verification no
// session is established and a pending result is returned instead.
func (m *Manager) SignUp(ctx context.Context, email, password, displayName string) (*SignUpResult, error) {
	resp, err := m.backend.Signup(ctx, email, password, displayName)
	if err != nil {
		return nil, err
	}

	if resp.RequiresVerification {
		return &SignUpResult{PendingVerification: true, Message: resp.Message}, nil
	}

	m.establish(ctx, resp)
	return &SignUpResult{}, nil
}

// authenticates with email and password
func (m *Manager) SignIn(ctx context.Context, email, password string) error {
	resp, err := m.backend.Login(ctx, email, password)
	if err != nil {
		return err
	}

	m.establish(ctx, resp)
	return nil
}

// persists the credential, adopts the inline profile when the backend
// sent one (skipping a redundant fetch), and lands on the app home
func (m *Manager) establish(ctx context.Context, resp *api.AuthResponse) {
	m.tokens.Set(resp.Token)

	if resp.User != nil {
		m.apply(eventProfileLoaded, resp.User, "")
	} else {
		m.load(ctx)
	}

	m.navigator.GoTo(homePath)
}

// clears the credential and returns to the login surface
func (m *Manager) SignOut() {
	m.tokens.Clear()
	m.apply(eventSignedOut, nil, "")
	m.navigator.GoTo(loginPath)
}

// starts the provider flow. the tracking payload is captured
// synchronously before navigation, because the destination is a
// different origin and this context is gone once we leave.
func (m *Manager) SignInWithOAuth(provider string) error {
	referrer := m.location.Current().String()
	payload := tracking.Capture(m.cookies, m.userAgent, referrer)
	m.stash.Put(payload)

	redirectURI := oauth.RedirectTo(m.location.Current())
	authorizeURL := oauth.AuthorizeURL(m.endpoint, provider, redirectURI)

	return m.navigator.OpenURL(authorizeURL)
}

// requests a password reset email
func (m *Manager) ResetPassword(ctx context.Context, email string) error {
	return m.backend.ResetPassword(ctx, email)
}

// updates the display name and adopts the returned profile
func (m *Manager) UpdateProfile(ctx context.Context, displayName string) error {
	user, err := m.backend.UpdateProfile(ctx, displayName)
	if err != nil {
		return err
	}

	m.apply(eventProfileLoaded, user, "")
	return nil
}

// re-validates the stored credential against the backend
func (m *Manager) Revalidate(ctx context.Context) {
	if _, ok := m.tokens.Get(); !ok {
		m.apply(eventTokenMissing, nil, "")
		return
	}

	m.load(ctx)
}

// oauth.Sink implementation: the redirect handler reports outcomes here

// marks a redirect-handler validation in flight
func (m *Manager) LoadStarted() {
	m.apply(eventLoadStarted, nil, "")
}

// records a transiently failed validation. the token survives and the
// machine falls back to a state the reconciler retries from.
func (m *Manager) LoadAborted() {
	m.apply(eventLoadAborted, nil, "")
}

// adopts a profile delivered by the redirect handler
func (m *Manager) ProfileLoaded(user *api.User) {
	m.apply(eventProfileLoaded, user, "")
}

// records a rejected credential reported by the redirect handler
func (m *Manager) AuthFailed(message string) {
	m.apply(eventAuthFailed, nil, message)
	m.redirectToLogin()
}

// records a failed provider flow; nothing was persisted
func (m *Manager) OAuthError(message string) {
	m.apply(eventOAuthFailed, nil, message)
}

// submits an event to the transition function and updates the
// dependent fields under one lock
func (m *Manager) apply(kind eventKind, user *api.User, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	// remember what held before a load so a transient failure can fall
	// back to it. an aborted mount load falls back to anonymous (the
	// constructor default), which is always safe - the token survives
	// and reconciliation retries.
	if kind == eventLoadStarted && m.state != StateLoading && m.state != StateUninitialized {
		m.prior = m.state
	}

	next := transition(m.state, m.prior, kind)

	logger.Debug("session transition",
		"from", m.state.String(),
		"to", next.String(),
	)

	m.state = next

	switch kind {
	case eventProfileLoaded:
		m.user = user
		m.lastError = ""
	case eventAuthFailed, eventOAuthFailed:
		m.user = nil
		m.lastError = message
	case eventSignedOut, eventTokenMissing:
		m.user = nil
	}
}

// sends the user to the login surface unless they are already on an
// auth-related page
func (m *Manager) redirectToLogin() {
	if isAuthSurface(m.location.Current().Path) {
		return
	}

	m.navigator.GoTo(loginPath)
}

func isAuthSurface(path string) bool {
	trimmed := strings.TrimRight(path, "/")

	switch trimmed {
	case "/login", "/signup", "/reset-password":
		return true
	}

	return strings.HasPrefix(trimmed, "/auth")
}
