package session

import (
	"context"
	"net/url"
	"testing"

	"codeberg.org/framegen/client/internal/api"
	"codeberg.org/framegen/client/internal/tracking"
	"codeberg.org/framegen/client/internal/webstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	meUser  *api.User
	meErr   error
	meCalls int

	signupResp *api.AuthResponse
	signupErr  error

	loginResp *api.AuthResponse
	loginErr  error

	exchangeResp *api.AuthResponse
	exchangeErr  error

	resetEmails []string

	updateUser *api.User
	updateErr  error

	completeCalls int
}

func (f *fakeBackend) Me(_ context.Context) (*api.User, error) {
	f.meCalls++
	return f.meUser, f.meErr
}

func (f *fakeBackend) ExchangeCode(_ context.Context, _, _ string) (*api.AuthResponse, error) {
	return f.exchangeResp, f.exchangeErr
}

func (f *fakeBackend) CompleteRegistration(_ context.Context, _ api.RegistrationSignal) (bool, error) {
	f.completeCalls++
	return true, nil
}

func (f *fakeBackend) Signup(_ context.Context, _, _, _ string) (*api.AuthResponse, error) {
	return f.signupResp, f.signupErr
}

func (f *fakeBackend) Login(_ context.Context, _, _ string) (*api.AuthResponse, error) {
	return f.loginResp, f.loginErr
}

func (f *fakeBackend) ResetPassword(_ context.Context, email string) error {
	f.resetEmails = append(f.resetEmails, email)
	return nil
}

func (f *fakeBackend) UpdateProfile(_ context.Context, _ string) (*api.User, error) {
	return f.updateUser, f.updateErr
}

type fakeTokens struct {
	token string
}

func (f *fakeTokens) Get() (string, bool) {
	if f.token == "" {
		return "", false
	}
	return f.token, true
}

func (f *fakeTokens) Set(token string) {
	if token == "" {
		return
	}
	f.token = token
}

func (f *fakeTokens) Clear() {
	f.token = ""
}

type fakeNavigator struct {
	opened []string
	paths  []string
}

func (f *fakeNavigator) OpenURL(u string) error {
	f.opened = append(f.opened, u)
	return nil
}

func (f *fakeNavigator) GoTo(path string) {
	f.paths = append(f.paths, path)
}

type fakeCookies struct {
	values map[string]string
}

func (f *fakeCookies) Get(name string) (string, bool) {
	v, ok := f.values[name]
	return v, ok
}

type managerFixture struct {
	backend  *fakeBackend
	tokens   *fakeTokens
	nav      *fakeNavigator
	store    *webstore.SessionStore
	location *webstore.MemoryLocation
	manager  *Manager
}

func newFixture(t *testing.T, rawURL string, backend *fakeBackend) *managerFixture {
	t.Helper()

	u, err := url.Parse(rawURL)
	require.NoError(t, err)

	store := webstore.NewSessionStore()
	location := webstore.NewMemoryLocation(u)
	tokens := &fakeTokens{}
	nav := &fakeNavigator{}

	manager := NewManager(Options{
		Backend:   backend,
		Tokens:    tokens,
		Cookies:   &fakeCookies{values: map[string]string{"_fbp": "fb.1.123"}},
		Stash:     tracking.NewStash(store),
		Location:  location,
		Navigator: nav,
		Endpoint:  "https://api.framegen.app",
		UserAgent: "test-agent",
	})

	return &managerFixture{
		backend:  backend,
		tokens:   tokens,
		nav:      nav,
		store:    store,
		location: location,
		manager:  manager,
	}
}

func TestManager_InitializeWithoutToken(t *testing.T) {
	f := newFixture(t, "https://framegen.app/generate", &fakeBackend{})

	f.manager.Initialize(context.Background())

	snap := f.manager.Snapshot()
	assert.Equal(t, StateAnonymous, snap.State)
	assert.Nil(t, snap.User)
	assert.Zero(t, f.backend.meCalls, "no token means no profile fetch")
}

func TestManager_InitializeWithValidToken(t *testing.T) {
	backend := &fakeBackend{meUser: &api.User{ID: "u1", Email: "a@b.c"}}
	f := newFixture(t, "https://framegen.app/generate", backend)
	f.tokens.token = "stored-token"

	f.manager.Initialize(context.Background())

	snap := f.manager.Snapshot()
	assert.Equal(t, StateAuthenticated, snap.State)
	require.NotNil(t, snap.User)
	assert.Equal(t, "u1", snap.User.ID)
}

func TestManager_InitializeWithRejectedToken(t *testing.T) {
	backend := &fakeBackend{meErr: &api.Error{Kind: api.KindAuth, Message: "token expired"}}
	f := newFixture(t, "https://framegen.app/generate", backend)
	f.tokens.token = "stale-token"

	f.manager.Initialize(context.Background())

	snap := f.manager.Snapshot()
	assert.Equal(t, StateAnonymous, snap.State)
	assert.Equal(t, []string{loginPath}, f.nav.paths, "rejected credential redirects to login")
}

func TestManager_InitializeRejectedTokenOnAuthPageStays(t *testing.T) {
	backend := &fakeBackend{meErr: &api.Error{Kind: api.KindAuth, Message: "token expired"}}
	f := newFixture(t, "https://framegen.app/login", backend)
	f.tokens.token = "stale-token"

	f.manager.Initialize(context.Background())

	assert.Empty(t, f.nav.paths, "already on an auth surface, no redirect")
}

func TestManager_InitializeTransientFailureKeepsToken(t *testing.T) {
	backend := &fakeBackend{meErr: &api.Error{Kind: api.KindNetwork, Message: "cannot connect"}}
	f := newFixture(t, "https://framegen.app/generate", backend)
	f.tokens.token = "good-token"

	f.manager.Initialize(context.Background())

	snap := f.manager.Snapshot()
	assert.Equal(t, StateAnonymous, snap.State, "falls back to the safe state")
	assert.Equal(t, "good-token", f.tokens.token, "transient outages never punish the user")
}

func TestManager_InitializeProcessesOAuthReturn(t *testing.T) {
	backend := &fakeBackend{
		exchangeResp: &api.AuthResponse{Token: "fresh", User: &api.User{ID: "u1"}},
	}
	f := newFixture(t, "https://framegen.app/login?code=abc123", backend)

	f.manager.Initialize(context.Background())

	snap := f.manager.Snapshot()
	assert.Equal(t, StateAuthenticated, snap.State)
	assert.Equal(t, "fresh", f.tokens.token)
	assert.Empty(t, f.location.Current().RawQuery)
	assert.Zero(t, backend.meCalls, "inline profile skips the redundant fetch")
}

func TestManager_SignInAdoptsInlineProfile(t *testing.T) {
	backend := &fakeBackend{
		loginResp: &api.AuthResponse{Token: "t1", User: &api.User{ID: "u1"}},
	}
	f := newFixture(t, "https://framegen.app/login", backend)

	require.NoError(t, f.manager.SignIn(context.Background(), "a@b.c", "pw"))

	snap := f.manager.Snapshot()
	assert.Equal(t, StateAuthenticated, snap.State)
	assert.Equal(t, "t1", f.tokens.token)
	assert.Equal(t, []string{homePath}, f.nav.paths)
	assert.Zero(t, backend.meCalls)
}

func TestManager_SignInFetchesWhenNoInlineProfile(t *testing.T) {
	backend := &fakeBackend{
		loginResp: &api.AuthResponse{Token: "t1"},
		meUser:    &api.User{ID: "u1"},
	}
	f := newFixture(t, "https://framegen.app/login", backend)

	require.NoError(t, f.manager.SignIn(context.Background(), "a@b.c", "pw"))

	assert.Equal(t, 1, backend.meCalls)
	assert.Equal(t, StateAuthenticated, f.manager.Snapshot().State)
}

func TestManager_SignInFailure(t *testing.T) {
	backend := &fakeBackend{loginErr: &api.Error{Kind: api.KindValidation, Message: "invalid credentials"}}
	f := newFixture(t, "https://framegen.app/login", backend)

	err := f.manager.SignIn(context.Background(), "a@b.c", "wrong")

	require.Error(t, err)
	assert.Empty(t, f.tokens.token)
	assert.Empty(t, f.nav.paths)
}

func TestManager_SignUpPendingVerification(t *testing.T) {
	backend := &fakeBackend{
		signupResp: &api.AuthResponse{
			RequiresVerification: true,
			Message:              "check your inbox",
		},
	}
	f := newFixture(t, "https://framegen.app/signup", backend)

	result, err := f.manager.SignUp(context.Background(), "a@b.c", "pw", "Ada")

	require.NoError(t, err)
	assert.True(t, result.PendingVerification)
	assert.Equal(t, "check your inbox", result.Message)
	assert.Empty(t, f.tokens.token, "no session until the email is verified")
	assert.NotEqual(t, StateAuthenticated, f.manager.Snapshot().State)
}

func TestManager_SignUpEstablishesSession(t *testing.T) {
	backend := &fakeBackend{
		signupResp: &api.AuthResponse{Token: "t1", User: &api.User{ID: "u1"}},
	}
	f := newFixture(t, "https://framegen.app/signup", backend)

	result, err := f.manager.SignUp(context.Background(), "a@b.c", "pw", "Ada")

	require.NoError(t, err)
	assert.False(t, result.PendingVerification)
	assert.Equal(t, StateAuthenticated, f.manager.Snapshot().State)
	assert.Equal(t, []string{homePath}, f.nav.paths)
}

func TestManager_SignOut(t *testing.T) {
	backend := &fakeBackend{meUser: &api.User{ID: "u1"}}
	f := newFixture(t, "https://framegen.app/generate", backend)
	f.tokens.token = "t1"
	f.manager.Initialize(context.Background())

	f.manager.SignOut()

	snap := f.manager.Snapshot()
	assert.Equal(t, StateAnonymous, snap.State)
	assert.Nil(t, snap.User)
	assert.Empty(t, f.tokens.token)
	assert.Equal(t, []string{loginPath}, f.nav.paths)
}

func TestManager_SignInWithOAuth(t *testing.T) {
	f := newFixture(t, "https://framegen.app/login", &fakeBackend{})

	require.NoError(t, f.manager.SignInWithOAuth("x"))

	// payload captured synchronously before leaving the page
	stashed, ok := f.store.Get("fg_oauth_tracking")
	assert.True(t, ok)
	assert.Contains(t, stashed, "fb.1.123")

	// whole-page navigation to the provider-specific endpoint, alias
	// mapped to the provider's expected name
	require.Len(t, f.nav.opened, 1)
	assert.Contains(t, f.nav.opened[0], "/api/v1/auth/oauth/twitter")
	assert.Contains(t, f.nav.opened[0], "redirect_uri=")
	assert.Contains(t, f.nav.opened[0], url.QueryEscape("https://framegen.app/login/"))
}

func TestManager_ResetPassword(t *testing.T) {
	backend := &fakeBackend{}
	f := newFixture(t, "https://framegen.app/login", backend)

	require.NoError(t, f.manager.ResetPassword(context.Background(), "a@b.c"))
	assert.Equal(t, []string{"a@b.c"}, backend.resetEmails)
}

func TestManager_UpdateProfile(t *testing.T) {
	backend := &fakeBackend{
		meUser:     &api.User{ID: "u1", DisplayName: "Old"},
		updateUser: &api.User{ID: "u1", DisplayName: "New"},
	}
	f := newFixture(t, "https://framegen.app/settings", backend)
	f.tokens.token = "t1"
	f.manager.Initialize(context.Background())

	require.NoError(t, f.manager.UpdateProfile(context.Background(), "New"))

	snap := f.manager.Snapshot()
	require.NotNil(t, snap.User)
	assert.Equal(t, "New", snap.User.DisplayName)
}

func TestManager_ReconcileDemotesAfterExternalClear(t *testing.T) {
	backend := &fakeBackend{meUser: &api.User{ID: "u1"}}
	f := newFixture(t, "https://framegen.app/generate", backend)
	f.tokens.token = "t1"
	f.manager.Initialize(context.Background())
	require.Equal(t, StateAuthenticated, f.manager.Snapshot().State)

	// another process clears the credential out from under us
	f.tokens.Clear()

	f.manager.reconcile(context.Background())

	snap := f.manager.Snapshot()
	assert.Equal(t, StateAnonymous, snap.State)
	assert.Nil(t, snap.User)
}

func TestManager_ReconcileRevalidatesAppearedToken(t *testing.T) {
	backend := &fakeBackend{meUser: &api.User{ID: "u1"}}
	f := newFixture(t, "https://framegen.app/generate", backend)
	f.manager.Initialize(context.Background())
	require.Equal(t, StateAnonymous, f.manager.Snapshot().State)

	// a token appears out of band
	f.tokens.token = "t1"

	f.manager.reconcile(context.Background())

	assert.Equal(t, StateAuthenticated, f.manager.Snapshot().State)
}

func TestManager_ReconcileRetriesOAuthTokenAfterOutage(t *testing.T) {
	backend := &fakeBackend{meErr: &api.Error{Kind: api.KindNetwork, Message: "cannot connect"}}
	f := newFixture(t, "https://framegen.app/login#access_token=xyz", backend)

	f.manager.Initialize(context.Background())

	// token survives and the machine parks in anonymous, a state the
	// reconciler acts on
	assert.Equal(t, "xyz", f.tokens.token)
	assert.Equal(t, StateAnonymous, f.manager.Snapshot().State)

	// the backend comes back
	backend.meErr = nil
	backend.meUser = &api.User{ID: "u1"}

	f.manager.reconcile(context.Background())

	snap := f.manager.Snapshot()
	assert.Equal(t, StateAuthenticated, snap.State)
	require.NotNil(t, snap.User)
	assert.Equal(t, "u1", snap.User.ID)
}

func TestManager_ReconcileSkipsUninitialized(t *testing.T) {
	backend := &fakeBackend{meUser: &api.User{ID: "u1"}}
	f := newFixture(t, "https://framegen.app/generate", backend)
	f.tokens.token = "t1"

	f.manager.reconcile(context.Background())

	assert.Equal(t, StateUninitialized, f.manager.Snapshot().State)
	assert.Zero(t, backend.meCalls)
}

func TestManager_OAuthErrorSurfaced(t *testing.T) {
	f := newFixture(t, "https://framegen.app/login?error=access_denied&error_description=nope", &fakeBackend{})

	f.manager.Initialize(context.Background())

	snap := f.manager.Snapshot()
	assert.Equal(t, StateAnonymous, snap.State)
	assert.Contains(t, snap.LastError, "nope")
	assert.Empty(t, f.tokens.token)
}
