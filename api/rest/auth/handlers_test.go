package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	internalauth "codeberg.org/framegen/client/internal/auth"
	"codeberg.org/framegen/client/internal/codes"
	"codeberg.org/framegen/client/internal/config"
	"codeberg.org/framegen/client/internal/users"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRouter(t *testing.T) (*gin.Engine, users.Repository, *codes.Store) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	cfg := &config.ServerConfig{
		JWTSecret:     "test-secret",
		SessionSecret: "test-session-secret",
		BaseURL:       "http://localhost:8080",
		Environment:   "development",
	}

	repo := users.NewMemoryRepository()
	codeStore := codes.NewStore(t.Context(), time.Minute)

	router := gin.New()
	v1 := router.Group("/api/v1")
	RegisterRoutes(v1, repo, codeStore, cfg)

	return router, repo, codeStore
}

func postJSON(t *testing.T, router *gin.Engine, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSignupHandler_IssuesToken(t *testing.T) {
	router, _, _ := testRouter(t)

	w := postJSON(t, router, "/api/v1/auth/signup", SignupRequest{
		Email:       "ada@example.com",
		Password:    "hunter22hunter22",
		DisplayName: "Ada",
	}, "")

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	require.NotNil(t, resp.User)
	assert.Equal(t, "ada@example.com", resp.User.Email)
	assert.False(t, resp.RequiresVerification)
}

func TestSignupHandler_DuplicateEmail(t *testing.T) {
	router, _, _ := testRouter(t)

	body := SignupRequest{Email: "a@b.co", Password: "hunter22hunter22", DisplayName: "Ada"}
	require.Equal(t, http.StatusOK, postJSON(t, router, "/api/v1/auth/signup", body, "").Code)

	w := postJSON(t, router, "/api/v1/auth/signup", body, "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "detail")
}

func TestLoginHandler(t *testing.T) {
	router, _, _ := testRouter(t)

	signup := SignupRequest{Email: "a@b.co", Password: "hunter22hunter22", DisplayName: "Ada"}
	require.Equal(t, http.StatusOK, postJSON(t, router, "/api/v1/auth/signup", signup, "").Code)

	w := postJSON(t, router, "/api/v1/auth/login", LoginRequest{
		Email:    "a@b.co",
		Password: "hunter22hunter22",
	}, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)

	w = postJSON(t, router, "/api/v1/auth/login", LoginRequest{
		Email:    "a@b.co",
		Password: "wrong-password",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetCurrentUserHandler(t *testing.T) {
	router, repo, _ := testRouter(t)

	user, err := repo.CreateWithPassword(t.Context(), "a@b.co", "pw123456", "Ada")
	require.NoError(t, err)

	token, err := internalauth.GenerateJWT("test-secret", user.ID, user.Email)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	// the profile is served bare, not wrapped
	var got users.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, "Ada", got.DisplayName)
}

func TestGetCurrentUserHandler_NoToken(t *testing.T) {
	router, _, _ := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "detail")
}

func TestExchangeHandler(t *testing.T) {
	router, repo, codeStore := testRouter(t)

	user, _, err := repo.FindOrCreateByProvider(t.Context(), "google", "g-1", "a@b.co", "Ada", "")
	require.NoError(t, err)

	code, err := codeStore.Issue(user.ID, "http://127.0.0.1:8089/callback/", true)
	require.NoError(t, err)

	w := postJSON(t, router, "/api/v1/auth/oauth/exchange", ExchangeRequest{
		Code:       code,
		RedirectTo: "http://127.0.0.1:8089/callback/",
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.True(t, resp.NewUser)
	require.NotNil(t, resp.User)
	assert.Equal(t, user.ID, resp.User.ID)

	// codes redeem exactly once
	w = postJSON(t, router, "/api/v1/auth/oauth/exchange", ExchangeRequest{
		Code:       code,
		RedirectTo: "http://127.0.0.1:8089/callback/",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestExchangeHandler_RedirectMismatch(t *testing.T) {
	router, repo, codeStore := testRouter(t)

	user, _, err := repo.FindOrCreateByProvider(t.Context(), "google", "g-1", "a@b.co", "Ada", "")
	require.NoError(t, err)

	code, err := codeStore.Issue(user.ID, "http://127.0.0.1:8089/callback/", false)
	require.NoError(t, err)

	w := postJSON(t, router, "/api/v1/auth/oauth/exchange", ExchangeRequest{
		Code:       code,
		RedirectTo: "http://127.0.0.1:8089/callback", // missing trailing slash
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCompleteRegistrationHandler_FiresOnce(t *testing.T) {
	router, repo, _ := testRouter(t)

	user, err := repo.CreateWithPassword(t.Context(), "a@b.co", "pw123456", "Ada")
	require.NoError(t, err)

	token, err := internalauth.GenerateJWT("test-secret", user.ID, user.Email)
	require.NoError(t, err)

	fbp := "fb.1.123"
	body := CompleteRegistrationRequest{FBP: &fbp, UserAgent: "UA", Source: "stored"}

	w := postJSON(t, router, "/api/v1/auth/oauth/complete-registration", body, token)
	require.Equal(t, http.StatusOK, w.Code)

	var resp CompleteRegistrationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.EventFired)

	// second submission for the same account does not fire again
	w = postJSON(t, router, "/api/v1/auth/oauth/complete-registration", body, token)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.EventFired)
}

func TestFakeProviderReturnShapes(t *testing.T) {
	router, _, _ := testRouter(t)

	testCases := []struct {
		name     string
		mode     string
		contains string
	}{
		{"code mode", "code", "?code="},
		{"token mode", "token", "?access_token="},
		{"fragment mode", "fragment", "#access_token="},
		{"error mode", "error", "error=access_denied"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet,
				"/api/v1/auth/oauth/fake?redirect_uri=http%3A%2F%2F127.0.0.1%3A8089%2Fcallback%2F&mode="+tc.mode, nil)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			require.Equal(t, http.StatusFound, w.Code)
			assert.Contains(t, w.Header().Get("Location"), tc.contains)
			assert.Contains(t, w.Header().Get("Location"), "http://127.0.0.1:8089/callback/")
		})
	}
}

func TestBeginOAuthHandler_InvalidProvider(t *testing.T) {
	router, _, _ := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/oauth/myspace?redirect_uri=http%3A%2F%2Fcb%2F", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
