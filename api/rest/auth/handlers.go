package auth

import (
	"net/http"
	"net/url"
	"os"
	"slices"
	"sync"

	"codeberg.org/framegen/client/internal/auth"
	"codeberg.org/framegen/client/internal/codes"
	"codeberg.org/framegen/client/internal/config"
	"codeberg.org/framegen/client/internal/errors"
	"codeberg.org/framegen/client/internal/logger"
	"codeberg.org/framegen/client/internal/users"
	"github.com/gin-gonic/gin"
	"github.com/markbates/goth/gothic"
)

// users that already fired a conversion event; the new-user gate is
// enforced here, never client-side
var (
	conversionsMu sync.Mutex
	conversions   = make(map[string]bool)
)

// SignupHandler godoc
// @Summary Create an account
// @Description Register with email and password. Returns a token and user, or a requires_verification response when email verification is on.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignupRequest true "Registration"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /api/v1/auth/signup [post]
func SignupHandler(repo users.Repository, cfg *config.ServerConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SignupRequest

		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		user, err := repo.CreateWithPassword(c.Request.Context(), req.Email, req.Password, req.DisplayName)
		if err == users.ErrEmailTaken {
			errors.Conflict(c, "email already registered")
			return
		}
		if err != nil {
			errors.InternalError(c, "failed to create account", err)
			return
		}

		// verification mode lets the client's pending-verification path
		// be exercised without a mail server
		if os.Getenv("REQUIRE_VERIFICATION") == "true" {
			c.JSON(http.StatusOK, AuthResponse{
				RequiresVerification: true,
				Message:              "Check your inbox to verify your email address",
			})
			return
		}

		token, err := auth.GenerateJWT(cfg.JWTSecret, user.ID, user.Email)
		if err != nil {
			errors.InternalError(c, "failed to generate token", err)
			return
		}

		c.JSON(http.StatusOK, AuthResponse{Token: token, User: user})
	}
}

// LoginHandler godoc
// @Summary Log in
// @Description Authenticate with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /api/v1/auth/login [post]
func LoginHandler(repo users.Repository, cfg *config.ServerConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest

		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		user, err := repo.Authenticate(c.Request.Context(), req.Email, req.Password)
		if err == users.ErrBadCredentials {
			errors.Unauthorized(c, "invalid email or password")
			return
		}
		if err != nil {
			errors.InternalError(c, "login failed", err)
			return
		}

		token, err := auth.GenerateJWT(cfg.JWTSecret, user.ID, user.Email)
		if err != nil {
			errors.InternalError(c, "failed to generate token", err)
			return
		}

		c.JSON(http.StatusOK, AuthResponse{Token: token, User: user})
	}
}

// ResetPasswordHandler godoc
// @Summary Request a password reset
// @Description Always succeeds so the response never leaks whether an email is registered
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ResetPasswordRequest true "Email"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /api/v1/auth/reset-password [post]
func ResetPasswordHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ResetPasswordRequest

		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		logger.Info("password reset requested", "email", req.Email)

		c.JSON(http.StatusOK, MessageResponse{
			Message: "If that address is registered, a reset email is on its way",
		})
	}
}

// GetCurrentUserHandler godoc
// @Summary Get current user
// @Description Get the authenticated user's profile
// @Tags auth
// @Produce json
// @Success 200 {object} users.User
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/v1/auth/me [get]
// @Security BearerAuth
func GetCurrentUserHandler(repo users.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)

		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		user, err := repo.FindByID(c.Request.Context(), userID)
		if err != nil {
			errors.NotFound(c, "user")
			return
		}

		c.JSON(http.StatusOK, user)
	}
}

// UpdateProfileHandler godoc
// @Summary Update profile
// @Description Update the authenticated user's display name
// @Tags auth
// @Accept json
// @Produce json
// @Param request body UpdateProfileRequest true "Profile update"
// @Success 200 {object} users.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/v1/auth/me [put]
// @Security BearerAuth
func UpdateProfileHandler(repo users.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		var req UpdateProfileRequest

		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		user, err := repo.UpdateProfile(c.Request.Context(), userID, req.DisplayName)
		if err != nil {
			errors.InternalError(c, "failed to update profile", err)
			return
		}

		c.JSON(http.StatusOK, user)
	}
}

// BeginOAuthHandler godoc
// @Summary Start OAuth authentication
// @Description Begin the OAuth flow with the given provider. The fake provider short-circuits the provider leg for offline development; its mode parameter picks the return shape (code, token, fragment, error).
// @Tags auth
// @Param provider path string true "OAuth provider" Enums(google, github, twitter, facebook, fake)
// @Param redirect_uri query string true "Where the provider leg lands afterwards"
// @Param mode query string false "Fake provider return shape" Enums(code, token, fragment, error)
// @Success 302 {string} string "Redirect to OAuth provider"
// @Failure 400 {object} errors.ErrorResponse
// @Router /api/v1/auth/oauth/{provider} [get]
func BeginOAuthHandler(repo users.Repository, codeStore *codes.Store, cfg *config.ServerConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		provider := c.Param("provider")
		redirectURI := c.Query("redirect_uri")

		if !isValidProvider(provider) {
			errors.BadRequest(c, "invalid provider", nil)
			return
		}

		if redirectURI == "" {
			errors.BadRequest(c, "redirect_uri is required", nil)
			return
		}

		if provider == "fake" {
			fakeProviderReturn(c, repo, codeStore, cfg, redirectURI)
			return
		}

		// the callback leg needs the original redirect_uri
		if err := gothic.StoreInSession("redirect_uri", redirectURI, c.Request, c.Writer); err != nil {
			errors.InternalError(c, "failed to store oauth state", err)
			return
		}

		// set provider in query for gothic
		q := c.Request.URL.Query()
		q.Add("provider", provider)
		c.Request.URL.RawQuery = q.Encode()

		gothic.BeginAuthHandler(c.Writer, c.Request)
	}
}

// CallbackHandler godoc
// @Summary OAuth provider callback
// @Description Completes the provider leg, issues a one-time authorization code, and redirects back to the client's redirect_uri
// @Tags auth
// @Param provider path string true "OAuth provider" Enums(google, github, twitter, facebook)
// @Success 302 {string} string "Redirect back to the client with ?code="
// @Failure 400 {object} errors.ErrorResponse
// @Router /api/v1/auth/oauth/{provider}/callback [get]
func CallbackHandler(repo users.Repository, codeStore *codes.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		provider := c.Param("provider")

		redirectURI, err := gothic.GetFromSession("redirect_uri", c.Request)
		if err != nil || redirectURI == "" {
			errors.BadRequest(c, "missing oauth state", err)
			return
		}

		q := c.Request.URL.Query()
		q.Add("provider", provider)
		c.Request.URL.RawQuery = q.Encode()

		gothUser, err := gothic.CompleteUserAuth(c.Writer, c.Request)
		if err != nil {
			redirectWithError(c, redirectURI, "provider_error", err.Error())
			return
		}

		user, created, err := repo.FindOrCreateByProvider(
			c.Request.Context(),
			gothUser.Provider,
			gothUser.UserID,
			gothUser.Email,
			gothUser.Name,
			gothUser.AvatarURL,
		)

		if err != nil {
			redirectWithError(c, redirectURI, "server_error", "failed to create user")
			return
		}

		code, err := codeStore.Issue(user.ID, redirectURI, created)
		if err != nil {
			redirectWithError(c, redirectURI, "server_error", "failed to issue code")
			return
		}

		c.Redirect(http.StatusFound, redirectURI+"?code="+url.QueryEscape(code))
	}
}

// ExchangeHandler godoc
// @Summary Exchange an authorization code
// @Description Redeems a one-time authorization code for a token. redirect_to must match the URI the code was issued against.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ExchangeRequest true "Code and redirect URI"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /api/v1/auth/oauth/exchange [post]
func ExchangeHandler(repo users.Repository, codeStore *codes.Store, cfg *config.ServerConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ExchangeRequest

		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		grant, err := codeStore.Redeem(req.Code, req.RedirectTo)
		if err != nil {
			errors.Unauthorized(c, "invalid or expired authorization code")
			return
		}

		user, err := repo.FindByID(c.Request.Context(), grant.UserID)
		if err != nil {
			errors.InternalError(c, "failed to load user", err)
			return
		}

		token, err := auth.GenerateJWT(cfg.JWTSecret, user.ID, user.Email)
		if err != nil {
			errors.InternalError(c, "failed to generate token", err)
			return
		}

		c.JSON(http.StatusOK, AuthResponse{
			Token:   token,
			User:    user,
			NewUser: grant.NewUser,
		})
	}
}

// CompleteRegistrationHandler godoc
// @Summary Record a registration conversion
// @Description Accepts the pre-redirect browser context. The event fires at most once per account; the gate lives here, not in the client.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body CompleteRegistrationRequest true "Tracking payload"
// @Success 200 {object} CompleteRegistrationResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /api/v1/auth/oauth/complete-registration [post]
// @Security BearerAuth
func CompleteRegistrationHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		var req CompleteRegistrationRequest

		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		conversionsMu.Lock()
		fired := !conversions[userID]
		conversions[userID] = true
		conversionsMu.Unlock()

		if fired {
			logger.Info("registration conversion recorded",
				"user_id", userID,
				"source", req.Source,
				"has_fbp", req.FBP != nil,
				"has_fbc", req.FBC != nil,
			)
		}

		c.JSON(http.StatusOK, CompleteRegistrationResponse{EventFired: fired})
	}
}

// completes the whole provider round trip locally. the mode parameter
// picks which return shape lands on the redirect_uri so every client
// branch can be exercised offline.
func fakeProviderReturn(c *gin.Context, repo users.Repository, codeStore *codes.Store, cfg *config.ServerConfig, redirectURI string) {
	mode := c.DefaultQuery("mode", "code")

	if mode == "error" {
		redirectWithError(c, redirectURI, "access_denied", "user cancelled the request")
		return
	}

	user, created, err := repo.FindOrCreateByProvider(
		c.Request.Context(),
		"fake", "fake-1",
		"fake@framegen.dev", "Fake User", "",
	)

	if err != nil {
		redirectWithError(c, redirectURI, "server_error", "failed to create user")
		return
	}

	switch mode {
	case "token", "fragment":
		token, err := auth.GenerateJWT(cfg.JWTSecret, user.ID, user.Email)
		if err != nil {
			redirectWithError(c, redirectURI, "server_error", "failed to generate token")
			return
		}

		sep := "?"
		if mode == "fragment" {
			sep = "#"
		}

		c.Redirect(http.StatusFound, redirectURI+sep+"access_token="+url.QueryEscape(token))

	default:
		code, err := codeStore.Issue(user.ID, redirectURI, created)
		if err != nil {
			redirectWithError(c, redirectURI, "server_error", "failed to issue code")
			return
		}

		c.Redirect(http.StatusFound, redirectURI+"?code="+url.QueryEscape(code))
	}
}

func redirectWithError(c *gin.Context, redirectURI, code, description string) {
	v := url.Values{}
	v.Set("error", code)
	v.Set("error_description", description)

	c.Redirect(http.StatusFound, redirectURI+"?"+v.Encode())
}

func isValidProvider(provider string) bool {
	validProviders := []string{"google", "github", "twitter", "facebook", "fake"}
	return slices.Contains(validProviders, provider)
}
