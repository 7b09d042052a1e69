package auth

import "codeberg.org/framegen/client/internal/users"

// AuthResponse is shared by signup, login, and the code exchange
type AuthResponse struct {
	Token                string      `json:"token,omitempty"`
	User                 *users.User `json:"user,omitempty"`
	RequiresVerification bool        `json:"requires_verification,omitempty"`
	Message              string      `json:"message,omitempty"`
	NewUser              bool        `json:"new_user,omitempty"`
}

// MessageResponse for simple success messages
type MessageResponse struct {
	Message string `json:"message"`
}

// SignupRequest creates a password account
type SignupRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	DisplayName string `json:"display_name" binding:"required,max=100"`
}

// LoginRequest authenticates a password account
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ResetPasswordRequest asks for a reset email
type ResetPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// UpdateProfileRequest for updating the display name
type UpdateProfileRequest struct {
	DisplayName string `json:"display_name" binding:"required,max=100"`
}

// ExchangeRequest redeems a one-time authorization code. RedirectTo
// must match the redirect URI the code was issued against byte for
// byte.
type ExchangeRequest struct {
	Code       string `json:"code" binding:"required"`
	RedirectTo string `json:"redirect_to" binding:"required"`
}

// CompleteRegistrationRequest carries the pre-redirect browser context
// for conversion attribution. Source says whether the payload was
// captured before the redirect ("stored") or rebuilt after ("live").
type CompleteRegistrationRequest struct {
	FBP       *string `json:"fbp"`
	FBC       *string `json:"fbc"`
	UserAgent string  `json:"user_agent"`
	Referrer  *string `json:"referrer"`
	Source    string  `json:"source"`
}

// CompleteRegistrationResponse reports whether a conversion event fired
type CompleteRegistrationResponse struct {
	EventFired bool `json:"event_fired"`
}
