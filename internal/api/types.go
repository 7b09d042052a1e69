package api

// server-owned user profile. the client holds an immutable snapshot
// refreshed by re-fetch, never computed locally.
type User struct {
	ID             string `json:"id"`
	Email          string `json:"email"`
	DisplayName    string `json:"display_name"`
	AvatarURL      string `json:"avatar_url,omitempty"`
	Credits        int    `json:"credits"`
	PlanName       string `json:"plan_name,omitempty"`
	PlanInterval   string `json:"plan_interval,omitempty"`
	MonthlyCredits int    `json:"monthly_credits,omitempty"`
}

// response shape shared by signup, login, and the OAuth code exchange
type AuthResponse struct {
	Token                string `json:"token,omitempty"`
	User                 *User  `json:"user,omitempty"`
	RequiresVerification bool   `json:"requires_verification,omitempty"`
	Message              string `json:"message,omitempty"`
	NewUser              bool   `json:"new_user,omitempty"`
}

// pre-redirect browser context forwarded with the registration-completed
// signal. pointers are nil when the cookie or header was absent.
type RegistrationSignal struct {
	FBP       *string `json:"fbp"`
	FBC       *string `json:"fbc"`
	UserAgent string  `json:"user_agent"`
	Referrer  *string `json:"referrer"`

	// "stored" when the payload was captured before the redirect,
	// "live" when rebuilt from post-redirect cookies
	Source string `json:"source,omitempty"`
}

type signupRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type resetPasswordRequest struct {
	Email string `json:"email"`
}

type updateProfileRequest struct {
	DisplayName string `json:"display_name"`
}

type exchangeRequest struct {
	Code       string `json:"code"`
	RedirectTo string `json:"redirect_to"`
}

type completeRegistrationResponse struct {
	EventFired bool `json:"event_fired"`
}

// error body shapes the backend emits. the Python backend sends a bare
// detail string; newer endpoints send the structured triple.
type errorBody struct {
	Detail  string `json:"detail,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
	Details string `json:"details,omitempty"`
}

// best available human-readable message from an error body
func (b errorBody) message() string {
	if b.Detail != "" {
		return b.Detail
	}

	if b.Message != "" {
		return b.Message
	}

	return ""
}
