package api

import "context"

// creates an account. a requires_verification response is not an error:
// no session exists yet, but the caller should surface the message.
func (c *Client) Signup(ctx context.Context, email, password, displayName string) (*AuthResponse, error) {
	var resp AuthResponse

	err := c.Post(ctx, "/auth/signup", signupRequest{
		Email:       email,
		Password:    password,
		DisplayName: displayName,
	}, &resp)

	if err != nil {
		return nil, err
	}

	return &resp, nil
}

// authenticates with email and password
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	var resp AuthResponse

	err := c.Post(ctx, "/auth/login", loginRequest{
		Email:    email,
		Password: password,
	}, &resp)

	if err != nil {
		return nil, err
	}

	return &resp, nil
}

// requests a password reset email
func (c *Client) ResetPassword(ctx context.Context, email string) error {
	return c.Post(ctx, "/auth/reset-password", resetPasswordRequest{Email: email}, nil)
}

// fetches the current user's profile
func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User

	if err := c.Get(ctx, "/auth/me", &user); err != nil {
		return nil, err
	}

	return &user, nil
}

// updates the current user's display name
func (c *Client) UpdateProfile(ctx context.Context, displayName string) (*User, error) {
	var user User

	err := c.Put(ctx, "/auth/me", updateProfileRequest{DisplayName: displayName}, &user)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// exchanges a one-time authorization code for a session credential.
// redirectTo must match the redirect URI of the outbound authorization
// request byte for byte.
func (c *Client) ExchangeCode(ctx context.Context, code, redirectTo string) (*AuthResponse, error) {
	var resp AuthResponse

	err := c.Post(ctx, "/auth/oauth/exchange", exchangeRequest{
		Code:       code,
		RedirectTo: redirectTo,
	}, &resp)

	if err != nil {
		return nil, err
	}

	return &resp, nil
}

// forwards the pre-redirect browser context after an OAuth return trip.
// the backend owns the new-vs-existing-user decision; the client always
// sends the signal and reports whether a conversion event fired.
func (c *Client) CompleteRegistration(ctx context.Context, signal RegistrationSignal) (bool, error) {
	var resp completeRegistrationResponse

	if err := c.Post(ctx, "/auth/oauth/complete-registration", signal, &resp); err != nil {
		return false, err
	}

	return resp.EventFired, nil
}
