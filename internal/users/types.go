package users

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound       = errors.New("user not found")
	ErrEmailTaken     = errors.New("email already registered")
	ErrBadCredentials = errors.New("invalid email or password")
)

// new accounts start on the free tier
const (
	defaultPlanName = "free"
	defaultCredits  = 25
)

// represents an account as the API serves it
type User struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	DisplayName    string    `json:"display_name"`
	AvatarURL      string    `json:"avatar_url"`
	Provider       string    `json:"-"`
	ProviderID     string    `json:"-"`
	PasswordHash   string    `json:"-"`
	Credits        int       `json:"credits"`
	PlanName       string    `json:"plan_name"`
	PlanInterval   string    `json:"plan_interval"`
	MonthlyCredits int       `json:"monthly_credits"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// user storage as the handlers see it
type Repository interface {
	CreateWithPassword(ctx context.Context, email, password, displayName string) (*User, error)
	Authenticate(ctx context.Context, email, password string) (*User, error)

	// returns created=true when the provider identity was seen for the
	// first time. the exchange response's new_user flag comes from this.
	FindOrCreateByProvider(ctx context.Context, provider, providerID, email, name, avatarURL string) (user *User, created bool, err error)

	FindByID(ctx context.Context, userID string) (*User, error)
	UpdateProfile(ctx context.Context, userID, displayName string) (*User, error)
}
