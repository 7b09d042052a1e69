package users

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// in-memory repository, the default when no DATABASE_URL is set
type MemoryRepository struct {
	mu      sync.Mutex
	byID    map[string]*User
	byEmail map[string]string
}

// creates an empty in-memory repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:    make(map[string]*User),
		byEmail: make(map[string]string),
	}
}

func (r *MemoryRepository) CreateWithPassword(_ context.Context, email, password, displayName string) (*User, error) {
	email = strings.ToLower(email)

	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[email]; exists {
		return nil, ErrEmailTaken
	}

	now := time.Now()
	user := &User{
		ID:             uuid.New().String(),
		Email:          email,
		DisplayName:    displayName,
		PasswordHash:   hash,
		Credits:        defaultCredits,
		PlanName:       defaultPlanName,
		MonthlyCredits: defaultCredits,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	r.byID[user.ID] = user
	r.byEmail[email] = user.ID

	return copyUser(user), nil
}

func (r *MemoryRepository) Authenticate(_ context.Context, email, password string) (*User, error) {
	email = strings.ToLower(email)

	r.mu.Lock()
	defer r.mu.Unlock()

	id, exists := r.byEmail[email]
	if !exists {
		return nil, ErrBadCredentials
	}

	user := r.byID[id]
	if user.PasswordHash == "" || !checkPassword(user.PasswordHash, password) {
		return nil, ErrBadCredentials
	}

	return copyUser(user), nil
}

func (r *MemoryRepository) FindOrCreateByProvider(_ context.Context, provider, providerID, email, name, avatarURL string) (*User, bool, error) {
	email = strings.ToLower(email)

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.byID {
		if user.Provider == provider && user.ProviderID == providerID {
			user.Email = email
			user.DisplayName = name
			user.AvatarURL = avatarURL
			user.UpdatedAt = time.Now()
			return copyUser(user), false, nil
		}
	}

	now := time.Now()
	user := &User{
		ID:             uuid.New().String(),
		Email:          email,
		DisplayName:    name,
		AvatarURL:      avatarURL,
		Provider:       provider,
		ProviderID:     providerID,
		Credits:        defaultCredits,
		PlanName:       defaultPlanName,
		MonthlyCredits: defaultCredits,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	r.byID[user.ID] = user
	r.byEmail[email] = user.ID

	return copyUser(user), true, nil
}

func (r *MemoryRepository) FindByID(_ context.Context, userID string) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, exists := r.byID[userID]
	if !exists {
		return nil, ErrNotFound
	}

	return copyUser(user), nil
}

func (r *MemoryRepository) UpdateProfile(_ context.Context, userID, displayName string) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, exists := r.byID[userID]
	if !exists {
		return nil, ErrNotFound
	}

	user.DisplayName = displayName
	user.UpdatedAt = time.Now()

	return copyUser(user), nil
}

func copyUser(u *User) *User {
	copied := *u
	return &copied
}
