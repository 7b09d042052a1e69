package users

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres-backed repository, used when DATABASE_URL is set
type PostgresRepository struct {
	db *pgxpool.Pool
}

// creates a repository over the given pool
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CreateWithPassword(ctx context.Context, email, password, displayName string) (*User, error) {
	email = strings.ToLower(email)

	var existing User
	err := scanUser(r.db.QueryRow(ctx, queryFindByEmail, email), &existing)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	var user User
	err = scanUser(r.db.QueryRow(
		ctx,
		queryInsertWithPassword,
		uuid.New().String(),
		email,
		displayName,
		hash,
		defaultCredits,
		defaultPlanName,
		defaultCredits,
	), &user)

	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *PostgresRepository) Authenticate(ctx context.Context, email, password string) (*User, error) {
	email = strings.ToLower(email)

	var user User
	err := scanUser(r.db.QueryRow(ctx, queryFindByEmail, email), &user)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrBadCredentials
	}
	if err != nil {
		return nil, err
	}

	if user.PasswordHash == "" || !checkPassword(user.PasswordHash, password) {
		return nil, ErrBadCredentials
	}

	return &user, nil
}

func (r *PostgresRepository) FindOrCreateByProvider(ctx context.Context, provider, providerID, email, name, avatarURL string) (*User, bool, error) {
	email = strings.ToLower(email)

	var existing User
	err := scanUser(r.db.QueryRow(ctx, queryFindByProvider, provider, providerID), &existing)
	created := errors.Is(err, pgx.ErrNoRows)
	if err != nil && !created {
		return nil, false, err
	}

	var user User
	err = scanUser(r.db.QueryRow(
		ctx,
		queryInsertFromProvider,
		uuid.New().String(),
		email,
		name,
		avatarURL,
		provider,
		providerID,
		defaultCredits,
		defaultPlanName,
		defaultCredits,
	), &user)

	if err != nil {
		return nil, false, err
	}

	return &user, created, nil
}

func (r *PostgresRepository) FindByID(ctx context.Context, userID string) (*User, error) {
	var user User

	err := scanUser(r.db.QueryRow(ctx, queryFindByID, userID), &user)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *PostgresRepository) UpdateProfile(ctx context.Context, userID, displayName string) (*User, error) {
	var user User

	err := scanUser(r.db.QueryRow(ctx, queryUpdateProfile, displayName, userID), &user)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func scanUser(row pgx.Row, user *User) error {
	return row.Scan(
		&user.ID,
		&user.Email,
		&user.DisplayName,
		&user.AvatarURL,
		&user.Provider,
		&user.ProviderID,
		&user.PasswordHash,
		&user.Credits,
		&user.PlanName,
		&user.PlanInterval,
		&user.MonthlyCredits,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
}
