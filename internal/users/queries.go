package users

const (
	queryInsertWithPassword = `
		INSERT INTO users (id, email, display_name, password_hash, credits, plan_name, monthly_credits)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, email, display_name, avatar_url, provider, provider_id, password_hash, credits, plan_name, plan_interval, monthly_credits, created_at, updated_at
	`

	queryFindByEmail = `
		SELECT id, email, display_name, avatar_url, provider, provider_id, password_hash, credits, plan_name, plan_interval, monthly_credits, created_at, updated_at
		FROM users
		WHERE email = $1
	`

	queryFindByProvider = `
		SELECT id, email, display_name, avatar_url, provider, provider_id, password_hash, credits, plan_name, plan_interval, monthly_credits, created_at, updated_at
		FROM users
		WHERE provider = $1 AND provider_id = $2
	`

	queryInsertFromProvider = `
		INSERT INTO users (id, email, display_name, avatar_url, provider, provider_id, credits, plan_name, monthly_credits)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (provider, provider_id)
		DO UPDATE SET
			email = EXCLUDED.email,
			display_name = EXCLUDED.display_name,
			avatar_url = EXCLUDED.avatar_url,
			updated_at = NOW()
		RETURNING id, email, display_name, avatar_url, provider, provider_id, password_hash, credits, plan_name, plan_interval, monthly_credits, created_at, updated_at
	`

	queryFindByID = `
		SELECT id, email, display_name, avatar_url, provider, provider_id, password_hash, credits, plan_name, plan_interval, monthly_credits, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	queryUpdateProfile = `
		UPDATE users
		SET display_name = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING id, email, display_name, avatar_url, provider, provider_id, password_hash, credits, plan_name, plan_interval, monthly_credits, created_at, updated_at
	`
)
