package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	defaultEndpoint     = "http://localhost:8080"
	defaultCallbackPort = 8089
)

// loads client configuration from environment variables
func LoadClient() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		_ = err // not an error - production environments may not have .env file
	}

	endpoint := os.Getenv("FRAMEGEN_API_ENDPOINT")
	if endpoint == "" {
		endpoint = defaultEndpoint
	}

	profileDir := os.Getenv("FRAMEGEN_PROFILE_DIR")
	if profileDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot determine home directory: %w", err)
		}
		profileDir = filepath.Join(home, ".config", "framegen")
	}

	if err := os.MkdirAll(profileDir, 0o700); err != nil {
		return nil, fmt.Errorf("cannot create profile directory: %w", err)
	}

	port := defaultCallbackPort
	if raw := os.Getenv("FRAMEGEN_CALLBACK_PORT"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("FRAMEGEN_CALLBACK_PORT must be a number: %w", err)
		}
		port = parsed
	}

	environment := os.Getenv("FRAMEGEN_ENV")
	if environment == "" {
		environment = "development"
	}

	return &Config{
		APIEndpoint:  endpoint,
		ProfileDir:   profileDir,
		Environment:  environment,
		CallbackPort: port,
	}, nil
}

// loads devserver configuration from environment variables
func LoadServer() (*ServerConfig, error) {
	if err := godotenv.Load(); err != nil {
		_ = err // not an error - production environments may not have .env file
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	sessionSecret := os.Getenv("SESSION_SECRET")
	baseURL := os.Getenv("BASE_URL")
	environment := os.Getenv("FRAMEGEN_ENV")

	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	if sessionSecret == "" {
		return nil, fmt.Errorf("SESSION_SECRET environment variable is required")
	}

	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	if environment == "" {
		environment = "development"
	}

	clientOrigin := os.Getenv("CLIENT_ORIGIN")
	if clientOrigin == "" {
		clientOrigin = "http://localhost:3000"
	}

	return &ServerConfig{
		JWTSecret:     jwtSecret,
		SessionSecret: sessionSecret,
		BaseURL:       baseURL,
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		Environment:   environment,
		ClientOrigin:  clientOrigin,
	}, nil
}
