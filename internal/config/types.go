package config

// client-side configuration shared by the CLI and TUI
type Config struct {
	APIEndpoint string
	ProfileDir  string
	Environment string

	// port for the loopback OAuth callback listener
	CallbackPort int
}

// devserver configuration
type ServerConfig struct {
	JWTSecret     string
	SessionSecret string
	BaseURL       string
	DatabaseURL   string
	Environment   string

	// where the web client (or CLI loopback) lives, for CORS
	ClientOrigin string
}
