package main

import (
	"context"
	"fmt"
	"time"

	"codeberg.org/framegen/client/internal/codes"
	"codeberg.org/framegen/client/internal/config"
	"codeberg.org/framegen/client/internal/logger"
	"codeberg.org/framegen/client/internal/users"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// issued codes only need to survive the hop back to the client
const authCodeTTL = 2 * time.Minute

// creates and configures a new server instance with all dependencies.
// the context bounds the lifetime of background work the server owns.
func NewServer(ctx context.Context, cfg *config.ServerConfig) (*Server, error) {
	var db *pgxpool.Pool
	var userRepo users.Repository

	if cfg.DatabaseURL != "" {
		poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse database config: %w", err)
		}

		// a dev instance never needs more than a handful of connections
		poolConfig.MaxConns = 5
		poolConfig.MinConns = 1
		poolConfig.MaxConnLifetime = 30 * time.Minute
		poolConfig.MaxConnIdleTime = 5 * time.Minute
		poolConfig.HealthCheckPeriod = 1 * time.Minute

		db, err = pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to create database pool: %w", err)
		}

		if err := db.Ping(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to ping database: %w", err)
		}

		userRepo = users.NewPostgresRepository(db)
		logger.Info("using postgres user repository")
	} else {
		userRepo = users.NewMemoryRepository()
		logger.Info("using in-memory user repository")
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	server := &Server{
		db:        db,
		config:    cfg,
		userRepo:  userRepo,
		codeStore: codes.NewStore(ctx, authCodeTTL),
		router:    router,
	}

	RegisterRoutes(router, server)

	return server, nil
}
