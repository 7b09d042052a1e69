package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"codeberg.org/framegen/client/internal/auth"
	"codeberg.org/framegen/client/internal/config"
	"codeberg.org/framegen/client/internal/logger"
)

// @title Framegen Dev API
// @version 1.0
// @description Development stub of the Framegen backend contract
// @description
// @description Features:
// @description - Email/password signup and login
// @description - OAuth authentication (google, github, twitter, facebook) plus an offline fake provider
// @description - One-time authorization code exchange
// @description - Registration conversion recording
// @description - Billing plan catalog with stub checkout/portal sessions

// @contact.name API Support
// @contact.url https://codeberg.org/framegen/client

// @host localhost:8080

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authenticated requests. Format: Bearer {token}

func main() {
	logger.Info("starting framegen devserver")

	// load configuration from environment
	cfg, err := config.LoadServer()
	if err != nil {
		logger.Fatal("failed to load configuration", "error", err)
	}

	// initialize OAuth providers
	if err := auth.InitializeProviders(cfg); err != nil {
		logger.Fatal("failed to initialize OAuth providers", "error", err)
	}

	// bounds background work owned by the server, released on shutdown
	serverCtx, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()

	// create server with all dependencies
	srv, err := NewServer(serverCtx, cfg)
	if err != nil {
		logger.Fatal("failed to create server", "error", err)
	}

	// get port from environment or use default
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%s", port),
		Handler:      srv.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// start server in goroutine
	go func() {
		logger.Info("server listening", "port", port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed to start", "error", err)
		}
	}()

	// wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	// graceful shutdown with 10 second timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	// close database connection if one was opened
	if srv.db != nil {
		srv.db.Close()
	}

	logger.Info("server stopped")
}
