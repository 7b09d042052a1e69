package main

import (
	"codeberg.org/framegen/client/internal/codes"
	"codeberg.org/framegen/client/internal/config"
	"codeberg.org/framegen/client/internal/users"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// holds all dependencies and state for the development server
type Server struct {
	// nil when running on the in-memory repository
	db *pgxpool.Pool

	config    *config.ServerConfig
	userRepo  users.Repository
	codeStore *codes.Store
	router    *gin.Engine
}
