package main

import (
	"time"

	"codeberg.org/framegen/client/api/rest/auth"
	"codeberg.org/framegen/client/api/rest/billing"
	"codeberg.org/framegen/client/api/rest/health"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// sets up all API routes and middleware
func RegisterRoutes(router *gin.Engine, server *Server) {
	corsConfig := cors.Config{
		AllowOrigins: []string{server.config.ClientOrigin, "http://127.0.0.1:8089", "http://localhost:8089"},
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		MaxAge:       12 * time.Hour,
	}

	router.Use(cors.New(corsConfig))
	router.GET("/health", health.Handler)

	v1 := router.Group("/api/v1")

	{
		v1.GET("/ping", health.PingHandler)

		auth.RegisterRoutes(v1, server.userRepo, server.codeStore, server.config)
		billing.RegisterRoutes(v1, server.config.JWTSecret)
	}
}
