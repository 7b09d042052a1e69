package auth

import (
	"time"

	"codeberg.org/framegen/client/internal/auth"
	"codeberg.org/framegen/client/internal/codes"
	"codeberg.org/framegen/client/internal/config"
	"codeberg.org/framegen/client/internal/users"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	limitergin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// registers all authentication routes
func RegisterRoutes(router *gin.RouterGroup, repo users.Repository, codeStore *codes.Store, cfg *config.ServerConfig) {
	// credential endpoints share one in-memory rate limit
	rate := limiter.Rate{Period: time.Minute, Limit: 30}
	rateLimit := limitergin.NewMiddleware(limiter.New(memory.NewStore(), rate))

	authGroup := router.Group("/auth")
	authGroup.Use(rateLimit)
	{
		authGroup.POST("/signup", SignupHandler(repo, cfg))
		authGroup.POST("/login", LoginHandler(repo, cfg))
		authGroup.POST("/reset-password", ResetPasswordHandler())

		authGroup.GET("/me", auth.AuthMiddleware(cfg.JWTSecret), GetCurrentUserHandler(repo))
		authGroup.PUT("/me", auth.AuthMiddleware(cfg.JWTSecret), UpdateProfileHandler(repo))

		oauthGroup := authGroup.Group("/oauth")
		{
			oauthGroup.GET("/:provider", BeginOAuthHandler(repo, codeStore, cfg))
			oauthGroup.GET("/:provider/callback", CallbackHandler(repo, codeStore))
			oauthGroup.POST("/exchange", ExchangeHandler(repo, codeStore, cfg))
			oauthGroup.POST("/complete-registration", auth.AuthMiddleware(cfg.JWTSecret), CompleteRegistrationHandler())
		}
	}
}
