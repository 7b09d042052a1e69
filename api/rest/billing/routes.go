package billing

import (
	"codeberg.org/framegen/client/internal/auth"
	"github.com/gin-gonic/gin"
)

// registers all billing routes
func RegisterRoutes(router *gin.RouterGroup, jwtSecret string) {
	billingGroup := router.Group("/billing")
	{
		billingGroup.GET("/plans", PlansHandler())
		billingGroup.POST("/create-checkout-session", auth.AuthMiddleware(jwtSecret), CreateCheckoutSessionHandler())
		billingGroup.POST("/create-portal-session", auth.AuthMiddleware(jwtSecret), CreatePortalSessionHandler())
	}
}
