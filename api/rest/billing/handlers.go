package billing

import (
	"net/http"

	"codeberg.org/framegen/client/internal/auth"
	"codeberg.org/framegen/client/internal/errors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// static catalog; the production service drives this from its payment
// provider, the stub only needs realistic shapes
var catalog = []Plan{
	{
		Name:           "starter",
		DisplayName:    "Starter",
		PriceCents:     900,
		Interval:       "month",
		MonthlyCredits: 200,
		Description:    "For trying things out. **200 credits** a month, standard queue.",
	},
	{
		Name:           "pro",
		DisplayName:    "Pro",
		PriceCents:     2900,
		Interval:       "month",
		MonthlyCredits: 1000,
		Description:    "For regular creators. **1,000 credits** a month, priority queue, video generation.",
	},
	{
		Name:           "studio",
		DisplayName:    "Studio",
		PriceCents:     9900,
		Interval:       "month",
		MonthlyCredits: 5000,
		Description:    "For teams. **5,000 credits** a month, priority queue, video generation, shared workspaces.",
	},
}

// PlansHandler godoc
// @Summary List plans
// @Description Returns the purchasable plan catalog
// @Tags billing
// @Produce json
// @Success 200 {object} PlansResponse
// @Router /api/v1/billing/plans [get]
func PlansHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, PlansResponse{Plans: catalog})
	}
}

// CreateCheckoutSessionHandler godoc
// @Summary Create a checkout session
// @Description Returns a hosted checkout URL for the selected plan
// @Tags billing
// @Accept json
// @Produce json
// @Param request body CheckoutRequest true "Plan selection"
// @Success 200 {object} SessionURLResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /api/v1/billing/create-checkout-session [post]
// @Security BearerAuth
func CreateCheckoutSessionHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := auth.GetUserID(c); !exists {
			errors.Unauthorized(c, "")
			return
		}

		var req CheckoutRequest

		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		if !planExists(req.PlanName) {
			errors.NotFound(c, "plan")
			return
		}

		c.JSON(http.StatusOK, SessionURLResponse{
			URL: "https://checkout.framegen.dev/session/" + uuid.New().String(),
		})
	}
}

// CreatePortalSessionHandler godoc
// @Summary Create a customer portal session
// @Description Returns a hosted billing portal URL
// @Tags billing
// @Produce json
// @Success 200 {object} SessionURLResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /api/v1/billing/create-portal-session [post]
// @Security BearerAuth
func CreatePortalSessionHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := auth.GetUserID(c); !exists {
			errors.Unauthorized(c, "")
			return
		}

		c.JSON(http.StatusOK, SessionURLResponse{
			URL: "https://checkout.framegen.dev/portal/" + uuid.New().String(),
		})
	}
}

func planExists(name string) bool {
	for _, plan := range catalog {
		if plan.Name == name {
			return true
		}
	}

	return false
}
