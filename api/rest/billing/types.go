package billing

// Plan is one entry of the purchasable catalog
type Plan struct {
	Name           string `json:"name"`
	DisplayName    string `json:"display_name"`
	PriceCents     int    `json:"price_cents"`
	Interval       string `json:"interval"`
	MonthlyCredits int    `json:"monthly_credits"`
	Description    string `json:"description,omitempty"`
}

// PlansResponse wraps the catalog
type PlansResponse struct {
	Plans []Plan `json:"plans"`
}

// CheckoutRequest selects a plan by name
type CheckoutRequest struct {
	PlanName string `json:"plan_name" binding:"required"`
}

// SessionURLResponse carries a hosted payment page URL
type SessionURLResponse struct {
	URL string `json:"url"`
}
