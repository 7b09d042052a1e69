package billing

import "context"

// a purchasable plan from the backend catalog
type Plan struct {
	Name           string `json:"name"`
	DisplayName    string `json:"display_name"`
	PriceCents     int    `json:"price_cents"`
	Interval       string `json:"interval"`
	MonthlyCredits int    `json:"monthly_credits"`

	// markdown blurb rendered by the TUI
	Description string `json:"description,omitempty"`
}

type plansResponse struct {
	Plans []Plan `json:"plans"`
}

type checkoutRequest struct {
	PlanName string `json:"plan_name"`
}

type sessionURLResponse struct {
	URL string `json:"url"`
}

// generic API surface the billing glue needs
type APIClient interface {
	Get(ctx context.Context, path string, out any) error
	Post(ctx context.Context, path string, body, out any) error
}

// thin client over the billing endpoints. plan selection and payment
// live entirely on the backend; this just fetches and forwards.
type Service struct {
	client APIClient
}

// creates a billing service over the given API client
func NewService(client APIClient) *Service {
	return &Service{client: client}
}

// fetches the plan catalog
func (s *Service) Plans(ctx context.Context) ([]Plan, error) {
	var resp plansResponse

	if err := s.client.Get(ctx, "/billing/plans", &resp); err != nil {
		return nil, err
	}

	return resp.Plans, nil
}

// creates a checkout session for a plan and returns its URL
func (s *Service) CreateCheckoutSession(ctx context.Context, planName string) (string, error) {
	var resp sessionURLResponse

	err := s.client.Post(ctx, "/billing/create-checkout-session", checkoutRequest{PlanName: planName}, &resp)
	if err != nil {
		return "", err
	}

	return resp.URL, nil
}

// creates a customer portal session and returns its URL
func (s *Service) CreatePortalSession(ctx context.Context) (string, error) {
	var resp sessionURLResponse

	if err := s.client.Post(ctx, "/billing/create-portal-session", nil, &resp); err != nil {
		return "", err
	}

	return resp.URL, nil
}
