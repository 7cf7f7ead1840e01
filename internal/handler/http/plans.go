package http

import (
	"LinkHub-Backend/internal/auth"
	"LinkHub-Backend/internal/domain"
	"net/http"
)

// PlansHandler handles plan-related HTTP requests
type PlansHandler struct{}

// NewPlansHandler creates a new plans handler
func NewPlansHandler() *PlansHandler {
	return &PlansHandler{}
}

// PlanResponse represents a plan in API responses. Nil limits mean unlimited.
type PlanResponse struct {
	Name          domain.Plan `json:"name"`
	MaxLinks      *int        `json:"maxLinks,omitempty"`
	MaxSocials    *int        `json:"maxSocials,omitempty"`
	AnalyticsDays int         `json:"analyticsDays"`
	VerifiedBadge bool        `json:"verifiedBadge"`
	Current       bool        `json:"current,omitempty"`
}

// ListPlans handles GET /api/plans
//
//	@Summary	List plans and their limits
//	@Tags		Plans
//	@Produce	json
//	@Success	200	{array}	PlanResponse
//	@Router		/api/plans [get]
func (h *PlansHandler) ListPlans(w http.ResponseWriter, r *http.Request) {
	current, signedIn := auth.CurrentUser(r.Context())

	plans := make([]PlanResponse, 0, 2)
	for _, plan := range []domain.Plan{domain.PlanFree, domain.PlanPro} {
		plans = append(plans, PlanResponse{
			Name:          plan,
			MaxLinks:      plan.Limit(domain.KindLink),
			MaxSocials:    plan.Limit(domain.KindSocial),
			AnalyticsDays: plan.MetricsWindowDays(),
			VerifiedBadge: plan.IsPro(),
			Current:       signedIn && current.Plan == plan,
		})
	}

	writeJSON(w, plans, http.StatusOK)
}
