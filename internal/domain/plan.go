package domain

import "fmt"

// Plan is the billing plan of a user as reported by the session provider.
type Plan string

const (
	PlanFree Plan = "FREE"
	PlanPro  Plan = "PRO"
)

// ItemKind is the kind of profile item guarded by quotas and ordering.
type ItemKind string

const (
	KindLink   ItemKind = "link"
	KindSocial ItemKind = "social"
)

const (
	MaxFreeLinks   = 10
	MaxFreeSocials = 6

	FreeMetricsWindowDays = 30
	ProMetricsWindowDays  = 365
)

// ParsePlan maps a raw claim value to a Plan. Anything unknown is Free.
func ParsePlan(raw string) Plan {
	if Plan(raw) == PlanPro {
		return PlanPro
	}
	return PlanFree
}

// IsPro reports whether the plan lifts quota limits.
func (p Plan) IsPro() bool {
	return p == PlanPro
}

// Limit returns the maximum number of items of kind for the plan.
// A nil result means unlimited.
func (p Plan) Limit(kind ItemKind) *int {
	if p.IsPro() {
		return nil
	}
	var limit int
	switch kind {
	case KindLink:
		limit = MaxFreeLinks
	case KindSocial:
		limit = MaxFreeSocials
	default:
		return nil
	}
	return &limit
}

// MetricsWindowDays returns the longest analytics window the plan may query.
func (p Plan) MetricsWindowDays() int {
	if p.IsPro() {
		return ProMetricsWindowDays
	}
	return FreeMetricsWindowDays
}

// QuotaError is returned by CheckQuota when the plan limit is reached.
type QuotaError struct {
	Kind  ItemKind
	Limit int
	Plan  Plan
}

func (e *QuotaError) Error() string {
	return fmt.Sprintf("%s limit reached (%d on %s plan)", e.Kind, e.Limit, e.Plan)
}

func (e *QuotaError) Unwrap() error {
	return ErrQuotaExceeded
}

// CheckQuota decides whether one more item of kind may be created when the
// profile currently holds currentCount of them.
func CheckQuota(kind ItemKind, currentCount int, plan Plan) error {
	limit := plan.Limit(kind)
	if limit == nil {
		return nil // unlimited
	}
	if currentCount >= *limit {
		return &QuotaError{Kind: kind, Limit: *limit, Plan: plan}
	}
	return nil
}

// SessionUser is the authenticated caller as reported by the session provider.
type SessionUser struct {
	ID   string
	Plan Plan
}
