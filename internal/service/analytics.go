package service

import (
	"LinkHub-Backend/internal/domain"
	"LinkHub-Backend/internal/repository"
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultWindowDays = 30
	summaryTopLinks   = 5
)

// AllowedWindows are the analytics windows a dashboard may request.
var AllowedWindows = []int{7, 30, 90, 365}

// Summary is the analytics overview of a profile over a window.
type Summary struct {
	ProfileID      string               `json:"profileId"`
	Days           int                  `json:"days"`
	Since          time.Time            `json:"since"`
	TotalViews     int64                `json:"totalViews"`
	Views          int64                `json:"views"`
	Clicks         int64                `json:"clicks"`
	TopLinks       []domain.LinkStat    `json:"topLinks"`
	ClicksByDevice []domain.DeviceCount `json:"clicksByDevice"`
}

// AnalyticsService answers read-only queries over recorded engagement.
type AnalyticsService struct {
	storage repository.Storage
	owner   *Ownership
	log     *zap.Logger
	now     func() time.Time
}

func NewAnalyticsService(storage repository.Storage, log *zap.Logger) *AnalyticsService {
	return &AnalyticsService{
		storage: storage,
		owner:   NewOwnership(storage),
		log:     log,
		now:     time.Now,
	}
}

// WithClock replaces the time source used to compute windows.
func (s *AnalyticsService) WithClock(now func() time.Time) *AnalyticsService {
	s.now = now
	return s
}

// WindowedCount counts events of kind with timestamp at or after since.
func (s *AnalyticsService) WindowedCount(ctx context.Context, profileID string, kind domain.EventKind, since time.Time) (int64, error) {
	count, err := s.storage.CountEvents(ctx, profileID, kind, since)
	if err != nil {
		return 0, fmt.Errorf("failed to count %s events: %w", kind, err)
	}
	return count, nil
}

// TopLinks ranks the profile's links by clicks, ties broken by sort.
func (s *AnalyticsService) TopLinks(ctx context.Context, profileID string, limit int) ([]domain.LinkStat, error) {
	if limit <= 0 {
		return []domain.LinkStat{}, nil
	}
	stats, err := s.storage.TopLinks(ctx, profileID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get top links: %w", err)
	}
	return stats, nil
}

// ValidateWindow checks days against the allowed windows and the plan.
// Zero selects the default window.
func ValidateWindow(days int, plan domain.Plan) (int, error) {
	if days == 0 {
		days = DefaultWindowDays
	}

	allowed := false
	for _, w := range AllowedWindows {
		if w == days {
			allowed = true
			break
		}
	}
	if !allowed {
		return 0, domain.NewValidationError("days", "must be one of 7, 30, 90, 365")
	}

	if days > plan.MetricsWindowDays() {
		return 0, &domain.ForbiddenError{Reason: fmt.Sprintf("%d day analytics requires Pro", days)}
	}
	return days, nil
}

// Summary builds the dashboard overview for the user's primary profile.
func (s *AnalyticsService) Summary(ctx context.Context, user domain.SessionUser, days int) (*Summary, error) {
	days, err := ValidateWindow(days, user.Plan)
	if err != nil {
		return nil, err
	}

	profile, err := s.owner.PrimaryProfile(ctx, user)
	if err != nil {
		return nil, err
	}

	since := s.now().UTC().Add(-time.Duration(days) * 24 * time.Hour)

	views, err := s.WindowedCount(ctx, profile.ID, domain.EventView, since)
	if err != nil {
		return nil, err
	}
	clicks, err := s.WindowedCount(ctx, profile.ID, domain.EventClick, since)
	if err != nil {
		return nil, err
	}
	top, err := s.TopLinks(ctx, profile.ID, summaryTopLinks)
	if err != nil {
		return nil, err
	}
	devices, err := s.storage.ClicksByDevice(ctx, profile.ID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to get clicks by device: %w", err)
	}

	s.log.Debug("built analytics summary",
		zap.String("profile_id", profile.ID),
		zap.Int("days", days),
		zap.Int64("views", views),
		zap.Int64("clicks", clicks))

	return &Summary{
		ProfileID:      profile.ID,
		Days:           days,
		Since:          since,
		TotalViews:     profile.Views,
		Views:          views,
		Clicks:         clicks,
		TopLinks:       top,
		ClicksByDevice: devices,
	}, nil
}
