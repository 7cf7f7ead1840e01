package service

import (
	"LinkHub-Backend/internal/domain"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateWindow(t *testing.T) {
	tests := []struct {
		name      string
		days      int
		plan      domain.Plan
		want      int
		forbidden bool
		invalid   bool
	}{
		{name: "default", days: 0, plan: domain.PlanFree, want: 30},
		{name: "free week", days: 7, plan: domain.PlanFree, want: 7},
		{name: "free quarter", days: 90, plan: domain.PlanFree, forbidden: true},
		{name: "pro year", days: 365, plan: domain.PlanPro, want: 365},
		{name: "odd window", days: 14, plan: domain.PlanPro, invalid: true},
		{name: "negative", days: -7, plan: domain.PlanPro, invalid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateWindow(tt.days, tt.plan)
			switch {
			case tt.forbidden:
				assert.ErrorIs(t, err, domain.ErrForbidden)
			case tt.invalid:
				var verr *domain.ValidationError
				assert.ErrorAs(t, err, &verr)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestAnalyticsService_TopLinks(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := domain.SessionUser{ID: "user-1", Plan: domain.PlanFree}
	profile := env.createProfile(t, user, "ranked")
	links := env.createLinks(t, user, 3)

	clicks := []int{5, 5, 2}
	for i, n := range clicks {
		for j := 0; j < n; j++ {
			require.NoError(t, env.engagement.RecordClick(ctx, links[i].ID, RequestMeta{}))
		}
	}

	top, err := env.analytics.TopLinks(ctx, profile.ID, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, links[0].ID, top[0].ID)
	assert.Equal(t, links[1].ID, top[1].ID)
	assert.Equal(t, int64(5), top[0].Clicks)

	all, err := env.analytics.TopLinks(ctx, profile.ID, 10)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	none, err := env.analytics.TopLinks(ctx, profile.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestAnalyticsService_WindowedCount(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	profile := env.createProfile(t, domain.SessionUser{ID: "user-1"}, "windowed")

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	env.engagement.WithClock(func() time.Time { return base.Add(-40 * 24 * time.Hour) })
	require.NoError(t, env.engagement.RecordView(ctx, profile.ID, RequestMeta{}))
	env.engagement.WithClock(func() time.Time { return base.Add(-time.Hour) })
	require.NoError(t, env.engagement.RecordView(ctx, profile.ID, RequestMeta{}))
	require.NoError(t, env.engagement.RecordView(ctx, profile.ID, RequestMeta{}))

	count, err := env.analytics.WindowedCount(ctx, profile.ID, domain.EventView, base.Add(-30*24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	count, err = env.analytics.WindowedCount(ctx, profile.ID, domain.EventView, base)
	require.NoError(t, err)
	assert.Zero(t, count)

	count, err = env.analytics.WindowedCount(ctx, profile.ID, domain.EventView, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), count, "a window covering every event returns the total")

	count, err = env.analytics.WindowedCount(ctx, profile.ID, domain.EventClick, time.Time{})
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestAnalyticsService_Summary(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := domain.SessionUser{ID: "user-1", Plan: domain.PlanFree}
	profile := env.createProfile(t, user, "summary")
	link := env.createLinks(t, user, 1)[0]

	require.NoError(t, env.engagement.RecordView(ctx, profile.ID, RequestMeta{}))
	require.NoError(t, env.engagement.RecordClick(ctx, link.ID, RequestMeta{UserAgent: "Mozilla/5.0"}))

	summary, err := env.analytics.Summary(ctx, user, 0)
	require.NoError(t, err)
	assert.Equal(t, profile.ID, summary.ProfileID)
	assert.Equal(t, 30, summary.Days)
	assert.Equal(t, int64(1), summary.TotalViews)
	assert.Equal(t, int64(1), summary.Views)
	assert.Equal(t, int64(1), summary.Clicks)
	require.Len(t, summary.ClicksByDevice, 1)
	assert.Equal(t, "desktop", summary.ClicksByDevice[0].DeviceType)

	_, err = env.analytics.Summary(ctx, user, 365)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = env.analytics.Summary(ctx, domain.SessionUser{ID: "no-profile"}, 7)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
