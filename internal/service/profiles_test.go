package service

import (
	"LinkHub-Backend/internal/domain"
	"context"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileService_Create(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := domain.SessionUser{ID: "user-1", Plan: domain.PlanFree}

	profile, err := env.profiles.Create(ctx, user, CreateProfileInput{Handle: "  Alice "})
	require.NoError(t, err)
	assert.Equal(t, "alice", profile.Handle)
	assert.Equal(t, "alice", profile.DisplayName)
	assert.Equal(t, domain.DensityComfortable, profile.Density)
	assert.Equal(t, domain.PresetAurora, profile.Theme.Data().Preset)

	_, err = env.profiles.Create(ctx, domain.SessionUser{ID: "user-2"}, CreateProfileInput{Handle: "alice"})
	assert.ErrorIs(t, err, domain.ErrHandleTaken)

	_, err = env.profiles.Create(ctx, user, CreateProfileInput{Handle: "ab"})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "handle")
}

func TestProfileService_PrimaryIsOldest(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := domain.SessionUser{ID: "user-1", Plan: domain.PlanPro}

	first := env.createProfile(t, user, "first")
	env.createProfile(t, user, "second")

	name := "Renamed"
	updated, err := env.profiles.Update(ctx, user, UpdateProfileInput{DisplayName: &name})
	require.NoError(t, err)
	assert.Equal(t, first.ID, updated.ID)

	dashboard, err := env.profiles.Dashboard(ctx, user)
	require.NoError(t, err)
	require.Len(t, dashboard.Profiles, 2)
	assert.Equal(t, first.ID, dashboard.Profiles[0].ID)
	assert.Equal(t, "Renamed", dashboard.Profiles[0].DisplayName)
}

func TestProfileService_VerifiedRequiresPro(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	verified := true

	free := domain.SessionUser{ID: "free", Plan: domain.PlanFree}
	env.createProfile(t, free, "freeuser")
	_, err := env.profiles.Update(ctx, free, UpdateProfileInput{Verified: &verified})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	pro := domain.SessionUser{ID: "pro", Plan: domain.PlanPro}
	env.createProfile(t, pro, "prouser")
	profile, err := env.profiles.Update(ctx, pro, UpdateProfileInput{Verified: &verified})
	require.NoError(t, err)
	assert.True(t, profile.Verified)
}

func TestProfileService_UpdateTheme(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := domain.SessionUser{ID: "user-1", Plan: domain.PlanFree}
	env.createProfile(t, user, "themed")

	profile, err := env.profiles.Update(ctx, user, UpdateProfileInput{Theme: &domain.Theme{Preset: domain.PresetMidnight}})
	require.NoError(t, err)
	assert.Equal(t, domain.PresetMidnight, profile.Theme.Data().Preset)
	assert.NotEmpty(t, profile.Theme.Data().Background)

	_, err = env.profiles.Update(ctx, user, UpdateProfileInput{Theme: &domain.Theme{Preset: "neon"}})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestProfileService_BioNullable(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := domain.SessionUser{ID: "user-1", Plan: domain.PlanFree}
	env.createProfile(t, user, "bio")

	var in UpdateProfileInput
	require.NoError(t, json.Unmarshal([]byte(`{"bio":"hello there"}`), &in))
	profile, err := env.profiles.Update(ctx, user, in)
	require.NoError(t, err)
	require.NotNil(t, profile.Bio)
	assert.Equal(t, "hello there", *profile.Bio)

	in = UpdateProfileInput{}
	require.NoError(t, json.Unmarshal([]byte(`{"displayName":"Bio Person"}`), &in))
	profile, err = env.profiles.Update(ctx, user, in)
	require.NoError(t, err)
	require.NotNil(t, profile.Bio, "absent bio is kept")

	in = UpdateProfileInput{}
	require.NoError(t, json.Unmarshal([]byte(`{"bio":null}`), &in))
	profile, err = env.profiles.Update(ctx, user, in)
	require.NoError(t, err)
	assert.Nil(t, profile.Bio)
}

func TestProfileService_PublicPage(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := domain.SessionUser{ID: "user-1", Plan: domain.PlanFree}
	env.createProfile(t, user, "public")

	now := time.Now()
	start := now.Add(time.Hour)
	end := now.Add(25 * time.Hour)
	disabled := false

	_, err := env.links.Create(ctx, user, LinkInput{Label: "Always", URL: "https://example.com/a"})
	require.NoError(t, err)
	_, err = env.links.Create(ctx, user, LinkInput{Label: "Hidden", URL: "https://example.com/b", Enabled: &disabled})
	require.NoError(t, err)
	_, err = env.links.Create(ctx, user, LinkInput{Label: "Scheduled", URL: "https://example.com/c", StartAt: &start, EndAt: &end})
	require.NoError(t, err)

	page, err := env.profiles.PublicPage(ctx, "PUBLIC")
	require.NoError(t, err)
	require.Len(t, page.Links, 1)
	assert.Equal(t, "Always", page.Links[0].Label)

	env.profiles.WithClock(func() time.Time { return now.Add(2 * time.Hour) })
	page, err = env.profiles.PublicPage(ctx, "public")
	require.NoError(t, err)
	require.Len(t, page.Links, 2)
	assert.Equal(t, "Scheduled", page.Links[1].Label)

	env.profiles.WithClock(func() time.Time { return now.Add(26 * time.Hour) })
	page, err = env.profiles.PublicPage(ctx, "public")
	require.NoError(t, err)
	assert.Len(t, page.Links, 1)

	_, err = env.profiles.PublicPage(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
