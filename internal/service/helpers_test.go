package service

import (
	"LinkHub-Backend/internal/domain"
	"LinkHub-Backend/internal/identity"
	"LinkHub-Backend/internal/repository/memory"
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testEnv struct {
	store      *memory.MemStorage
	profiles   *ProfileService
	links      *LinkService
	socials    *SocialService
	ordering   *OrderingService
	engagement *EngagementService
	analytics  *AnalyticsService
}

type stubClassifier struct{ device string }

func (c stubClassifier) Classify(string) string { return c.device }

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	log := zap.NewNop()
	store := memory.New()
	ordering := NewOrderingService(store, log)

	return &testEnv{
		store:      store,
		profiles:   NewProfileService(store, log),
		links:      NewLinkService(store, ordering, log),
		socials:    NewSocialService(store, ordering, log),
		ordering:   ordering,
		engagement: NewEngagementService(store, identity.NewHasher("test-secret"), stubClassifier{device: "desktop"}, log),
		analytics:  NewAnalyticsService(store, log),
	}
}

func (e *testEnv) createProfile(t *testing.T, user domain.SessionUser, handle string) *domain.Profile {
	t.Helper()
	profile, err := e.profiles.Create(context.Background(), user, CreateProfileInput{Handle: handle})
	require.NoError(t, err)
	return profile
}

func (e *testEnv) createLinks(t *testing.T, user domain.SessionUser, n int) []*domain.Link {
	t.Helper()
	links := make([]*domain.Link, 0, n)
	for i := 0; i < n; i++ {
		link, err := e.links.Create(context.Background(), user, LinkInput{
			Label: fmt.Sprintf("Link %d", i),
			URL:   fmt.Sprintf("https://example.com/%d", i),
		})
		require.NoError(t, err)
		links = append(links, link)
	}
	return links
}

// sortsByID returns the current sort value of every link of the profile.
func (e *testEnv) sortsByID(t *testing.T, profileID string) map[string]int {
	t.Helper()
	links, err := e.store.ListLinks(context.Background(), profileID)
	require.NoError(t, err)
	sorts := make(map[string]int, len(links))
	for _, l := range links {
		sorts[l.ID] = l.Sort
	}
	return sorts
}
