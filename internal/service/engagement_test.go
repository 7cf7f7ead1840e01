package service

import (
	"LinkHub-Backend/internal/domain"
	"context"
	"strings"
	"sync"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngagementService_ConcurrentViews(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	profile := env.createProfile(t, domain.SessionUser{ID: "user-1"}, "popular")

	const k = 50
	var wg sync.WaitGroup
	errs := make(chan error, k)
	for i := 0; i < k; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- env.engagement.RecordView(ctx, profile.ID, RequestMeta{IP: "203.0.113.7", UserAgent: "Mozilla/5.0"})
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	stored, err := env.store.GetProfile(ctx, profile.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(k), stored.Views)
	assert.Len(t, env.store.ViewEvents(), k)
}

func TestEngagementService_RecordViewMetadata(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	profile := env.createProfile(t, domain.SessionUser{ID: "user-1"}, "meta")

	err := env.engagement.RecordView(ctx, profile.ID, RequestMeta{
		IP:        "198.51.100.1",
		Referrer:  "https://news.example.com/",
		UserAgent: "Mozilla/5.0",
	})
	require.NoError(t, err)

	events := env.store.ViewEvents()
	require.Len(t, events, 1)
	require.NotNil(t, events[0].IPHash)
	assert.Len(t, *events[0].IPHash, 4)
	require.NotNil(t, events[0].Referrer)
	assert.Equal(t, "https://news.example.com/", *events[0].Referrer)
	assert.Equal(t, "desktop", events[0].DeviceType)

	require.NoError(t, env.engagement.RecordView(ctx, profile.ID, RequestMeta{}))
	events = env.store.ViewEvents()
	require.Len(t, events, 2)
	assert.Nil(t, events[1].IPHash)
	assert.Nil(t, events[1].Referrer)
	assert.Equal(t, domain.DeviceUnknown, events[1].DeviceType)
}

func TestEngagementService_UnknownTargets(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	err := env.engagement.RecordView(ctx, "no-such-profile", RequestMeta{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, env.store.ViewEvents())

	err = env.engagement.RecordClick(ctx, "no-such-link", RequestMeta{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, env.store.ClickEvents())

	var verr *domain.ValidationError
	assert.ErrorAs(t, env.engagement.RecordView(ctx, " ", RequestMeta{}), &verr)
	assert.ErrorAs(t, env.engagement.RecordClick(ctx, "", RequestMeta{}), &verr)
}

func TestEngagementService_ClickStampsProfile(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := domain.SessionUser{ID: "user-1"}
	profile := env.createProfile(t, user, "clicky")
	link := env.createLinks(t, user, 1)[0]

	require.NoError(t, env.engagement.RecordClick(ctx, link.ID, RequestMeta{IP: "192.0.2.10"}))
	require.NoError(t, env.engagement.RecordClick(ctx, link.ID, RequestMeta{IP: "192.0.2.10"}))

	events := env.store.ClickEvents()
	require.Len(t, events, 2)
	for _, e := range events {
		assert.Equal(t, profile.ID, e.ProfileID)
		assert.Equal(t, link.ID, e.LinkID)
	}
	assert.Equal(t, *events[0].IPHash, *events[1].IPHash)

	stored, err := env.store.GetLink(ctx, link.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stored.Clicks)
}

func TestEngagementService_HeaderValuesStayValidUTF8(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	profile := env.createProfile(t, domain.SessionUser{ID: "user-1"}, "unicode")

	longUA := strings.Repeat("a", maxUserAgentLength-1) + "€"
	require.NoError(t, env.engagement.RecordView(ctx, profile.ID, RequestMeta{
		UserAgent: longUA,
		Referrer:  "https://example.com/\xff\xfepath",
	}))

	events := env.store.ViewEvents()
	require.Len(t, events, 1)

	require.NotNil(t, events[0].UserAgent)
	ua := *events[0].UserAgent
	assert.True(t, utf8.ValidString(ua))
	assert.LessOrEqual(t, len(ua), maxUserAgentLength)
	assert.Equal(t, strings.Repeat("a", maxUserAgentLength-1), ua)

	require.NotNil(t, events[0].Referrer)
	assert.True(t, utf8.ValidString(*events[0].Referrer))
	assert.Equal(t, "https://example.com/path", *events[0].Referrer)
}

func TestOptional(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		maxLen int
		want   *string
	}{
		{name: "empty", in: "   ", maxLen: 10, want: nil},
		{name: "only invalid bytes", in: "\xff\xfe", maxLen: 10, want: nil},
		{name: "short ascii", in: " ok ", maxLen: 10, want: ptr("ok")},
		{name: "cut inside rune", in: "ab€", maxLen: 4, want: ptr("ab")},
		{name: "cut on rune boundary", in: "ab€c", maxLen: 5, want: ptr("ab€")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := optional(tt.in, tt.maxLen)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
			assert.True(t, utf8.ValidString(*got))
		})
	}
}

func ptr(s string) *string { return &s }
