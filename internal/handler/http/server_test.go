package http

import (
	"LinkHub-Backend/internal/auth"
	"LinkHub-Backend/internal/config"
	"LinkHub-Backend/internal/domain"
	"LinkHub-Backend/internal/identity"
	"LinkHub-Backend/internal/repository/memory"
	"LinkHub-Backend/internal/service"
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testServer struct {
	handler http.Handler
	store   *memory.MemStorage
	jwt     *auth.JWTService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	log := zap.NewNop()
	store := memory.New()
	ordering := service.NewOrderingService(store, log)
	jwtService := auth.NewJWTService(&auth.JWTConfig{
		SecretKey:           []byte("test-secret"),
		AccessTokenDuration: time.Minute,
		Issuer:              "LinkHub-Backend",
	})

	cfg := &config.Config{Env: "test"}
	cfg.HTTPServer.Address = ":0"
	cfg.HTTPServer.RequestTimeout = 5 * time.Second
	cfg.RateLimit.BeaconRequests = 1000
	cfg.RateLimit.BeaconWindow = time.Minute
	cfg.CORS.AllowedOrigins = []string{"http://localhost:3000"}

	server := NewServer(cfg, Deps{
		Storage:    store,
		Profiles:   service.NewProfileService(store, log),
		Links:      service.NewLinkService(store, ordering, log),
		Socials:    service.NewSocialService(store, ordering, log),
		Engagement: service.NewEngagementService(store, identity.NewHasher("test"), nil, log),
		Analytics:  service.NewAnalyticsService(store, log),
		JWT:        jwtService,
		Version:    "test",
	}, log)

	return &testServer{handler: server.Handler(), store: store, jwt: jwtService}
}

func (s *testServer) token(t *testing.T, user domain.SessionUser) string {
	t.Helper()
	token, err := s.jwt.GenerateAccessToken(user)
	require.NoError(t, err)
	return token
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) seedProfile(t *testing.T, user domain.SessionUser, handle string) (*domain.Profile, *domain.Link) {
	t.Helper()
	ctx := context.Background()

	profile := &domain.Profile{UserID: user.ID, Handle: handle, DisplayName: handle}
	require.NoError(t, s.store.CreateProfile(ctx, profile))
	link := &domain.Link{ProfileID: profile.ID, Label: "Home", URL: "https://example.com", Enabled: true}
	require.NoError(t, s.store.CreateLink(ctx, link, nil))
	return profile, link
}

func TestBeacon_View(t *testing.T) {
	srv := newTestServer(t)
	profile, _ := srv.seedProfile(t, domain.SessionUser{ID: "user-1"}, "viewed")

	rec := srv.do(t, http.MethodPost, "/api/view", "", map[string]string{"profileId": profile.ID})
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = srv.do(t, http.MethodPost, "/api/view", "", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.do(t, http.MethodPost, "/api/view", "", map[string]string{"profileId": "missing"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	stored, err := srv.store.GetProfile(context.Background(), profile.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stored.Views)
}

func TestBeacon_ClickBodies(t *testing.T) {
	srv := newTestServer(t)
	_, link := srv.seedProfile(t, domain.SessionUser{ID: "user-1"}, "clicked")

	t.Run("json as text/plain", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/click", strings.NewReader(fmt.Sprintf(`{"linkId":%q}`, link.ID)))
		req.Header.Set("Content-Type", "text/plain;charset=UTF-8")
		rec := httptest.NewRecorder()
		srv.handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("form", func(t *testing.T) {
		form := url.Values{"linkId": {link.ID}}
		req := httptest.NewRequest(http.MethodPost, "/api/click", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()
		srv.handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("multipart", func(t *testing.T) {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		require.NoError(t, mw.WriteField("linkId", link.ID))
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/click", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		rec := httptest.NewRecorder()
		srv.handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	stored, err := srv.store.GetLink(context.Background(), link.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stored.Clicks)
	assert.Len(t, srv.store.ClickEvents(), 3)
}

func TestPublicPage_RecordsView(t *testing.T) {
	srv := newTestServer(t)
	profile, link := srv.seedProfile(t, domain.SessionUser{ID: "user-1"}, "visited")

	req := httptest.NewRequest(http.MethodGet, "/p/visited", nil)
	req.Header.Set("Referer", "https://search.example.com/")
	rec := httptest.NewRecorder()
	srv.handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var page service.PublicPage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, profile.ID, page.Profile.ID)
	require.Len(t, page.Links, 1)
	assert.Equal(t, link.ID, page.Links[0].ID)

	events := srv.store.ViewEvents()
	require.Len(t, events, 1)
	require.NotNil(t, events[0].Referrer)
	assert.Equal(t, "https://search.example.com/", *events[0].Referrer)

	rec = srv.do(t, http.MethodGet, "/p/nobody", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLinks_RequireAuth(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodPost, "/api/link", "", map[string]string{"label": "x", "url": "https://example.com"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLinks_QuotaOverHTTP(t *testing.T) {
	srv := newTestServer(t)
	user := domain.SessionUser{ID: "user-1", Plan: domain.PlanFree}
	token := srv.token(t, user)

	rec := srv.do(t, http.MethodPost, "/api/profile", token, map[string]string{"handle": "quota"})
	require.Equal(t, http.StatusCreated, rec.Code)

	for i := 0; i < domain.MaxFreeLinks; i++ {
		rec = srv.do(t, http.MethodPost, "/api/link", token, map[string]string{
			"label": fmt.Sprintf("Link %d", i),
			"url":   fmt.Sprintf("https://example.com/%d", i),
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	rec = srv.do(t, http.MethodPost, "/api/link", token, map[string]string{"label": "extra", "url": "https://example.com/x"})
	require.Equal(t, http.StatusForbidden, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "limit_reached", resp.Code)
}

func TestLinks_MoveAndDelete(t *testing.T) {
	srv := newTestServer(t)
	user := domain.SessionUser{ID: "user-1", Plan: domain.PlanFree}
	token := srv.token(t, user)

	rec := srv.do(t, http.MethodPost, "/api/profile", token, map[string]string{"handle": "mover"})
	require.Equal(t, http.StatusCreated, rec.Code)

	ids := make([]string, 0, 2)
	for i := 0; i < 2; i++ {
		rec = srv.do(t, http.MethodPost, "/api/link", token, map[string]string{"label": "l", "url": "https://example.com"})
		require.Equal(t, http.StatusCreated, rec.Code)
		var resp LinkResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		ids = append(ids, resp.Link.ID)
	}

	rec = srv.do(t, http.MethodPost, "/api/link/"+ids[1]+"/move", token, MoveRequest{Direction: "up"})
	require.Equal(t, http.StatusOK, rec.Code)

	moved, err := srv.store.GetLink(context.Background(), ids[1])
	require.NoError(t, err)
	assert.Equal(t, 0, moved.Sort)

	rec = srv.do(t, http.MethodPost, "/api/link/"+ids[1]+"/move", token, MoveRequest{Direction: "sideways"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = srv.do(t, http.MethodDelete, "/api/link/"+ids[1], token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	remaining, err := srv.store.GetLink(context.Background(), ids[0])
	require.NoError(t, err)
	assert.Equal(t, 0, remaining.Sort)

	rec = srv.do(t, http.MethodDelete, "/api/link/"+ids[1], token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAnalytics_WindowGate(t *testing.T) {
	srv := newTestServer(t)
	user := domain.SessionUser{ID: "user-1", Plan: domain.PlanFree}
	token := srv.token(t, user)
	srv.seedProfile(t, user, "stats")

	rec := srv.do(t, http.MethodGet, "/api/analytics?days=7", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = srv.do(t, http.MethodGet, "/api/analytics?days=365", token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = srv.do(t, http.MethodGet, "/api/analytics?days=abc", token, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestPlans_MarksCurrent(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodGet, "/api/plans", srv.token(t, domain.SessionUser{ID: "u", Plan: domain.PlanPro}), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var plans []PlanResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &plans))
	require.Len(t, plans, 2)
	assert.False(t, plans[0].Current)
	assert.True(t, plans[1].Current)
	assert.Nil(t, plans[1].MaxLinks)
	require.NotNil(t, plans[0].MaxLinks)
	assert.Equal(t, domain.MaxFreeLinks, *plans[0].MaxLinks)
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "test", resp.Version)
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:5555"
	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.2")

	assert.Equal(t, "203.0.113.9", clientIP(req, true))
	assert.Equal(t, "10.0.0.1", clientIP(req, false))

	req.Header.Del("X-Forwarded-For")
	req.Header.Set("X-Real-IP", "198.51.100.4")
	assert.Equal(t, "198.51.100.4", clientIP(req, true))
}
