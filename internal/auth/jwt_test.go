package auth

import (
	"LinkHub-Backend/internal/domain"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestJWT(ttl time.Duration) *JWTService {
	return NewJWTService(&JWTConfig{
		SecretKey:           []byte("test-secret"),
		AccessTokenDuration: ttl,
		Issuer:              "LinkHub-Backend",
	})
}

func TestJWTService_RoundTrip(t *testing.T) {
	svc := newTestJWT(time.Minute)

	token, err := svc.GenerateAccessToken(domain.SessionUser{ID: "user-1", Plan: domain.PlanPro})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, domain.SessionUser{ID: "user-1", Plan: domain.PlanPro}, claims.SessionUser())
}

func TestJWTService_Rejects(t *testing.T) {
	t.Run("expired", func(t *testing.T) {
		svc := newTestJWT(-time.Minute)
		token, err := svc.GenerateAccessToken(domain.SessionUser{ID: "user-1"})
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, err := newTestJWT(time.Minute).GenerateAccessToken(domain.SessionUser{ID: "user-1"})
		require.NoError(t, err)

		other := NewJWTService(&JWTConfig{SecretKey: []byte("other"), AccessTokenDuration: time.Minute, Issuer: "LinkHub-Backend"})
		_, err = other.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := newTestJWT(time.Minute).ValidateToken("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestClaims_UnknownPlanIsFree(t *testing.T) {
	c := &Claims{UserID: "u", Plan: "ENTERPRISE"}
	assert.Equal(t, domain.PlanFree, c.SessionUser().Plan)
}

func TestMiddleware_RequireAuth(t *testing.T) {
	svc := newTestJWT(time.Minute)
	mw := NewMiddleware(svc, zap.NewNop())

	var got domain.SessionUser
	handler := mw.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = CurrentUser(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	t.Run("missing header", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/me", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		token, err := svc.GenerateAccessToken(domain.SessionUser{ID: "user-42", Plan: domain.PlanFree})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "user-42", got.ID)
		assert.Equal(t, domain.PlanFree, got.Plan)
	})
}
