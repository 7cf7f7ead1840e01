package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_EnvOnly(t *testing.T) {
	t.Setenv("ENV", "dev")
	t.Setenv("IP_HASH_SECRET", "pepper")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("RATE_LIMIT_BEACON_REQUESTS", "30")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "pepper", cfg.Tracking.IPHashSecret)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 30, cfg.RateLimit.BeaconRequests)
	assert.Equal(t, ":8080", cfg.HTTPServer.Address)
	assert.Equal(t, 10*time.Second, cfg.HTTPServer.RequestTimeout)
	assert.Equal(t, 15*time.Minute, cfg.Auth.AccessTokenTTL)
	assert.False(t, cfg.Tracking.TrustProxy, "proxy headers are ignored unless enabled")
}

func TestLoad_TrustProxyOptIn(t *testing.T) {
	t.Setenv("TRUST_PROXY", "true")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)
	assert.True(t, cfg.Tracking.TrustProxy)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	content := `
env: local
http_server:
  address: ":9090"
tracking:
  ip_hash_secret: from-file
  trust_proxy: false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, ":9090", cfg.HTTPServer.Address)
	assert.Equal(t, "from-file", cfg.Tracking.IPHashSecret)
	assert.False(t, cfg.Tracking.TrustProxy)
	assert.Equal(t, "linkhub", cfg.Database.DBName)
}
