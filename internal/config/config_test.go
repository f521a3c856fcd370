package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setAdmin(t *testing.T) {
	t.Helper()
	t.Setenv("ADMIN_USERNAME", "admin")
	t.Setenv("ADMIN_PASSWORD", "secret")
}

func TestLoadDefaults(t *testing.T) {
	setAdmin(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 30*time.Minute, cfg.Session.AdminTTL)
	assert.Equal(t, 8*time.Hour, cfg.Session.UserTTL)
	assert.Equal(t, SessionBackendMemory, cfg.Session.Backend)
	assert.Equal(t, time.Minute, cfg.Session.SweepInterval)
	assert.Equal(t, "0.0.0.0:8001", cfg.App.Addr())
	assert.Equal(t, 30*time.Second, cfg.App.RequestTimeout())
	assert.Contains(t, cfg.CORS.AllowOrigins, "http://localhost:7600")
}

func TestLoadOverrides(t *testing.T) {
	setAdmin(t)
	t.Setenv("SESSION_ADMIN_TTL", "5m")
	t.Setenv("SESSION_USER_TTL", "1h")
	t.Setenv("SESSION_BACKEND", "REDIS")
	t.Setenv("CORS_ALLOW_ORIGINS", "http://a.example, http://b.example ,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5*time.Minute, cfg.Session.AdminTTL)
	assert.Equal(t, time.Hour, cfg.Session.UserTTL)
	assert.Equal(t, SessionBackendRedis, cfg.Session.Backend)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.CORS.AllowOrigins)
}

func TestLoadRequiresAdminCredentials(t *testing.T) {
	t.Setenv("ADMIN_USERNAME", "")
	t.Setenv("ADMIN_PASSWORD", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ADMIN_USERNAME")
	assert.Contains(t, err.Error(), "ADMIN_PASSWORD")
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string][2]string{
		"bad duration":     {"SESSION_USER_TTL", "eight hours"},
		"zero ttl":         {"SESSION_ADMIN_TTL", "0s"},
		"bad backend":      {"SESSION_BACKEND", "memcached"},
		"bad redis db":     {"REDIS_DB", "zero"},
		"bad max conns":    {"POSTGRES_MAX_CONNS", "ten"},
		"bad bcrypt cost":  {"AUTH_BCRYPT_COST", "12.5"},
		"bad timeout":      {"HTTP_REQUEST_TIMEOUT_SECONDS", "30s"},
		"bad migrate flag": {"POSTGRES_RUN_MIGRATIONS", "sometimes"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			setAdmin(t)
			t.Setenv(kv[0], kv[1])
			_, err := Load()
			require.Error(t, err)
			if kv[0] != "SESSION_BACKEND" && kv[0] != "SESSION_ADMIN_TTL" {
				assert.Contains(t, err.Error(), kv[0])
			}
		})
	}
}
