package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, 60, cfg.JWTTTLMinutes)
	assert.Equal(t, time.Hour, cfg.TokenTTL())
	assert.Equal(t, "access_token", cfg.CookieName)
	assert.Equal(t, "local", cfg.AppEnv)
	assert.False(t, cfg.SecureCookies())
}

func TestFromEnvProductionCookies(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("APP_ENV", "Production")
	t.Setenv("JWT_TTL", "15")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.True(t, cfg.SecureCookies())
	assert.Equal(t, 15*time.Minute, cfg.TokenTTL())
}

func TestFromEnvRejectsInvalidValues(t *testing.T) {
	cases := map[string]map[string]string{
		"missing secret": {"JWT_SECRET": ""},
		"short secret":   {"JWT_SECRET": "pendek"},
		"bad ttl":        {"JWT_SECRET": testSecret, "JWT_TTL": "sejam"},
		"zero ttl":       {"JWT_SECRET": testSecret, "JWT_TTL": "0"},
		"half admin":     {"JWT_SECRET": testSecret, "ADMIN_USERNAME": "admin"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}
