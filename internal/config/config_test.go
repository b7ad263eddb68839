package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, time.Hour, cfg.AccessTokenTTL)
	assert.Equal(t, 168*time.Hour, cfg.RefreshTokenTTL)
	assert.GreaterOrEqual(t, len(cfg.JWTSecret), 32)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("LISTEN_ADDR", ":9090")
	t.Setenv("ACCESS_TOKEN_TTL", "15m")
	t.Setenv("OAUTH_REDIRECT_URI", "https://app.example.com/oauth")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, ":9090", cfg.ListenAddr)
	assert.Equal(t, 15*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, "https://app.example.com/oauth", cfg.OAuthRedirectURI)
}

func TestLoad_RejectsBadDuration(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_TTL", "not-a-duration")

	_, err := Load()
	require.Error(t, err)
}
