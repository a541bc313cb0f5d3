package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func setRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/test")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("JWT_SECRET", "super-secret")
	t.Setenv("GOOGLE_CLIENT_ID", "client-id")
	t.Setenv("GOOGLE_CLIENT_SECRET", "client-secret")
	for _, k := range []string{"PORT", "APP_ENV", "OAUTH_REDIRECT_URL", "ALLOWED_ORIGINS", "SESSION_TTL", "CHAT_DELAY", "COOKIE_SECURE", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "TRUST_PROXY_HEADERS", "OTEL_EXPORTER_OTLP_ENDPOINT"} {
		t.Setenv(k, "")
	}
}

func TestLoad(t *testing.T) {
	t.Run("success with all values set", func(t *testing.T) {
		setRequired(t)
		t.Setenv("PORT", "9000")
		t.Setenv("APP_ENV", "test")
		t.Setenv("OAUTH_REDIRECT_URL", "https://portal.example.com/auth/callback")
		t.Setenv("ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com,")
		t.Setenv("SESSION_TTL", "2h")
		t.Setenv("CHAT_DELAY", "250ms")
		t.Setenv("COOKIE_SECURE", "false")
		t.Setenv("RATE_LIMIT_RPS", "2.5")
		t.Setenv("RATE_LIMIT_BURST", "4")
		t.Setenv("TRUST_PROXY_HEADERS", "true")

		cfg, err := Load()
		assert.NoError(t, err)
		assert.Equal(t, "postgres://localhost:5432/test", cfg.DatabaseURL)
		assert.Equal(t, "localhost:6379", cfg.RedisAddr)
		assert.Equal(t, "9000", cfg.Port)
		assert.Equal(t, "test", cfg.AppEnv)
		assert.Equal(t, "super-secret", cfg.JWTSecret)
		assert.Equal(t, "https://portal.example.com/auth/callback", cfg.OAuthRedirectURL)
		assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.AllowedOrigins)
		assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
		assert.Equal(t, 250*time.Millisecond, cfg.ChatDelay)
		assert.False(t, cfg.CookieSecure)
		assert.Equal(t, 2.5, cfg.RateLimitRPS)
		assert.Equal(t, 4, cfg.RateLimitBurst)
		assert.True(t, cfg.TrustProxyHeaders)
	})

	t.Run("defaults", func(t *testing.T) {
		setRequired(t)

		cfg, err := Load()
		assert.NoError(t, err)
		assert.Equal(t, "8080", cfg.Port)
		assert.Equal(t, "production", cfg.AppEnv)
		assert.Equal(t, "http://localhost:8080/auth/callback", cfg.OAuthRedirectURL)
		assert.Equal(t, []string{"http://localhost:5173"}, cfg.AllowedOrigins)
		assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
		assert.Equal(t, time.Second, cfg.ChatDelay)
		assert.True(t, cfg.CookieSecure)
		assert.Equal(t, 5.0, cfg.RateLimitRPS)
		assert.Equal(t, 10, cfg.RateLimitBurst)
		assert.False(t, cfg.TrustProxyHeaders)
	})

	t.Run("local env relaxes secrets", func(t *testing.T) {
		setRequired(t)
		t.Setenv("APP_ENV", "local")
		t.Setenv("JWT_SECRET", "")
		t.Setenv("GOOGLE_CLIENT_ID", "")
		t.Setenv("GOOGLE_CLIENT_SECRET", "")

		cfg, err := Load()
		assert.NoError(t, err)
		assert.NotEmpty(t, cfg.JWTSecret)
		assert.False(t, cfg.CookieSecure)
		assert.True(t, cfg.IsLocal())
	})

	t.Run("missing DATABASE_URL", func(t *testing.T) {
		setRequired(t)
		t.Setenv("DATABASE_URL", "")

		_, err := Load()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "DATABASE_URL is required")
	})

	t.Run("missing REDIS_ADDR", func(t *testing.T) {
		setRequired(t)
		t.Setenv("REDIS_ADDR", "")

		_, err := Load()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "REDIS_ADDR is required")
	})

	t.Run("missing JWT_SECRET", func(t *testing.T) {
		setRequired(t)
		t.Setenv("JWT_SECRET", "")

		_, err := Load()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "JWT_SECRET is required")
	})

	t.Run("missing google credentials", func(t *testing.T) {
		setRequired(t)
		t.Setenv("GOOGLE_CLIENT_SECRET", "")

		_, err := Load()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET are required")
	})

	t.Run("zero session ttl", func(t *testing.T) {
		for _, ttl := range []string{"0", "0s"} {
			setRequired(t)
			t.Setenv("SESSION_TTL", ttl)

			_, err := Load()
			assert.ErrorContains(t, err, "SESSION_TTL must be positive")
		}
	})

	t.Run("bad duration", func(t *testing.T) {
		setRequired(t)
		t.Setenv("SESSION_TTL", "forever")

		_, err := Load()
		assert.ErrorContains(t, err, "SESSION_TTL")
	})
}
