package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	DatabaseURL          string
	RedisAddr            string
	Port                 string
	AppEnv               string
	JWTSecret            string
	OtelExporterEndpoint string

	GoogleClientID     string
	GoogleClientSecret string
	OAuthRedirectURL   string

	// AllowedOrigins are the browser origins allowed to call the API with credentials.
	AllowedOrigins []string
	SessionTTL     time.Duration
	CookieSecure   bool
	ChatDelay      time.Duration

	RateLimitRPS   float64
	RateLimitBurst int
	// TrustProxyHeaders makes the rate limiter key clients by X-Forwarded-For.
	TrustProxyHeaders bool
}

// IsLocal reports whether the app runs on a developer machine.
func (c Config) IsLocal() bool {
	return c.AppEnv == "local"
}

// Load reads configuration from environment variables.
// It applies defaults for "local" environments but enforces strictness for others.
func Load() (Config, error) {
	cfg := Config{
		Port:                 os.Getenv("PORT"),
		AppEnv:               os.Getenv("APP_ENV"),
		JWTSecret:            os.Getenv("JWT_SECRET"),
		OtelExporterEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		GoogleClientID:       os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret:   os.Getenv("GOOGLE_CLIENT_SECRET"),
		OAuthRedirectURL:     os.Getenv("OAUTH_REDIRECT_URL"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	// Default to production safety if not explicitly set to local
	if cfg.AppEnv == "" {
		cfg.AppEnv = "production"
	}
	if cfg.JWTSecret == "" {
		if cfg.IsLocal() {
			cfg.JWTSecret = "dev-secret-do-not-use-in-prod"
		} else {
			return Config{}, errors.New("JWT_SECRET is required")
		}
	}
	if cfg.GoogleClientID == "" || cfg.GoogleClientSecret == "" {
		if !cfg.IsLocal() {
			return Config{}, errors.New("GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET are required")
		}
	}
	if cfg.OAuthRedirectURL == "" {
		cfg.OAuthRedirectURL = "http://localhost:" + cfg.Port + "/auth/callback"
	}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("DATABASE_URL is required")
	}

	cfg.RedisAddr = os.Getenv("REDIS_ADDR")
	if cfg.RedisAddr == "" {
		return Config{}, errors.New("REDIS_ADDR is required")
	}

	cfg.AllowedOrigins = splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:5173"))

	var err error
	if cfg.SessionTTL, err = getDuration("SESSION_TTL", 24*time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.SessionTTL <= 0 {
		return Config{}, errors.New("SESSION_TTL must be positive")
	}
	if cfg.ChatDelay, err = getDuration("CHAT_DELAY", time.Second); err != nil {
		return Config{}, err
	}
	if cfg.CookieSecure, err = getBool("COOKIE_SECURE", !cfg.IsLocal()); err != nil {
		return Config{}, err
	}
	if cfg.RateLimitRPS, err = getFloat("RATE_LIMIT_RPS", 5); err != nil {
		return Config{}, err
	}
	if cfg.RateLimitBurst, err = getInt("RATE_LIMIT_BURST", 10); err != nil {
		return Config{}, err
	}
	if cfg.TrustProxyHeaders, err = getBool("TRUST_PROXY_HEADERS", false); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s must not be negative", key)
	}
	return d, nil
}

func getBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

func getFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}

func getInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return i, nil
}
