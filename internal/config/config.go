// Package config loads server configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	Port       string
	DBPath     string
	StaticPath string
	LogLevel   string

	JWTSecret string
	TokenTTL  time.Duration

	CORSAllowedOrigins []string

	// RedisURL enables the receipt scan cache when set.
	RedisURL     string
	ScanCacheTTL time.Duration

	// GeminiAPIKey enables receipt scanning when set.
	GeminiAPIKey  string
	GeminiModel   string
	GeminiBaseURL string
	GeminiTimeout time.Duration
}

// Load reads configuration from environment variables and an optional .env file.
// Variables already set in the environment win over the file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", func(s string) string { return s }), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := &Config{
		Port:               valueOrDefault(k.String("PORT"), "8080"),
		DBPath:             valueOrDefault(k.String("DB_PATH"), "./data/bills.db"),
		StaticPath:         valueOrDefault(k.String("STATIC_PATH"), "../frontend/static"),
		LogLevel:           valueOrDefault(k.String("LOG_LEVEL"), "info"),
		JWTSecret:          k.String("JWT_SECRET"),
		TokenTTL:           parseDuration(k.String("TOKEN_TTL"), "24h"),
		CORSAllowedOrigins: splitAndTrim(valueOrDefault(k.String("CORS_ALLOWED_ORIGINS"), "*")),
		RedisURL:           strings.TrimSpace(k.String("REDIS_URL")),
		ScanCacheTTL:       parseDuration(k.String("SCAN_CACHE_TTL"), "168h"),
		GeminiAPIKey:       strings.TrimSpace(k.String("GEMINI_API_KEY")),
		GeminiModel:        k.String("GEMINI_MODEL"),
		GeminiBaseURL:      k.String("GEMINI_BASE_URL"),
		GeminiTimeout:      parseDuration(k.String("GEMINI_TIMEOUT"), "60s"),
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	return cfg, nil
}

// HTTPAddr returns the address the HTTP server should bind to.
func (c *Config) HTTPAddr() string {
	port := strings.TrimSpace(c.Port)
	if strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}

// ScanningEnabled reports whether a receipt extractor can be built.
func (c *Config) ScanningEnabled() bool {
	return c.GeminiAPIKey != ""
}

func splitAndTrim(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func valueOrDefault(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

// parseDuration falls back on empty or malformed values.
func parseDuration(value, fallback string) time.Duration {
	d, err := time.ParseDuration(valueOrDefault(value, fallback))
	if err != nil {
		d, _ = time.ParseDuration(fallback)
	}
	return d
}
