package config

import (
	"reflect"
	"testing"
	"time"
)

// clearEnv unsets every variable Load reads so the host environment does not leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "DB_PATH", "STATIC_PATH", "LOG_LEVEL", "JWT_SECRET", "TOKEN_TTL",
		"CORS_ALLOWED_ORIGINS", "REDIS_URL", "SCAN_CACHE_TTL",
		"GEMINI_API_KEY", "GEMINI_MODEL", "GEMINI_BASE_URL", "GEMINI_TIMEOUT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.HTTPAddr() != ":8080" {
		t.Errorf("HTTPAddr = %q, want :8080", cfg.HTTPAddr())
	}
	if cfg.DBPath != "./data/bills.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Errorf("TokenTTL = %v, want 24h", cfg.TokenTTL)
	}
	if cfg.ScanCacheTTL != 7*24*time.Hour {
		t.Errorf("ScanCacheTTL = %v, want 168h", cfg.ScanCacheTTL)
	}
	if !reflect.DeepEqual(cfg.CORSAllowedOrigins, []string{"*"}) {
		t.Errorf("CORSAllowedOrigins = %v, want [*]", cfg.CORSAllowedOrigins)
	}
	if cfg.ScanningEnabled() {
		t.Error("scanning should be disabled without an API key")
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("PORT", ":9090")
	t.Setenv("TOKEN_TTL", "15m")
	t.Setenv("SCAN_CACHE_TTL", "not-a-duration")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("GEMINI_API_KEY", " key ")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"addr", cfg.HTTPAddr(), ":9090"},
		{"token ttl", cfg.TokenTTL, 15 * time.Minute},
		{"malformed ttl falls back", cfg.ScanCacheTTL, 168 * time.Hour},
		{"origins", cfg.CORSAllowedOrigins, []string{"https://a.example", "https://b.example"}},
		{"api key trimmed", cfg.GeminiAPIKey, "key"},
		{"scanning", cfg.ScanningEnabled(), true},
		{"log level", cfg.LogLevel, "debug"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !reflect.DeepEqual(tt.got, tt.want) {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestLoadRequiresSecret(t *testing.T) {
	clearEnv(t)

	if _, err := Load(); err == nil {
		t.Fatal("expected error without JWT_SECRET")
	}
}
