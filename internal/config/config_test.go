package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ENV", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("RESPONSE_MODE", "")
	t.Setenv("REQUIRE_EMAIL", "")
	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("expected default port, got %s", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Fatalf("expected default env, got %s", cfg.Env)
	}
	if cfg.ResponseMode != "checked" {
		t.Fatalf("expected default response mode checked, got %s", cfg.ResponseMode)
	}
	if !cfg.RequireEmail {
		t.Fatalf("expected email required by default")
	}
	if cfg.RequirePostalCode {
		t.Fatalf("expected postal code not required by default")
	}
	if cfg.GuardTTL != 2*time.Minute {
		t.Fatalf("expected default guard TTL, got %s", cfg.GuardTTL)
	}
	if cfg.IntakeTimeout != 30*time.Second {
		t.Fatalf("expected default intake timeout, got %s", cfg.IntakeTimeout)
	}
	if len(cfg.CORSAllowedOrigins) != 0 {
		t.Fatalf("expected no CORS origins by default, got %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("INTAKE_URL", "https://collector.example.com/exec")
	t.Setenv("RESPONSE_MODE", "Fire-And-Forget")
	t.Setenv("REQUIRE_EMAIL", "false")
	t.Setenv("REQUIRE_POSTAL_CODE", "true")
	t.Setenv("REQUIRE_LAST_NAME_AND_CITY", "true")
	t.Setenv("GUARD_TTL", "45s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://diagnostic-humidite.fr, https://www.diagnostic-humidite.fr")
	t.Setenv("RATE_LIMIT_RPS", "0.5")
	t.Setenv("RATE_LIMIT_BURST", "3")
	cfg := Load()
	if cfg.Port != "9090" {
		t.Fatalf("expected override port, got %s", cfg.Port)
	}
	if cfg.IntakeURL != "https://collector.example.com/exec" {
		t.Fatalf("expected intake URL override, got %s", cfg.IntakeURL)
	}
	if cfg.ResponseMode != "fire-and-forget" {
		t.Fatalf("expected response mode normalized, got %s", cfg.ResponseMode)
	}
	if cfg.RequireEmail {
		t.Fatalf("expected email requirement disabled")
	}
	if !cfg.RequirePostalCode || !cfg.RequireLastNameAndCity {
		t.Fatalf("expected legacy field requirements enabled")
	}
	if cfg.GuardTTL != 45*time.Second {
		t.Fatalf("expected guard TTL override, got %s", cfg.GuardTTL)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://www.diagnostic-humidite.fr" {
		t.Fatalf("expected trimmed CORS origins, got %v", cfg.CORSAllowedOrigins)
	}
	if cfg.RateLimitRPS != 0.5 || cfg.RateLimitBurst != 3 {
		t.Fatalf("expected rate limit overrides, got %v/%d", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
}
