package config

import (
	"testing"
	"time"
)

func TestLoadRateLimitConfigFloors(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("RATE_LIMIT_REFILL_TOKENS", "-3")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "2s")
	t.Setenv("RATE_LIMIT_TTL", "1s")

	cfg := LoadRateLimitConfig()
	if cfg.Capacity != 1 {
		t.Errorf("Capacity = %d, want floor 1", cfg.Capacity)
	}
	if cfg.RefillTokens != 1 {
		t.Errorf("RefillTokens = %d, want floor 1", cfg.RefillTokens)
	}
	if want := 10 * time.Second; cfg.TTL != want {
		t.Errorf("TTL = %v, want raised to %v (5x interval)", cfg.TTL, want)
	}
}

// The limiter is mounted globally, before authentication, so the
// default key strategy must not involve the user identity.
func TestLoadRateLimitConfigDefaultStrategyIsPreAuth(t *testing.T) {
	t.Setenv("RATE_LIMIT_KEY_STRATEGY", "")
	cfg := LoadRateLimitConfig()
	if cfg.KeyStrategy != "ip_route" {
		t.Errorf("KeyStrategy = %q, want ip_route", cfg.KeyStrategy)
	}

	t.Setenv("RATE_LIMIT_KEY_STRATEGY", "user")
	if cfg := LoadRateLimitConfig(); cfg.KeyStrategy != "user" {
		t.Errorf("KeyStrategy = %q, want env override to win", cfg.KeyStrategy)
	}
}

func TestEnvBool(t *testing.T) {
	t.Setenv("X_BOOL", "yes")
	if !envBool("X_BOOL", false) {
		t.Error(`envBool("yes") should be true`)
	}
	t.Setenv("X_BOOL", "off")
	if envBool("X_BOOL", true) {
		t.Error(`envBool("off") should be false`)
	}
	t.Setenv("X_BOOL", "")
	if !envBool("X_BOOL", true) {
		t.Error("empty env should fall back to default")
	}
}

func TestParseMethods(t *testing.T) {
	m := parseMethods("get, head ,")
	if !m["GET"] || !m["HEAD"] {
		t.Errorf("parseMethods result %v missing entries", m)
	}
	if len(m) != 2 {
		t.Errorf("parseMethods kept empty entries: %v", m)
	}
}

func TestParseDur(t *testing.T) {
	if d := parseDur("30s"); d != 30*time.Second {
		t.Errorf("parseDur(30s) = %v", d)
	}
	if d := parseDur("bogus"); d != time.Second {
		t.Errorf("parseDur fallback = %v, want 1s", d)
	}
}
