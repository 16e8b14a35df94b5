package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/ldiadam/kitabooking/internal/config"
)

func rateTestContext(t *testing.T) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/venues", nil)
	req.RemoteAddr = "203.0.113.7:4711"
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/v1/venues")
	return c
}

func TestBuildRateKeyStrategies(t *testing.T) {
	cases := []struct {
		strategy string
		want     string
	}{
		{"ip", "kb:rl:ip:203.0.113.7"},
		{"route", "kb:rl:route:GET /v1/venues"},
		{"ip_route", "kb:rl:ip:203.0.113.7:route:GET /v1/venues"},
		{"user", "kb:rl:user:anon"},
		{"ip_user", "kb:rl:ip:203.0.113.7:user:anon"},
	}
	for _, tc := range cases {
		t.Run(tc.strategy, func(t *testing.T) {
			cfg := config.RateLimitConfig{Prefix: "kb:rl", KeyStrategy: tc.strategy}
			if got := buildRateKey(cfg, rateTestContext(t)); got != tc.want {
				t.Errorf("buildRateKey(%s) = %q, want %q", tc.strategy, got, tc.want)
			}
		})
	}
}

// Pre-auth traffic has no user in the context.  User-based strategies
// collapse every caller into one shared "anon" bucket, which is why the
// global limiter defaults to ip_route.
func TestBuildRateKeyAnonFallback(t *testing.T) {
	cfg := config.RateLimitConfig{Prefix: "kb:rl", KeyStrategy: "user_route"}
	key := buildRateKey(cfg, rateTestContext(t))
	if !strings.Contains(key, "user:anon") {
		t.Errorf("unauthenticated key %q should fall back to anon", key)
	}
}

func TestCurrentUserIDTypes(t *testing.T) {
	c := rateTestContext(t)
	if got := currentUserID(c); got != "anon" {
		t.Errorf("no user set: %q, want anon", got)
	}
	c.Set("user_id", float64(17))
	if got := currentUserID(c); got != "17" {
		t.Errorf("float64 claim: %q, want 17", got)
	}
	c.Set("user_id", uint64(23))
	if got := currentUserID(c); got != "23" {
		t.Errorf("uint64 claim: %q, want 23", got)
	}
	c.Set("user_id", "abc")
	if got := currentUserID(c); got != "abc" {
		t.Errorf("string claim: %q, want abc", got)
	}
}
