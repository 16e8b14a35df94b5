package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func runWithRole(t *testing.T, mw echo.MiddlewareFunc, role interface{}) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != nil {
		c.Set("role", role)
	}
	h := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	if err := h(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

func TestRequireRoleAllows(t *testing.T) {
	mw := RequireRole("ADMIN", "STAFF")
	rec := runWithRole(t, mw, "STAFF")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for STAFF, got %d", rec.Code)
	}
}

func TestRequireRoleRejects(t *testing.T) {
	mw := RequireRole("ADMIN")
	cases := []struct {
		name string
		role interface{}
	}{
		{"wrong role", "CUSTOMER"},
		{"missing role", nil},
		{"non-string role", 42},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := runWithRole(t, mw, tc.role)
			if rec.Code != http.StatusForbidden {
				t.Fatalf("expected 403, got %d", rec.Code)
			}
		})
	}
}
