// Package router wires HTTP routes to handlers and attaches the JWT and
// role middleware per group.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/ldiadam/kitabooking/internal/handler"
	"github.com/ldiadam/kitabooking/internal/middleware"
)

// RegisterRoutes registers routes that require no authentication.
// Currently only the health check used by load balancers.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication endpoints.  Register, login,
// refresh and logout live under /v1/auth and need no session; /v1/me is
// protected by the JWT middleware.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout is deliberately outside the JWT middleware: a client whose
	// access token already expired can still end its session with the
	// refresh token alone.
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
}
