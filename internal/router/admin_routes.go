package router

import (
	"github.com/labstack/echo/v4"

	"github.com/ldiadam/kitabooking/internal/handler"
	"github.com/ldiadam/kitabooking/internal/middleware"
	"github.com/ldiadam/kitabooking/internal/model"
)

// RegisterAdmin registers the staff desk under /v1/admin.  All routes
// require a valid JWT and an elevated role; role assignment is further
// restricted to SUPERADMIN.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, r *handler.AdminReservationHandler, jwtSecret string) {
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleStaff, model.RoleAdmin, model.RoleSuperadmin),
	)

	// ---- Catalog ----
	g.POST("/venue-types", a.CreateVenueType)
	g.POST("/venues", a.CreateVenue)
	g.GET("/venues", a.ListVenues)
	g.PUT("/venues/:id", a.UpdateVenue)
	g.PATCH("/venues/:id", a.UpdateVenue)
	g.PATCH("/venues/:id/active", a.SetVenueActive)
	g.DELETE("/venues/:id", a.DeleteVenue)

	// ---- Time slots ----
	g.POST("/venues/:id/slots", a.CreateSlot)
	g.GET("/venues/:id/slots", a.ListSlots)
	g.PUT("/slots/:slot_id", a.UpdateSlot)
	g.PATCH("/slots/:slot_id", a.UpdateSlot)
	g.DELETE("/slots/:slot_id", a.DeleteSlot)

	// ---- Reservation desk ----
	g.GET("/reservations", r.List)
	g.GET("/reservations/:id", r.Get)
	g.POST("/reservations/:id/status", r.UpdateStatus)
	g.PATCH("/reservations/:id/status", r.UpdateStatus)
	g.GET("/reports/revenue", r.Revenue)

	// ---- Users ----
	sa := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleSuperadmin),
	)
	sa.PATCH("/users/:id/role", a.SetUserRole)
}
