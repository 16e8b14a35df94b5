package router

import (
	"github.com/labstack/echo/v4"

	"github.com/ldiadam/kitabooking/internal/handler"
	"github.com/ldiadam/kitabooking/internal/middleware"
	"github.com/ldiadam/kitabooking/internal/model"
)

// RegisterCustomer registers the reservation endpoints available to any
// authenticated user.  Customers can book, list their own reservations,
// inspect one and cancel it; elevated roles reach the same endpoints
// (ownership checks inside the handlers let them act on any record).
func RegisterCustomer(e *echo.Echo, h *handler.ReservationHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleCustomer, model.RoleStaff, model.RoleAdmin, model.RoleSuperadmin),
	)

	g.POST("/reservations", h.Create)
	g.GET("/my-reservations", h.MyReservations)
	g.GET("/reservations/:id", h.Get)
	g.POST("/reservations/:id/cancel", h.Cancel)
}
