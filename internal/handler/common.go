// Package handler exposes the HTTP layer: request parsing, auth context
// extraction and mapping repository sentinel errors onto status codes.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/ldiadam/kitabooking/internal/booking"
	"github.com/ldiadam/kitabooking/internal/repository"
)

// getUserID extracts the authenticated user's ID from echo.Context.
// JWT numeric claims come back as float64; other shapes are tolerated
// for safety.
func getUserID(c echo.Context) (uint64, error) {
	switch t := c.Get("user_id").(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// currentRole reads the role claim set by the JWT middleware.
func currentRole(c echo.Context) string {
	if s, ok := c.Get("role").(string); ok {
		return s
	}
	return ""
}

// pathID parses the named path parameter as an unsigned integer ID.
func pathID(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}

// parseUintQuery parses a query parameter value as an unsigned ID.
func parseUintQuery(raw string) (uint64, error) {
	return strconv.ParseUint(raw, 10, 64)
}

// writeDomainError maps the repository and booking sentinel errors onto
// HTTP responses.  Anything unrecognized is a 500 with a generic body so
// database details never leak to clients.
func writeDomainError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, booking.ErrInvalidDraft), errors.Is(err, booking.ErrBadClock):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrUserNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	case errors.Is(err, repository.ErrVenueNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
	case errors.Is(err, repository.ErrSlotNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "time slot not found"})
	case errors.Is(err, repository.ErrReservationNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
	case errors.Is(err, repository.ErrVenueUnavailable):
		return c.JSON(http.StatusConflict, echo.Map{"error": "venue unavailable"})
	case errors.Is(err, repository.ErrSlotUnavailable):
		return c.JSON(http.StatusConflict, echo.Map{"error": "time slot unavailable"})
	case errors.Is(err, repository.ErrSlotAlreadyBooked):
		return c.JSON(http.StatusConflict, echo.Map{"error": "time slot already booked"})
	case errors.Is(err, repository.ErrNotCancellable):
		return c.JSON(http.StatusConflict, echo.Map{"error": "reservation not cancellable"})
	case errors.Is(err, repository.ErrBadTransition):
		return c.JSON(http.StatusConflict, echo.Map{"error": "invalid status transition"})
	case errors.Is(err, repository.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": "conflicting records exist"})
	case errors.Is(err, booking.ErrNoPricingAvailable):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "no pricing available"})
	case errors.Is(err, repository.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
}
