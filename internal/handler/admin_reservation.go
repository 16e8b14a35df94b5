package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ldiadam/kitabooking/internal/model"
	"github.com/ldiadam/kitabooking/internal/repository"
)

// AdminReservationHandler serves the staff-facing reservation desk:
// cross-customer listing, status transitions and the revenue report.
type AdminReservationHandler struct {
	Reservations *repository.ReservationRepo
}

func NewAdminReservationHandler(r *repository.ReservationRepo) *AdminReservationHandler {
	return &AdminReservationHandler{Reservations: r}
}

// List returns reservations across all customers, filtered by the
// optional ?date=, ?venue= and ?status= query parameters.
func (h *AdminReservationHandler) List(c echo.Context) error {
	var f repository.AdminFilter
	if raw := c.QueryParam("date"); raw != "" {
		if _, err := time.Parse("2006-01-02", raw); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
		}
		f.Date = raw
	}
	if raw := c.QueryParam("venue_id"); raw != "" {
		id, err := parseUintQuery(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid venue filter"})
		}
		f.VenueID = id
	}
	if raw := c.QueryParam("status"); raw != "" {
		s := strings.ToLower(raw)
		switch s {
		case model.StatusPending, model.StatusConfirmed, model.StatusCancelled, model.StatusCompleted:
			f.Status = s
		default:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
		}
	}
	items, err := h.Reservations.ListForAdmin(c.Request().Context(), f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Get returns any reservation by ID for the staff desk.
func (h *AdminReservationHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	res, err := h.Reservations.GetByID(c.Request().Context(), id)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// UpdateStatus moves a reservation along its lifecycle: pending to
// confirmed, confirmed to completed, or any live state to cancelled.
// Anything else is rejected as an invalid transition.
func (h *AdminReservationHandler) UpdateStatus(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	next := strings.ToLower(strings.TrimSpace(req.Status))
	switch next {
	case model.StatusConfirmed, model.StatusCompleted, model.StatusCancelled:
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status must be confirmed, completed or cancelled"})
	}
	if err := h.Reservations.UpdateStatus(c.Request().Context(), id, next); err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "status": next})
}

// Revenue reports per-day reservation counts and revenue over the
// inclusive ?from= / ?to= date range.  Only confirmed and completed
// reservations count toward revenue.
func (h *AdminReservationHandler) Revenue(c echo.Context) error {
	from, err := time.Parse("2006-01-02", c.QueryParam("from"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "from must be YYYY-MM-DD"})
	}
	to, err := time.Parse("2006-01-02", c.QueryParam("to"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "to must be YYYY-MM-DD"})
	}
	if to.Before(from) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "to must not precede from"})
	}
	rows, err := h.Reservations.Revenue(c.Request().Context(), from, to)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	var total int64
	for _, r := range rows {
		total += r.Revenue
	}
	return c.JSON(http.StatusOK, echo.Map{
		"from":  from.Format("2006-01-02"),
		"to":    to.Format("2006-01-02"),
		"total": total,
		"items": rows,
	})
}
