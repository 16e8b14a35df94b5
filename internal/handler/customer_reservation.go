package handler

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ldiadam/kitabooking/internal/booking"
	"github.com/ldiadam/kitabooking/internal/model"
	"github.com/ldiadam/kitabooking/internal/queue"
	"github.com/ldiadam/kitabooking/internal/repository"
	queue_publisher "github.com/ldiadam/kitabooking/internal/service"
)

// ReservationHandler serves the customer-facing reservation endpoints:
// create, list own, inspect and cancel.
type ReservationHandler struct {
	Reservations *repository.ReservationRepo
	Venues       *repository.VenueRepo
}

func NewReservationHandler(r *repository.ReservationRepo, v *repository.VenueRepo) *ReservationHandler {
	return &ReservationHandler{Reservations: r, Venues: v}
}

type createReservationReq struct {
	VenueID            uint64  `json:"venue_id"`
	TimeSlotID         uint64  `json:"time_slot_id"`
	Date               string  `json:"date"`       // YYYY-MM-DD
	StartTime          string  `json:"start_time"` // HH:MM
	EndTime            string  `json:"end_time"`   // HH:MM
	DiscountPercentage float64 `json:"discount_percentage"`
	Notes              string  `json:"notes"`
}

// Create books a venue for the requested window.  The whole check and
// insert runs in one database transaction so two concurrent requests
// for an overlapping window cannot both succeed.  Discounts may only be
// entered by elevated roles; the field is ignored for customers.
func (h *ReservationHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createReservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if !model.Elevated(currentRole(c)) {
		req.DiscountPercentage = 0
	}

	draft, err := booking.NewDraft(uid, req.VenueID, req.TimeSlotID,
		req.Date, req.StartTime, req.EndTime, req.DiscountPercentage, req.Notes)
	if err != nil {
		return writeDomainError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	res, err := h.Reservations.Create(ctx, draft)
	if err != nil {
		return writeDomainError(c, err)
	}

	venueName := ""
	if v, err := h.Venues.GetByID(ctx, res.VenueID); err == nil {
		venueName = v.Name
	}

	// Publish fire-and-forget; a broker outage must not fail the booking.
	ev := queue.ReservationCreatedEvent{
		ReservationID: res.ID,
		Code:          res.Code,
		UserID:        res.UserID,
		VenueID:       res.VenueID,
		VenueName:     venueName,
		Date:          res.Date,
		StartTime:     res.StartTime,
		EndTime:       res.EndTime,
		DurationHours: res.DurationHours,
		TotalPrice:    res.TotalPrice,
		CreatedAt:     res.CreatedAt.UTC().Format(time.RFC3339),
	}
	go func() {
		pubCtx, pubCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer pubCancel()
		if err := queue_publisher.PublishReservationCreated(pubCtx, ev); err != nil {
			log.Printf("reservation %s: publish event failed: %v", res.Code, err)
		}
	}()

	return c.JSON(http.StatusCreated, res)
}

// MyReservations lists the caller's reservations, newest first.
func (h *ReservationHandler) MyReservations(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx := c.Request().Context()
	items, err := h.Reservations.ListByUser(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Get returns one reservation.  Customers may only read their own;
// elevated roles may read any.
func (h *ReservationHandler) Get(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx := c.Request().Context()
	res, err := h.Reservations.GetByID(ctx, id)
	if err != nil {
		return writeDomainError(c, err)
	}
	if res.UserID != uid && !model.Elevated(currentRole(c)) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	return c.JSON(http.StatusOK, res)
}

// Cancel cancels a reservation.  Only the owner or an elevated role may
// cancel, and only while the reservation is pending or confirmed.
func (h *ReservationHandler) Cancel(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Reservations.Cancel(ctx, id, uid, model.Elevated(currentRole(c))); err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "status": model.StatusCancelled})
}
