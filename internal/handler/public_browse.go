// This file defines the public browsing API: venue types, venues, time
// slots and day availability.  The routes require no authentication, so
// responses carry only safe fields and inactive records are hidden.
package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ldiadam/kitabooking/internal/booking"
	"github.com/ldiadam/kitabooking/internal/model"
	"github.com/ldiadam/kitabooking/internal/repository"
)

// PublicHandler aggregates repositories needed for unauthenticated
// browsing.
type PublicHandler struct {
	Venues       *repository.VenueRepo
	Slots        *repository.TimeSlotRepo
	Reservations *repository.ReservationRepo
}

func NewPublicHandler(v *repository.VenueRepo, s *repository.TimeSlotRepo, r *repository.ReservationRepo) *PublicHandler {
	return &PublicHandler{Venues: v, Slots: s, Reservations: r}
}

// PublicVenueType is a venue category exposed via the public API.
type PublicVenueType struct {
	ID          uint64  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// PublicVenue is a venue in public list and detail responses.
type PublicVenue struct {
	ID               uint64  `json:"id"`
	VenueTypeID      uint64  `json:"venue_type_id"`
	Name             string  `json:"name"`
	Description      *string `json:"description,omitempty"`
	BasePriceWeekday int64   `json:"base_price_weekday"`
	BasePriceWeekend *int64  `json:"base_price_weekend,omitempty"`
}

// PublicSlot is a bookable time slot in public responses.
type PublicSlot struct {
	ID                uint64  `json:"id"`
	StartTime         string  `json:"start_time"`
	EndTime           string  `json:"end_time"`
	WeekdayMultiplier float64 `json:"price_multiplier_weekday"`
	WeekendMultiplier float64 `json:"price_multiplier_weekend"`
}

// SlotAvailability is one row of the day availability answer: the slot,
// whether it can still be booked on the requested date, and the price a
// booking of exactly this slot would cost.
type SlotAvailability struct {
	PublicSlot
	Available bool  `json:"available"`
	Price     int64 `json:"price"`
}

// GetVenueTypes lists all venue categories.
func (h *PublicHandler) GetVenueTypes(c echo.Context) error {
	ctx := c.Request().Context()
	types, err := h.Venues.ListTypes(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]PublicVenueType, 0, len(types))
	for _, vt := range types {
		out = append(out, PublicVenueType{ID: vt.ID, Name: vt.Name, Description: vt.Description})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetVenues lists venues, optionally filtered by ?type=<id>.  Only
// active venues are shown unless ?active=false is asked for explicitly
// (useful for clients that want to show "temporarily closed" venues).
func (h *PublicHandler) GetVenues(c echo.Context) error {
	ctx := c.Request().Context()
	var typeID *uint64
	if raw := c.QueryParam("type"); raw != "" {
		id, err := parseUintQuery(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid type filter"})
		}
		typeID = &id
	}
	active := c.QueryParam("active") != "false"
	venues, err := h.Venues.List(ctx, typeID, &active)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]PublicVenue, 0, len(venues))
	for _, v := range venues {
		out = append(out, publicVenueFrom(v))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetVenue returns one active venue by ID.  Inactive venues are hidden
// from the public surface entirely.
func (h *PublicHandler) GetVenue(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	v, err := h.Venues.GetByID(ctx, id)
	if err != nil {
		return writeDomainError(c, err)
	}
	if !v.IsActive {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
	}
	return c.JSON(http.StatusOK, publicVenueFrom(v))
}

// GetVenueSlots lists the active time slots of an active venue.
func (h *PublicHandler) GetVenueSlots(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	v, err := h.Venues.GetByID(ctx, id)
	if err != nil {
		return writeDomainError(c, err)
	}
	if !v.IsActive {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
	}
	slots, err := h.Slots.ListByVenue(ctx, id, true)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]PublicSlot, 0, len(slots))
	for _, s := range slots {
		out = append(out, publicSlotFrom(s))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetAvailability answers, for one venue and one date, which slots can
// still be booked and what each would cost.  A slot is unavailable when
// its interval overlaps any pending or confirmed reservation on that
// venue and date; cancelled and completed reservations never block.
func (h *PublicHandler) GetAvailability(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	date, err := time.Parse("2006-01-02", c.QueryParam("date"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}

	v, err := h.Venues.GetByID(ctx, id)
	if err != nil {
		return writeDomainError(c, err)
	}
	if !v.IsActive {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
	}
	slots, err := h.Slots.ListByVenue(ctx, id, true)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	taken, err := h.Reservations.BlockingIntervals(ctx, id, date.Format("2006-01-02"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	card := booking.RateCard{WeekdayPrice: v.BasePriceWeekday, WeekendPrice: v.BasePriceWeekend}
	rates := make([]booking.SlotRate, 0, len(slots))
	for _, s := range slots {
		iv, err := booking.ParseInterval(s.StartTime, s.EndTime)
		if err != nil {
			continue // malformed slot rows are skipped rather than failing the page
		}
		rates = append(rates, booking.SlotRate{
			SlotID:            s.ID,
			Interval:          iv,
			WeekdayMultiplier: s.PriceMultiplierWeekday,
			WeekendMultiplier: s.PriceMultiplierWeekend,
		})
	}

	intervalBySlot := make(map[uint64]booking.Interval, len(rates))
	for _, r := range rates {
		intervalBySlot[r.SlotID] = r.Interval
	}

	out := make([]SlotAvailability, 0, len(slots))
	for _, s := range slots {
		iv, ok := intervalBySlot[s.ID]
		if !ok {
			continue
		}
		price, err := booking.Quote(date, iv, card, rates)
		if err != nil {
			return writeDomainError(c, err)
		}
		out = append(out, SlotAvailability{
			PublicSlot: publicSlotFrom(s),
			Available:  booking.Available(iv, taken),
			Price:      price,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"venue_id": id,
		"date":     date.Format("2006-01-02"),
		"items":    out,
	})
}

func publicVenueFrom(v *model.Venue) PublicVenue {
	return PublicVenue{
		ID:               v.ID,
		VenueTypeID:      v.VenueTypeID,
		Name:             v.Name,
		Description:      v.Description,
		BasePriceWeekday: v.BasePriceWeekday,
		BasePriceWeekend: v.BasePriceWeekend,
	}
}

func publicSlotFrom(s *model.TimeSlot) PublicSlot {
	return PublicSlot{
		ID:                s.ID,
		StartTime:         s.StartTime,
		EndTime:           s.EndTime,
		WeekdayMultiplier: s.PriceMultiplierWeekday,
		WeekendMultiplier: s.PriceMultiplierWeekend,
	}
}
