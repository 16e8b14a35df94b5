// Admin endpoints for managing the venue catalog and time-slot tables.
// These routes sit behind the JWT middleware plus a role check, so the
// handlers assume an elevated caller and focus on validation.
package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ldiadam/kitabooking/internal/booking"
	"github.com/ldiadam/kitabooking/internal/model"
	"github.com/ldiadam/kitabooking/internal/repository"
)

// AdminHandler bundles repositories for catalog management.
type AdminHandler struct {
	Venues *repository.VenueRepo
	Slots  *repository.TimeSlotRepo
	Users  *repository.UserRepo
}

func NewAdminHandler(v *repository.VenueRepo, s *repository.TimeSlotRepo, u *repository.UserRepo) *AdminHandler {
	if v == nil || s == nil || u == nil {
		panic("nil repository passed to NewAdminHandler")
	}
	return &AdminHandler{Venues: v, Slots: s, Users: u}
}

type venueTypeReq struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

type venueReq struct {
	VenueTypeID      uint64  `json:"venue_type_id"`
	Name             string  `json:"name"`
	Description      *string `json:"description"`
	BasePriceWeekday int64   `json:"base_price_weekday"`
	BasePriceWeekend *int64  `json:"base_price_weekend"`
	IsActive         *bool   `json:"is_active"`
}

type slotReq struct {
	StartTime              string   `json:"start_time"` // HH:MM
	EndTime                string   `json:"end_time"`   // HH:MM
	PriceMultiplierWeekday *float64 `json:"price_multiplier_weekday"`
	PriceMultiplierWeekend *float64 `json:"price_multiplier_weekend"`
	IsActive               *bool    `json:"is_active"`
}

// CreateVenueType adds a venue category.
func (h *AdminHandler) CreateVenueType(c echo.Context) error {
	var req venueTypeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}
	vt := &model.VenueType{Name: req.Name, Description: req.Description}
	if err := h.Venues.CreateType(c.Request().Context(), vt); err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": vt.ID, "name": vt.Name})
}

// CreateVenue adds a venue to the catalog.  New venues default to
// active unless the request says otherwise.
func (h *AdminHandler) CreateVenue(c echo.Context) error {
	var req venueReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || req.VenueTypeID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and venue_type_id required"})
	}
	if req.BasePriceWeekday <= 0 || (req.BasePriceWeekend != nil && *req.BasePriceWeekend <= 0) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "prices must be positive"})
	}
	v := &model.Venue{
		VenueTypeID:      req.VenueTypeID,
		Name:             req.Name,
		Description:      req.Description,
		BasePriceWeekday: req.BasePriceWeekday,
		BasePriceWeekend: req.BasePriceWeekend,
		IsActive:         true,
	}
	if req.IsActive != nil {
		v.IsActive = *req.IsActive
	}
	if err := h.Venues.Create(c.Request().Context(), v); err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, v)
}

// ListVenues lists all venues including inactive ones, optionally
// filtered by ?type=<id> and ?active=true|false.
func (h *AdminHandler) ListVenues(c echo.Context) error {
	var typeID *uint64
	if raw := c.QueryParam("type"); raw != "" {
		id, err := parseUintQuery(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid type filter"})
		}
		typeID = &id
	}
	var active *bool
	switch c.QueryParam("active") {
	case "true":
		t := true
		active = &t
	case "false":
		f := false
		active = &f
	case "":
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "active must be true or false"})
	}
	venues, err := h.Venues.List(c.Request().Context(), typeID, active)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": venues})
}

// UpdateVenue replaces the mutable fields of a venue.
func (h *AdminHandler) UpdateVenue(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req venueReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx := c.Request().Context()
	v, err := h.Venues.GetByID(ctx, id)
	if err != nil {
		return writeDomainError(c, err)
	}
	if name := strings.TrimSpace(req.Name); name != "" {
		v.Name = name
	}
	if req.VenueTypeID != 0 {
		v.VenueTypeID = req.VenueTypeID
	}
	if req.Description != nil {
		v.Description = req.Description
	}
	if req.BasePriceWeekday > 0 {
		v.BasePriceWeekday = req.BasePriceWeekday
	}
	if req.BasePriceWeekend != nil {
		if *req.BasePriceWeekend <= 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "prices must be positive"})
		}
		v.BasePriceWeekend = req.BasePriceWeekend
	}
	if req.IsActive != nil {
		v.IsActive = *req.IsActive
	}
	if err := h.Venues.Update(ctx, v); err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, v)
}

// SetVenueActive toggles whether a venue accepts new reservations.
// Existing reservations are untouched either way.
func (h *AdminHandler) SetVenueActive(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req struct {
		IsActive *bool `json:"is_active"`
	}
	if err := c.Bind(&req); err != nil || req.IsActive == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "is_active required"})
	}
	if err := h.Venues.SetActive(c.Request().Context(), id, *req.IsActive); err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "is_active": *req.IsActive})
}

// DeleteVenue removes a venue that has no reservations.  Venues with
// history cannot be deleted, only deactivated.
func (h *AdminHandler) DeleteVenue(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Venues.Delete(c.Request().Context(), id); err != nil {
		return writeDomainError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// CreateSlot adds a time slot to a venue's table.  Times are validated
// as a proper half-open wall-clock interval before insert.
func (h *AdminHandler) CreateSlot(c echo.Context) error {
	venueID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req slotReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if _, err := booking.ParseInterval(req.StartTime, req.EndTime); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx := c.Request().Context()
	if _, err := h.Venues.GetByID(ctx, venueID); err != nil {
		return writeDomainError(c, err)
	}
	s := &model.TimeSlot{
		VenueID:                venueID,
		StartTime:              req.StartTime,
		EndTime:                req.EndTime,
		PriceMultiplierWeekday: 1.0,
		PriceMultiplierWeekend: 1.0,
		IsActive:               true,
	}
	if req.PriceMultiplierWeekday != nil {
		s.PriceMultiplierWeekday = *req.PriceMultiplierWeekday
	}
	if req.PriceMultiplierWeekend != nil {
		s.PriceMultiplierWeekend = *req.PriceMultiplierWeekend
	}
	if req.IsActive != nil {
		s.IsActive = *req.IsActive
	}
	if s.PriceMultiplierWeekday <= 0 || s.PriceMultiplierWeekend <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "multipliers must be positive"})
	}
	if err := h.Slots.Create(ctx, s); err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, slotResp(s))
}

// ListSlots lists all slots of a venue including inactive ones.
func (h *AdminHandler) ListSlots(c echo.Context) error {
	venueID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx := c.Request().Context()
	if _, err := h.Venues.GetByID(ctx, venueID); err != nil {
		return writeDomainError(c, err)
	}
	slots, err := h.Slots.ListByVenue(ctx, venueID, false)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]echo.Map, 0, len(slots))
	for _, s := range slots {
		out = append(out, slotResp(s))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// UpdateSlot changes a slot's window, multipliers or active flag.
func (h *AdminHandler) UpdateSlot(c echo.Context) error {
	slotID, err := pathID(c, "slot_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req slotReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx := c.Request().Context()
	s, err := h.Slots.GetByID(ctx, slotID)
	if err != nil {
		return writeDomainError(c, err)
	}
	if req.StartTime != "" {
		s.StartTime = req.StartTime
	}
	if req.EndTime != "" {
		s.EndTime = req.EndTime
	}
	if _, err := booking.ParseInterval(s.StartTime, s.EndTime); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if req.PriceMultiplierWeekday != nil {
		s.PriceMultiplierWeekday = *req.PriceMultiplierWeekday
	}
	if req.PriceMultiplierWeekend != nil {
		s.PriceMultiplierWeekend = *req.PriceMultiplierWeekend
	}
	if s.PriceMultiplierWeekday <= 0 || s.PriceMultiplierWeekend <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "multipliers must be positive"})
	}
	if req.IsActive != nil {
		s.IsActive = *req.IsActive
	}
	if err := h.Slots.Update(ctx, s); err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, slotResp(s))
}

// DeleteSlot removes a slot.  Reservations keep their copied times, so
// deleting a slot never rewrites history.
func (h *AdminHandler) DeleteSlot(c echo.Context) error {
	slotID, err := pathID(c, "slot_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Slots.Delete(c.Request().Context(), slotID); err != nil {
		return writeDomainError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// SetUserRole assigns a role to a user.  Restricted to SUPERADMIN by
// the route group.
func (h *AdminHandler) SetUserRole(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req struct {
		Role string `json:"role"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	role := strings.ToUpper(strings.TrimSpace(req.Role))
	switch role {
	case model.RoleCustomer, model.RoleStaff, model.RoleAdmin, model.RoleSuperadmin:
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown role"})
	}
	if err := h.Users.SetRole(c.Request().Context(), id, role); err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "role": role})
}

func slotResp(s *model.TimeSlot) echo.Map {
	return echo.Map{
		"id":                       s.ID,
		"venue_id":                 s.VenueID,
		"start_time":               s.StartTime,
		"end_time":                 s.EndTime,
		"price_multiplier_weekday": s.PriceMultiplierWeekday,
		"price_multiplier_weekend": s.PriceMultiplierWeekend,
		"is_active":                s.IsActive,
	}
}
