// Package repository defines error values reused across repositories.
// These sentinels let handlers distinguish failure scenarios without
// string matching: each maps to a specific HTTP status and user-facing
// message, e.g. ErrSlotAlreadyBooked becomes 409 "this slot was just
// booked by someone else".  All of them are expected, user-facing
// conditions rather than fatal process errors.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own and they hold no elevated role.  Handlers
// translate this into HTTP 403.
var ErrForbidden = errors.New("forbidden")

// ErrUserNotFound is returned when a user id does not exist.
var ErrUserNotFound = errors.New("user not found")

// ErrVenueNotFound is returned when a venue id does not exist at all.
var ErrVenueNotFound = errors.New("venue not found")

// ErrVenueUnavailable is returned by the creation procedure when the
// requested venue does not exist or is not active for booking.
var ErrVenueUnavailable = errors.New("venue unavailable")

// ErrSlotNotFound is returned when a time slot id does not exist.
var ErrSlotNotFound = errors.New("time slot not found")

// ErrSlotUnavailable is returned by the creation procedure when the
// requested time slot does not exist, belongs to a different venue or
// is not marked available.
var ErrSlotUnavailable = errors.New("time slot unavailable")

// ErrSlotAlreadyBooked is returned when the commit-time availability
// re-check finds a conflicting pending or confirmed reservation.
var ErrSlotAlreadyBooked = errors.New("slot already booked")

// ErrReservationNotFound is returned when a reservation id or code does
// not exist.
var ErrReservationNotFound = errors.New("reservation not found")

// ErrNotCancellable is returned when cancellation is requested for a
// reservation that is already cancelled or completed.  The request is a
// no-op failure, never silently ignored.
var ErrNotCancellable = errors.New("reservation not cancellable")

// ErrBadTransition is returned when an admin status update does not
// follow the allowed lifecycle (pending -> confirmed -> completed, with
// cancellation possible from pending or confirmed only).
var ErrBadTransition = errors.New("invalid status transition")

// ErrConflict signals that a delete cannot proceed because dependent
// records exist, such as removing a venue that still has reservations.
// Handlers translate this into HTTP 409.
var ErrConflict = errors.New("conflict")
