package model

import "time"

// Reservation statuses.  Only pending and confirmed reservations block
// other bookings; cancelled and completed ones never conflict.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

// Cancellable reports whether a reservation in the given status may
// still be cancelled.  Cancelled and completed reservations may not.
func Cancellable(status string) bool {
	return status == StatusPending || status == StatusConfirmed
}

// Blocking reports whether a reservation in the given status
// participates in availability conflict checks.
func Blocking(status string) bool {
	return status == StatusPending || status == StatusConfirmed
}

// Reservation records one booking of a venue interval on a calendar
// date.  The price breakdown is persisted at creation time so later
// venue price changes never alter historical totals.
//
// Fields:
//  ID                 – primary key identifier.
//  Code               – unique human-readable reservation code ("KB-20260830-7XQ4FN").
//  UserID             – customer who made the booking.
//  VenueID            – booked venue.
//  TimeSlotID         – slot that priced the booking.
//  Date               – calendar date of the booking ("YYYY-MM-DD" in the DB).
//  StartTime          – wall-clock start of the booked interval.
//  EndTime            – wall-clock end, strictly after StartTime.
//  DurationHours      – derived (end - start) in hours.
//  Status             – one of pending, confirmed, cancelled, completed.
//  BasePrice          – price before discount, whole currency units.
//  DiscountPercentage – discount applied, 0-100.
//  TotalPrice         – BasePrice x (1 - DiscountPercentage/100), rounded.
//  Notes              – optional customer note.
//  CreatedAt          – creation timestamp.
//  UpdatedAt          – last update timestamp.
type Reservation struct {
	ID                 uint64    // reservations.id
	Code               string    // reservations.code
	UserID             uint64    // reservations.user_id
	VenueID            uint64    // reservations.venue_id
	TimeSlotID         uint64    // reservations.time_slot_id
	Date               string    // reservations.date
	StartTime          string    // reservations.start_time
	EndTime            string    // reservations.end_time
	DurationHours      float64   // reservations.duration_hours
	Status             string    // reservations.status
	BasePrice          int64     // reservations.base_price
	DiscountPercentage float64   // reservations.discount_percentage
	TotalPrice         int64     // reservations.total_price
	Notes              *string   // reservations.notes (nullable)
	CreatedAt          time.Time // reservations.created_at
	UpdatedAt          time.Time // reservations.updated_at
}
