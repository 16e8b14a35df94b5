// Package queue defines message payloads exchanged over the message broker.
package queue

// ReservationCreatedEvent is published when a reservation is successfully
// created.  It carries enough information for downstream consumers to log,
// notify, or feed analytics without querying the primary database.
type ReservationCreatedEvent struct {
	ReservationID uint64  `json:"reservation_id"`
	Code          string  `json:"code"`
	UserID        uint64  `json:"user_id"`
	VenueID       uint64  `json:"venue_id"`
	VenueName     string  `json:"venue_name"`
	Date          string  `json:"date"`       // YYYY-MM-DD
	StartTime     string  `json:"start_time"` // HH:MM
	EndTime       string  `json:"end_time"`   // HH:MM
	DurationHours float64 `json:"duration_hours"`
	TotalPrice    int64   `json:"total_price"`
	CreatedAt     string  `json:"created_at"`
}
