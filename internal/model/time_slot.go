package model

import "time"

// TimeSlot is a fixed wall-clock interval on one venue with its own
// price multipliers.  Slot times carry no date; they repeat every day.
// A venue's slots are expected to be contiguous and non-overlapping,
// but overlap is tolerated: when pricing, the first slot containing the
// booking start time wins.
//
// Fields:
//  ID                     – primary key identifier.
//  VenueID                – venue this slot belongs to.
//  StartTime              – wall-clock start, "HH:MM:SS" in the DB.
//  EndTime                – wall-clock end, strictly after StartTime.
//  PriceMultiplierWeekday – multiplier applied on weekdays (default 1.0).
//  PriceMultiplierWeekend – multiplier applied on weekends (default 1.0).
//  IsActive               – whether the slot can be booked.
//  CreatedAt              – creation timestamp.
//  UpdatedAt              – last update timestamp.
type TimeSlot struct {
	ID                     uint64    // time_slots.id
	VenueID                uint64    // time_slots.venue_id
	StartTime              string    // time_slots.start_time
	EndTime                string    // time_slots.end_time
	PriceMultiplierWeekday float64   // time_slots.price_multiplier_weekday
	PriceMultiplierWeekend float64   // time_slots.price_multiplier_weekend
	IsActive               bool      // time_slots.is_active
	CreatedAt              time.Time // time_slots.created_at
	UpdatedAt              time.Time // time_slots.updated_at
}
