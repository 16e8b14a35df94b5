package model

import "time"

// VenueType is a category of bookable venue, e.g. futsal court,
// badminton hall or swimming pool.  Venues reference exactly one type.
// This struct corresponds to a row in the `venue_types` table.
//
// Fields:
//  ID          – primary key identifier.
//  Name        – unique category name.
//  Description – optional free-text description.
type VenueType struct {
	ID          uint64  // venue_types.id
	Name        string  // venue_types.name
	Description *string // venue_types.description (nullable)
}

// Venue represents a bookable sports venue.  Prices are per-hour base
// rates in whole currency units; the weekend price is optional and
// falls back to the weekday price when absent.  An inactive venue
// cannot accept new reservations but keeps its history.
//
// Fields:
//  ID               – primary key identifier.
//  VenueTypeID      – category this venue belongs to.
//  Name             – venue display name.
//  Description      – optional description shown on browse pages.
//  BasePriceWeekday – per-hour base rate Monday through Friday.
//  BasePriceWeekend – per-hour base rate Saturday/Sunday (nil = weekday rate).
//  IsActive         – whether the venue accepts new reservations.
//  CreatedAt        – creation timestamp.
//  UpdatedAt        – last update timestamp.
type Venue struct {
	ID               uint64    // venues.id
	VenueTypeID      uint64    // venues.venue_type_id
	Name             string    // venues.name
	Description      *string   // venues.description (nullable)
	BasePriceWeekday int64     // venues.base_price_weekday
	BasePriceWeekend *int64    // venues.base_price_weekend (nullable)
	IsActive         bool      // venues.is_active
	CreatedAt        time.Time // venues.created_at
	UpdatedAt        time.Time // venues.updated_at
}
