package booking

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Draft is the booking selection a customer builds up before submitting:
// which venue, which slot, which date and interval, plus any discount
// and notes.  It is constructed from the request, validated once, and
// passed down explicitly to the creation procedure.  Handlers must not
// stash selection state anywhere else; the draft is the whole workflow
// state and is discarded after submit.
type Draft struct {
	UserID          uint64
	VenueID         uint64
	TimeSlotID      uint64
	Date            time.Time
	Interval        Interval
	DiscountPercent float64
	Notes           string
}

// ErrInvalidDraft wraps all draft validation failures.
var ErrInvalidDraft = errors.New("invalid booking draft")

// NewDraft parses the raw request fields into a validated Draft.  The
// date must be "YYYY-MM-DD" and the times "HH:MM" wall-clock values.
func NewDraft(userID, venueID, slotID uint64, date, start, end string, discount float64, notes string) (Draft, error) {
	day, err := time.Parse("2006-01-02", strings.TrimSpace(date))
	if err != nil {
		return Draft{}, fmt.Errorf("%w: bad date %q", ErrInvalidDraft, date)
	}
	iv, err := ParseInterval(start, end)
	if err != nil {
		return Draft{}, fmt.Errorf("%w: %v", ErrInvalidDraft, err)
	}
	d := Draft{
		UserID:          userID,
		VenueID:         venueID,
		TimeSlotID:      slotID,
		Date:            day,
		Interval:        iv,
		DiscountPercent: discount,
		Notes:           strings.TrimSpace(notes),
	}
	if err := d.Validate(); err != nil {
		return Draft{}, err
	}
	return d, nil
}

// Validate checks the draft invariants: all references set, a valid
// half-open interval, and a discount between 0 and 100.
func (d Draft) Validate() error {
	if d.UserID == 0 || d.VenueID == 0 || d.TimeSlotID == 0 {
		return fmt.Errorf("%w: user, venue and time slot are required", ErrInvalidDraft)
	}
	if d.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidDraft)
	}
	if !d.Interval.Valid() {
		return fmt.Errorf("%w: start must be before end", ErrInvalidDraft)
	}
	if d.DiscountPercent < 0 || d.DiscountPercent > 100 {
		return fmt.Errorf("%w: discount must be between 0 and 100", ErrInvalidDraft)
	}
	return nil
}

// DurationHours is the booked duration in hours, derived from the interval.
func (d Draft) DurationHours() float64 { return d.Interval.Hours() }
