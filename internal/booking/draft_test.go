package booking

import (
	"errors"
	"testing"
)

func TestNewDraftValid(t *testing.T) {
	d, err := NewDraft(7, 3, 12, "2026-09-01", "10:00", "12:00", 10, "  corporate event  ")
	if err != nil {
		t.Fatalf("NewDraft: %v", err)
	}
	if d.UserID != 7 || d.VenueID != 3 || d.TimeSlotID != 12 {
		t.Errorf("identifiers not carried: %+v", d)
	}
	if d.Interval.Start != 600 || d.Interval.End != 720 {
		t.Errorf("interval = %+v, want 600..720", d.Interval)
	}
	if d.DurationHours() != 2 {
		t.Errorf("DurationHours = %v, want 2", d.DurationHours())
	}
	if d.Notes != "corporate event" {
		t.Errorf("notes not trimmed: %q", d.Notes)
	}
}

func TestNewDraftRejects(t *testing.T) {
	cases := []struct {
		name     string
		user     uint64
		venue    uint64
		slot     uint64
		date     string
		start    string
		end      string
		discount float64
	}{
		{"missing user", 0, 3, 12, "2026-09-01", "10:00", "12:00", 0},
		{"missing venue", 7, 0, 12, "2026-09-01", "10:00", "12:00", 0},
		{"missing slot", 7, 3, 0, "2026-09-01", "10:00", "12:00", 0},
		{"bad date", 7, 3, 12, "01-09-2026", "10:00", "12:00", 0},
		{"bad start", 7, 3, 12, "2026-09-01", "ten", "12:00", 0},
		{"inverted interval", 7, 3, 12, "2026-09-01", "12:00", "10:00", 0},
		{"zero interval", 7, 3, 12, "2026-09-01", "10:00", "10:00", 0},
		{"negative discount", 7, 3, 12, "2026-09-01", "10:00", "12:00", -1},
		{"discount above 100", 7, 3, 12, "2026-09-01", "10:00", "12:00", 101},
	}
	for _, c := range cases {
		_, err := NewDraft(c.user, c.venue, c.slot, c.date, c.start, c.end, c.discount, "")
		if err == nil {
			t.Errorf("%s: expected error", c.name)
			continue
		}
		if !errors.Is(err, ErrInvalidDraft) && !errors.Is(err, ErrBadClock) {
			t.Errorf("%s: error %v is not a draft/clock error", c.name, err)
		}
	}
}
