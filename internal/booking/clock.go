// Package booking contains the pure reservation logic of the service:
// wall-clock intervals, the availability check, the price quote and the
// reservation code generator.  Nothing in this package touches the
// database or the network, so every function here is safe to call
// concurrently and trivial to test.
package booking

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Minutes is a wall-clock time expressed as minutes after midnight.
// Venue slots and reservations carry no timezone; a value of 0 is
// midnight and 1439 is 23:59.  Dates travel separately as calendar days.
type Minutes int

// ErrBadClock is returned when a clock string cannot be parsed.
var ErrBadClock = errors.New("invalid clock time")

const minutesPerDay = 24 * 60

// ParseClock converts "HH:MM" or "HH:MM:SS" into Minutes.  Seconds, when
// present, are ignored; slot boundaries are minute-granular.  "24:00" is
// accepted as the exclusive end of day.
func ParseClock(s string) (Minutes, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("%w: %q", ErrBadClock, s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadClock, s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadClock, s)
	}
	if h < 0 || m < 0 || m > 59 || h > 24 || (h == 24 && m != 0) {
		return 0, fmt.Errorf("%w: %q", ErrBadClock, s)
	}
	return Minutes(h*60 + m), nil
}

// String renders the time back as zero-padded "HH:MM".
func (m Minutes) String() string {
	return fmt.Sprintf("%02d:%02d", int(m)/60, int(m)%60)
}

// Interval is a half-open wall-clock range [Start, End) on a single day.
type Interval struct {
	Start Minutes
	End   Minutes
}

// ParseInterval builds an Interval from two clock strings and validates it.
func ParseInterval(start, end string) (Interval, error) {
	s, err := ParseClock(start)
	if err != nil {
		return Interval{}, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return Interval{}, err
	}
	iv := Interval{Start: s, End: e}
	if !iv.Valid() {
		return Interval{}, fmt.Errorf("%w: start %s must be before end %s", ErrBadClock, s, e)
	}
	return iv, nil
}

// Valid reports whether the interval is within one day and start < end.
func (iv Interval) Valid() bool {
	return iv.Start >= 0 && iv.End <= minutesPerDay && iv.Start < iv.End
}

// Overlaps applies the half-open overlap test.  Intervals that merely
// touch (iv.End == o.Start) do not overlap.
func (iv Interval) Overlaps(o Interval) bool {
	return iv.Start < o.End && iv.End > o.Start
}

// Contains reports whether the clock time t falls inside [Start, End).
func (iv Interval) Contains(t Minutes) bool {
	return t >= iv.Start && t < iv.End
}

// Hours returns the interval length in hours as a fraction, e.g. 90
// minutes is 1.5.
func (iv Interval) Hours() float64 {
	return float64(iv.End-iv.Start) / 60.0
}
