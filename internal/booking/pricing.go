package booking

import (
	"errors"
	"math"
	"time"
)

// ErrNoPricingAvailable is returned by Quote when no active slot covers
// the start of the requested interval, so no rate can be applied.
var ErrNoPricingAvailable = errors.New("no pricing available for the requested time")

// RateCard carries a venue's per-hour base prices in whole currency
// units.  WeekendPrice is optional; when nil the weekday price applies
// on all days.
type RateCard struct {
	WeekdayPrice int64
	WeekendPrice *int64
}

// PerHour resolves the base hourly rate for the given date.
func (rc RateCard) PerHour(date time.Time) int64 {
	if IsWeekend(date) && rc.WeekendPrice != nil {
		return *rc.WeekendPrice
	}
	return rc.WeekdayPrice
}

// SlotRate is the pricing view of one venue time slot: its interval and
// the weekday/weekend multipliers applied on top of the venue base rate.
type SlotRate struct {
	SlotID            uint64
	Interval          Interval
	WeekdayMultiplier float64
	WeekendMultiplier float64
}

// Multiplier picks the multiplier matching the day class of date.
func (s SlotRate) Multiplier(date time.Time) float64 {
	if IsWeekend(date) {
		return s.WeekendMultiplier
	}
	return s.WeekdayMultiplier
}

// IsWeekend reports whether the date falls on Saturday or Sunday.
func IsWeekend(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// Quote computes the price for booking the candidate interval on the
// given date:
//
//	round(basePerHour x slotMultiplier x durationHours)
//
// The slot applied is the first one in slots whose interval contains the
// candidate start time; slots are evaluated in the order given, so when
// slots overlap the first match wins.  When no slot covers the start,
// ErrNoPricingAvailable is returned.  The result is rounded to the
// nearest whole currency unit.
func Quote(date time.Time, candidate Interval, card RateCard, slots []SlotRate) (int64, error) {
	for _, s := range slots {
		if !s.Interval.Contains(candidate.Start) {
			continue
		}
		amount := float64(card.PerHour(date)) * s.Multiplier(date) * candidate.Hours()
		return int64(math.Round(amount)), nil
	}
	return 0, ErrNoPricingAvailable
}

// ApplyDiscount reduces amount by pct percent (0-100) and rounds to the
// nearest whole currency unit.  Out-of-range percentages are clamped.
func ApplyDiscount(amount int64, pct float64) int64 {
	if pct <= 0 {
		return amount
	}
	if pct > 100 {
		pct = 100
	}
	return int64(math.Round(float64(amount) * (1 - pct/100)))
}
