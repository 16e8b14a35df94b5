package booking

import (
	"errors"
	"testing"
	"time"
)

var (
	saturday = time.Date(2026, time.August, 29, 0, 0, 0, 0, time.UTC)
	sunday   = time.Date(2026, time.August, 30, 0, 0, 0, 0, time.UTC)
	tuesday  = time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)
)

func int64ptr(v int64) *int64 { return &v }

func TestIsWeekend(t *testing.T) {
	if !IsWeekend(saturday) || !IsWeekend(sunday) {
		t.Error("Saturday and Sunday must be weekend")
	}
	if IsWeekend(tuesday) {
		t.Error("Tuesday must not be weekend")
	}
}

func TestRateCardPerHour(t *testing.T) {
	card := RateCard{WeekdayPrice: 150000, WeekendPrice: int64ptr(200000)}
	if got := card.PerHour(saturday); got != 200000 {
		t.Errorf("weekend rate = %d, want 200000", got)
	}
	if got := card.PerHour(tuesday); got != 150000 {
		t.Errorf("weekday rate = %d, want 150000", got)
	}
	// Without a weekend price the weekday price applies on all days.
	flat := RateCard{WeekdayPrice: 150000}
	if got := flat.PerHour(saturday); got != 150000 {
		t.Errorf("missing weekend price: rate = %d, want 150000", got)
	}
}

func TestQuoteWeekendVersusWeekday(t *testing.T) {
	card := RateCard{WeekdayPrice: 150000, WeekendPrice: int64ptr(200000)}
	slots := []SlotRate{{
		SlotID:            1,
		Interval:          Interval{Start: 480, End: 1320}, // 08:00-22:00
		WeekdayMultiplier: 1.0,
		WeekendMultiplier: 1.0,
	}}
	oneHour := Interval{Start: 600, End: 660}

	sat, err := Quote(saturday, oneHour, card, slots)
	if err != nil {
		t.Fatalf("Quote(saturday): %v", err)
	}
	if sat != 200000 {
		t.Errorf("Saturday one-hour price = %d, want 200000", sat)
	}

	tue, err := Quote(tuesday, oneHour, card, slots)
	if err != nil {
		t.Fatalf("Quote(tuesday): %v", err)
	}
	if tue != 150000 {
		t.Errorf("Tuesday one-hour price = %d, want 150000", tue)
	}
}

func TestQuoteMonotonicInDuration(t *testing.T) {
	card := RateCard{WeekdayPrice: 175000}
	slots := []SlotRate{{
		Interval:          Interval{Start: 480, End: 1320},
		WeekdayMultiplier: 1.25,
		WeekendMultiplier: 1.5,
	}}
	one, err := Quote(tuesday, Interval{Start: 600, End: 660}, card, slots)
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	two, err := Quote(tuesday, Interval{Start: 600, End: 720}, card, slots)
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	if two != 2*one {
		t.Errorf("doubling duration: got %d, want %d", two, 2*one)
	}
}

func TestQuoteAppliesSlotMultiplier(t *testing.T) {
	card := RateCard{WeekdayPrice: 100000, WeekendPrice: int64ptr(120000)}
	slots := []SlotRate{{
		Interval:          Interval{Start: 1080, End: 1320}, // 18:00-22:00 prime time
		WeekdayMultiplier: 1.5,
		WeekendMultiplier: 2.0,
	}}
	evening := Interval{Start: 1140, End: 1200}
	got, err := Quote(tuesday, evening, card, slots)
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	if got != 150000 {
		t.Errorf("weekday evening price = %d, want 150000", got)
	}
	got, err = Quote(sunday, evening, card, slots)
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	if got != 240000 {
		t.Errorf("weekend evening price = %d, want 240000", got)
	}
}

func TestQuoteFractionalHoursRound(t *testing.T) {
	// 90 minutes at 33333/hour = 49999.5, rounds to 50000.
	card := RateCard{WeekdayPrice: 33333}
	slots := []SlotRate{{Interval: Interval{0, 1440}, WeekdayMultiplier: 1, WeekendMultiplier: 1}}
	got, err := Quote(tuesday, Interval{Start: 600, End: 690}, card, slots)
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	if got != 50000 {
		t.Errorf("rounded price = %d, want 50000", got)
	}
}

func TestQuoteNoSlotCoversStart(t *testing.T) {
	card := RateCard{WeekdayPrice: 100000}
	slots := []SlotRate{{Interval: Interval{Start: 480, End: 720}, WeekdayMultiplier: 1, WeekendMultiplier: 1}}
	_, err := Quote(tuesday, Interval{Start: 720, End: 780}, card, slots)
	if !errors.Is(err, ErrNoPricingAvailable) {
		t.Errorf("expected ErrNoPricingAvailable, got %v", err)
	}
	_, err = Quote(tuesday, Interval{Start: 60, End: 120}, card, nil)
	if !errors.Is(err, ErrNoPricingAvailable) {
		t.Errorf("no slots: expected ErrNoPricingAvailable, got %v", err)
	}
}

func TestQuoteFirstMatchingSlotWins(t *testing.T) {
	// Overlapping slots are tolerated; the first one containing the
	// candidate start decides the multiplier.
	card := RateCard{WeekdayPrice: 100000}
	slots := []SlotRate{
		{SlotID: 1, Interval: Interval{Start: 480, End: 720}, WeekdayMultiplier: 1.0, WeekendMultiplier: 1.0},
		{SlotID: 2, Interval: Interval{Start: 480, End: 720}, WeekdayMultiplier: 3.0, WeekendMultiplier: 3.0},
	}
	got, err := Quote(tuesday, Interval{Start: 600, End: 660}, card, slots)
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	if got != 100000 {
		t.Errorf("first slot should win: got %d, want 100000", got)
	}
}

func TestApplyDiscount(t *testing.T) {
	cases := []struct {
		amount int64
		pct    float64
		want   int64
	}{
		{100000, 10, 90000},
		{100000, 0, 100000},
		{100000, 100, 0},
		{100000, -5, 100000},
		{100000, 150, 0},
		{99999, 50, 50000}, // 49999.5 rounds up
	}
	for _, c := range cases {
		if got := ApplyDiscount(c.amount, c.pct); got != c.want {
			t.Errorf("ApplyDiscount(%d, %v) = %d, want %d", c.amount, c.pct, got, c.want)
		}
	}
}
