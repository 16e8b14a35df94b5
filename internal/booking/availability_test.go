package booking

import "testing"

func TestAvailableNoReservations(t *testing.T) {
	// With an empty ledger every interval is bookable.
	for _, iv := range []Interval{{0, 60}, {480, 540}, {1380, 1440}} {
		if !Available(iv, nil) {
			t.Errorf("Available(%v, nil) = false, want true", iv)
		}
		if !Available(iv, []Interval{}) {
			t.Errorf("Available(%v, []) = false, want true", iv)
		}
	}
}

func TestAvailableConflicts(t *testing.T) {
	existing := []Interval{
		{540, 600},  // 09:00-10:00
		{660, 720},  // 11:00-12:00
		{900, 1020}, // 15:00-17:00
	}
	cases := []struct {
		name      string
		candidate Interval
		want      bool
	}{
		{"gap between bookings", Interval{600, 660}, true},
		{"exactly adjacent to end", Interval{720, 780}, true},
		{"exactly adjacent to start", Interval{480, 540}, true},
		{"same as existing", Interval{540, 600}, false},
		{"straddles one booking", Interval{570, 630}, false},
		{"swallows one booking", Interval{630, 750}, false},
		{"inside long booking", Interval{930, 990}, false},
		{"before everything", Interval{0, 480}, true},
		{"after everything", Interval{1020, 1440}, true},
	}
	for _, c := range cases {
		if got := Available(c.candidate, existing); got != c.want {
			t.Errorf("%s: Available(%v) = %v, want %v", c.name, c.candidate, got, c.want)
		}
	}
}

func TestAvailableNonOverlapPairNeverBlocks(t *testing.T) {
	// If two intervals share no instant, a reservation on either one must
	// never block booking the other, in both directions.
	pairs := [][2]Interval{
		{{540, 600}, {600, 660}},
		{{480, 510}, {720, 780}},
		{{0, 60}, {1380, 1440}},
	}
	for _, p := range pairs {
		if p[0].Overlaps(p[1]) {
			t.Fatalf("test pair %v unexpectedly overlaps", p)
		}
		if !Available(p[0], []Interval{p[1]}) {
			t.Errorf("reservation on %v blocked booking %v", p[1], p[0])
		}
		if !Available(p[1], []Interval{p[0]}) {
			t.Errorf("reservation on %v blocked booking %v", p[0], p[1])
		}
	}
}
