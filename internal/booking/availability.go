package booking

// Available reports whether the candidate interval is free of conflicts
// against the supplied reservations.  Callers must pass only the
// intervals that actually block a booking, i.e. reservations on the same
// venue and date whose status is pending or confirmed; cancelled and
// completed rows never conflict.
//
// The check is the plain half-open overlap test, so back-to-back
// bookings (candidate ends exactly when the next one starts) are fine.
// With no existing reservations the answer is always true.
func Available(candidate Interval, existing []Interval) bool {
	for _, iv := range existing {
		if candidate.Overlaps(iv) {
			return false
		}
	}
	return true
}
