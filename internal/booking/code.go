package booking

import (
	"crypto/rand"
	"errors"
	"fmt"
	"time"
)

// Reservation codes look like "KB-20260830-7XQ4FN": a fixed prefix, the
// reservation date, and a random suffix drawn from an alphabet without
// the easily confused characters 0/O and 1/I.  The code is what staff
// and customers quote to each other; the numeric row id stays internal.

const (
	codePrefix      = "KB"
	codeSuffixLen   = 6
	codeMaxAttempts = 10
	codeAlphabet    = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// ErrCodeExhausted is returned when a collision-free code could not be
// found within the attempt budget.  With a 32-character alphabet and six
// positions this only happens when the taken set is pathological.
var ErrCodeExhausted = errors.New("could not generate a unique reservation code")

// NewCode returns a reservation code for the given date with a random
// suffix.  Uniqueness is the caller's concern; use GenerateCode when a
// taken-set is available.
func NewCode(date time.Time) (string, error) {
	buf := make([]byte, codeSuffixLen)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return fmt.Sprintf("%s-%s-%s", codePrefix, date.Format("20060102"), string(buf)), nil
}

// GenerateCode produces a code that is not already taken.  The taken
// callback is consulted for each candidate (typically a DB lookup or an
// in-memory set); generation is retried until a free code is found or
// the attempt budget runs out.
func GenerateCode(date time.Time, taken func(string) bool) (string, error) {
	for i := 0; i < codeMaxAttempts; i++ {
		code, err := NewCode(date)
		if err != nil {
			return "", err
		}
		if taken == nil || !taken(code) {
			return code, nil
		}
	}
	return "", ErrCodeExhausted
}
