package booking

import (
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"
)

var codePattern = regexp.MustCompile(`^KB-\d{8}-[A-HJ-NP-Z2-9]{6}$`)

func TestNewCodeFormat(t *testing.T) {
	date := time.Date(2026, time.August, 30, 0, 0, 0, 0, time.UTC)
	code, err := NewCode(date)
	if err != nil {
		t.Fatalf("NewCode: %v", err)
	}
	if !codePattern.MatchString(code) {
		t.Errorf("code %q does not match expected format", code)
	}
	if !strings.Contains(code, "20260830") {
		t.Errorf("code %q does not embed the reservation date", code)
	}
}

func TestGenerateCodeNeverRepeats(t *testing.T) {
	date := time.Date(2026, time.August, 30, 0, 0, 0, 0, time.UTC)
	seen := make(map[string]struct{})
	taken := func(c string) bool {
		_, ok := seen[c]
		return ok
	}
	for i := 0; i < 5000; i++ {
		code, err := GenerateCode(date, taken)
		if err != nil {
			t.Fatalf("GenerateCode after %d codes: %v", i, err)
		}
		if _, dup := seen[code]; dup {
			t.Fatalf("duplicate code %q issued", code)
		}
		seen[code] = struct{}{}
	}
}

func TestGenerateCodeRetriesCollisions(t *testing.T) {
	date := time.Date(2026, time.August, 30, 0, 0, 0, 0, time.UTC)
	rejected := 0
	// Reject the first three candidates; the fourth attempt must succeed.
	taken := func(string) bool {
		if rejected < 3 {
			rejected++
			return true
		}
		return false
	}
	code, err := GenerateCode(date, taken)
	if err != nil {
		t.Fatalf("GenerateCode: %v", err)
	}
	if rejected != 3 {
		t.Errorf("expected 3 rejected candidates, got %d", rejected)
	}
	if !codePattern.MatchString(code) {
		t.Errorf("code %q does not match expected format", code)
	}
}

func TestGenerateCodeExhaustsBudget(t *testing.T) {
	date := time.Date(2026, time.August, 30, 0, 0, 0, 0, time.UTC)
	_, err := GenerateCode(date, func(string) bool { return true })
	if !errors.Is(err, ErrCodeExhausted) {
		t.Errorf("expected ErrCodeExhausted, got %v", err)
	}
}
