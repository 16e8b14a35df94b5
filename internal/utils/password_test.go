package utils

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashPasswordClampsCost(t *testing.T) {
	cases := []struct {
		name string
		cost int
	}{
		{"below minimum", 0},
		{"negative", -3},
		{"above maximum", bcrypt.MaxCost + 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			hash, err := HashPassword("pw", tc.cost)
			if err != nil {
				t.Fatalf("HashPassword(cost=%d): %v", tc.cost, err)
			}
			got, err := bcrypt.Cost([]byte(hash))
			if err != nil {
				t.Fatalf("Cost: %v", err)
			}
			if got != bcrypt.DefaultCost {
				t.Errorf("cost = %d, want default %d", got, bcrypt.DefaultCost)
			}
			if !VerifyPassword(hash, "pw") {
				t.Error("clamped hash does not verify")
			}
		})
	}
}
