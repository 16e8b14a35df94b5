package model

import "testing"

func TestCancellable(t *testing.T) {
	cases := []struct {
		status string
		want   bool
	}{
		{StatusPending, true},
		{StatusConfirmed, true},
		{StatusCancelled, false},
		{StatusCompleted, false},
		{"garbage", false},
	}
	for _, c := range cases {
		if got := Cancellable(c.status); got != c.want {
			t.Errorf("Cancellable(%q) = %v, want %v", c.status, got, c.want)
		}
	}
}

func TestBlocking(t *testing.T) {
	// Cancelled and completed reservations never participate in
	// conflict checks.
	for _, s := range []string{StatusPending, StatusConfirmed} {
		if !Blocking(s) {
			t.Errorf("Blocking(%q) = false, want true", s)
		}
	}
	for _, s := range []string{StatusCancelled, StatusCompleted, ""} {
		if Blocking(s) {
			t.Errorf("Blocking(%q) = true, want false", s)
		}
	}
}

func TestElevated(t *testing.T) {
	for _, r := range []string{RoleStaff, RoleAdmin, RoleSuperadmin} {
		if !Elevated(r) {
			t.Errorf("Elevated(%q) = false, want true", r)
		}
	}
	if Elevated(RoleCustomer) || Elevated("") || Elevated("staff") {
		t.Error("only the exact elevated role names may pass the check")
	}
}
