package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
)

func TestIsLockConflict(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"deadlock", &mysql.MySQLError{Number: 1213, Message: "Deadlock found when trying to get lock"}, true},
		{"lock wait timeout", &mysql.MySQLError{Number: 1205, Message: "Lock wait timeout exceeded"}, true},
		{"wrapped deadlock", fmt.Errorf("insert reservation: %w", &mysql.MySQLError{Number: 1213}), true},
		{"duplicate key", &mysql.MySQLError{Number: 1062}, false},
		{"no rows", sql.ErrNoRows, false},
		{"plain error", errors.New("boom"), false},
		{"nil", nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := isLockConflict(tc.err); got != tc.want {
				t.Errorf("isLockConflict(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}

func TestIsDuplicateKey(t *testing.T) {
	if !isDuplicateKey(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}) {
		t.Error("1062 not recognized as duplicate key")
	}
	if !isDuplicateKey(fmt.Errorf("create user: %w", &mysql.MySQLError{Number: 1062})) {
		t.Error("wrapped 1062 not recognized")
	}
	if isDuplicateKey(&mysql.MySQLError{Number: 1213}) {
		t.Error("deadlock misclassified as duplicate key")
	}
	if isDuplicateKey(errors.New("Duplicate entry 'x' for key 'email'")) {
		t.Error("string matching must not classify plain errors")
	}
}
