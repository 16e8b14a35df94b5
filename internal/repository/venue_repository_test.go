package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockVenueRepo(t *testing.T) (*VenueRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewVenueRepo(db), mock
}

// A failed commit must reach the caller.  Swallowing it would report a
// successful delete for a venue that is still in the database.
func TestDeleteReportsCommitFailure(t *testing.T) {
	repo, mock := newMockVenueRepo(t)

	commitErr := errors.New("invalid connection")
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM venues`).
		WithArgs(uint64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(9))
	mock.ExpectQuery(`SELECT COUNT`).
		WithArgs(uint64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
	mock.ExpectExec(`DELETE FROM time_slots`).
		WithArgs(uint64(9)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM venues`).
		WithArgs(uint64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	// No rollback expectation: once Commit has been attempted the
	// sql.Tx is done and the deferred Rollback is a no-op.
	mock.ExpectCommit().WillReturnError(commitErr)

	if err := repo.Delete(context.Background(), 9); !errors.Is(err, commitErr) {
		t.Fatalf("Delete = %v, want commit error", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

// A venue referenced by reservations must not be deleted.
func TestDeleteRefusesReferencedVenue(t *testing.T) {
	repo, mock := newMockVenueRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM venues`).
		WithArgs(uint64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(9))
	mock.ExpectQuery(`SELECT COUNT`).
		WithArgs(uint64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(4))
	mock.ExpectRollback()

	if err := repo.Delete(context.Background(), 9); !errors.Is(err, ErrConflict) {
		t.Fatalf("Delete = %v, want ErrConflict", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
