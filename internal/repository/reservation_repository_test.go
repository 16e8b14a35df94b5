package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"

	"github.com/ldiadam/kitabooking/internal/booking"
)

func newMockReservationRepo(t *testing.T) (*ReservationRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewReservationRepo(db, NewTimeSlotRepo(db)), mock
}

// expectCreatePreamble queues the venue and slot validity checks that
// open every creation transaction.
func expectCreatePreamble(mock sqlmock.Sqlmock, venueID, slotID uint64) {
	mock.ExpectQuery(`SELECT base_price_weekday`).
		WithArgs(venueID).
		WillReturnRows(sqlmock.NewRows([]string{"base_price_weekday", "base_price_weekend", "is_active"}).
			AddRow(150000, nil, true))
	mock.ExpectQuery(`SELECT is_active FROM time_slots`).
		WithArgs(slotID, venueID).
		WillReturnRows(sqlmock.NewRows([]string{"is_active"}).AddRow(true))
}

// Two first-bookings of an empty day race each other: both transactions
// gap-lock the empty (venue, date) range, both pass the availability
// check, and the server kills one insert with a deadlock.  The losing
// creation must be retried, see the winner's row on the locked re-read,
// and surface ErrSlotAlreadyBooked rather than a generic failure.
func TestCreateRetriesDeadlockAndReportsConflict(t *testing.T) {
	repo, mock := newMockReservationRepo(t)

	draft, err := booking.NewDraft(1, 7, 3, "2026-09-05", "10:00", "12:00", 0, "")
	if err != nil {
		t.Fatalf("NewDraft: %v", err)
	}

	// First attempt: empty range, dies on the INSERT.
	mock.ExpectBegin()
	expectCreatePreamble(mock, 7, 3)
	mock.ExpectQuery(`FROM reservations`).
		WithArgs(uint64(7), "2026-09-05").
		WillReturnRows(sqlmock.NewRows([]string{"start", "end"}))
	mock.ExpectQuery(`ORDER BY start_time, id`).
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "start", "end", "wd", "we"}).
			AddRow(3, "10:00", "12:00", 1.0, 1.0))
	mock.ExpectQuery(`SELECT COUNT`).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
	mock.ExpectExec(`INSERT INTO reservations`).
		WillReturnError(&mysql.MySQLError{Number: 1213, Message: "Deadlock found when trying to get lock"})
	mock.ExpectRollback()

	// Retry: the locked re-read now sees the winner's overlapping row.
	mock.ExpectBegin()
	expectCreatePreamble(mock, 7, 3)
	mock.ExpectQuery(`FROM reservations`).
		WithArgs(uint64(7), "2026-09-05").
		WillReturnRows(sqlmock.NewRows([]string{"start", "end"}).AddRow("10:00", "12:00"))
	mock.ExpectRollback()

	_, err = repo.Create(context.Background(), draft)
	if !errors.Is(err, ErrSlotAlreadyBooked) {
		t.Fatalf("Create after deadlock = %v, want ErrSlotAlreadyBooked", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

// A deadlock loser whose retry finds the day still free (the winner
// booked a non-overlapping window) must succeed on the second attempt.
func TestCreateRetriesDeadlockAndSucceeds(t *testing.T) {
	repo, mock := newMockReservationRepo(t)
	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)

	draft, err := booking.NewDraft(1, 7, 3, "2026-09-05", "10:00", "12:00", 0, "")
	if err != nil {
		t.Fatalf("NewDraft: %v", err)
	}

	mock.ExpectBegin()
	expectCreatePreamble(mock, 7, 3)
	mock.ExpectQuery(`FROM reservations`).
		WithArgs(uint64(7), "2026-09-05").
		WillReturnRows(sqlmock.NewRows([]string{"start", "end"}))
	mock.ExpectQuery(`ORDER BY start_time, id`).
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "start", "end", "wd", "we"}).
			AddRow(3, "10:00", "12:00", 1.0, 1.0))
	mock.ExpectQuery(`SELECT COUNT`).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
	mock.ExpectExec(`INSERT INTO reservations`).
		WillReturnError(&mysql.MySQLError{Number: 1213, Message: "Deadlock found when trying to get lock"})
	mock.ExpectRollback()

	mock.ExpectBegin()
	expectCreatePreamble(mock, 7, 3)
	mock.ExpectQuery(`FROM reservations`).
		WithArgs(uint64(7), "2026-09-05").
		WillReturnRows(sqlmock.NewRows([]string{"start", "end"}).AddRow("08:00", "10:00"))
	mock.ExpectQuery(`ORDER BY start_time, id`).
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "start", "end", "wd", "we"}).
			AddRow(3, "10:00", "12:00", 1.0, 1.0))
	mock.ExpectQuery(`SELECT COUNT`).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
	mock.ExpectExec(`INSERT INTO reservations`).
		WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectQuery(`FROM reservations WHERE id`).
		WithArgs(uint64(42)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "code", "user_id", "venue_id", "time_slot_id",
			"date", "start_time", "end_time",
			"duration_hours", "status", "base_price", "discount_percentage", "total_price", "notes",
			"created_at", "updated_at",
		}).AddRow(
			42, "KB-20260905-ABCDEF", 1, 7, 3,
			"2026-09-05", "10:00", "12:00",
			2.0, "pending", 300000, 0.0, 300000, nil,
			now, now,
		))
	mock.ExpectCommit()

	rec, err := repo.Create(context.Background(), draft)
	if err != nil {
		t.Fatalf("Create retry = %v, want success", err)
	}
	if rec.ID != 42 || rec.Status != "pending" {
		t.Errorf("reservation = id %d status %q, want 42/pending", rec.ID, rec.Status)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

// A non-retryable insert failure must pass straight through without a
// second attempt.
func TestCreateDoesNotRetryPlainErrors(t *testing.T) {
	repo, mock := newMockReservationRepo(t)

	draft, err := booking.NewDraft(1, 7, 3, "2026-09-05", "10:00", "12:00", 0, "")
	if err != nil {
		t.Fatalf("NewDraft: %v", err)
	}

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT base_price_weekday`).
		WithArgs(uint64(7)).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	if _, err := repo.Create(context.Background(), draft); err == nil {
		t.Fatal("Create = nil error, want failure")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations (retry happened?): %v", err)
	}
}
