package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/ldiadam/kitabooking/internal/booking"
	"github.com/ldiadam/kitabooking/internal/model"
)

// ReservationRepo owns the reservations table: the creation procedure,
// cancellation, status transitions and the listings shown to customers
// and staff.  All writes run inside transactions; the creation
// procedure additionally locks the conflicting row range with
// SELECT ... FOR UPDATE so two concurrent bookings of the same interval
// serialize instead of both passing validation.
type ReservationRepo struct {
	db    *sql.DB
	slots *TimeSlotRepo
}

// NewReservationRepo returns a ReservationRepo bound to the database.
// The slot repository is used to load pricing rates inside the creation
// transaction.
func NewReservationRepo(db *sql.DB, slots *TimeSlotRepo) *ReservationRepo {
	return &ReservationRepo{db: db, slots: slots}
}

// DB exposes the underlying pool for handlers that need it.
func (r *ReservationRepo) DB() *sql.DB { return r.db }

// blockingIntervalsTx returns the intervals of pending/confirmed
// reservations on (venue, date).  With forUpdate the matching rows are
// locked until the surrounding transaction ends, which is the
// double-booking defense: a concurrent creation for the same venue and
// date blocks here until the first transaction commits, then sees its
// row.
func (r *ReservationRepo) blockingIntervalsTx(ctx context.Context, tx *sql.Tx, venueID uint64, date string, forUpdate bool) ([]booking.Interval, error) {
	q := `SELECT TIME_FORMAT(start_time, '%H:%i'), TIME_FORMAT(end_time, '%H:%i')
	      FROM reservations
	      WHERE venue_id = ? AND date = ? AND status IN ('pending', 'confirmed')`
	if forUpdate {
		q += ` FOR UPDATE`
	}
	rows, err := tx.QueryContext(ctx, q, venueID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []booking.Interval
	for rows.Next() {
		var start, end string
		if err := rows.Scan(&start, &end); err != nil {
			return nil, err
		}
		iv, err := booking.ParseInterval(start, end)
		if err != nil {
			return nil, err
		}
		out = append(out, iv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// BlockingIntervals is the read-only variant used when rendering
// availability to customers.  The answer is advisory: the creation
// procedure re-checks under lock, so a stale UI answer can never cause
// a double booking.
func (r *ReservationRepo) BlockingIntervals(ctx context.Context, venueID uint64, date string) ([]booking.Interval, error) {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()
	return r.blockingIntervalsTx(ctx, tx, venueID, date, false)
}

// Create runs the whole reservation creation procedure in one
// transaction:
//
//  1. venue must exist and be active            -> ErrVenueUnavailable
//  2. slot must exist, on this venue, active    -> ErrSlotUnavailable
//  3. availability re-check under row locks     -> ErrSlotAlreadyBooked
//  4. price via the slot rates, apply discount
//  5. unique reservation code, retried on collision
//  6. insert with status pending
//
// Any failure rolls the transaction back; no partial rows are ever
// visible.  On success the stored reservation is returned.
//
// When the (venue, date) range holds no rows yet, two concurrent
// creations both gap-lock the empty range, both pass the availability
// check, and InnoDB resolves their inserts by killing one with a
// deadlock.  That loser is retried once: the retry's locked re-read
// then sees the winner's committed row, so an overlapping request ends
// in ErrSlotAlreadyBooked and a non-overlapping one succeeds.
func (r *ReservationRepo) Create(ctx context.Context, d booking.Draft) (*model.Reservation, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	rec, err := r.createOnce(ctx, d)
	if err != nil && isLockConflict(err) {
		rec, err = r.createOnce(ctx, d)
	}
	return rec, err
}

func (r *ReservationRepo) createOnce(ctx context.Context, d booking.Draft) (*model.Reservation, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// Step 1: venue active.
	var (
		weekday int64
		weekend sql.NullInt64
		active  bool
	)
	err = tx.QueryRowContext(ctx,
		`SELECT base_price_weekday, base_price_weekend, is_active FROM venues WHERE id = ?`,
		d.VenueID).Scan(&weekday, &weekend, &active)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVenueUnavailable
		}
		return nil, err
	}
	if !active {
		return nil, ErrVenueUnavailable
	}
	card := booking.RateCard{WeekdayPrice: weekday}
	if weekend.Valid {
		w := weekend.Int64
		card.WeekendPrice = &w
	}

	// Step 2: slot belongs to this venue and is available.
	var slotActive bool
	err = tx.QueryRowContext(ctx,
		`SELECT is_active FROM time_slots WHERE id = ? AND venue_id = ?`,
		d.TimeSlotID, d.VenueID).Scan(&slotActive)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSlotUnavailable
		}
		return nil, err
	}
	if !slotActive {
		return nil, ErrSlotUnavailable
	}

	// Step 3: commit-time availability re-check.  The FOR UPDATE read
	// serializes concurrent creations on the same (venue, date); exactly
	// one of two simultaneous requests for the same interval wins.
	date := d.Date.Format("2006-01-02")
	existing, err := r.blockingIntervalsTx(ctx, tx, d.VenueID, date, true)
	if err != nil {
		return nil, err
	}
	if !booking.Available(d.Interval, existing) {
		return nil, ErrSlotAlreadyBooked
	}

	// Step 4: price the draft against the venue's slot rates.
	rates, err := r.slots.RatesForVenueTx(ctx, tx, d.VenueID)
	if err != nil {
		return nil, err
	}
	basePrice, err := booking.Quote(d.Date, d.Interval, card, rates)
	if err != nil {
		return nil, err
	}
	totalPrice := booking.ApplyDiscount(basePrice, d.DiscountPercent)

	// Step 5: generate a collision-free reservation code.
	var takenErr error
	code, err := booking.GenerateCode(d.Date, func(c string) bool {
		var n int
		if e := tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM reservations WHERE code = ?`, c).Scan(&n); e != nil {
			takenErr = e
			return true
		}
		return n > 0
	})
	if takenErr != nil {
		return nil, takenErr
	}
	if err != nil {
		return nil, err
	}

	// Step 6: insert with status pending.
	var notes interface{}
	if d.Notes != "" {
		notes = d.Notes
	}
	res, err := tx.ExecContext(ctx,
		`INSERT INTO reservations
		 (code, user_id, venue_id, time_slot_id, date, start_time, end_time,
		  duration_hours, status, base_price, discount_percentage, total_price, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, 'pending', ?, ?, ?, ?)`,
		code, d.UserID, d.VenueID, d.TimeSlotID, date,
		d.Interval.Start.String(), d.Interval.End.String(),
		d.DurationHours(), basePrice, d.DiscountPercent, totalPrice, notes)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	rec, err := r.getTx(ctx, tx, uint64(id))
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return rec, nil
}

const reservationColumns = `id, code, user_id, venue_id, time_slot_id,
	DATE_FORMAT(date, '%Y-%m-%d'),
	TIME_FORMAT(start_time, '%H:%i'), TIME_FORMAT(end_time, '%H:%i'),
	duration_hours, status, base_price, discount_percentage, total_price, notes,
	created_at, updated_at`

func scanReservation(row interface{ Scan(...interface{}) error }) (*model.Reservation, error) {
	rec := new(model.Reservation)
	var notes sql.NullString
	err := row.Scan(
		&rec.ID, &rec.Code, &rec.UserID, &rec.VenueID, &rec.TimeSlotID,
		&rec.Date, &rec.StartTime, &rec.EndTime,
		&rec.DurationHours, &rec.Status,
		&rec.BasePrice, &rec.DiscountPercentage, &rec.TotalPrice, &notes,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if notes.Valid {
		n := notes.String
		rec.Notes = &n
	}
	return rec, nil
}

func (r *ReservationRepo) getTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Reservation, error) {
	q := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ?`
	return scanReservation(tx.QueryRowContext(ctx, q, id))
}

// GetByID loads one reservation.  Ownership is not checked here;
// handlers decide whether the caller may see it (owner or elevated
// role).
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (*model.Reservation, error) {
	q := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ?`
	rec, err := scanReservation(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return rec, nil
}

// ReservationDetail is the listing view: a reservation joined with its
// venue name, ordered newest first in list queries.
type ReservationDetail struct {
	ID                 uint64  `json:"id"`
	Code               string  `json:"code"`
	UserID             uint64  `json:"user_id"`
	VenueID            uint64  `json:"venue_id"`
	VenueName          string  `json:"venue_name"`
	Date               string  `json:"date"`
	StartTime          string  `json:"start_time"`
	EndTime            string  `json:"end_time"`
	DurationHours      float64 `json:"duration_hours"`
	Status             string  `json:"status"`
	BasePrice          int64   `json:"base_price"`
	DiscountPercentage float64 `json:"discount_percentage"`
	TotalPrice         int64   `json:"total_price"`
	Notes              *string `json:"notes,omitempty"`
}

const detailColumns = `r.id, r.code, r.user_id, r.venue_id, v.name,
	DATE_FORMAT(r.date, '%Y-%m-%d'),
	TIME_FORMAT(r.start_time, '%H:%i'), TIME_FORMAT(r.end_time, '%H:%i'),
	r.duration_hours, r.status, r.base_price, r.discount_percentage, r.total_price, r.notes`

func scanDetail(row interface{ Scan(...interface{}) error }) (*ReservationDetail, error) {
	d := new(ReservationDetail)
	var notes sql.NullString
	err := row.Scan(
		&d.ID, &d.Code, &d.UserID, &d.VenueID, &d.VenueName,
		&d.Date, &d.StartTime, &d.EndTime,
		&d.DurationHours, &d.Status,
		&d.BasePrice, &d.DiscountPercentage, &d.TotalPrice, &notes,
	)
	if err != nil {
		return nil, err
	}
	if notes.Valid {
		n := notes.String
		d.Notes = &n
	}
	return d, nil
}

// ListByUser returns the user's reservations, newest first.
func (r *ReservationRepo) ListByUser(ctx context.Context, userID uint64) ([]*ReservationDetail, error) {
	q := `SELECT ` + detailColumns + `
	      FROM reservations r
	      JOIN venues v ON v.id = r.venue_id
	      WHERE r.user_id = ?
	      ORDER BY r.created_at DESC, r.id DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]*ReservationDetail, 0)
	for rows.Next() {
		d, err := scanDetail(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// AdminFilter narrows the staff reservation listing.  Zero values mean
// "no filter".
type AdminFilter struct {
	Date    string // "YYYY-MM-DD"
	VenueID uint64
	Status  string
}

// ListForAdmin returns reservations matching the filter, newest first.
func (r *ReservationRepo) ListForAdmin(ctx context.Context, f AdminFilter) ([]*ReservationDetail, error) {
	q := `SELECT ` + detailColumns + `
	      FROM reservations r
	      JOIN venues v ON v.id = r.venue_id
	      WHERE 1=1`
	args := make([]interface{}, 0, 3)
	if f.Date != "" {
		q += ` AND r.date = ?`
		args = append(args, f.Date)
	}
	if f.VenueID != 0 {
		q += ` AND r.venue_id = ?`
		args = append(args, f.VenueID)
	}
	if f.Status != "" {
		q += ` AND r.status = ?`
		args = append(args, f.Status)
	}
	q += ` ORDER BY r.created_at DESC, r.id DESC`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]*ReservationDetail, 0)
	for rows.Next() {
		d, err := scanDetail(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Cancel sets a reservation to cancelled on behalf of actingUserID.
// Non-elevated callers may only cancel their own reservations
// (ErrForbidden otherwise).  Reservations that are already cancelled or
// completed fail with ErrNotCancellable.  The read and the update run
// in one transaction so two concurrent cancellations cannot both
// succeed.
func (r *ReservationRepo) Cancel(ctx context.Context, id, actingUserID uint64, elevated bool) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	var (
		ownerID uint64
		status  string
	)
	err = tx.QueryRowContext(ctx,
		`SELECT user_id, status FROM reservations WHERE id = ? FOR UPDATE`, id).
		Scan(&ownerID, &status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrReservationNotFound
		}
		return err
	}
	if !elevated && ownerID != actingUserID {
		return ErrForbidden
	}
	if !model.Cancellable(status) {
		return ErrNotCancellable
	}
	if _, err = tx.ExecContext(ctx,
		`UPDATE reservations SET status = 'cancelled', updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		id); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// UpdateStatus applies a staff-driven lifecycle transition:
//
//	pending   -> confirmed (confirm)
//	confirmed -> completed (complete)
//	pending/confirmed -> cancelled (cancel)
//
// Anything else fails with ErrBadTransition (or ErrNotCancellable for a
// cancel of a finished reservation, so the caller can phrase the error
// precisely).
func (r *ReservationRepo) UpdateStatus(ctx context.Context, id uint64, next string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	var current string
	err = tx.QueryRowContext(ctx,
		`SELECT status FROM reservations WHERE id = ? FOR UPDATE`, id).Scan(&current)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrReservationNotFound
		}
		return err
	}
	switch next {
	case model.StatusConfirmed:
		if current != model.StatusPending {
			return ErrBadTransition
		}
	case model.StatusCompleted:
		if current != model.StatusConfirmed {
			return ErrBadTransition
		}
	case model.StatusCancelled:
		if !model.Cancellable(current) {
			return ErrNotCancellable
		}
	default:
		return ErrBadTransition
	}
	if _, err = tx.ExecContext(ctx,
		`UPDATE reservations SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		next, id); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// RevenueRow is one day of the revenue report: the sum of total_price
// over confirmed and completed reservations.
type RevenueRow struct {
	Date    string `json:"date"`
	Count   int    `json:"reservations"`
	Revenue int64  `json:"revenue"`
}

// Revenue aggregates confirmed/completed reservations per day over the
// inclusive [from, to] date range.
func (r *ReservationRepo) Revenue(ctx context.Context, from, to time.Time) ([]*RevenueRow, error) {
	const q = `SELECT DATE_FORMAT(date, '%Y-%m-%d'), COUNT(*), COALESCE(SUM(total_price), 0)
	           FROM reservations
	           WHERE date BETWEEN ? AND ? AND status IN ('confirmed', 'completed')
	           GROUP BY date
	           ORDER BY date`
	rows, err := r.db.QueryContext(ctx, q, from.Format("2006-01-02"), to.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]*RevenueRow, 0)
	for rows.Next() {
		row := new(RevenueRow)
		if err := rows.Scan(&row.Date, &row.Count, &row.Revenue); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
