package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ldiadam/kitabooking/internal/booking"
	"github.com/ldiadam/kitabooking/internal/model"
)

// TimeSlotRepo encapsulates database operations on the time_slots
// table.  Slot times are stored as TIME columns and surfaced as
// "HH:MM" strings; conversion to booking.Minutes happens here so the
// rest of the code never parses clock strings twice.
type TimeSlotRepo struct {
	db *sql.DB
}

// NewTimeSlotRepo constructs a TimeSlotRepo given a DB handle.
func NewTimeSlotRepo(db *sql.DB) *TimeSlotRepo { return &TimeSlotRepo{db: db} }

const slotColumns = `id, venue_id,
	TIME_FORMAT(start_time, '%H:%i'), TIME_FORMAT(end_time, '%H:%i'),
	price_multiplier_weekday, price_multiplier_weekend, is_active,
	created_at, updated_at`

func scanSlot(row interface{ Scan(...interface{}) error }) (*model.TimeSlot, error) {
	s := new(model.TimeSlot)
	err := row.Scan(
		&s.ID, &s.VenueID,
		&s.StartTime, &s.EndTime,
		&s.PriceMultiplierWeekday, &s.PriceMultiplierWeekend, &s.IsActive,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Create inserts a slot after validating start < end.  The generated ID
// and timestamps are populated on the passed record.
func (r *TimeSlotRepo) Create(ctx context.Context, s *model.TimeSlot) error {
	if _, err := booking.ParseInterval(s.StartTime, s.EndTime); err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO time_slots
		 (venue_id, start_time, end_time, price_multiplier_weekday, price_multiplier_weekend, is_active)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		s.VenueID, s.StartTime, s.EndTime,
		s.PriceMultiplierWeekday, s.PriceMultiplierWeekend, s.IsActive)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	got, err := r.GetByID(ctx, s.ID)
	if err != nil {
		return err
	}
	*s = *got
	return nil
}

// GetByID fetches one slot; ErrSlotNotFound when it does not exist.
func (r *TimeSlotRepo) GetByID(ctx context.Context, id uint64) (*model.TimeSlot, error) {
	q := fmt.Sprintf(`SELECT %s FROM time_slots WHERE id = ?`, slotColumns)
	s, err := scanSlot(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSlotNotFound
		}
		return nil, err
	}
	return s, nil
}

// ListByVenue returns the venue's slots ordered by start time.  When
// activeOnly is true, inactive slots are excluded.
func (r *TimeSlotRepo) ListByVenue(ctx context.Context, venueID uint64, activeOnly bool) ([]*model.TimeSlot, error) {
	q := fmt.Sprintf(`SELECT %s FROM time_slots WHERE venue_id = ?`, slotColumns)
	if activeOnly {
		q += ` AND is_active = 1`
	}
	q += ` ORDER BY start_time, id`
	rows, err := r.db.QueryContext(ctx, q, venueID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*model.TimeSlot
	for rows.Next() {
		s, err := scanSlot(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update overwrites the editable fields of a slot.  Start/end are
// validated the same way as on create.
func (r *TimeSlotRepo) Update(ctx context.Context, s *model.TimeSlot) error {
	if _, err := booking.ParseInterval(s.StartTime, s.EndTime); err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE time_slots
		 SET start_time = ?, end_time = ?,
		     price_multiplier_weekday = ?, price_multiplier_weekend = ?, is_active = ?,
		     updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		s.StartTime, s.EndTime,
		s.PriceMultiplierWeekday, s.PriceMultiplierWeekend, s.IsActive, s.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(ctx, s.ID); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a slot unless reservations reference it.
func (r *TimeSlotRepo) Delete(ctx context.Context, id uint64) error {
	var refs int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM reservations WHERE time_slot_id = ?`, id).Scan(&refs); err != nil {
		return err
	}
	if refs > 0 {
		return ErrConflict
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM time_slots WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSlotNotFound
	}
	return nil
}

// RatesForVenueTx loads the active slots of a venue as booking.SlotRate
// values, ordered by start time then id so that "first match wins" in
// the price calculation is deterministic.  It runs inside the caller's
// transaction so the creation procedure prices against the same
// snapshot it validates.
func (r *TimeSlotRepo) RatesForVenueTx(ctx context.Context, tx *sql.Tx, venueID uint64) ([]booking.SlotRate, error) {
	const q = `SELECT id,
	                  TIME_FORMAT(start_time, '%H:%i'), TIME_FORMAT(end_time, '%H:%i'),
	                  price_multiplier_weekday, price_multiplier_weekend
	           FROM time_slots
	           WHERE venue_id = ? AND is_active = 1
	           ORDER BY start_time, id`
	rows, err := tx.QueryContext(ctx, q, venueID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []booking.SlotRate
	for rows.Next() {
		var (
			id         uint64
			start, end string
			wd, we     float64
		)
		if err := rows.Scan(&id, &start, &end, &wd, &we); err != nil {
			return nil, err
		}
		iv, err := booking.ParseInterval(start, end)
		if err != nil {
			return nil, err
		}
		out = append(out, booking.SlotRate{
			SlotID:            id,
			Interval:          iv,
			WeekdayMultiplier: wd,
			WeekendMultiplier: we,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
