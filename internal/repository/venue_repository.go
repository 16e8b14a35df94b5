// Package repository contains data access logic separated from HTTP
// handlers.  This file covers venue types and venues: CRUD plus the
// lookups the booking flow depends on.  Venues are never hard-deleted
// while reservations reference them; deactivation is the supported way
// to retire one.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/ldiadam/kitabooking/internal/model"
)

// VenueRepo encapsulates all database queries related to venue types
// and venues.  It depends on a sql.DB pool configured at startup.
type VenueRepo struct {
	db *sql.DB
}

// NewVenueRepo constructs a VenueRepo with the provided DB handle.
func NewVenueRepo(db *sql.DB) *VenueRepo { return &VenueRepo{db: db} }

// DB exposes the underlying pool so handlers can begin transactions
// that span multiple repositories.
func (r *VenueRepo) DB() *sql.DB { return r.db }

// ListTypes returns all venue types ordered by id.
func (r *VenueRepo) ListTypes(ctx context.Context) ([]*model.VenueType, error) {
	const q = `SELECT id, name, description FROM venue_types ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*model.VenueType
	for rows.Next() {
		vt := new(model.VenueType)
		var desc sql.NullString
		if err := rows.Scan(&vt.ID, &vt.Name, &desc); err != nil {
			return nil, err
		}
		if desc.Valid {
			d := desc.String
			vt.Description = &d
		}
		out = append(out, vt)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateType inserts a venue type and populates its generated ID.
func (r *VenueRepo) CreateType(ctx context.Context, vt *model.VenueType) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO venue_types (name, description) VALUES (?, ?)`,
		vt.Name, vt.Description)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	vt.ID = uint64(id)
	return nil
}

// Create inserts a new venue.  On success the venue's ID, CreatedAt and
// UpdatedAt fields are populated from the stored row so callers receive
// a fully populated record.
func (r *VenueRepo) Create(ctx context.Context, v *model.Venue) error {
	const qInsert = `INSERT INTO venues
		(venue_type_id, name, description, base_price_weekday, base_price_weekend, is_active)
		VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, qInsert,
		v.VenueTypeID, v.Name, v.Description, v.BasePriceWeekday, v.BasePriceWeekend, v.IsActive)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	v.ID = uint64(id)
	got, err := r.GetByID(ctx, v.ID)
	if err != nil {
		return err
	}
	*v = *got
	return nil
}

// GetByID fetches a venue by its id.  It returns ErrVenueNotFound when
// no row exists.
func (r *VenueRepo) GetByID(ctx context.Context, id uint64) (*model.Venue, error) {
	const q = `SELECT id, venue_type_id, name, description,
	                  base_price_weekday, base_price_weekend, is_active,
	                  created_at, updated_at
	           FROM venues WHERE id = ?`
	v := new(model.Venue)
	var desc sql.NullString
	var weekend sql.NullInt64
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&v.ID, &v.VenueTypeID, &v.Name, &desc,
		&v.BasePriceWeekday, &weekend, &v.IsActive,
		&v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	if desc.Valid {
		d := desc.String
		v.Description = &d
	}
	if weekend.Valid {
		w := weekend.Int64
		v.BasePriceWeekend = &w
	}
	return v, nil
}

// List returns venues, optionally filtered by venue type and active
// flag, ordered by id.  Nil filters mean "all".
func (r *VenueRepo) List(ctx context.Context, typeID *uint64, active *bool) ([]*model.Venue, error) {
	q := `SELECT id, venue_type_id, name, description,
	             base_price_weekday, base_price_weekend, is_active,
	             created_at, updated_at
	      FROM venues WHERE 1=1`
	args := make([]interface{}, 0, 2)
	if typeID != nil {
		q += ` AND venue_type_id = ?`
		args = append(args, *typeID)
	}
	if active != nil {
		q += ` AND is_active = ?`
		args = append(args, *active)
	}
	q += ` ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*model.Venue
	for rows.Next() {
		v := new(model.Venue)
		var desc sql.NullString
		var weekend sql.NullInt64
		if err := rows.Scan(
			&v.ID, &v.VenueTypeID, &v.Name, &desc,
			&v.BasePriceWeekday, &weekend, &v.IsActive,
			&v.CreatedAt, &v.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if desc.Valid {
			d := desc.String
			v.Description = &d
		}
		if weekend.Valid {
			w := weekend.Int64
			v.BasePriceWeekend = &w
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update overwrites the editable fields of a venue.  It returns
// ErrVenueNotFound when no row is affected.
func (r *VenueRepo) Update(ctx context.Context, v *model.Venue) error {
	const q = `UPDATE venues
	           SET venue_type_id = ?, name = ?, description = ?,
	               base_price_weekday = ?, base_price_weekend = ?, is_active = ?,
	               updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q,
		v.VenueTypeID, v.Name, v.Description,
		v.BasePriceWeekday, v.BasePriceWeekend, v.IsActive, v.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// RowsAffected is also 0 when the update is a no-op, so verify
		// existence before reporting not-found.
		if _, err := r.GetByID(ctx, v.ID); err != nil {
			return err
		}
	}
	return nil
}

// SetActive toggles the is_active flag, the supported way to take a
// venue off the market without touching its reservation history.
func (r *VenueRepo) SetActive(ctx context.Context, id uint64, active bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE venues SET is_active = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		active, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a venue and its time slots, refusing when any
// reservation still references it.  It returns ErrVenueNotFound when
// the venue does not exist and ErrConflict when reservations reference
// it.
func (r *VenueRepo) Delete(ctx context.Context, id uint64) error {
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
	var exists uint64
	if err := tx.QueryRowContext(ctx, `SELECT id FROM venues WHERE id = ?`, id).Scan(&exists); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrVenueNotFound
		}
		return err
	}
	var refs int
	if err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM reservations WHERE venue_id = ?`, id).Scan(&refs); err != nil {
		return err
	}
	if refs > 0 {
		return ErrConflict
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM time_slots WHERE venue_id = ?`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM venues WHERE id = ?`, id); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}
