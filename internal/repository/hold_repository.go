package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/tourwire/flight-desk/internal/model"
)

// HoldRepo provides data access to the holds table.  There is no
// uniqueness constraint on (option, passenger): every placeHold call
// inserts a fresh row, and readers treat the newest unexpired row as
// authoritative.  Expired rows are never deleted – expiry is a pure
// read-time comparison against the stored timestamp, so a lapsed hold
// is inert rather than swept by a background process.
type HoldRepo struct {
	db *sql.DB
}

// NewHoldRepo returns a new HoldRepo bound to the provided database.
func NewHoldRepo(db *sql.DB) *HoldRepo { return &HoldRepo{db: db} }

// Create inserts a hold row and populates its generated ID and
// created_at. The caller computes ExpiresAt via booking.HoldExpiry so
// range validation happens before any write.
func (r *HoldRepo) Create(ctx context.Context, h *model.Hold) error {
	h.ID = uuid.NewString()
	const q = `INSERT INTO holds (id, option_id, passenger_id, expires_at, created_by, notes)
               VALUES (?, ?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, q,
		h.ID, h.OptionID, h.PassengerID, h.ExpiresAt.UTC(), h.CreatedBy, h.Notes,
	); err != nil {
		return err
	}
	return r.db.QueryRowContext(ctx,
		`SELECT created_at FROM holds WHERE id = ?`, h.ID).Scan(&h.CreatedAt)
}

// LatestForPair returns the most recently created hold on the
// (option, passenger) pair regardless of expiry, or nil when the pair
// has never been held.
func (r *HoldRepo) LatestForPair(ctx context.Context, optionID, passengerID string) (*model.Hold, error) {
	const q = `SELECT id, option_id, passenger_id, expires_at, created_by, notes, created_at
               FROM holds
               WHERE option_id = ? AND passenger_id = ?
               ORDER BY created_at DESC, id DESC
               LIMIT 1`
	var h model.Hold
	err := r.db.QueryRowContext(ctx, q, optionID, passengerID).Scan(
		&h.ID, &h.OptionID, &h.PassengerID, &h.ExpiresAt, &h.CreatedBy, &h.Notes, &h.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	h.ExpiresAt = h.ExpiresAt.UTC()
	return &h, nil
}

// ListForPassenger returns all holds ever placed for a passenger,
// newest first.  Agents use this to audit the promise history; expired
// rows stay visible.
func (r *HoldRepo) ListForPassenger(ctx context.Context, passengerID string) ([]model.Hold, error) {
	const q = `SELECT id, option_id, passenger_id, expires_at, created_by, notes, created_at
               FROM holds WHERE passenger_id = ?
               ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q, passengerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	holds := make([]model.Hold, 0)
	for rows.Next() {
		var h model.Hold
		if err := rows.Scan(&h.ID, &h.OptionID, &h.PassengerID, &h.ExpiresAt,
			&h.CreatedBy, &h.Notes, &h.CreatedAt); err != nil {
			return nil, err
		}
		h.ExpiresAt = h.ExpiresAt.UTC()
		holds = append(holds, h)
	}
	return holds, rows.Err()
}

// Unexpired reports whether the hold is still live at the given
// instant.  Kept on the repository record rather than the model so
// call sites that only have the row in hand can ask without importing
// the classification rules.
func Unexpired(h *model.Hold, now time.Time) bool {
	return h != nil && h.ExpiresAt.After(now)
}
