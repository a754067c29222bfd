package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/tourwire/flight-desk/internal/booking"
	"github.com/tourwire/flight-desk/internal/model"
)

// SelectionRepo provides data access to the selections table and
// assembles the joined rows the agent queue is built from.  The
// "current" selection of a (passenger, leg) pair is not a pointer
// column: it is whichever row still carries an active status, and
// CreateSuperseding keeps that set at most one by cancelling prior
// actives in the same transaction as the insert.
type SelectionRepo struct {
	db *sql.DB
}

// NewSelectionRepo returns a new SelectionRepo bound to the given
// database.
func NewSelectionRepo(db *sql.DB) *SelectionRepo { return &SelectionRepo{db: db} }

// GetByID returns a single selection.  It returns
// ErrSelectionNotFound when no row exists.
func (r *SelectionRepo) GetByID(ctx context.Context, selectionID string) (*model.Selection, error) {
	const q = `SELECT id, passenger_id, option_id, leg_id, status, created_at, updated_at
               FROM selections WHERE id = ?`
	var s model.Selection
	err := r.db.QueryRowContext(ctx, q, selectionID).Scan(
		&s.ID, &s.PassengerID, &s.OptionID, &s.LegID, &s.Status, &s.CreatedAt, &s.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrSelectionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// CreateSuperseding inserts a new pending selection for the
// (passenger, leg) pair after cancelling any pending or held prior
// selection for the same pair.  Both statements run in one
// transaction, keeping at most one active selection per pair.  The
// populated record is returned.
func (r *SelectionRepo) CreateSuperseding(ctx context.Context, passengerID, optionID, legID string) (*model.Selection, error) {
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

	// Only pending and held selections are cancellable; a ticketed
	// one must be reverted first, which the handler enforces before
	// calling here.
	if _, err := tx.ExecContext(ctx,
		`UPDATE selections SET status = ?, updated_at = UTC_TIMESTAMP()
         WHERE passenger_id = ? AND leg_id = ? AND status IN (?, ?)`,
		booking.StatusCancelled, passengerID, legID,
		booking.StatusPending, booking.StatusHeld,
	); err != nil {
		return nil, err
	}

	id := uuid.NewString()
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO selections (id, passenger_id, option_id, leg_id, status)
         VALUES (?, ?, ?, ?, ?)`,
		id, passengerID, optionID, legID, booking.StatusPending,
	); err != nil {
		return nil, err
	}

	var s model.Selection
	if err := tx.QueryRowContext(ctx,
		`SELECT id, passenger_id, option_id, leg_id, status, created_at, updated_at
         FROM selections WHERE id = ?`, id).Scan(
		&s.ID, &s.PassengerID, &s.OptionID, &s.LegID, &s.Status, &s.CreatedAt, &s.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return &s, nil
}

// UpdateStatus stamps a new status and updated_at on a selection.
// Transition legality is the caller's concern (booking package
// guards); this method only persists the outcome.
func (r *SelectionRepo) UpdateStatus(ctx context.Context, selectionID string, status booking.SelectionStatus) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE selections SET status = ?, updated_at = UTC_TIMESTAMP() WHERE id = ?`,
		status, selectionID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		var one int
		if err := r.db.QueryRowContext(ctx,
			`SELECT 1 FROM selections WHERE id = ?`, selectionID).Scan(&one); err == sql.ErrNoRows {
			return ErrSelectionNotFound
		} else if err != nil {
			return err
		}
	}
	return nil
}

// CancelOtherActive cancels every active selection of the passenger on
// the leg except the one identified by keepID.  Used as the
// best-effort cleanup after ticketing: its failure is logged by the
// caller and never rolls the ticketing back.
func (r *SelectionRepo) CancelOtherActive(ctx context.Context, passengerID, legID, keepID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE selections SET status = ?, updated_at = UTC_TIMESTAMP()
         WHERE passenger_id = ? AND leg_id = ? AND id <> ? AND status IN (?, ?)`,
		booking.StatusCancelled, passengerID, legID, keepID,
		booking.StatusPending, booking.StatusHeld)
	return err
}

// ActiveForPassengerLeg returns the passenger's current active
// selection on the leg, or nil when none exists.
func (r *SelectionRepo) ActiveForPassengerLeg(ctx context.Context, passengerID, legID string) (*model.Selection, error) {
	const q = `SELECT id, passenger_id, option_id, leg_id, status, created_at, updated_at
               FROM selections
               WHERE passenger_id = ? AND leg_id = ? AND status IN (?, ?, ?)
               ORDER BY created_at DESC LIMIT 1`
	var s model.Selection
	err := r.db.QueryRowContext(ctx, q, passengerID, legID,
		booking.StatusPending, booking.StatusHeld, booking.StatusTicketed).Scan(
		&s.ID, &s.PassengerID, &s.OptionID, &s.LegID, &s.Status, &s.CreatedAt, &s.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// ListQueue assembles the agent work queue: every non-terminal
// (pending or held) selection joined with its passenger, option, leg,
// project/artist metadata and the authoritative hold on the
// (option, passenger) pair – the most recently created hold row,
// expired or not.  Expiry and urgency are judged in Go against the
// caller's clock; the rows come back unranked.  When artistID is
// non-empty the queue is filtered to that artist's projects.
func (r *SelectionRepo) ListQueue(ctx context.Context, artistID string) ([]booking.QueueItem, error) {
	q := `SELECT s.id, s.status, s.created_at,
                 p.id, p.full_name,
                 o.id, o.airline, o.price_cents, o.currency,
                 l.id, l.origin, l.destination, l.departure_date,
                 pr.id, pr.name, pr.artist_id, pr.artist_name,
                 h.expires_at
          FROM selections s
          JOIN passengers p ON p.id = s.passenger_id
          JOIN flight_options o ON o.id = s.option_id
          JOIN legs l ON l.id = s.leg_id
          JOIN projects pr ON pr.id = l.project_id
          LEFT JOIN holds h ON h.id = (
              SELECT h2.id FROM holds h2
              WHERE h2.option_id = s.option_id AND h2.passenger_id = s.passenger_id
              ORDER BY h2.created_at DESC, h2.id DESC
              LIMIT 1)
          WHERE s.status IN (?, ?)`
	args := []interface{}{booking.StatusPending, booking.StatusHeld}
	if artistID != "" {
		q += ` AND pr.artist_id = ?`
		args = append(args, artistID)
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]booking.QueueItem, 0)
	for rows.Next() {
		var (
			it   booking.QueueItem
			dep  sql.NullTime
			hExp sql.NullTime
		)
		if err := rows.Scan(
			&it.SelectionID, &it.Status, &it.CreatedAt,
			&it.PassengerID, &it.PassengerName,
			&it.OptionID, &it.Airline, &it.PriceCents, &it.Currency,
			&it.LegID, &it.Origin, &it.Destination, &dep,
			&it.ProjectID, &it.ProjectName, &it.ArtistID, &it.ArtistName,
			&hExp,
		); err != nil {
			return nil, err
		}
		it.DepartureDate = departureOf(dep)
		if hExp.Valid {
			e := hExp.Time.UTC()
			it.HoldExpiresAt = &e
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
