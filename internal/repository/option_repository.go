package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/tourwire/flight-desk/internal/model"
)

// OptionRepo provides data access to the flight_options and
// flight_segments tables.  Options are entered manually by agents;
// editing an option never rewrites the price recorded on historical
// holds or ticketing records.
type OptionRepo struct {
	db *sql.DB
}

// NewOptionRepo returns a new OptionRepo bound to the given database.
func NewOptionRepo(db *sql.DB) *OptionRepo { return &OptionRepo{db: db} }

// Create inserts a flight option together with its ordered segments
// inside a single transaction and populates the generated IDs on the
// provided record.
func (r *OptionRepo) Create(ctx context.Context, opt *model.FlightOption) error {
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

	opt.ID = uuid.NewString()
	const q = `INSERT INTO flight_options
               (id, leg_id, airline, price_cents, currency, recommended, available)
               VALUES (?, ?, ?, ?, ?, ?, ?)`
	if _, err := tx.ExecContext(ctx, q,
		opt.ID, opt.LegID, opt.Airline, opt.PriceCents, opt.Currency, opt.Recommended, opt.Available,
	); err != nil {
		return err
	}

	if len(opt.Segments) > 0 {
		// Bulk insert segments with explicit positions.
		query := `INSERT INTO flight_segments
                  (id, option_id, position, airline, flight_number, origin, destination, departs_at, arrives_at)
                  VALUES `
		args := make([]interface{}, 0, len(opt.Segments)*9)
		for i := range opt.Segments {
			seg := &opt.Segments[i]
			seg.ID = uuid.NewString()
			seg.OptionID = opt.ID
			seg.Position = i
			if i > 0 {
				query += ","
			}
			query += "(?, ?, ?, ?, ?, ?, ?, ?, ?)"
			args = append(args, seg.ID, seg.OptionID, seg.Position, seg.Airline,
				seg.FlightNumber, seg.Origin, seg.Destination,
				seg.DepartsAt.UTC(), seg.ArrivesAt.UTC())
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// GetByID returns an option with its segments.  It returns
// ErrOptionNotFound when no row exists.
func (r *OptionRepo) GetByID(ctx context.Context, optionID string) (*model.FlightOption, error) {
	const q = `SELECT id, leg_id, airline, price_cents, currency, recommended, available, created_at
               FROM flight_options WHERE id = ?`
	var opt model.FlightOption
	err := r.db.QueryRowContext(ctx, q, optionID).Scan(
		&opt.ID, &opt.LegID, &opt.Airline, &opt.PriceCents, &opt.Currency,
		&opt.Recommended, &opt.Available, &opt.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrOptionNotFound
	}
	if err != nil {
		return nil, err
	}
	segs, err := r.segmentsFor(ctx, []string{opt.ID})
	if err != nil {
		return nil, err
	}
	opt.Segments = segs[opt.ID]
	return &opt, nil
}

// ListByLeg returns all options offered for a leg, recommended ones
// first, each with its segments populated.
func (r *OptionRepo) ListByLeg(ctx context.Context, legID string) ([]model.FlightOption, error) {
	const q = `SELECT id, leg_id, airline, price_cents, currency, recommended, available, created_at
               FROM flight_options WHERE leg_id = ?
               ORDER BY recommended DESC, price_cents, created_at`
	rows, err := r.db.QueryContext(ctx, q, legID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	opts := make([]model.FlightOption, 0)
	ids := make([]string, 0)
	for rows.Next() {
		var opt model.FlightOption
		if err := rows.Scan(&opt.ID, &opt.LegID, &opt.Airline, &opt.PriceCents,
			&opt.Currency, &opt.Recommended, &opt.Available, &opt.CreatedAt); err != nil {
			return nil, err
		}
		opts = append(opts, opt)
		ids = append(ids, opt.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(opts) == 0 {
		return opts, nil
	}
	segs, err := r.segmentsFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range opts {
		opts[i].Segments = segs[opts[i].ID]
	}
	return opts, nil
}

// SetAvailability toggles the available flag on an option.
func (r *OptionRepo) SetAvailability(ctx context.Context, optionID string, available bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE flight_options SET available = ? WHERE id = ?`, available, optionID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// RowsAffected is also zero when the flag already had the
		// requested value; confirm existence before reporting not found.
		var one int
		if err := r.db.QueryRowContext(ctx,
			`SELECT 1 FROM flight_options WHERE id = ?`, optionID).Scan(&one); err == sql.ErrNoRows {
			return ErrOptionNotFound
		} else if err != nil {
			return err
		}
	}
	return nil
}

// segmentsFor loads segments for a set of option IDs in one query,
// grouped by option and ordered by position.
func (r *OptionRepo) segmentsFor(ctx context.Context, optionIDs []string) (map[string][]model.FlightSegment, error) {
	query := `SELECT id, option_id, position, airline, flight_number, origin, destination, departs_at, arrives_at
              FROM flight_segments WHERE option_id IN (`
	args := make([]interface{}, 0, len(optionIDs))
	for i, id := range optionIDs {
		if i > 0 {
			query += ","
		}
		query += "?"
		args = append(args, id)
	}
	query += `) ORDER BY option_id, position`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make(map[string][]model.FlightSegment, len(optionIDs))
	for rows.Next() {
		var seg model.FlightSegment
		if err := rows.Scan(&seg.ID, &seg.OptionID, &seg.Position, &seg.Airline,
			&seg.FlightNumber, &seg.Origin, &seg.Destination, &seg.DepartsAt, &seg.ArrivesAt); err != nil {
			return nil, err
		}
		out[seg.OptionID] = append(out[seg.OptionID], seg)
	}
	return out, rows.Err()
}
