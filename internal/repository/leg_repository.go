package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/tourwire/flight-desk/internal/booking"
	"github.com/tourwire/flight-desk/internal/model"
)

// LegRepo provides data access to the legs, projects and
// leg_passengers tables.  All timestamp and date columns are stored in
// UTC; the MySQL DSN is opened with loc=UTC so scanned time.Time
// values need no further conversion.
type LegRepo struct {
	db *sql.DB
}

// NewLegRepo returns a new LegRepo bound to the provided database.
func NewLegRepo(db *sql.DB) *LegRepo { return &LegRepo{db: db} }

// GetByID returns a single leg.  It returns ErrLegNotFound when no
// row exists.
func (r *LegRepo) GetByID(ctx context.Context, legID string) (*model.Leg, error) {
	const q = `SELECT id, project_id, origin, destination, departure_date, created_at
               FROM legs WHERE id = ?`
	var (
		leg model.Leg
		dep sql.NullTime
	)
	err := r.db.QueryRowContext(ctx, q, legID).Scan(
		&leg.ID, &leg.ProjectID, &leg.Origin, &leg.Destination, &dep, &leg.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrLegNotFound
	}
	if err != nil {
		return nil, err
	}
	if dep.Valid {
		d := dep.Time.UTC()
		leg.DepartureDate = &d
	}
	return &leg, nil
}

// ListByProject returns all legs of a project ordered by departure
// date with undated legs last.
func (r *LegRepo) ListByProject(ctx context.Context, projectID string) ([]model.Leg, error) {
	const q = `SELECT id, project_id, origin, destination, departure_date, created_at
               FROM legs WHERE project_id = ?
               ORDER BY departure_date IS NULL, departure_date, created_at`
	rows, err := r.db.QueryContext(ctx, q, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	legs := make([]model.Leg, 0)
	for rows.Next() {
		var (
			leg model.Leg
			dep sql.NullTime
		)
		if err := rows.Scan(&leg.ID, &leg.ProjectID, &leg.Origin, &leg.Destination, &dep, &leg.CreatedAt); err != nil {
			return nil, err
		}
		if dep.Valid {
			d := dep.Time.UTC()
			leg.DepartureDate = &d
		}
		legs = append(legs, leg)
	}
	return legs, rows.Err()
}

// ListAssignments returns the leg's passenger-assignment list joined
// with passenger names, in assignment order.  The result feeds
// booking.DeriveGroups directly.  An empty slice means the leg has no
// assignments; derivation treats that as ErrNoAssignments.
func (r *LegRepo) ListAssignments(ctx context.Context, legID string) ([]booking.PassengerAssignment, error) {
	const q = `SELECT lp.passenger_id, p.full_name, lp.treat_as_individual
               FROM leg_passengers lp
               JOIN passengers p ON p.id = lp.passenger_id
               WHERE lp.leg_id = ?
               ORDER BY p.full_name, lp.passenger_id`
	rows, err := r.db.QueryContext(ctx, q, legID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	assignments := make([]booking.PassengerAssignment, 0)
	for rows.Next() {
		var a booking.PassengerAssignment
		if err := rows.Scan(&a.PassengerID, &a.FullName, &a.TreatAsIndividual); err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}

// AssignPassenger upserts a passenger onto a leg.  Re-assigning an
// already-assigned passenger only updates the individual flag.
func (r *LegRepo) AssignPassenger(ctx context.Context, legID, passengerID string, treatAsIndividual bool) error {
	const q = `INSERT INTO leg_passengers (leg_id, passenger_id, treat_as_individual)
               VALUES (?, ?, ?)
               ON DUPLICATE KEY UPDATE treat_as_individual = VALUES(treat_as_individual)`
	_, err := r.db.ExecContext(ctx, q, legID, passengerID, treatAsIndividual)
	return err
}

// departureOf is a small helper used by queue assembly to read a
// nullable departure date within an existing row scan.
func departureOf(dep sql.NullTime) *time.Time {
	if !dep.Valid {
		return nil
	}
	d := dep.Time.UTC()
	return &d
}
