package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/tourwire/flight-desk/internal/model"
)

// PassengerRepo provides data access to the passengers table.
type PassengerRepo struct {
	db *sql.DB
}

// NewPassengerRepo returns a new PassengerRepo bound to the given
// database.
func NewPassengerRepo(db *sql.DB) *PassengerRepo { return &PassengerRepo{db: db} }

// Create inserts a passenger and populates the generated ID.
func (r *PassengerRepo) Create(ctx context.Context, p *model.Passenger) error {
	p.ID = uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO passengers (id, project_id, full_name) VALUES (?, ?, ?)`,
		p.ID, p.ProjectID, p.FullName)
	return err
}

// GetByID returns a passenger or ErrPassengerNotFound.
func (r *PassengerRepo) GetByID(ctx context.Context, passengerID string) (*model.Passenger, error) {
	var p model.Passenger
	err := r.db.QueryRowContext(ctx,
		`SELECT id, project_id, full_name, created_at FROM passengers WHERE id = ?`,
		passengerID).Scan(&p.ID, &p.ProjectID, &p.FullName, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrPassengerNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
