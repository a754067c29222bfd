package repository

import (
	"context"
	"database/sql"

	"github.com/tourwire/flight-desk/internal/model"
)

// ProjectRepo provides data access to the projects table.  Projects
// are created by back-office tooling; the workflow only reads them,
// mainly to correlate legs with their tour and artist.
type ProjectRepo struct {
	db *sql.DB
}

// NewProjectRepo returns a new ProjectRepo bound to the given
// database.
func NewProjectRepo(db *sql.DB) *ProjectRepo { return &ProjectRepo{db: db} }

// GetByID returns a project or ErrProjectNotFound.
func (r *ProjectRepo) GetByID(ctx context.Context, projectID string) (*model.Project, error) {
	var p model.Project
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, artist_id, artist_name, created_at FROM projects WHERE id = ?`,
		projectID).Scan(&p.ID, &p.Name, &p.ArtistID, &p.ArtistName, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrProjectNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
