package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"

	"github.com/tourwire/flight-desk/internal/model"
)

// mysqlDupEntry is the MySQL error number for a duplicate key
// violation (ER_DUP_ENTRY).
const mysqlDupEntry = 1062

// TicketingRepo provides data access to the ticketing_records table.
// The table carries UNIQUE(passenger_id, pnr_code); concurrent
// ticketing attempts for the same passenger and code race on that
// constraint and the store rejects the loser.  No application-level
// locking is involved – optimistic, constraint-based resolution is the
// system's only concurrency mechanism and must stay that way.
type TicketingRepo struct {
	db *sql.DB
}

// NewTicketingRepo returns a new TicketingRepo bound to the given
// database.
func NewTicketingRepo(db *sql.DB) *TicketingRepo { return &TicketingRepo{db: db} }

// Create inserts a ticketing record and populates its generated ID
// and created_at.  A duplicate (passenger, code) insert returns
// ErrDuplicateTicketing; every other error passes through untouched.
func (r *TicketingRepo) Create(ctx context.Context, rec *model.TicketingRecord) error {
	rec.ID = uuid.NewString()
	const q = `INSERT INTO ticketing_records
               (id, passenger_id, option_id, leg_id, pnr_code, price_paid_cents, currency, ticketed_by)
               VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q,
		rec.ID, rec.PassengerID, rec.OptionID, rec.LegID,
		rec.PNRCode, rec.PricePaidCents, rec.Currency, rec.TicketedBy)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == mysqlDupEntry {
			return ErrDuplicateTicketing
		}
		return err
	}
	return r.db.QueryRowContext(ctx,
		`SELECT created_at FROM ticketing_records WHERE id = ?`, rec.ID).Scan(&rec.CreatedAt)
}

// ExistsForPassengerLeg reports whether any ticketing record exists
// for the (passenger, leg) pair.  One record is enough to consider the
// passenger ticketed for the leg, whatever later reverts did to the
// selection.
func (r *TicketingRepo) ExistsForPassengerLeg(ctx context.Context, passengerID, legID string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		`SELECT 1 FROM ticketing_records WHERE passenger_id = ? AND leg_id = ? LIMIT 1`,
		passengerID, legID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ListForLeg returns all ticketing records of a leg, newest first.
func (r *TicketingRepo) ListForLeg(ctx context.Context, legID string) ([]model.TicketingRecord, error) {
	const q = `SELECT id, passenger_id, option_id, leg_id, pnr_code, price_paid_cents, currency, ticketed_by, created_at
               FROM ticketing_records WHERE leg_id = ?
               ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q, legID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	recs := make([]model.TicketingRecord, 0)
	for rows.Next() {
		var rec model.TicketingRecord
		if err := rows.Scan(&rec.ID, &rec.PassengerID, &rec.OptionID, &rec.LegID,
			&rec.PNRCode, &rec.PricePaidCents, &rec.Currency, &rec.TicketedBy, &rec.CreatedAt); err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}
