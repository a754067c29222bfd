package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/tourwire/flight-desk/internal/booking"
	"github.com/tourwire/flight-desk/internal/model"
)

// SelectionGroupRepo provides data access to the selection_groups and
// selection_group_members tables.  Groups for a leg are only ever
// replaced wholesale: delete every existing unit, then insert the
// freshly derived set.  Partial patches would defeat the idempotence
// of derivation and risk stale or orphaned units.
type SelectionGroupRepo struct {
	db *sql.DB
}

// NewSelectionGroupRepo returns a new SelectionGroupRepo bound to the
// given database.
func NewSelectionGroupRepo(db *sql.DB) *SelectionGroupRepo { return &SelectionGroupRepo{db: db} }

// ReplaceForLeg deletes all booking units of the leg and inserts the
// derived set, all inside one transaction so a failure during insert
// rolls the deletion back and never leaves the leg with zero units.
func (r *SelectionGroupRepo) ReplaceForLeg(ctx context.Context, legID string, groups []booking.DerivedGroup) error {
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

	// Members first because of the foreign key on selection_groups.
	if _, err := tx.ExecContext(ctx,
		`DELETE sgm FROM selection_group_members sgm
         JOIN selection_groups sg ON sg.id = sgm.group_id
         WHERE sg.leg_id = ?`, legID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM selection_groups WHERE leg_id = ?`, legID); err != nil {
		return err
	}

	if len(groups) > 0 {
		groupQ := `INSERT INTO selection_groups (id, leg_id, kind, label) VALUES `
		groupArgs := make([]interface{}, 0, len(groups)*4)
		memberQ := `INSERT INTO selection_group_members (group_id, passenger_id) VALUES `
		memberArgs := make([]interface{}, 0)
		for i, g := range groups {
			id := uuid.NewString()
			if i > 0 {
				groupQ += ","
			}
			groupQ += "(?, ?, ?, ?)"
			groupArgs = append(groupArgs, id, legID, g.Kind, g.Label)
			for _, pid := range g.PassengerIDs {
				if len(memberArgs) > 0 {
					memberQ += ","
				}
				memberQ += "(?, ?)"
				memberArgs = append(memberArgs, id, pid)
			}
		}
		if _, err := tx.ExecContext(ctx, groupQ, groupArgs...); err != nil {
			return err
		}
		if len(memberArgs) > 0 {
			if _, err := tx.ExecContext(ctx, memberQ, memberArgs...); err != nil {
				return err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// ListByLeg returns the current booking units of a leg with their
// member passenger IDs, individuals before the group, in label order.
func (r *SelectionGroupRepo) ListByLeg(ctx context.Context, legID string) ([]model.SelectionGroup, error) {
	const q = `SELECT id, leg_id, kind, label, created_at
               FROM selection_groups WHERE leg_id = ?
               ORDER BY kind = 'GROUP', label`
	rows, err := r.db.QueryContext(ctx, q, legID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	groups := make([]model.SelectionGroup, 0)
	index := make(map[string]int)
	for rows.Next() {
		var g model.SelectionGroup
		if err := rows.Scan(&g.ID, &g.LegID, &g.Kind, &g.Label, &g.CreatedAt); err != nil {
			return nil, err
		}
		g.MemberIDs = []string{}
		index[g.ID] = len(groups)
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(groups) == 0 {
		return groups, nil
	}

	const memberQ = `SELECT sgm.group_id, sgm.passenger_id
                     FROM selection_group_members sgm
                     JOIN selection_groups sg ON sg.id = sgm.group_id
                     WHERE sg.leg_id = ?
                     ORDER BY sgm.group_id, sgm.passenger_id`
	mrows, err := r.db.QueryContext(ctx, memberQ, legID)
	if err != nil {
		return nil, err
	}
	defer mrows.Close()
	for mrows.Next() {
		var groupID, passengerID string
		if err := mrows.Scan(&groupID, &passengerID); err != nil {
			return nil, err
		}
		if idx, ok := index[groupID]; ok {
			groups[idx].MemberIDs = append(groups[idx].MemberIDs, passengerID)
		}
	}
	return groups, mrows.Err()
}
