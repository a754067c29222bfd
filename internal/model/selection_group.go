package model

import "time"

// SelectionGroup is a derived booking unit: a named set of passengers
// on one leg that chooses a flight option as a single unit.  Kind is
// either INDIVIDUAL (exactly one member) or GROUP (two or more).
// Groups are recreated wholesale whenever derivation runs for a leg –
// delete-all-then-insert, never patched – which keeps re-derivation
// idempotent and free of stale partial groups.
//
// Fields:
//  ID        – primary key (UUID).
//  LegID     – leg the unit belongs to.
//  Kind      – INDIVIDUAL or GROUP.
//  Label     – display label, e.g. "Ada Laurent (LAX-NRT)".
//  MemberIDs – passenger IDs in the unit.
//  CreatedAt – timestamp of (re)creation.
type SelectionGroup struct {
	ID        string    // selection_groups.id
	LegID     string    // selection_groups.leg_id
	Kind      string    // selection_groups.kind
	Label     string    // selection_groups.label
	MemberIDs []string  // selection_group_members.passenger_id
	CreatedAt time.Time // selection_groups.created_at
}
