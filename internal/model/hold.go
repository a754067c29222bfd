package model

import "time"

// Hold is a time-boxed promise of price and availability on an
// (option, passenger) pair.  Holds are never extended or renewed – a
// new promise is a new row – and expired holds are never deleted by
// the workflow: expiry is computed at read time by comparing
// ExpiresAt against the clock, so a lapsed hold is simply inert.
//
// Fields:
//  ID          – primary key (UUID).
//  OptionID    – held flight option.
//  PassengerID – passenger the promise is for.
//  ExpiresAt   – when the promise lapses (UTC).
//  CreatedBy   – agent user ID that placed the hold.
//  Notes       – optional free-form agent notes.
//  CreatedAt   – timestamp of creation; the newest unexpired hold on a
//                pair is the authoritative one.
type Hold struct {
	ID          string    // holds.id
	OptionID    string    // holds.option_id
	PassengerID string    // holds.passenger_id
	ExpiresAt   time.Time // holds.expires_at
	CreatedBy   uint64    // holds.created_by (users.id)
	Notes       string    // holds.notes
	CreatedAt   time.Time // holds.created_at
}
