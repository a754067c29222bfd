package model

import (
	"time"

	"github.com/tourwire/flight-desk/internal/booking"
)

// Selection is a passenger's current choice of flight option for a
// leg.  At most one active (pending or held or ticketed) selection
// exists per (passenger, leg): a new choice supersedes the old one by
// cancelling it, never by duplicating.
//
// Fields:
//  ID          – primary key (UUID).
//  PassengerID – choosing passenger.
//  OptionID    – chosen flight option.
//  LegID       – leg the choice is for.
//  Status      – lifecycle state, see booking.SelectionStatus.
//  CreatedAt   – when the choice was made.
//  UpdatedAt   – stamped on every transition.
type Selection struct {
	ID          string                  // selections.id
	PassengerID string                  // selections.passenger_id
	OptionID    string                  // selections.option_id
	LegID       string                  // selections.leg_id
	Status      booking.SelectionStatus // selections.status
	CreatedAt   time.Time               // selections.created_at
	UpdatedAt   time.Time               // selections.updated_at
}
