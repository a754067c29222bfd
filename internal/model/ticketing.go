package model

import "time"

// TicketingRecord is the durable outcome of ticketing a selection:
// the PNR.  Records are never deleted by ordinary workflow actions –
// reverting a selection leaves its PNR in place as a fact of record.
// The store enforces UNIQUE(passenger_id, pnr_code); a passenger is
// considered ticketed for a leg once any record exists for the pair.
//
// Fields:
//  ID             – primary key (UUID).
//  PassengerID    – ticketed passenger.
//  OptionID       – flight option that was ticketed.
//  LegID          – leg the ticket covers.
//  PNRCode        – six-character record locator, stored upper-case.
//  PricePaidCents – price actually paid, in minor units.
//  Currency       – ISO 4217 code.
//  TicketedBy     – agent user ID that performed the ticketing.
//  CreatedAt      – timestamp of ticketing.
type TicketingRecord struct {
	ID             string    // ticketing_records.id
	PassengerID    string    // ticketing_records.passenger_id
	OptionID       string    // ticketing_records.option_id
	LegID          string    // ticketing_records.leg_id
	PNRCode        string    // ticketing_records.pnr_code
	PricePaidCents int64     // ticketing_records.price_paid_cents
	Currency       string    // ticketing_records.currency
	TicketedBy     uint64    // ticketing_records.ticketed_by (users.id)
	CreatedAt      time.Time // ticketing_records.created_at
}
