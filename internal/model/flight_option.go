package model

import "time"

// FlightOption is a priced travel proposal for a leg, entered manually
// by an agent.  Once a hold or ticketing record references an option
// its historical copies of price and currency live on those records;
// editing the option never rewrites them.
//
// Fields:
//  ID          – primary key (UUID).
//  LegID       – leg this option is offered for.
//  Airline     – marketing carrier of the first segment, for display.
//  PriceCents  – total price in minor units.
//  Currency    – ISO 4217 code, e.g. "USD".
//  Recommended – agent flagged this option as the suggested pick.
//  Available   – whether the option can still be sold.
//  Segments    – ordered flight components.
//  CreatedAt   – timestamp of creation.
type FlightOption struct {
	ID          string          // flight_options.id
	LegID       string          // flight_options.leg_id
	Airline     string          // flight_options.airline
	PriceCents  int64           // flight_options.price_cents
	Currency    string          // flight_options.currency
	Recommended bool            // flight_options.recommended
	Available   bool            // flight_options.available
	Segments    []FlightSegment // ordered by position
	CreatedAt   time.Time       // flight_options.created_at
}

// FlightSegment is one flight within an option, ordered by Position.
type FlightSegment struct {
	ID           string    // flight_segments.id
	OptionID     string    // flight_segments.option_id
	Position     int       // flight_segments.position (0-based)
	Airline      string    // flight_segments.airline
	FlightNumber string    // flight_segments.flight_number
	Origin       string    // flight_segments.origin
	Destination  string    // flight_segments.destination
	DepartsAt    time.Time // flight_segments.departs_at
	ArrivesAt    time.Time // flight_segments.arrives_at
}
