package model

import "time"

// Project represents one tour being coordinated.  Legs, passengers
// and flight options all hang off a project.  The artist columns are
// denormalized metadata copied into queue rows so agents see who the
// work is for without another lookup.
//
// Fields:
//  ID         – primary key (UUID).
//  Name       – tour name, e.g. "World Tour 2026".
//  ArtistID   – identifier of the touring artist (UUID).
//  ArtistName – display name of the artist.
//  CreatedAt  – timestamp of creation.
type Project struct {
	ID         string    // projects.id
	Name       string    // projects.name
	ArtistID   string    // projects.artist_id
	ArtistName string    // projects.artist_name
	CreatedAt  time.Time // projects.created_at
}

// Leg is one point-to-point travel segment within a project.  The
// departure date is nullable: legs are often created before routing is
// final, and the queue sorts unknown dates after known ones.
//
// Fields:
//  ID            – primary key (UUID).
//  ProjectID     – owning project.
//  Origin        – IATA code of the departure airport.
//  Destination   – IATA code of the arrival airport.
//  DepartureDate – scheduled travel date (nullable).
//  CreatedAt     – timestamp of creation.
type Leg struct {
	ID            string     // legs.id
	ProjectID     string     // legs.project_id
	Origin        string     // legs.origin
	Destination   string     // legs.destination
	DepartureDate *time.Time // legs.departure_date (nullable)
	CreatedAt     time.Time  // legs.created_at
}

// Passenger is a member of the touring party.
type Passenger struct {
	ID        string    // passengers.id
	ProjectID string    // passengers.project_id
	FullName  string    // passengers.full_name
	CreatedAt time.Time // passengers.created_at
}

// LegPassenger assigns a passenger to a leg.  The TreatAsIndividual
// flag drives booking-unit derivation: flagged passengers book alone,
// everyone else on the leg books as a single party.
type LegPassenger struct {
	LegID             string // leg_passengers.leg_id
	PassengerID       string // leg_passengers.passenger_id
	TreatAsIndividual bool   // leg_passengers.treat_as_individual
}
