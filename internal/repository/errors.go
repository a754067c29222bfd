// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios and
// translate them into short, human-readable responses instead of raw
// store errors.
package repository

import "errors"

// ErrProjectNotFound is returned when a referenced project does not
// exist.
var ErrProjectNotFound = errors.New("project not found")

// ErrLegNotFound is returned when a referenced leg does not exist.
var ErrLegNotFound = errors.New("leg not found")

// ErrOptionNotFound is returned when a referenced flight option does
// not exist.
var ErrOptionNotFound = errors.New("flight option not found")

// ErrSelectionNotFound is returned when a referenced selection does
// not exist.
var ErrSelectionNotFound = errors.New("selection not found")

// ErrPassengerNotFound is returned when a referenced passenger does
// not exist.
var ErrPassengerNotFound = errors.New("passenger not found")

// ErrNoAssignments is returned by group derivation when the leg has no
// passenger assignments to partition.
var ErrNoAssignments = errors.New("leg has no passenger assignments")

// ErrDuplicateTicketing is returned when inserting a ticketing record
// violates the UNIQUE(passenger_id, pnr_code) constraint. This is the
// system's sole concurrency-correctness mechanism for racing
// markTicketed calls: the store rejects the loser, the repository
// translates the constraint violation into this sentinel, and the
// handler reports "passenger is already ticketed for this leg".
var ErrDuplicateTicketing = errors.New("passenger is already ticketed for this leg")
