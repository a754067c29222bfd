package handler

// common.go defines the store interfaces the booking handlers depend
// on and the shared error translation into HTTP responses.  Handlers
// accept interfaces (satisfied by the repository structs) so the
// workflow logic can be exercised in tests without a database.

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tourwire/flight-desk/internal/booking"
	"github.com/tourwire/flight-desk/internal/model"
	"github.com/tourwire/flight-desk/internal/queue"
	"github.com/tourwire/flight-desk/internal/repository"
)

// ProjectStore reads projects, mainly for the artist correlation
// carried on notifications.
type ProjectStore interface {
	GetByID(ctx context.Context, projectID string) (*model.Project, error)
}

// LegStore reads legs and manages their passenger-assignment lists.
type LegStore interface {
	GetByID(ctx context.Context, legID string) (*model.Leg, error)
	ListByProject(ctx context.Context, projectID string) ([]model.Leg, error)
	ListAssignments(ctx context.Context, legID string) ([]booking.PassengerAssignment, error)
	AssignPassenger(ctx context.Context, legID, passengerID string, treatAsIndividual bool) error
}

// GroupStore replaces and lists a leg's derived booking units.
type GroupStore interface {
	ReplaceForLeg(ctx context.Context, legID string, groups []booking.DerivedGroup) error
	ListByLeg(ctx context.Context, legID string) ([]model.SelectionGroup, error)
}

// OptionStore reads and writes flight options.
type OptionStore interface {
	Create(ctx context.Context, opt *model.FlightOption) error
	GetByID(ctx context.Context, optionID string) (*model.FlightOption, error)
	ListByLeg(ctx context.Context, legID string) ([]model.FlightOption, error)
	SetAvailability(ctx context.Context, optionID string, available bool) error
}

// SelectionStore reads and mutates selections and assembles the raw
// queue rows.
type SelectionStore interface {
	GetByID(ctx context.Context, selectionID string) (*model.Selection, error)
	CreateSuperseding(ctx context.Context, passengerID, optionID, legID string) (*model.Selection, error)
	UpdateStatus(ctx context.Context, selectionID string, status booking.SelectionStatus) error
	CancelOtherActive(ctx context.Context, passengerID, legID, keepID string) error
	ActiveForPassengerLeg(ctx context.Context, passengerID, legID string) (*model.Selection, error)
	ListQueue(ctx context.Context, artistID string) ([]booking.QueueItem, error)
}

// HoldStore creates and lists holds.
type HoldStore interface {
	Create(ctx context.Context, h *model.Hold) error
	LatestForPair(ctx context.Context, optionID, passengerID string) (*model.Hold, error)
	ListForPassenger(ctx context.Context, passengerID string) ([]model.Hold, error)
}

// TicketingStore appends to and reads the ticketing ledger.
type TicketingStore interface {
	Create(ctx context.Context, rec *model.TicketingRecord) error
	ExistsForPassengerLeg(ctx context.Context, passengerID, legID string) (bool, error)
	ListForLeg(ctx context.Context, legID string) ([]model.TicketingRecord, error)
}

// PassengerStore creates and reads passengers.
type PassengerStore interface {
	Create(ctx context.Context, p *model.Passenger) error
	GetByID(ctx context.Context, passengerID string) (*model.Passenger, error)
}

// NotifyFunc publishes a notification request.  Publishing is
// fire-and-forget: handlers log a failure and move on, never failing
// the primary operation.
type NotifyFunc func(ctx context.Context, event queue.NotificationEvent) error

// httpError translates sentinel and domain errors into the response
// contract: short human-readable messages, never raw store errors.
func httpError(c echo.Context, err error) error {
	var invalid booking.ErrInvalidTransition
	switch {
	case errors.Is(err, repository.ErrProjectNotFound),
		errors.Is(err, repository.ErrLegNotFound),
		errors.Is(err, repository.ErrOptionNotFound),
		errors.Is(err, repository.ErrSelectionNotFound),
		errors.Is(err, repository.ErrPassengerNotFound),
		errors.Is(err, repository.ErrNoAssignments):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrDuplicateTicketing):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.As(err, &invalid):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.As(err, &booking.ErrInvalidHoldHours{}),
		errors.Is(err, booking.ErrInvalidPNRCode):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
}
