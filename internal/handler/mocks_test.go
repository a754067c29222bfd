package handler

// mocks_test.go provides testify mocks for the store interfaces so the
// workflow handlers can be exercised without a database.

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/tourwire/flight-desk/internal/booking"
	"github.com/tourwire/flight-desk/internal/model"
)

type mockProjectStore struct{ mock.Mock }

func (m *mockProjectStore) GetByID(ctx context.Context, projectID string) (*model.Project, error) {
	args := m.Called(ctx, projectID)
	p, _ := args.Get(0).(*model.Project)
	return p, args.Error(1)
}

type mockLegStore struct{ mock.Mock }

func (m *mockLegStore) GetByID(ctx context.Context, legID string) (*model.Leg, error) {
	args := m.Called(ctx, legID)
	leg, _ := args.Get(0).(*model.Leg)
	return leg, args.Error(1)
}

func (m *mockLegStore) ListByProject(ctx context.Context, projectID string) ([]model.Leg, error) {
	args := m.Called(ctx, projectID)
	ls, _ := args.Get(0).([]model.Leg)
	return ls, args.Error(1)
}

func (m *mockLegStore) ListAssignments(ctx context.Context, legID string) ([]booking.PassengerAssignment, error) {
	args := m.Called(ctx, legID)
	as, _ := args.Get(0).([]booking.PassengerAssignment)
	return as, args.Error(1)
}

func (m *mockLegStore) AssignPassenger(ctx context.Context, legID, passengerID string, treatAsIndividual bool) error {
	return m.Called(ctx, legID, passengerID, treatAsIndividual).Error(0)
}

type mockGroupStore struct{ mock.Mock }

func (m *mockGroupStore) ReplaceForLeg(ctx context.Context, legID string, groups []booking.DerivedGroup) error {
	return m.Called(ctx, legID, groups).Error(0)
}

func (m *mockGroupStore) ListByLeg(ctx context.Context, legID string) ([]model.SelectionGroup, error) {
	args := m.Called(ctx, legID)
	gs, _ := args.Get(0).([]model.SelectionGroup)
	return gs, args.Error(1)
}

type mockOptionStore struct{ mock.Mock }

func (m *mockOptionStore) Create(ctx context.Context, opt *model.FlightOption) error {
	return m.Called(ctx, opt).Error(0)
}

func (m *mockOptionStore) GetByID(ctx context.Context, optionID string) (*model.FlightOption, error) {
	args := m.Called(ctx, optionID)
	opt, _ := args.Get(0).(*model.FlightOption)
	return opt, args.Error(1)
}

func (m *mockOptionStore) ListByLeg(ctx context.Context, legID string) ([]model.FlightOption, error) {
	args := m.Called(ctx, legID)
	opts, _ := args.Get(0).([]model.FlightOption)
	return opts, args.Error(1)
}

func (m *mockOptionStore) SetAvailability(ctx context.Context, optionID string, available bool) error {
	return m.Called(ctx, optionID, available).Error(0)
}

type mockSelectionStore struct{ mock.Mock }

func (m *mockSelectionStore) GetByID(ctx context.Context, selectionID string) (*model.Selection, error) {
	args := m.Called(ctx, selectionID)
	sel, _ := args.Get(0).(*model.Selection)
	return sel, args.Error(1)
}

func (m *mockSelectionStore) CreateSuperseding(ctx context.Context, passengerID, optionID, legID string) (*model.Selection, error) {
	args := m.Called(ctx, passengerID, optionID, legID)
	sel, _ := args.Get(0).(*model.Selection)
	return sel, args.Error(1)
}

func (m *mockSelectionStore) UpdateStatus(ctx context.Context, selectionID string, status booking.SelectionStatus) error {
	return m.Called(ctx, selectionID, status).Error(0)
}

func (m *mockSelectionStore) CancelOtherActive(ctx context.Context, passengerID, legID, keepID string) error {
	return m.Called(ctx, passengerID, legID, keepID).Error(0)
}

func (m *mockSelectionStore) ActiveForPassengerLeg(ctx context.Context, passengerID, legID string) (*model.Selection, error) {
	args := m.Called(ctx, passengerID, legID)
	sel, _ := args.Get(0).(*model.Selection)
	return sel, args.Error(1)
}

func (m *mockSelectionStore) ListQueue(ctx context.Context, artistID string) ([]booking.QueueItem, error) {
	args := m.Called(ctx, artistID)
	items, _ := args.Get(0).([]booking.QueueItem)
	return items, args.Error(1)
}

type mockHoldStore struct{ mock.Mock }

func (m *mockHoldStore) Create(ctx context.Context, h *model.Hold) error {
	return m.Called(ctx, h).Error(0)
}

func (m *mockHoldStore) LatestForPair(ctx context.Context, optionID, passengerID string) (*model.Hold, error) {
	args := m.Called(ctx, optionID, passengerID)
	h, _ := args.Get(0).(*model.Hold)
	return h, args.Error(1)
}

func (m *mockHoldStore) ListForPassenger(ctx context.Context, passengerID string) ([]model.Hold, error) {
	args := m.Called(ctx, passengerID)
	hs, _ := args.Get(0).([]model.Hold)
	return hs, args.Error(1)
}

type mockTicketingStore struct{ mock.Mock }

func (m *mockTicketingStore) Create(ctx context.Context, rec *model.TicketingRecord) error {
	return m.Called(ctx, rec).Error(0)
}

func (m *mockTicketingStore) ExistsForPassengerLeg(ctx context.Context, passengerID, legID string) (bool, error) {
	args := m.Called(ctx, passengerID, legID)
	return args.Bool(0), args.Error(1)
}

func (m *mockTicketingStore) ListForLeg(ctx context.Context, legID string) ([]model.TicketingRecord, error) {
	args := m.Called(ctx, legID)
	recs, _ := args.Get(0).([]model.TicketingRecord)
	return recs, args.Error(1)
}

type mockPassengerStore struct{ mock.Mock }

func (m *mockPassengerStore) Create(ctx context.Context, p *model.Passenger) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockPassengerStore) GetByID(ctx context.Context, passengerID string) (*model.Passenger, error) {
	args := m.Called(ctx, passengerID)
	p, _ := args.Get(0).(*model.Passenger)
	return p, args.Error(1)
}
