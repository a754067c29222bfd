package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tourwire/flight-desk/internal/booking"
	"github.com/tourwire/flight-desk/internal/middleware"
	"github.com/tourwire/flight-desk/internal/model"
	"github.com/tourwire/flight-desk/internal/queue"
	"github.com/tourwire/flight-desk/internal/repository"
)

type agentFixture struct {
	projects   *mockProjectStore
	legs       *mockLegStore
	groups     *mockGroupStore
	options    *mockOptionStore
	selections *mockSelectionStore
	holds      *mockHoldStore
	ticketing  *mockTicketingStore
	passengers *mockPassengerStore
	h          *AgentHandler
}

func newAgentFixture() *agentFixture {
	f := &agentFixture{
		projects:   &mockProjectStore{},
		legs:       &mockLegStore{},
		groups:     &mockGroupStore{},
		options:    &mockOptionStore{},
		selections: &mockSelectionStore{},
		holds:      &mockHoldStore{},
		ticketing:  &mockTicketingStore{},
		passengers: &mockPassengerStore{},
	}
	f.h = NewAgentHandler(f.projects, f.legs, f.groups, f.options, f.selections, f.holds, f.ticketing, f.passengers)
	return f
}

// newAgentContext builds an echo context with an authenticated agent
// already in place, the way JWTAuth leaves it for real requests.
func newAgentContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	c.Set("acting_user", middleware.ActingUser{ID: 7, Role: model.RoleAgent})
	return c, rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

// ----- deriveGroups -----

func TestDeriveGroupsPartitionsAssignments(t *testing.T) {
	f := newAgentFixture()
	leg := &model.Leg{ID: "leg-1", Origin: "LAX", Destination: "NRT"}
	assignments := []booking.PassengerAssignment{
		{PassengerID: "p1", FullName: "Ada Laurent", TreatAsIndividual: true},
		{PassengerID: "p2", FullName: "Ben Okafor", TreatAsIndividual: true},
		{PassengerID: "p3", FullName: "Cara Miles"},
		{PassengerID: "p4", FullName: "Dev Anand"},
	}
	f.legs.On("GetByID", mock.Anything, "leg-1").Return(leg, nil)
	f.legs.On("ListAssignments", mock.Anything, "leg-1").Return(assignments, nil)
	f.groups.On("ReplaceForLeg", mock.Anything, "leg-1", mock.MatchedBy(func(gs []booking.DerivedGroup) bool {
		return len(gs) == 3
	})).Return(nil)

	c, rec := newAgentContext(t, http.MethodPost, "/v1/legs/leg-1/groups/derive", "")
	c.SetParamNames("id")
	c.SetParamValues("leg-1")

	require.NoError(t, f.h.DeriveGroups(c))
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.EqualValues(t, 2, body["individuals_created"])
	assert.EqualValues(t, 1, body["group_created"])
	assert.EqualValues(t, 4, body["total_passengers"])
	f.groups.AssertExpectations(t)
}

func TestDeriveGroupsNoAssignmentsIs404(t *testing.T) {
	f := newAgentFixture()
	f.legs.On("GetByID", mock.Anything, "leg-1").Return(&model.Leg{ID: "leg-1"}, nil)
	f.legs.On("ListAssignments", mock.Anything, "leg-1").Return([]booking.PassengerAssignment{}, nil)

	c, rec := newAgentContext(t, http.MethodPost, "/v1/legs/leg-1/groups/derive", "")
	c.SetParamNames("id")
	c.SetParamValues("leg-1")

	require.NoError(t, f.h.DeriveGroups(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	f.groups.AssertNotCalled(t, "ReplaceForLeg", mock.Anything, mock.Anything, mock.Anything)
}

// ----- placeHold -----

func TestPlaceHoldDefaultsTo24Hours(t *testing.T) {
	f := newAgentFixture()
	f.options.On("GetByID", mock.Anything, "opt-1").Return(&model.FlightOption{ID: "opt-1", LegID: "leg-1", Airline: "ANA"}, nil)
	f.passengers.On("GetByID", mock.Anything, "p1").Return(&model.Passenger{ID: "p1", FullName: "Ada Laurent"}, nil)
	f.holds.On("LatestForPair", mock.Anything, "opt-1", "p1").Return(nil, nil)
	f.holds.On("Create", mock.Anything, mock.MatchedBy(func(h *model.Hold) bool {
		remaining := time.Until(h.ExpiresAt)
		return remaining > 23*time.Hour && remaining <= 24*time.Hour
	})).Return(nil)

	c, rec := newAgentContext(t, http.MethodPost, "/v1/holds",
		`{"option_id":"opt-1","passenger_id":"p1"}`)

	require.NoError(t, f.h.PlaceHold(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	f.holds.AssertExpectations(t)
}

func TestPlaceHoldReportsReplacedPromise(t *testing.T) {
	f := newAgentFixture()
	priorExp := time.Now().UTC().Add(2 * time.Hour).Truncate(time.Second)
	f.options.On("GetByID", mock.Anything, "opt-1").Return(&model.FlightOption{ID: "opt-1", LegID: "leg-1"}, nil)
	f.passengers.On("GetByID", mock.Anything, "p1").Return(&model.Passenger{ID: "p1"}, nil)
	f.holds.On("LatestForPair", mock.Anything, "opt-1", "p1").
		Return(&model.Hold{ID: "hold-old", ExpiresAt: priorExp}, nil)
	f.holds.On("Create", mock.Anything, mock.Anything).Return(nil)

	c, rec := newAgentContext(t, http.MethodPost, "/v1/holds",
		`{"option_id":"opt-1","passenger_id":"p1","hours":48}`)

	require.NoError(t, f.h.PlaceHold(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, priorExp.Format(time.RFC3339), body["previous_expires_at"])
}

func TestPlaceHoldRejectsZeroHours(t *testing.T) {
	f := newAgentFixture()

	c, rec := newAgentContext(t, http.MethodPost, "/v1/holds",
		`{"option_id":"opt-1","passenger_id":"p1","hours":0}`)

	require.NoError(t, f.h.PlaceHold(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	f.holds.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPlaceHoldRejectsOutOfRangeHours(t *testing.T) {
	f := newAgentFixture()

	for _, hours := range []string{"-1", "73", "1000"} {
		c, rec := newAgentContext(t, http.MethodPost, "/v1/holds",
			`{"option_id":"opt-1","passenger_id":"p1","hours":`+hours+`}`)
		require.NoError(t, f.h.PlaceHold(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code, "hours=%s", hours)
	}
}

func TestPlaceHoldUnknownOptionIs404(t *testing.T) {
	f := newAgentFixture()
	f.options.On("GetByID", mock.Anything, "missing").Return(nil, repository.ErrOptionNotFound)

	c, rec := newAgentContext(t, http.MethodPost, "/v1/holds",
		`{"option_id":"missing","passenger_id":"p1","hours":4}`)

	require.NoError(t, f.h.PlaceHold(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPlaceHoldNotificationCarriesProjectAndArtist(t *testing.T) {
	f := newAgentFixture()
	f.options.On("GetByID", mock.Anything, "opt-1").Return(&model.FlightOption{ID: "opt-1", LegID: "leg-1", Airline: "ANA"}, nil)
	f.passengers.On("GetByID", mock.Anything, "p1").Return(&model.Passenger{ID: "p1", FullName: "Ada Laurent"}, nil)
	f.holds.On("LatestForPair", mock.Anything, "opt-1", "p1").Return(nil, nil)
	f.holds.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.legs.On("GetByID", mock.Anything, "leg-1").Return(&model.Leg{ID: "leg-1", ProjectID: "proj-1"}, nil)
	f.projects.On("GetByID", mock.Anything, "proj-1").Return(&model.Project{ID: "proj-1", ArtistID: "artist-5"}, nil)

	var got queue.NotificationEvent
	f.h.Notify = func(ctx context.Context, ev queue.NotificationEvent) error {
		got = ev
		return nil
	}

	c, rec := newAgentContext(t, http.MethodPost, "/v1/holds",
		`{"option_id":"opt-1","passenger_id":"p1","hours":24}`)

	require.NoError(t, f.h.PlaceHold(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	assert.Equal(t, queue.TypeHoldPlaced, got.Type)
	assert.Equal(t, "leg-1", got.LegID)
	assert.Equal(t, "proj-1", got.ProjectID)
	assert.Equal(t, "artist-5", got.ArtistID)
	assert.Equal(t, "p1", got.PassengerID)
}

// ----- markTicketed -----

func TestMarkTicketedRecordsPNRAndSettlesSelection(t *testing.T) {
	f := newAgentFixture()
	f.options.On("GetByID", mock.Anything, "opt-1").Return(&model.FlightOption{ID: "opt-1", LegID: "leg-1", Airline: "ANA", PriceCents: 185000}, nil)
	f.legs.On("GetByID", mock.Anything, "leg-1").Return(&model.Leg{ID: "leg-1", ProjectID: "proj-1"}, nil)
	f.passengers.On("GetByID", mock.Anything, "p1").Return(&model.Passenger{ID: "p1", FullName: "Ada Laurent"}, nil)
	f.ticketing.On("Create", mock.Anything, mock.MatchedBy(func(r *model.TicketingRecord) bool {
		return r.PNRCode == "ABC123" && r.PricePaidCents == 185000 && r.Currency == "USD" && r.TicketedBy == 7
	})).Return(nil)
	sel := &model.Selection{ID: "sel-1", PassengerID: "p1", LegID: "leg-1", Status: booking.StatusHeld}
	f.selections.On("ActiveForPassengerLeg", mock.Anything, "p1", "leg-1").Return(sel, nil)
	f.selections.On("UpdateStatus", mock.Anything, "sel-1", booking.StatusTicketed).Return(nil)
	f.selections.On("CancelOtherActive", mock.Anything, "p1", "leg-1", "sel-1").Return(nil)

	c, rec := newAgentContext(t, http.MethodPost, "/v1/ticketing",
		`{"option_id":"opt-1","leg_id":"leg-1","passenger_id":"p1","pnr_code":"abc123"}`)

	require.NoError(t, f.h.MarkTicketed(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "ABC123", body["pnr_code"])
	f.ticketing.AssertExpectations(t)
	f.selections.AssertExpectations(t)
}

func TestMarkTicketedDuplicateIs409(t *testing.T) {
	f := newAgentFixture()
	f.options.On("GetByID", mock.Anything, "opt-1").Return(&model.FlightOption{ID: "opt-1", LegID: "leg-1"}, nil)
	f.legs.On("GetByID", mock.Anything, "leg-1").Return(&model.Leg{ID: "leg-1"}, nil)
	f.passengers.On("GetByID", mock.Anything, "p1").Return(&model.Passenger{ID: "p1"}, nil)
	f.ticketing.On("Create", mock.Anything, mock.Anything).Return(repository.ErrDuplicateTicketing)

	c, rec := newAgentContext(t, http.MethodPost, "/v1/ticketing",
		`{"option_id":"opt-1","leg_id":"leg-1","passenger_id":"p1","pnr_code":"ABC123"}`)

	require.NoError(t, f.h.MarkTicketed(c))
	assert.Equal(t, http.StatusConflict, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "passenger is already ticketed for this leg", body["error"])
	f.selections.AssertNotCalled(t, "CancelOtherActive", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestMarkTicketedBadPNRIs400(t *testing.T) {
	f := newAgentFixture()

	for _, pnr := range []string{"", "AB12", "ABCD1234", "AB-123"} {
		c, rec := newAgentContext(t, http.MethodPost, "/v1/ticketing",
			`{"option_id":"opt-1","leg_id":"leg-1","passenger_id":"p1","pnr_code":"`+pnr+`"}`)
		require.NoError(t, f.h.MarkTicketed(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code, "pnr=%q", pnr)
	}
	f.ticketing.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestMarkTicketedSurvivesSettlementFailure(t *testing.T) {
	f := newAgentFixture()
	f.options.On("GetByID", mock.Anything, "opt-1").Return(&model.FlightOption{ID: "opt-1", LegID: "leg-1"}, nil)
	f.legs.On("GetByID", mock.Anything, "leg-1").Return(&model.Leg{ID: "leg-1"}, nil)
	f.passengers.On("GetByID", mock.Anything, "p1").Return(&model.Passenger{ID: "p1"}, nil)
	f.ticketing.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.selections.On("ActiveForPassengerLeg", mock.Anything, "p1", "leg-1").Return(nil, assert.AnError)

	c, rec := newAgentContext(t, http.MethodPost, "/v1/ticketing",
		`{"option_id":"opt-1","leg_id":"leg-1","passenger_id":"p1","pnr_code":"XYZ789"}`)

	require.NoError(t, f.h.MarkTicketed(c))
	assert.Equal(t, http.StatusCreated, rec.Code,
		"a failed post-insert settlement must not fail the recorded PNR")
}

// ----- selection transitions -----

func TestMarkHeldFromPending(t *testing.T) {
	f := newAgentFixture()
	f.selections.On("GetByID", mock.Anything, "sel-1").Return(&model.Selection{ID: "sel-1", Status: booking.StatusPending}, nil)
	f.selections.On("UpdateStatus", mock.Anything, "sel-1", booking.StatusHeld).Return(nil)

	c, rec := newAgentContext(t, http.MethodPost, "/v1/selections/sel-1/hold-status", "")
	c.SetParamNames("id")
	c.SetParamValues("sel-1")

	require.NoError(t, f.h.MarkHeld(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "held", body["status"])
}

func TestMarkHeldFromHeldIs409(t *testing.T) {
	f := newAgentFixture()
	f.selections.On("GetByID", mock.Anything, "sel-1").Return(&model.Selection{ID: "sel-1", Status: booking.StatusHeld}, nil)

	c, rec := newAgentContext(t, http.MethodPost, "/v1/selections/sel-1/hold-status", "")
	c.SetParamNames("id")
	c.SetParamValues("sel-1")

	require.NoError(t, f.h.MarkHeld(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
	f.selections.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestRevertFromTicketed(t *testing.T) {
	f := newAgentFixture()
	f.selections.On("GetByID", mock.Anything, "sel-1").Return(&model.Selection{ID: "sel-1", Status: booking.StatusTicketed}, nil)
	f.selections.On("UpdateStatus", mock.Anything, "sel-1", booking.StatusPending).Return(nil)

	c, rec := newAgentContext(t, http.MethodPost, "/v1/selections/sel-1/revert", "")
	c.SetParamNames("id")
	c.SetParamValues("sel-1")

	require.NoError(t, f.h.RevertToPending(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "pending", body["status"])
}

func TestRevertFromCancelledIs409(t *testing.T) {
	f := newAgentFixture()
	f.selections.On("GetByID", mock.Anything, "sel-1").Return(&model.Selection{ID: "sel-1", Status: booking.StatusCancelled}, nil)

	c, rec := newAgentContext(t, http.MethodPost, "/v1/selections/sel-1/revert", "")
	c.SetParamNames("id")
	c.SetParamValues("sel-1")

	require.NoError(t, f.h.RevertToPending(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestTransitionUnknownSelectionIs404(t *testing.T) {
	f := newAgentFixture()
	f.selections.On("GetByID", mock.Anything, "missing").Return(nil, repository.ErrSelectionNotFound)

	c, rec := newAgentContext(t, http.MethodPost, "/v1/selections/missing/revert", "")
	c.SetParamNames("id")
	c.SetParamValues("missing")

	require.NoError(t, f.h.RevertToPending(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// ----- queue -----

func TestGetQueueRanksItems(t *testing.T) {
	f := newAgentFixture()
	now := time.Now().UTC()
	expSoon := now.Add(30 * time.Minute)
	expLater := now.Add(12 * time.Hour)

	f.selections.On("ListQueue", mock.Anything, "").Return([]booking.QueueItem{
		{SelectionID: "relaxed", Status: booking.StatusHeld, HoldExpiresAt: &expLater},
		{SelectionID: "urgent", Status: booking.StatusHeld, HoldExpiresAt: &expSoon},
	}, nil)

	c, rec := newAgentContext(t, http.MethodGet, "/v1/queue", "")

	require.NoError(t, f.h.GetQueue(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Count int `json:"count"`
		Items []struct {
			SelectionID string `json:"selection_id"`
			Status      string `json:"status"`
			Urgency     string `json:"urgency"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, 2, body.Count)
	assert.Equal(t, "urgent", body.Items[0].SelectionID)
	assert.Equal(t, "high", body.Items[0].Urgency)
	assert.Equal(t, "low", body.Items[1].Urgency)

	// Same casing as the selection endpoints' status field.
	assert.Equal(t, "held", body.Items[0].Status)
	assert.Equal(t, "held", body.Items[1].Status)
}

func TestGetQueuePassesArtistFilter(t *testing.T) {
	f := newAgentFixture()
	f.selections.On("ListQueue", mock.Anything, "artist-9").Return([]booking.QueueItem{}, nil)

	c, rec := newAgentContext(t, http.MethodGet, "/v1/queue?artist_id=artist-9", "")

	require.NoError(t, f.h.GetQueue(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	f.selections.AssertExpectations(t)
}
