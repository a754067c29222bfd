package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tourwire/flight-desk/internal/booking"
	"github.com/tourwire/flight-desk/internal/middleware"
	"github.com/tourwire/flight-desk/internal/model"
	"github.com/tourwire/flight-desk/internal/repository"
)

type clientFixture struct {
	legs       *mockLegStore
	options    *mockOptionStore
	selections *mockSelectionStore
	passengers *mockPassengerStore
	ticketing  *mockTicketingStore
	h          *ClientHandler
}

func newClientFixture() *clientFixture {
	f := &clientFixture{
		legs:       &mockLegStore{},
		options:    &mockOptionStore{},
		selections: &mockSelectionStore{},
		passengers: &mockPassengerStore{},
		ticketing:  &mockTicketingStore{},
	}
	f.h = NewClientHandler(f.legs, f.options, f.selections, f.passengers, f.ticketing)
	return f
}

func newClientContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	c.Set("acting_user", middleware.ActingUser{ID: 3, Role: model.RoleClient})
	return c, rec
}

func TestCreateSelectionSupersedes(t *testing.T) {
	f := newClientFixture()
	f.legs.On("GetByID", mock.Anything, "leg-1").Return(&model.Leg{ID: "leg-1"}, nil)
	f.passengers.On("GetByID", mock.Anything, "p1").Return(&model.Passenger{ID: "p1"}, nil)
	f.options.On("GetByID", mock.Anything, "opt-1").Return(&model.FlightOption{ID: "opt-1", LegID: "leg-1", Available: true}, nil)
	f.selections.On("ActiveForPassengerLeg", mock.Anything, "p1", "leg-1").
		Return(&model.Selection{ID: "sel-old", Status: booking.StatusHeld}, nil)
	f.selections.On("CreateSuperseding", mock.Anything, "p1", "opt-1", "leg-1").
		Return(&model.Selection{ID: "sel-new", Status: booking.StatusPending}, nil)

	c, rec := newClientContext(t, http.MethodPost, "/v1/legs/leg-1/selections",
		`{"passenger_id":"p1","option_id":"opt-1"}`)
	c.SetParamNames("id")
	c.SetParamValues("leg-1")

	require.NoError(t, f.h.CreateSelection(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "sel-new", body["selection_id"])
	assert.Equal(t, "pending", body["status"])
	f.selections.AssertExpectations(t)
}

func TestCreateSelectionWrongLegIs400(t *testing.T) {
	f := newClientFixture()
	f.legs.On("GetByID", mock.Anything, "leg-1").Return(&model.Leg{ID: "leg-1"}, nil)
	f.passengers.On("GetByID", mock.Anything, "p1").Return(&model.Passenger{ID: "p1"}, nil)
	f.options.On("GetByID", mock.Anything, "opt-9").Return(&model.FlightOption{ID: "opt-9", LegID: "other-leg", Available: true}, nil)

	c, rec := newClientContext(t, http.MethodPost, "/v1/legs/leg-1/selections",
		`{"passenger_id":"p1","option_id":"opt-9"}`)
	c.SetParamNames("id")
	c.SetParamValues("leg-1")

	require.NoError(t, f.h.CreateSelection(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	f.selections.AssertNotCalled(t, "CreateSuperseding", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateSelectionUnavailableOptionIs409(t *testing.T) {
	f := newClientFixture()
	f.legs.On("GetByID", mock.Anything, "leg-1").Return(&model.Leg{ID: "leg-1"}, nil)
	f.passengers.On("GetByID", mock.Anything, "p1").Return(&model.Passenger{ID: "p1"}, nil)
	f.options.On("GetByID", mock.Anything, "opt-1").Return(&model.FlightOption{ID: "opt-1", LegID: "leg-1", Available: false}, nil)

	c, rec := newClientContext(t, http.MethodPost, "/v1/legs/leg-1/selections",
		`{"passenger_id":"p1","option_id":"opt-1"}`)
	c.SetParamNames("id")
	c.SetParamValues("leg-1")

	require.NoError(t, f.h.CreateSelection(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCreateSelectionTicketedPassengerIs409(t *testing.T) {
	f := newClientFixture()
	f.legs.On("GetByID", mock.Anything, "leg-1").Return(&model.Leg{ID: "leg-1"}, nil)
	f.passengers.On("GetByID", mock.Anything, "p1").Return(&model.Passenger{ID: "p1"}, nil)
	f.options.On("GetByID", mock.Anything, "opt-1").Return(&model.FlightOption{ID: "opt-1", LegID: "leg-1", Available: true}, nil)
	f.selections.On("ActiveForPassengerLeg", mock.Anything, "p1", "leg-1").
		Return(&model.Selection{ID: "sel-1", Status: booking.StatusTicketed}, nil)

	c, rec := newClientContext(t, http.MethodPost, "/v1/legs/leg-1/selections",
		`{"passenger_id":"p1","option_id":"opt-1"}`)
	c.SetParamNames("id")
	c.SetParamValues("leg-1")

	require.NoError(t, f.h.CreateSelection(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
	f.selections.AssertNotCalled(t, "CreateSuperseding", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateSelectionUnknownLegIs404(t *testing.T) {
	f := newClientFixture()
	f.legs.On("GetByID", mock.Anything, "missing").Return(nil, repository.ErrLegNotFound)

	c, rec := newClientContext(t, http.MethodPost, "/v1/legs/missing/selections",
		`{"passenger_id":"p1","option_id":"opt-1"}`)
	c.SetParamNames("id")
	c.SetParamValues("missing")

	require.NoError(t, f.h.CreateSelection(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListLegOptionsReportsCurrentSelection(t *testing.T) {
	f := newClientFixture()
	f.legs.On("GetByID", mock.Anything, "leg-1").Return(&model.Leg{ID: "leg-1", Origin: "LAX", Destination: "NRT"}, nil)
	f.options.On("ListByLeg", mock.Anything, "leg-1").Return([]model.FlightOption{
		{ID: "opt-1", Airline: "ANA", Recommended: true, Available: true},
		{ID: "opt-2", Airline: "UAL", Available: true},
	}, nil)
	f.selections.On("ActiveForPassengerLeg", mock.Anything, "p1", "leg-1").
		Return(&model.Selection{ID: "sel-1", OptionID: "opt-2", Status: booking.StatusHeld}, nil)
	f.ticketing.On("ExistsForPassengerLeg", mock.Anything, "p1", "leg-1").Return(false, nil)

	c, rec := newClientContext(t, http.MethodGet, "/v1/legs/leg-1/options?passenger_id=p1", "")
	c.SetParamNames("id")
	c.SetParamValues("leg-1")

	require.NoError(t, f.h.ListLegOptions(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Options []struct {
			ID string `json:"id"`
		} `json:"options"`
		CurrentSelection struct {
			OptionID string `json:"option_id"`
			Status   string `json:"status"`
		} `json:"current_selection"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Options, 2)
	assert.Equal(t, "opt-2", body.CurrentSelection.OptionID)
	assert.Equal(t, "held", body.CurrentSelection.Status)
}
