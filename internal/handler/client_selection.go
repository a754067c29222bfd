package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tourwire/flight-desk/internal/booking"
	"github.com/tourwire/flight-desk/internal/model"
)

// ClientHandler serves the touring-party side of the workflow:
// browsing a leg's flight options and picking one.  Clients never see
// the agent queue or the ticketing ledger.
type ClientHandler struct {
	Legs       LegStore
	Options    OptionStore
	Selections SelectionStore
	Passengers PassengerStore
	Ticketing  TicketingStore

	BustQueueCache func(c echo.Context)
}

// NewClientHandler constructs a ClientHandler over the given stores.
func NewClientHandler(legs LegStore, options OptionStore, selections SelectionStore, passengers PassengerStore, ticketing TicketingStore) *ClientHandler {
	if legs == nil || options == nil || selections == nil || passengers == nil || ticketing == nil {
		panic("nil store passed to NewClientHandler")
	}
	return &ClientHandler{Legs: legs, Options: options, Selections: selections, Passengers: passengers, Ticketing: ticketing}
}

// CreateSelection handles POST /v1/legs/:id/selections.  Picking an
// option supersedes the passenger's previous choice for the leg: the
// old selection is cancelled and a fresh pending one is created, so at
// most one active selection per (passenger, leg) ever exists.
func (h *ClientHandler) CreateSelection(c echo.Context) error {
	legID := c.Param("id")

	var body struct {
		PassengerID string `json:"passenger_id"`
		OptionID    string `json:"option_id"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.PassengerID == "" || body.OptionID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "passenger_id and option_id are required"})
	}

	ctx := c.Request().Context()
	if _, err := h.Legs.GetByID(ctx, legID); err != nil {
		return httpError(c, err)
	}
	if _, err := h.Passengers.GetByID(ctx, body.PassengerID); err != nil {
		return httpError(c, err)
	}
	opt, err := h.Options.GetByID(ctx, body.OptionID)
	if err != nil {
		return httpError(c, err)
	}
	if opt.LegID != legID {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "option does not belong to this leg"})
	}
	if !opt.Available {
		return c.JSON(http.StatusConflict, echo.Map{"error": "option is no longer available"})
	}

	// A ticketed selection cannot be silently superseded: the agent
	// must revert it first.
	current, err := h.Selections.ActiveForPassengerLeg(ctx, body.PassengerID, legID)
	if err != nil {
		return httpError(c, err)
	}
	if current != nil && current.Status == booking.StatusTicketed {
		return c.JSON(http.StatusConflict, echo.Map{"error": "passenger is already ticketed for this leg"})
	}

	sel, err := h.Selections.CreateSuperseding(ctx, body.PassengerID, body.OptionID, legID)
	if err != nil {
		return httpError(c, err)
	}
	if h.BustQueueCache != nil {
		h.BustQueueCache(c)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"selection_id": sel.ID,
		"status":       strings.ToLower(string(sel.Status)),
	})
}

// ListLegOptions handles GET /v1/legs/:id/options.  It returns the
// leg's options, recommended ones first, and when passenger_id is
// given it also reports that passenger's current active selection so
// the client can highlight the picked option.
func (h *ClientHandler) ListLegOptions(c echo.Context) error {
	legID := c.Param("id")
	ctx := c.Request().Context()

	leg, err := h.Legs.GetByID(ctx, legID)
	if err != nil {
		return httpError(c, err)
	}
	options, err := h.Options.ListByLeg(ctx, legID)
	if err != nil {
		return httpError(c, err)
	}

	resp := echo.Map{
		"leg": echo.Map{
			"id":             leg.ID,
			"origin":         leg.Origin,
			"destination":    leg.Destination,
			"departure_date": formatDate(leg.DepartureDate),
		},
		"options": optionViews(options),
	}

	if passengerID := c.QueryParam("passenger_id"); passengerID != "" {
		sel, err := h.Selections.ActiveForPassengerLeg(ctx, passengerID, legID)
		if err != nil {
			return httpError(c, err)
		}
		if sel != nil {
			resp["current_selection"] = echo.Map{
				"id":        sel.ID,
				"option_id": sel.OptionID,
				"status":    strings.ToLower(string(sel.Status)),
			}
		}
		ticketed, err := h.Ticketing.ExistsForPassengerLeg(ctx, passengerID, legID)
		if err != nil {
			return httpError(c, err)
		}
		resp["ticketed"] = ticketed
	}
	return c.JSON(http.StatusOK, resp)
}

// ListProjectLegs handles GET /v1/projects/:id/legs and returns the
// tour's legs in travel order, undated legs last.
func (h *ClientHandler) ListProjectLegs(c echo.Context) error {
	projectID := c.Param("id")

	legs, err := h.Legs.ListByProject(c.Request().Context(), projectID)
	if err != nil {
		return httpError(c, err)
	}

	type legResp struct {
		ID            string `json:"id"`
		Origin        string `json:"origin"`
		Destination   string `json:"destination"`
		DepartureDate any    `json:"departure_date"`
	}
	out := make([]legResp, 0, len(legs))
	for _, l := range legs {
		out = append(out, legResp{
			ID:            l.ID,
			Origin:        l.Origin,
			Destination:   l.Destination,
			DepartureDate: formatDate(l.DepartureDate),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"legs": out})
}

type optionView struct {
	ID          string        `json:"id"`
	Airline     string        `json:"airline"`
	PriceCents  int64         `json:"price_cents"`
	Currency    string        `json:"currency"`
	Recommended bool          `json:"recommended"`
	Available   bool          `json:"available"`
	Segments    []segmentView `json:"segments"`
}

type segmentView struct {
	Airline      string `json:"airline"`
	FlightNumber string `json:"flight_number"`
	Origin       string `json:"origin"`
	Destination  string `json:"destination"`
	DepartsAt    string `json:"departs_at"`
	ArrivesAt    string `json:"arrives_at"`
}

func optionViews(options []model.FlightOption) []optionView {
	out := make([]optionView, 0, len(options))
	for _, o := range options {
		segs := make([]segmentView, 0, len(o.Segments))
		for _, s := range o.Segments {
			segs = append(segs, segmentView{
				Airline:      s.Airline,
				FlightNumber: s.FlightNumber,
				Origin:       s.Origin,
				Destination:  s.Destination,
				DepartsAt:    s.DepartsAt.Format(time.RFC3339),
				ArrivesAt:    s.ArrivesAt.Format(time.RFC3339),
			})
		}
		out = append(out, optionView{
			ID:          o.ID,
			Airline:     o.Airline,
			PriceCents:  o.PriceCents,
			Currency:    o.Currency,
			Recommended: o.Recommended,
			Available:   o.Available,
			Segments:    segs,
		})
	}
	return out
}

func formatDate(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format("2006-01-02")
}
