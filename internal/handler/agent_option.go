package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tourwire/flight-desk/internal/model"
)

// segmentInput is one flight within a CreateOption request.  Times are
// RFC 3339 strings on the wire.
type segmentInput struct {
	Airline      string `json:"airline"`
	FlightNumber string `json:"flight_number"`
	Origin       string `json:"origin"`
	Destination  string `json:"destination"`
	DepartsAt    string `json:"departs_at"`
	ArrivesAt    string `json:"arrives_at"`
}

// CreateOption handles POST /v1/legs/:id/options.  Options are entered
// manually by an agent from external research; the displayed airline
// is taken from the first segment.
func (h *AgentHandler) CreateOption(c echo.Context) error {
	legID := c.Param("id")

	var body struct {
		PriceCents  int64          `json:"price_cents"`
		Currency    string         `json:"currency"`
		Recommended bool           `json:"recommended"`
		Segments    []segmentInput `json:"segments"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.PriceCents <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "price_cents must be positive"})
	}
	if len(body.Segments) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "at least one segment is required"})
	}
	if body.Currency == "" {
		body.Currency = "USD"
	}

	segments := make([]model.FlightSegment, 0, len(body.Segments))
	for i, s := range body.Segments {
		if s.Airline == "" || s.FlightNumber == "" || s.Origin == "" || s.Destination == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "segment airline, flight_number, origin and destination are required"})
		}
		departs, err := time.Parse(time.RFC3339, s.DepartsAt)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "segment departs_at must be RFC 3339"})
		}
		arrives, err := time.Parse(time.RFC3339, s.ArrivesAt)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "segment arrives_at must be RFC 3339"})
		}
		segments = append(segments, model.FlightSegment{
			Position:     i,
			Airline:      strings.ToUpper(strings.TrimSpace(s.Airline)),
			FlightNumber: strings.ToUpper(strings.TrimSpace(s.FlightNumber)),
			Origin:       strings.ToUpper(strings.TrimSpace(s.Origin)),
			Destination:  strings.ToUpper(strings.TrimSpace(s.Destination)),
			DepartsAt:    departs.UTC(),
			ArrivesAt:    arrives.UTC(),
		})
	}

	ctx := c.Request().Context()
	if _, err := h.Legs.GetByID(ctx, legID); err != nil {
		return httpError(c, err)
	}

	opt := model.FlightOption{
		LegID:       legID,
		Airline:     segments[0].Airline,
		PriceCents:  body.PriceCents,
		Currency:    body.Currency,
		Recommended: body.Recommended,
		Available:   true,
		Segments:    segments,
	}
	if err := h.Options.Create(ctx, &opt); err != nil {
		return httpError(c, err)
	}
	h.bustCache(ctx)

	return c.JSON(http.StatusCreated, echo.Map{"option_id": opt.ID})
}

// SetOptionAvailability handles PATCH /v1/options/:id/availability.
// Marking an option unavailable hides it from new client selections
// but leaves existing selections, holds and ticketing records alone.
func (h *AgentHandler) SetOptionAvailability(c echo.Context) error {
	optionID := c.Param("id")

	var body struct {
		Available *bool `json:"available"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Available == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "available is required"})
	}

	ctx := c.Request().Context()
	if err := h.Options.SetAvailability(ctx, optionID, *body.Available); err != nil {
		return httpError(c, err)
	}
	h.bustCache(ctx)

	return c.JSON(http.StatusOK, echo.Map{
		"option_id": optionID,
		"available": *body.Available,
	})
}
