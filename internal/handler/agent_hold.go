package handler

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tourwire/flight-desk/internal/booking"
	"github.com/tourwire/flight-desk/internal/middleware"
	"github.com/tourwire/flight-desk/internal/model"
	"github.com/tourwire/flight-desk/internal/queue"
	"github.com/tourwire/flight-desk/internal/repository"
)

// PlaceHold handles POST /v1/holds.  It records a time-boxed price
// promise on an (option, passenger) pair.  Every call creates a new
// hold row – holds are never extended – and the newest unexpired row
// is the authoritative one.  Hours defaults to 24 when the field is
// absent and must lie in [1,72] when present.
func (h *AgentHandler) PlaceHold(c echo.Context) error {
	user, err := middleware.ActingUserFrom(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var body struct {
		OptionID    string `json:"option_id"`
		PassengerID string `json:"passenger_id"`
		Hours       *int   `json:"hours"`
		Notes       string `json:"notes"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.OptionID == "" || body.PassengerID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "option_id and passenger_id are required"})
	}
	hours := booking.DefaultHoldHours
	if body.Hours != nil {
		hours = *body.Hours
	}

	expiresAt, err := booking.HoldExpiry(time.Now().UTC(), hours)
	if err != nil {
		return httpError(c, err)
	}

	ctx := c.Request().Context()
	opt, err := h.Options.GetByID(ctx, body.OptionID)
	if err != nil {
		return httpError(c, err)
	}
	pax, err := h.Passengers.GetByID(ctx, body.PassengerID)
	if err != nil {
		return httpError(c, err)
	}

	// Surface the promise being replaced, if any, so the agent sees
	// whether this is a fresh hold or a re-promise on the same pair.
	prior, err := h.Holds.LatestForPair(ctx, opt.ID, pax.ID)
	if err != nil {
		return httpError(c, err)
	}

	hold := model.Hold{
		OptionID:    opt.ID,
		PassengerID: pax.ID,
		ExpiresAt:   expiresAt,
		CreatedBy:   user.ID,
		Notes:       body.Notes,
	}
	if err := h.Holds.Create(ctx, &hold); err != nil {
		return httpError(c, err)
	}

	h.notify(ctx, queue.NotificationEvent{
		Type:        queue.TypeHoldPlaced,
		Severity:    queue.SeverityInfo,
		Title:       "Flight option held",
		Body:        fmt.Sprintf("Hold for %s on %s expires at %s", pax.FullName, opt.Airline, expiresAt.Format(time.RFC3339)),
		LegID:       opt.LegID,
		PassengerID: pax.ID,
		OptionID:    opt.ID,
	})
	h.bustCache(ctx)

	resp := echo.Map{
		"hold_id":    hold.ID,
		"expires_at": expiresAt.Format(time.RFC3339),
	}
	if prior != nil {
		resp["previous_expires_at"] = prior.ExpiresAt.Format(time.RFC3339)
	}
	return c.JSON(http.StatusCreated, resp)
}

// ListPassengerHolds handles GET /v1/passengers/:id/holds and returns
// the full hold history of a passenger, newest first, with each row's
// live/lapsed state judged against the current clock.
func (h *AgentHandler) ListPassengerHolds(c echo.Context) error {
	passengerID := c.Param("id")
	ctx := c.Request().Context()

	if _, err := h.Passengers.GetByID(ctx, passengerID); err != nil {
		return httpError(c, err)
	}
	holds, err := h.Holds.ListForPassenger(ctx, passengerID)
	if err != nil {
		return httpError(c, err)
	}

	now := time.Now().UTC()
	type holdResp struct {
		ID        string `json:"id"`
		OptionID  string `json:"option_id"`
		ExpiresAt string `json:"expires_at"`
		Active    bool   `json:"active"`
		Urgency   string `json:"urgency"`
		Notes     string `json:"notes,omitempty"`
	}
	out := make([]holdResp, 0, len(holds))
	for _, hd := range holds {
		exp := hd.ExpiresAt
		out = append(out, holdResp{
			ID:        hd.ID,
			OptionID:  hd.OptionID,
			ExpiresAt: exp.Format(time.RFC3339),
			Active:    repository.Unexpired(&hd, now),
			Urgency:   strings.ToLower(string(booking.ClassifyUrgency(now, &exp))),
			Notes:     hd.Notes,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"holds": out})
}
