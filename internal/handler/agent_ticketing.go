package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tourwire/flight-desk/internal/booking"
	"github.com/tourwire/flight-desk/internal/middleware"
	"github.com/tourwire/flight-desk/internal/model"
	"github.com/tourwire/flight-desk/internal/queue"
)

// MarkTicketed handles POST /v1/ticketing.  The ledger insert is the
// single primary write: the UNIQUE(passenger_id, pnr_code) key is the
// only arbiter between racing calls, and the loser gets 409.
// Everything after the insert – cancelling the passenger's other
// active selections, flipping the matching selection to TICKETED and
// the completion notification – is best-effort and never unwinds a
// recorded PNR.
func (h *AgentHandler) MarkTicketed(c echo.Context) error {
	user, err := middleware.ActingUserFrom(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var body struct {
		OptionID       string `json:"option_id"`
		LegID          string `json:"leg_id"`
		PassengerID    string `json:"passenger_id"`
		PNRCode        string `json:"pnr_code"`
		PricePaidCents int64  `json:"price_paid_cents"`
		Currency       string `json:"currency"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.OptionID == "" || body.LegID == "" || body.PassengerID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "option_id, leg_id and passenger_id are required"})
	}
	pnr, err := booking.NormalizePNRCode(body.PNRCode)
	if err != nil {
		return httpError(c, err)
	}
	if body.Currency == "" {
		body.Currency = "USD"
	}

	ctx := c.Request().Context()
	opt, err := h.Options.GetByID(ctx, body.OptionID)
	if err != nil {
		return httpError(c, err)
	}
	leg, err := h.Legs.GetByID(ctx, body.LegID)
	if err != nil {
		return httpError(c, err)
	}
	pax, err := h.Passengers.GetByID(ctx, body.PassengerID)
	if err != nil {
		return httpError(c, err)
	}

	price := body.PricePaidCents
	if price == 0 {
		price = opt.PriceCents
	}

	rec := model.TicketingRecord{
		PassengerID:    pax.ID,
		OptionID:       opt.ID,
		LegID:          leg.ID,
		PNRCode:        pnr,
		PricePaidCents: price,
		Currency:       body.Currency,
		TicketedBy:     user.ID,
	}
	if err := h.Ticketing.Create(ctx, &rec); err != nil {
		return httpError(c, err)
	}

	// Side effects past this point must not fail the request.
	h.settleSelections(c, pax.ID, leg.ID)

	h.notify(ctx, queue.NotificationEvent{
		Type:        queue.TypeTicketingCompleted,
		Severity:    queue.SeverityInfo,
		Title:       "Ticketing completed",
		Body:        fmt.Sprintf("%s ticketed on %s (%s)", pax.FullName, opt.Airline, pnr),
		LegID:       leg.ID,
		ProjectID:   leg.ProjectID,
		PassengerID: pax.ID,
		OptionID:    opt.ID,
	})
	h.bustCache(ctx)

	return c.JSON(http.StatusCreated, echo.Map{
		"pnr_id":   rec.ID,
		"pnr_code": pnr,
	})
}

// settleSelections brings the passenger's selection state on the leg
// in line with a freshly recorded PNR: the active selection (if any)
// becomes TICKETED and every other active one is cancelled.  Failures
// here are logged; the PNR already exists and stays.
func (h *AgentHandler) settleSelections(c echo.Context, passengerID, legID string) {
	ctx := c.Request().Context()

	sel, err := h.Selections.ActiveForPassengerLeg(ctx, passengerID, legID)
	if err != nil {
		c.Logger().Warnf("ticketing: active selection lookup failed (ignored): %v", err)
		return
	}
	if sel == nil {
		return
	}
	if next, err := booking.MarkTicketed(sel.Status); err != nil {
		c.Logger().Warnf("ticketing: selection %s not transitioned (ignored): %v", sel.ID, err)
	} else if err := h.Selections.UpdateStatus(ctx, sel.ID, next); err != nil {
		c.Logger().Warnf("ticketing: selection %s status update failed (ignored): %v", sel.ID, err)
	}
	if err := h.Selections.CancelOtherActive(ctx, passengerID, legID, sel.ID); err != nil {
		c.Logger().Warnf("ticketing: cancelling superseded selections failed (ignored): %v", err)
	}
}

// ListLegTicketing handles GET /v1/legs/:id/ticketing and returns the
// PNRs recorded against a leg, newest first.
func (h *AgentHandler) ListLegTicketing(c echo.Context) error {
	legID := c.Param("id")
	ctx := c.Request().Context()

	if _, err := h.Legs.GetByID(ctx, legID); err != nil {
		return httpError(c, err)
	}
	recs, err := h.Ticketing.ListForLeg(ctx, legID)
	if err != nil {
		return httpError(c, err)
	}

	type pnrResp struct {
		ID             string `json:"id"`
		PassengerID    string `json:"passenger_id"`
		OptionID       string `json:"option_id"`
		PNRCode        string `json:"pnr_code"`
		PricePaidCents int64  `json:"price_paid_cents"`
		Currency       string `json:"currency"`
	}
	out := make([]pnrResp, 0, len(recs))
	for _, r := range recs {
		out = append(out, pnrResp{
			ID:             r.ID,
			PassengerID:    r.PassengerID,
			OptionID:       r.OptionID,
			PNRCode:        r.PNRCode,
			PricePaidCents: r.PricePaidCents,
			Currency:       r.Currency,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"ticketing": out})
}
