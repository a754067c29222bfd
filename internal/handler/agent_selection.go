package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/tourwire/flight-desk/internal/booking"
	"github.com/tourwire/flight-desk/internal/queue"
)

// MarkHeld handles POST /v1/selections/:id/hold-status.  Only a
// pending selection can be marked held; anything else is a 409.
func (h *AgentHandler) MarkHeld(c echo.Context) error {
	return h.transition(c, booking.MarkHeld, "")
}

// RevertToPending handles POST /v1/selections/:id/revert.  A held or
// ticketed selection goes back to pending for rework; any ticketing
// record stays untouched as a fact of record.
func (h *AgentHandler) RevertToPending(c echo.Context) error {
	return h.transition(c, booking.RevertToPending, queue.TypeSelectionReverted)
}

// transition loads a selection, runs the guard against its current
// status and persists the new status.  When eventType is non-empty a
// notification is published best-effort after the write.
func (h *AgentHandler) transition(c echo.Context, guard func(booking.SelectionStatus) (booking.SelectionStatus, error), eventType string) error {
	selectionID := c.Param("id")
	ctx := c.Request().Context()

	sel, err := h.Selections.GetByID(ctx, selectionID)
	if err != nil {
		return httpError(c, err)
	}
	next, err := guard(sel.Status)
	if err != nil {
		return httpError(c, err)
	}
	if err := h.Selections.UpdateStatus(ctx, sel.ID, next); err != nil {
		return httpError(c, err)
	}

	if eventType != "" {
		h.notify(ctx, queue.NotificationEvent{
			Type:        eventType,
			Severity:    queue.SeverityWarning,
			Title:       "Selection reverted",
			Body:        fmt.Sprintf("Selection %s moved from %s back to %s", sel.ID, sel.Status, next),
			LegID:       sel.LegID,
			PassengerID: sel.PassengerID,
			OptionID:    sel.OptionID,
		})
	}
	h.bustCache(ctx)

	return c.JSON(http.StatusOK, echo.Map{
		"selection_id": sel.ID,
		"status":       strings.ToLower(string(next)),
	})
}
