package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tourwire/flight-desk/internal/booking"
)

// queueItemView serializes a ranked queue row.  Status and urgency are
// stored upper-case but the API speaks lower-case throughout, same as
// the selection endpoints; the shadowed fields re-tag them.
type queueItemView struct {
	booking.QueueItem
	Status  string `json:"status"`
	Urgency string `json:"urgency"`
}

// GetQueue handles GET /v1/queue.  It returns every live (pending or
// held) selection across all projects, joined with its latest hold and
// leg metadata, classified by urgency and ranked most-pressing first.
// An optional artist_id query parameter narrows the queue to one
// artist's legs; an unknown artist simply yields an empty queue.
func (h *AgentHandler) GetQueue(c echo.Context) error {
	items, err := h.Selections.ListQueue(c.Request().Context(), c.QueryParam("artist_id"))
	if err != nil {
		return httpError(c, err)
	}

	items = booking.Rank(time.Now().UTC(), items)

	out := make([]queueItemView, 0, len(items))
	for _, it := range items {
		out = append(out, queueItemView{
			QueueItem: it,
			Status:    strings.ToLower(string(it.Status)),
			Urgency:   strings.ToLower(string(it.Urgency)),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"count": len(out),
		"items": out,
	})
}
