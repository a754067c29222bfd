package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tourwire/flight-desk/internal/booking"
	"github.com/tourwire/flight-desk/internal/repository"
)

// DeriveGroups handles POST /v1/legs/:id/groups/derive.  It partitions
// the leg's passenger assignments into booking units and replaces the
// leg's existing units wholesale.  Re-running with unchanged
// assignments yields an identical unit set; a leg without assignments
// is a 404.
func (h *AgentHandler) DeriveGroups(c echo.Context) error {
	legID := c.Param("id")
	ctx := c.Request().Context()

	leg, err := h.Legs.GetByID(ctx, legID)
	if err != nil {
		return httpError(c, err)
	}

	assignments, err := h.Legs.ListAssignments(ctx, legID)
	if err != nil {
		return httpError(c, err)
	}
	if len(assignments) == 0 {
		return httpError(c, repository.ErrNoAssignments)
	}

	groups := booking.DeriveGroups(leg.Origin, leg.Destination, assignments)
	if err := h.Groups.ReplaceForLeg(ctx, legID, groups); err != nil {
		return httpError(c, err)
	}

	individuals, groupCreated := booking.CountKinds(groups)
	return c.JSON(http.StatusOK, echo.Map{
		"individuals_created": individuals,
		"group_created":       groupCreated,
		"total_passengers":    len(assignments),
	})
}

// ListGroups handles GET /v1/legs/:id/groups and returns the current
// booking units of a leg.
func (h *AgentHandler) ListGroups(c echo.Context) error {
	legID := c.Param("id")
	ctx := c.Request().Context()

	if _, err := h.Legs.GetByID(ctx, legID); err != nil {
		return httpError(c, err)
	}
	groups, err := h.Groups.ListByLeg(ctx, legID)
	if err != nil {
		return httpError(c, err)
	}

	type groupResp struct {
		ID         string   `json:"id"`
		Kind       string   `json:"kind"`
		Label      string   `json:"label"`
		Passengers []string `json:"passengers"`
	}
	out := make([]groupResp, 0, len(groups))
	for _, g := range groups {
		out = append(out, groupResp{ID: g.ID, Kind: g.Kind, Label: g.Label, Passengers: g.MemberIDs})
	}
	return c.JSON(http.StatusOK, echo.Map{"groups": out})
}
