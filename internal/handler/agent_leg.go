package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/tourwire/flight-desk/internal/model"
)

// CreatePassenger handles POST /v1/projects/:id/passengers.  Touring
// party members are entered by agents when a project is set up.
func (h *AgentHandler) CreatePassenger(c echo.Context) error {
	projectID := c.Param("id")

	var body struct {
		FullName string `json:"full_name"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	name := strings.TrimSpace(body.FullName)
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "full_name is required"})
	}

	ctx := c.Request().Context()
	if _, err := h.Projects.GetByID(ctx, projectID); err != nil {
		return httpError(c, err)
	}

	p := model.Passenger{ProjectID: projectID, FullName: name}
	if err := h.Passengers.Create(ctx, &p); err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"passenger_id": p.ID})
}

// AssignPassenger handles POST /v1/legs/:id/passengers.  Assigning a
// passenger who is already on the leg only updates the individual
// flag.  Changing assignments does not touch existing booking units;
// groups reflect the change after the next derivation run.
func (h *AgentHandler) AssignPassenger(c echo.Context) error {
	legID := c.Param("id")

	var body struct {
		PassengerID       string `json:"passenger_id"`
		TreatAsIndividual bool   `json:"treat_as_individual"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.PassengerID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "passenger_id is required"})
	}

	ctx := c.Request().Context()
	if _, err := h.Legs.GetByID(ctx, legID); err != nil {
		return httpError(c, err)
	}
	if _, err := h.Passengers.GetByID(ctx, body.PassengerID); err != nil {
		return httpError(c, err)
	}
	if err := h.Legs.AssignPassenger(ctx, legID, body.PassengerID, body.TreatAsIndividual); err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"leg_id":              legID,
		"passenger_id":        body.PassengerID,
		"treat_as_individual": body.TreatAsIndividual,
	})
}
