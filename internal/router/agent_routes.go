package router

import (
	"github.com/labstack/echo/v4"

	"github.com/tourwire/flight-desk/internal/handler"
	"github.com/tourwire/flight-desk/internal/middleware"
	"github.com/tourwire/flight-desk/internal/model"
)

// RegisterAgent registers the agent-scoped endpoints under /v1.  All
// routes require a valid JWT with role AGENT or ADMIN.  The extra
// middleware (queue response cache, rate limiting) is passed in by the
// caller so a missing Redis simply means an empty slice here.
func RegisterAgent(e *echo.Echo, a *handler.AgentHandler, jwtSecret string, extra ...echo.MiddlewareFunc) {
	mw := append([]echo.MiddlewareFunc{
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAgent, model.RoleAdmin),
	}, extra...)
	g := e.Group("/v1", mw...)

	// ---- Work queue ----
	g.GET("/queue", a.GetQueue)

	// ---- Party setup ----
	g.POST("/projects/:id/passengers", a.CreatePassenger)
	g.POST("/legs/:id/passengers", a.AssignPassenger)

	// ---- Booking units ----
	g.POST("/legs/:id/groups/derive", a.DeriveGroups)
	g.GET("/legs/:id/groups", a.ListGroups)

	// ---- Flight options ----
	g.POST("/legs/:id/options", a.CreateOption)
	g.PATCH("/options/:id/availability", a.SetOptionAvailability)

	// ---- Holds ----
	g.POST("/holds", a.PlaceHold)
	g.GET("/passengers/:id/holds", a.ListPassengerHolds)

	// ---- Ticketing ----
	g.POST("/ticketing", a.MarkTicketed)
	g.GET("/legs/:id/ticketing", a.ListLegTicketing)

	// ---- Selection transitions ----
	g.POST("/selections/:id/hold-status", a.MarkHeld)
	g.POST("/selections/:id/revert", a.RevertToPending)
}
