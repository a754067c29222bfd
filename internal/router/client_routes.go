package router

import (
	"github.com/labstack/echo/v4"

	"github.com/tourwire/flight-desk/internal/handler"
	"github.com/tourwire/flight-desk/internal/middleware"
	"github.com/tourwire/flight-desk/internal/model"
)

// RegisterClient registers the touring-party endpoints under /v1.
// Agents and admins may also call them, so an agent can browse and
// pick on a client's behalf.
func RegisterClient(e *echo.Echo, h *handler.ClientHandler, jwtSecret string, extra ...echo.MiddlewareFunc) {
	mw := append([]echo.MiddlewareFunc{
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleClient, model.RoleAgent, model.RoleAdmin),
	}, extra...)
	g := e.Group("/v1", mw...)

	g.GET("/projects/:id/legs", h.ListProjectLegs)
	g.GET("/legs/:id/options", h.ListLegOptions)
	g.POST("/legs/:id/selections", h.CreateSelection)
}
