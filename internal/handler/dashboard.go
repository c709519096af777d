// This file exposes the two dashboard views over HTTP. The handlers do
// no aggregation themselves: they resolve the caller's identity from the
// JWT claims in context, hand it to the stats assembler, and map the
// assembler's error taxonomy onto status codes (ErrUnauthorized -> 401,
// ErrForbidden -> 403, anything else -> 500). Aggregation failures never
// degrade into a partial view.
package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gatherly/eventhub/internal/stats"
)

// DashboardHandler serves the organizer and admin dashboards.
type DashboardHandler struct {
	Assembler *stats.Assembler
}

func NewDashboardHandler(a *stats.Assembler) *DashboardHandler {
	if a == nil {
		panic("nil assembler passed to NewDashboardHandler")
	}
	return &DashboardHandler{Assembler: a}
}

// callerFromContext builds a stats.Caller from the claims JWTAuth put
// in context. A request that bypassed the middleware (or carried no
// token) yields an unauthenticated caller.
func callerFromContext(c echo.Context) stats.Caller {
	uid, err := getUserID(c)
	if err != nil {
		return stats.Caller{}
	}
	return stats.Caller{ID: uid, Role: getRole(c), Authenticated: true}
}

// OrganizerDashboard returns the caller's event statistics: annotated
// event list, totals, participation rate and overall average rating.
func (h *DashboardHandler) OrganizerDashboard(c echo.Context) error {
	view, err := h.Assembler.OrganizerDashboard(c.Request().Context(), callerFromContext(c))
	if err != nil {
		return dashboardError(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

// AdminDashboard returns the system-wide statistics view.
func (h *DashboardHandler) AdminDashboard(c echo.Context) error {
	view, err := h.Assembler.AdminDashboard(c.Request().Context(), callerFromContext(c))
	if err != nil {
		return dashboardError(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

func dashboardError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, stats.ErrUnauthorized):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	case errors.Is(err, stats.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "dashboard unavailable"})
	}
}
