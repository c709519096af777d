package router

import (
	"github.com/labstack/echo/v4"

	"github.com/gatherly/eventhub/internal/handler"
	"github.com/gatherly/eventhub/internal/middleware"
	"github.com/gatherly/eventhub/internal/model"
)

// RegisterOrganizer wires the event-management endpoints. Every route
// requires a valid token and the ORGANIZER role; ownership of the
// individual event is enforced in the repository layer.
func RegisterOrganizer(e *echo.Echo, h *handler.OrganizerHandler, d *handler.DashboardHandler, jwtSecret string) {
	g := e.Group("/v1", middleware.JWTAuth(jwtSecret), middleware.RequireRole(model.RoleOrganizer))

	g.POST("/events", h.CreateEvent)
	g.PUT("/events/:id", h.UpdateEvent)
	g.PATCH("/events/:id", h.UpdateEvent)
	g.DELETE("/events/:id", h.DeleteEvent)
	g.GET("/organizer/events", h.ListMyEvents)
	g.GET("/events/:id/registrations", h.ListEventRegistrations)
	g.POST("/registrations/:registration_id/checkin", h.CheckInAttendee)
	g.POST("/reviews/:review_id/answers", h.AnswerReview)

	// The dashboard checks the caller itself so that a missing or
	// foreign identity maps to a distinct error, not a generic 403.
	dash := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	dash.GET("/organizer/dashboard", d.OrganizerDashboard)
}
