package router

import (
	"github.com/labstack/echo/v4"

	"github.com/gatherly/eventhub/internal/handler"
	"github.com/gatherly/eventhub/internal/middleware"
)

// RegisterAttendee wires registration and review endpoints. Any
// authenticated user may register for an event or leave a review, so
// only the JWT middleware is applied here.
func RegisterAttendee(e *echo.Echo, h *handler.AttendeeHandler, jwtSecret string) {
	g := e.Group("/v1", middleware.JWTAuth(jwtSecret))

	g.POST("/events/:id/register", h.Register)
	g.GET("/events/:id/registration", h.MyRegistration)
	g.DELETE("/events/:id/register", h.Cancel)
	g.POST("/events/:id/reviews", h.CreateReview)
}
