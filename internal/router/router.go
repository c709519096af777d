// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/gatherly/eventhub/internal/handler"
	"github.com/gatherly/eventhub/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance. Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers authentication routes and their middleware.
// Unauthenticated operations live under /v1/auth, while protected
// endpoints are wrapped with the JWT middleware.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
	auth.POST("/logout-all", a.LogoutAll)
}

// RegisterPublic registers the unauthenticated browse endpoints. The
// provided cache and rate-limit middlewares are applied to these routes
// only; authenticated routes (dashboards in particular) stay uncached.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, mw ...echo.MiddlewareFunc) {
	g := e.Group("", mw...)
	g.GET("/v1/events", p.ListEvents)
	g.GET("/v1/events/:slug", p.GetEvent)
	g.GET("/v1/search/events", p.SearchEvents)
	g.GET("/v1/categories", p.ListCategories)
	g.GET("/v1/reviews/:id/answers", p.ListReviewAnswers)
}
