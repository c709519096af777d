package router

import (
	"github.com/labstack/echo/v4"

	"github.com/gatherly/eventhub/internal/handler"
	"github.com/gatherly/eventhub/internal/middleware"
	"github.com/gatherly/eventhub/internal/model"
)

// RegisterAdmin wires category management and the system-wide
// dashboard. Category routes reject non-admins at the middleware, while
// the dashboard route relies on the assembler's own role check so the
// response distinguishes "no token" from "wrong role".
func RegisterAdmin(e *echo.Echo, h *handler.AdminHandler, d *handler.DashboardHandler, jwtSecret string) {
	g := e.Group("/v1", middleware.JWTAuth(jwtSecret), middleware.RequireRole(model.RoleAdmin))

	g.POST("/categories", h.CreateCategory)
	g.PUT("/categories/:id", h.UpdateCategory)
	g.DELETE("/categories/:id", h.DeleteCategory)

	dash := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	dash.GET("/admin/dashboard", d.AdminDashboard)
}
