package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/festival-program/internal/handler"
	"github.com/iliyamo/festival-program/internal/middleware"
)

// RegisterAdmin registers operator endpoints under /v1/admin.  All of
// them require a valid JWT with the ADMIN role.
func RegisterAdmin(e *echo.Echo, h *handler.AdminHandler, jwtSecret string) {
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(handler.RoleAdmin),
	)
	g.POST("/refresh", h.Refresh)
	g.POST("/reload", h.Reload)
	g.GET("/unmatched", h.Unmatched)
}
