// Package router registers the HTTP routes on an Echo instance.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/iliyamo/festival-program/internal/handler"
)

// RegisterRoutes registers the operational endpoints: GET /healthz and GET /metrics.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// RegisterPublic registers the read-only program endpoints under /v1.
// mw is applied to the group, typically the response cache.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, mw ...echo.MiddlewareFunc) {
	g := e.Group("/v1", mw...)
	g.GET("/films", p.ListFilms)
	g.GET("/films/:id", p.GetFilm)
	g.GET("/categories", p.ListCategories)
	g.GET("/venues", p.ListVenues)
	g.GET("/days", p.ListDays)
	g.GET("/days/:date", p.GetDay)
	g.GET("/days/:date/recommendations", p.GetRecommendations)
}

// RegisterWatchlist registers the watchlist sync endpoints.  They are
// never cached.
func RegisterWatchlist(e *echo.Echo, w *handler.WatchlistHandler) {
	g := e.Group("/v1/watchlist")
	g.POST("", w.Create)
	g.GET("/:code", w.Get)
	g.PUT("/:code", w.Replace)
}

// RegisterAuth registers the admin login.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler) {
	e.POST("/v1/auth/login", a.Login)
}
