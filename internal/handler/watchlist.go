package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/festival-program/internal/validation"
	"github.com/iliyamo/festival-program/internal/watchlist"
)

// WatchlistHandler serves the anonymous watchlist sync endpoints.
type WatchlistHandler struct {
	Lists *watchlist.Service
}

type watchlistReq struct {
	Films []string `json:"films" validate:"required"`
}

// Create stores a new list and returns its code.
func (h *WatchlistHandler) Create(c echo.Context) error {
	req, err := bindWatchlist(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	l, err := h.Lists.Create(ctx, req.Films)
	if err != nil {
		return watchlistError(c, err)
	}
	return c.JSON(http.StatusCreated, l)
}

// Get returns the list stored under :code.
func (h *WatchlistHandler) Get(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	l, err := h.Lists.Get(ctx, c.Param("code"))
	if err != nil {
		return watchlistError(c, err)
	}
	return c.JSON(http.StatusOK, l)
}

// Replace overwrites the list under :code and restarts its lifetime.
func (h *WatchlistHandler) Replace(c echo.Context) error {
	req, err := bindWatchlist(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	l, err := h.Lists.Replace(ctx, c.Param("code"), req.Films)
	if err != nil {
		return watchlistError(c, err)
	}
	return c.JSON(http.StatusOK, l)
}

func bindWatchlist(c echo.Context) (watchlistReq, error) {
	var req watchlistReq
	if err := c.Bind(&req); err != nil {
		return req, errors.New("invalid body")
	}
	if err := validation.Struct(req); err != nil {
		return req, err
	}
	return req, nil
}

// watchlistError maps service errors to responses.  A malformed code can
// never exist, so it is reported as not found.
func watchlistError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, watchlist.ErrNotFound), errors.Is(err, watchlist.ErrInvalidCode):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "watchlist not found"})
	case errors.Is(err, watchlist.ErrTooManyFilms):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "watchlist store failed"})
	}
}
