// Package handler exposes the HTTP API.  This file holds the public
// program endpoints: catalog browsing, the day schedule and daily
// recommendations.  None of them require authentication.
package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/festival-program/internal/catalog"
	"github.com/iliyamo/festival-program/internal/metrics"
	"github.com/iliyamo/festival-program/internal/model"
	"github.com/iliyamo/festival-program/internal/program"
	"github.com/iliyamo/festival-program/internal/recommend"
)

// Recommendation limits for ?limit=.
const (
	DefaultRecommendLimit = recommend.DefaultLimit
	MaxRecommendLimit     = 20
)

// Snapshots yields the program currently being served.
type Snapshots interface {
	Current() (*program.Snapshot, error)
}

// PublicHandler serves read-only views of the program snapshot.
type PublicHandler struct {
	Program Snapshots
}

// FilmDetail is a catalog film with its score and every showing.
type FilmDetail struct {
	Film     model.Film         `json:"film"`
	Score    float64            `json:"score"`
	Reason   string             `json:"reason"`
	Showings []model.AltShowing `json:"showings"`
}

// DaySummary is one entry of GET /v1/days.
type DaySummary struct {
	Date      string `json:"date"`
	DayNumber int    `json:"day_number"`
	Label     string `json:"label"`
	Showings  int    `json:"showings"`
}

func notLoaded(c echo.Context) error {
	return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "program not loaded"})
}

// ListFilms returns the catalog, optionally filtered by ?category= and
// ?q= (title search, accent and case insensitive).
func (h *PublicHandler) ListFilms(c echo.Context) error {
	snap, err := h.Program.Current()
	if err != nil {
		return notLoaded(c)
	}
	films := catalog.Filter(snap.Films(), c.QueryParam("category"), c.QueryParam("q"))
	return c.JSON(http.StatusOK, echo.Map{"items": films, "total": len(films)})
}

// GetFilm returns one film with its showings across the festival.
func (h *PublicHandler) GetFilm(c echo.Context) error {
	snap, err := h.Program.Current()
	if err != nil {
		return notLoaded(c)
	}
	f, ok := snap.Index.ByID(strings.TrimSpace(c.Param("id")))
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "film not found"})
	}
	fs := recommend.ScoreFilm(f)
	return c.JSON(http.StatusOK, FilmDetail{
		Film:     f,
		Score:    fs.Score,
		Reason:   fs.Reason,
		Showings: catalog.Showings(snap.Schedule, f.Title, snap.Festival.Venues.Labels()),
	})
}

// ListCategories returns the film categories with counts.
func (h *PublicHandler) ListCategories(c echo.Context) error {
	snap, err := h.Program.Current()
	if err != nil {
		return notLoaded(c)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": catalog.Categories(snap.Films())})
}

// ListVenues returns the venue table.
func (h *PublicHandler) ListVenues(c echo.Context) error {
	snap, err := h.Program.Current()
	if err != nil {
		return notLoaded(c)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": snap.Festival.Venues})
}

// ListDays returns the scheduled days in date order.
func (h *PublicHandler) ListDays(c echo.Context) error {
	snap, err := h.Program.Current()
	if err != nil {
		return notLoaded(c)
	}
	out := make([]DaySummary, 0, len(snap.Schedule.Days))
	for _, d := range snap.Schedule.Days {
		out = append(out, DaySummary{
			Date:      d.Date,
			DayNumber: d.DayNumber,
			Label:     dayLabel(snap, d),
			Showings:  d.ShowingCount(),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"festival": snap.Festival.Name,
		"items":    out,
	})
}

// GetDay returns the schedule of one day.
func (h *PublicHandler) GetDay(c echo.Context) error {
	snap, err := h.Program.Current()
	if err != nil {
		return notLoaded(c)
	}
	date, ok := parseDate(c.Param("date"))
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}
	d, ok := snap.Schedule.FindDay(date)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no schedule for date"})
	}
	d.Label = dayLabel(snap, d)
	return c.JSON(http.StatusOK, d)
}

// GetRecommendations returns up to ?limit= non-overlapping showings for
// the day, best first by score and listed by start time.
func (h *PublicHandler) GetRecommendations(c echo.Context) error {
	snap, err := h.Program.Current()
	if err != nil {
		return notLoaded(c)
	}
	date, ok := parseDate(c.Param("date"))
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}
	limit := DefaultRecommendLimit
	if s := c.QueryParam("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > MaxRecommendLimit {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "limit must be between 1 and 20"})
		}
		limit = n
	}
	if _, ok := snap.Schedule.FindDay(date); !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no schedule for date"})
	}
	items := snap.Recommend(date, limit)
	metrics.RecommendationsServed.Inc()
	metrics.RecommendationSize.Observe(float64(len(items)))
	return c.JSON(http.StatusOK, echo.Map{"date": date, "items": items})
}

func parseDate(s string) (string, bool) {
	t, err := time.Parse(time.DateOnly, strings.TrimSpace(s))
	if err != nil {
		return "", false
	}
	return t.Format(time.DateOnly), true
}

func dayLabel(snap *program.Snapshot, d model.Day) string {
	if d.Label != "" {
		return d.Label
	}
	if l, ok := snap.Festival.Calendar.Label(d.Date); ok {
		return l
	}
	return recommend.ShortDayLabel(d.Date)
}
