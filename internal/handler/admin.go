package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/iliyamo/festival-program/internal/program"
	"github.com/iliyamo/festival-program/internal/refresh"
)

// Program is the reloadable snapshot store.
type Program interface {
	Snapshots
	Reload(ctx context.Context) (*program.Snapshot, error)
}

// Refresher runs an incremental import.
type Refresher interface {
	Run(ctx context.Context) (refresh.Report, error)
}

// AdminHandler serves the operator endpoints under /v1/admin.
type AdminHandler struct {
	Program   Program
	Refresher Refresher
	// PurgeCache drops cached responses after the program changed.  Nil
	// when no response cache is configured.
	PurgeCache func(ctx context.Context) (int, error)
}

// Refresh imports changed data and, when anything changed, reloads the
// local snapshot.  Other instances follow via the schedule.updated event.
func (h *AdminHandler) Refresh(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Minute)
	defer cancel()

	rep, err := h.Refresher.Run(ctx)
	if err != nil {
		if errors.Is(err, refresh.ErrRunning) {
			return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "refresh failed", "run_id": rep.RunID})
	}
	if !rep.Changed() {
		return c.JSON(http.StatusOK, echo.Map{"report": rep, "reloaded": false})
	}
	snap, err := h.reload(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "reload failed", "report": rep})
	}
	return c.JSON(http.StatusOK, echo.Map{"report": rep, "reloaded": true, "program": summary(snap)})
}

// Reload rereads the source into a new snapshot.
func (h *AdminHandler) Reload(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), time.Minute)
	defer cancel()

	snap, err := h.reload(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "reload failed"})
	}
	return c.JSON(http.StatusOK, summary(snap))
}

// Unmatched lists schedule titles that did not join to the catalog.
func (h *AdminHandler) Unmatched(c echo.Context) error {
	snap, err := h.Program.Current()
	if err != nil {
		return notLoaded(c)
	}
	r := snap.Report
	return c.JSON(http.StatusOK, echo.Map{
		"showings": r.Showings,
		"matched":  r.Matched,
		"by_kind":  r.ByKind,
		"items":    r.Unmatched,
	})
}

func (h *AdminHandler) reload(ctx context.Context) (*program.Snapshot, error) {
	snap, err := h.Program.Reload(ctx)
	if err != nil {
		log.Error().Err(err).Msg("admin reload failed")
		return nil, err
	}
	if h.PurgeCache != nil {
		if n, err := h.PurgeCache(ctx); err != nil {
			log.Warn().Err(err).Msg("cache purge failed")
		} else {
			log.Info().Int("keys", n).Msg("response cache purged")
		}
	}
	return snap, nil
}

func summary(snap *program.Snapshot) echo.Map {
	return echo.Map{
		"films":     snap.Index.Len(),
		"days":      len(snap.Schedule.Days),
		"showings":  snap.Report.Showings,
		"unmatched": len(snap.Report.Unmatched),
		"loaded_at": snap.LoadedAt,
	}
}
