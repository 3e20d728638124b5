// Package refresh imports the upstream dataset incrementally.  Every run
// digests the catalog, the schedule metadata and each day, compares them
// with the digests of the last run and writes only what changed.
package refresh

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/iliyamo/festival-program/internal/dataset"
	"github.com/iliyamo/festival-program/internal/metrics"
	"github.com/iliyamo/festival-program/internal/model"
	"github.com/iliyamo/festival-program/internal/queue"
)

// ErrRunning is returned when a run is already in progress.
var ErrRunning = errors.New("refresh already running")

// FilmWriter replaces the stored catalog.
type FilmWriter interface {
	ReplaceAll(ctx context.Context, films []model.Film) error
}

// DayWriter stores schedule days and metadata.
type DayWriter interface {
	UpsertDay(ctx context.Context, d model.Day) error
	DeleteMissing(ctx context.Context, keep []string) error
	SaveMeta(ctx context.Context, m model.ScheduleMeta) error
}

// Publisher announces an import to other instances.
type Publisher interface {
	PublishScheduleUpdated(ctx context.Context, ev queue.ScheduleUpdatedEvent) error
}

// Report describes one run.
type Report struct {
	RunID        string    `json:"run_id"`
	FilmsChanged bool      `json:"films_changed"`
	MetaChanged  bool      `json:"meta_changed"`
	ChangedDays  []string  `json:"changed_days"`
	RemovedDays  []string  `json:"removed_days"`
	Unchanged    int       `json:"unchanged_days"`
	Published    bool      `json:"published"`
	RefreshedAt  time.Time `json:"refreshed_at"`
}

// Changed reports whether the run imported anything.
func (r Report) Changed() bool {
	return r.FilmsChanged || r.MetaChanged || len(r.ChangedDays) > 0 || len(r.RemovedDays) > 0
}

// Refresher runs incremental imports.  Films, Days and Publisher are
// optional; without sinks a run only detects and announces changes.
type Refresher struct {
	Source    dataset.Source
	Digests   KV
	Films     FilmWriter
	Days      DayWriter
	Publisher Publisher

	now   func() time.Time
	newID func() string
	mu    sync.Mutex
}

// Run performs one refresh.  Concurrent calls fail with ErrRunning.
func (r *Refresher) Run(ctx context.Context) (Report, error) {
	if !r.mu.TryLock() {
		return Report{}, ErrRunning
	}
	defer r.mu.Unlock()

	rep, err := r.run(ctx)
	if err != nil {
		metrics.RefreshRuns.WithLabelValues("error").Inc()
		log.Error().Err(err).Str("run_id", rep.RunID).Msg("refresh failed")
		return rep, err
	}
	outcome := "unchanged"
	if rep.Changed() {
		outcome = "changed"
	}
	metrics.RefreshRuns.WithLabelValues(outcome).Inc()
	metrics.RefreshChangedDays.Add(float64(len(rep.ChangedDays)))
	log.Info().
		Str("run_id", rep.RunID).
		Bool("films_changed", rep.FilmsChanged).
		Strs("changed_days", rep.ChangedDays).
		Strs("removed_days", rep.RemovedDays).
		Int("unchanged_days", rep.Unchanged).
		Bool("published", rep.Published).
		Msg("refresh finished")
	return rep, nil
}

func (r *Refresher) run(ctx context.Context) (Report, error) {
	rep := Report{RunID: r.id(), RefreshedAt: r.clock().UTC()}

	b, err := r.Source.Load(ctx)
	if err != nil {
		return rep, fmt.Errorf("load source: %w", err)
	}
	cur, err := Compute(b)
	if err != nil {
		return rep, err
	}
	prev, err := r.Digests.Load(ctx)
	if err != nil {
		// unknown state imports everything
		log.Warn().Err(err).Msg("refresh: previous digests unavailable, importing all")
		prev = Digests{}
	}

	diff := Compare(prev, cur)
	rep.FilmsChanged = diff.FilmsChanged
	rep.MetaChanged = diff.MetaChanged
	rep.ChangedDays = nonNil(diff.ChangedDays)
	rep.RemovedDays = nonNil(diff.RemovedDays)
	rep.Unchanged = diff.Unchanged
	if diff.Empty() {
		return rep, nil
	}

	if err := r.write(ctx, b, diff); err != nil {
		return rep, err
	}
	if err := r.Digests.Save(ctx, cur); err != nil {
		return rep, fmt.Errorf("save digests: %w", err)
	}

	if r.Publisher != nil {
		ev := queue.ScheduleUpdatedEvent{
			RunID:        rep.RunID,
			ChangedDays:  rep.ChangedDays,
			RemovedDays:  rep.RemovedDays,
			FilmsChanged: rep.FilmsChanged,
			RefreshedAt:  rep.RefreshedAt,
		}
		// the import already happened; a broker outage only delays other instances
		if err := r.Publisher.PublishScheduleUpdated(ctx, ev); err == nil {
			rep.Published = true
		}
	}
	return rep, nil
}

func (r *Refresher) write(ctx context.Context, b dataset.Bundle, diff Diff) error {
	if r.Films != nil && diff.FilmsChanged {
		if err := r.Films.ReplaceAll(ctx, b.Films); err != nil {
			return fmt.Errorf("import films: %w", err)
		}
	}
	if r.Days == nil {
		return nil
	}
	changed := make(map[string]bool, len(diff.ChangedDays))
	for _, d := range diff.ChangedDays {
		changed[d] = true
	}
	keep := make([]string, 0, len(b.Schedule.Days))
	for _, d := range b.Schedule.Days {
		keep = append(keep, d.Date)
		if !changed[d.Date] {
			continue
		}
		if err := r.Days.UpsertDay(ctx, d); err != nil {
			return fmt.Errorf("import day %s: %w", d.Date, err)
		}
	}
	// prune on every import: lost digests cannot list what was removed
	if err := r.Days.DeleteMissing(ctx, keep); err != nil {
		return fmt.Errorf("remove days: %w", err)
	}
	if diff.MetaChanged {
		if err := r.Days.SaveMeta(ctx, b.Schedule.Meta); err != nil {
			return fmt.Errorf("import meta: %w", err)
		}
	}
	return nil
}

func (r *Refresher) clock() time.Time {
	if r.now != nil {
		return r.now()
	}
	return time.Now()
}

func (r *Refresher) id() string {
	if r.newID != nil {
		return r.newID()
	}
	return uuid.NewString()
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
