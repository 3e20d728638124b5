// Package program holds the festival program the server answers from: the
// catalog and the title-resolved schedule, swapped atomically on reload.
package program

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/iliyamo/festival-program/internal/catalog"
	"github.com/iliyamo/festival-program/internal/dataset"
	"github.com/iliyamo/festival-program/internal/festival"
	"github.com/iliyamo/festival-program/internal/metrics"
	"github.com/iliyamo/festival-program/internal/model"
	"github.com/iliyamo/festival-program/internal/recommend"
)

// ErrNotLoaded is returned by Current before the first successful load.
var ErrNotLoaded = errors.New("program not loaded")

// Snapshot is an immutable view of one loaded program.  Handlers may keep
// a snapshot for the duration of a request without locking.
type Snapshot struct {
	Index    *catalog.Index
	Schedule model.Schedule // titles already resolved to catalog titles
	Report   catalog.Report
	Festival festival.Config
	LoadedAt time.Time
}

// Films returns the catalog in dataset order.
func (s *Snapshot) Films() []model.Film { return s.Index.Films() }

// RecommendOptions returns the lookup tables the recommender needs.
func (s *Snapshot) RecommendOptions() recommend.Options {
	return recommend.Options{VenueLabels: s.Festival.Venues.Labels()}
}

// Recommend runs the daily recommender against this snapshot.
func (s *Snapshot) Recommend(date string, n int) []model.RecommendedShowing {
	return recommend.Recommend(date, s.Schedule, s.Films(), n, s.RecommendOptions())
}

// Build resolves a dataset bundle into a snapshot.
func Build(b dataset.Bundle, fest festival.Config, now time.Time) *Snapshot {
	ix := catalog.NewIndex(b.Films)
	resolved, rep := catalog.NewResolver(ix, catalog.NewAliases(b.Aliases)).ResolveSchedule(b.Schedule)
	return &Snapshot{
		Index:    ix,
		Schedule: resolved,
		Report:   rep,
		Festival: fest,
		LoadedAt: now,
	}
}

// Store owns the current snapshot.
type Store struct {
	source   dataset.Source
	festival festival.Config
	now      func() time.Time

	mu   sync.RWMutex
	snap *Snapshot

	reloadMu sync.Mutex
}

// NewStore returns an empty store.  Call Reload before serving.
func NewStore(src dataset.Source, fest festival.Config) *Store {
	return &Store{source: src, festival: fest, now: time.Now}
}

// Current returns the active snapshot.
func (s *Store) Current() (*Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snap == nil {
		return nil, ErrNotLoaded
	}
	return s.snap, nil
}

// Reload reads the source and swaps in a new snapshot.  On failure the
// previous snapshot stays active.  Concurrent reloads are serialized.
func (s *Store) Reload(ctx context.Context) (*Snapshot, error) {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	b, err := s.source.Load(ctx)
	if err != nil {
		metrics.SnapshotReloads.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("reload program: %w", err)
	}
	snap := Build(b, s.festival, s.now())

	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()

	metrics.SnapshotReloads.WithLabelValues("ok").Inc()
	metrics.UnmatchedTitles.Set(float64(len(snap.Report.Unmatched)))
	log.Info().
		Int("films", snap.Index.Len()).
		Int("days", len(snap.Schedule.Days)).
		Int("showings", snap.Report.Showings).
		Int("unmatched_titles", len(snap.Report.Unmatched)).
		Msg("program loaded")
	return snap, nil
}
