package program

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/iliyamo/festival-program/internal/dataset"
	"github.com/iliyamo/festival-program/internal/festival"
	"github.com/iliyamo/festival-program/internal/model"
)

type fakeSource struct {
	mu     sync.Mutex
	bundle dataset.Bundle
	err    error
	calls  int
}

func (f *fakeSource) Load(context.Context) (dataset.Bundle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.bundle, f.err
}

func bundle() dataset.Bundle {
	return dataset.Bundle{
		Films: []model.Film{
			{ID: "f1", Title: "Mahakavi", IMDbRating: "8.0"},
			{ID: "f2", Title: "Sound of Falling", IMDbRating: "7.0"},
		},
		Schedule: model.Schedule{Days: []model.Day{{
			Date: "2026-02-03",
			Screenings: []model.Screening{{
				Venue: "cinepolis", Screen: "1",
				Showings: []model.Showing{
					{Time: "10:00", Film: "MAHAKAVI", Duration: 121},
					{Time: "12:30", Film: "SOF"},
					{Time: "15:00", Film: "Nobody Knows"},
				},
			}},
		}}},
		Aliases: map[string]string{"SOF": "Sound of Falling"},
	}
}

func TestStore_CurrentBeforeLoad(t *testing.T) {
	s := NewStore(&fakeSource{}, festival.Default())
	if _, err := s.Current(); !errors.Is(err, ErrNotLoaded) {
		t.Fatalf("Current() error = %v, want ErrNotLoaded", err)
	}
}

func TestStore_ReloadResolvesAliases(t *testing.T) {
	s := NewStore(&fakeSource{bundle: bundle()}, festival.Default())
	snap, err := s.Reload(context.Background())
	if err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if snap.Report.Matched != 2 || len(snap.Report.Unmatched) != 1 {
		t.Errorf("report = %+v", snap.Report)
	}

	recs := snap.Recommend("2026-02-03", 5)
	if len(recs) != 2 {
		t.Fatalf("Recommend() returned %d showings, want 2", len(recs))
	}
	if recs[1].Film.ID != "f2" || recs[1].VenueLabel != "Cinepolis" {
		t.Errorf("aliased showing = %+v", recs[1])
	}
}

func TestStore_FailedReloadKeepsSnapshot(t *testing.T) {
	src := &fakeSource{bundle: bundle()}
	s := NewStore(src, festival.Default())
	first, err := s.Reload(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	src.mu.Lock()
	src.err = errors.New("disk gone")
	src.mu.Unlock()
	if _, err := s.Reload(context.Background()); err == nil {
		t.Fatal("Reload() succeeded with failing source")
	}
	cur, err := s.Current()
	if err != nil || cur != first {
		t.Fatalf("Current() = %p, %v; want previous snapshot %p", cur, err, first)
	}
}

func TestStore_ConcurrentReadsDuringReload(t *testing.T) {
	s := NewStore(&fakeSource{bundle: bundle()}, festival.Default())
	if _, err := s.Reload(context.Background()); err != nil {
		t.Fatal(err)
	}
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = s.Reload(context.Background())
		}()
		go func() {
			defer wg.Done()
			if snap, err := s.Current(); err == nil {
				_ = snap.Recommend("2026-02-03", 3)
			}
		}()
	}
	wg.Wait()
}
