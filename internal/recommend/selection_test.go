package recommend

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/iliyamo/festival-program/internal/model"
)

func cand(title string, start, end int, score float64) model.RecommendedShowing {
	return model.RecommendedShowing{
		Time:  FormatClock(start),
		Film:  model.Film{Title: title},
		Start: start,
		End:   end,
		Score: score,
	}
}

func titles(rs []model.RecommendedShowing) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Film.Title
	}
	return out
}

func TestSelectNonConflicting(t *testing.T) {
	tests := []struct {
		name  string
		cands []model.RecommendedShowing
		n     int
		want  []string
	}{
		{
			name: "three disjoint showings all returned in time order",
			cands: []model.RecommendedShowing{
				cand("C", 900, 1000, 60),
				cand("A", 600, 700, 90),
				cand("B", 750, 850, 70),
			},
			n:    5,
			want: []string{"A", "B", "C"},
		},
		{
			name: "same start time keeps only the higher score",
			cands: []model.RecommendedShowing{
				cand("Low", 600, 700, 60),
				cand("High", 600, 690, 80),
			},
			n:    5,
			want: []string{"High"},
		},
		{
			name: "cap of one returns the single best",
			cands: []model.RecommendedShowing{
				cand("A", 600, 700, 70),
				cand("B", 800, 900, 95),
				cand("C", 1000, 1100, 85),
			},
			n:    1,
			want: []string{"B"},
		},
		{
			name: "back-to-back showings do not conflict",
			cands: []model.RecommendedShowing{
				cand("A", 600, 720, 70),
				cand("B", 720, 840, 70),
			},
			n:    5,
			want: []string{"A", "B"},
		},
		{
			name: "equal scores keep encounter order",
			cands: []model.RecommendedShowing{
				cand("First", 600, 700, 70),
				cand("Second", 650, 750, 70),
			},
			n:    5,
			want: []string{"First"},
		},
		{
			name: "long top film blocks two shorter films",
			cands: []model.RecommendedShowing{
				cand("Short1", 600, 720, 80),
				cand("Epic", 600, 900, 90),
				cand("Short2", 750, 870, 80),
			},
			n:    5,
			want: []string{"Epic"},
		},
		{
			name:  "zero cap is empty",
			cands: []model.RecommendedShowing{cand("A", 600, 700, 70)},
			n:     0,
			want:  []string{},
		},
		{
			name:  "no candidates is empty",
			cands: nil,
			n:     5,
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SelectNonConflicting(tt.cands, tt.n)
			if !reflect.DeepEqual(titles(got), tt.want) {
				t.Errorf("SelectNonConflicting() = %v, want %v", titles(got), tt.want)
			}
		})
	}
}

func TestSelectNonConflicting_DoesNotMutateInput(t *testing.T) {
	in := []model.RecommendedShowing{cand("A", 900, 1000, 10), cand("B", 600, 700, 90)}
	_ = SelectNonConflicting(in, 5)
	if in[0].Film.Title != "A" || in[1].Film.Title != "B" {
		t.Fatalf("input reordered: %v", titles(in))
	}
}

// denseCandidates builds a day with many overlapping showings so the
// invariants below are exercised on a non-trivial input.
func denseCandidates() []model.RecommendedShowing {
	var out []model.RecommendedShowing
	for i := 0; i < 40; i++ {
		start := 600 + (i*37)%600
		dur := 80 + (i*53)%90
		score := float64(40 + (i*29)%61)
		out = append(out, cand(fmt.Sprintf("F%02d", i), start, start+dur, score))
	}
	return out
}

func TestSelectNonConflicting_Invariants(t *testing.T) {
	cands := denseCandidates()
	for _, n := range []int{1, 3, 6, 50} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			got := SelectNonConflicting(cands, n)

			if len(got) > min(n, len(cands)) {
				t.Fatalf("len = %d exceeds min(%d, %d)", len(got), n, len(cands))
			}
			for i := range got {
				for j := i + 1; j < len(got); j++ {
					if Overlaps(got[i], got[j]) {
						t.Errorf("%s overlaps %s", got[i].Film.Title, got[j].Film.Title)
					}
				}
				if i > 0 && got[i-1].Start > got[i].Start {
					t.Errorf("not chronological at %d: %d > %d", i, got[i-1].Start, got[i].Start)
				}
			}

			again := SelectNonConflicting(cands, n)
			if !reflect.DeepEqual(got, again) {
				t.Error("repeated call produced a different result")
			}
		})
	}
}

func TestRecommend(t *testing.T) {
	sched := model.Schedule{Days: []model.Day{{
		Date: "2026-02-03",
		Screenings: []model.Screening{
			{Venue: "cinepolis", Screen: "1", Showings: []model.Showing{
				{Time: "10:00", Film: "Blue Moon", Duration: 100},
				{Time: "12:30", Film: "Sleepless City", Duration: 97},
				{Time: "14:50", Film: "Half Moon", Duration: 92},
			}},
			{Venue: "cinepolis", Screen: "2", Showings: []model.Showing{
				{Time: "10:00", Film: "Out of Love", Duration: 111},
				{Time: "12:30", Film: "Not In Catalog", Duration: 90},
			}},
		},
	}}}
	films := []model.Film{
		{ID: "1", Title: "BLUE MOON", IMDbRating: "7.9"},
		{ID: "2", Title: "SLEEPLESS CITY", IMDbRating: "6.1"},
		{ID: "3", Title: "HALF MOON"},
		{ID: "4", Title: "OUT OF LOVE", IMDbRating: "6.8"},
	}

	got := Recommend("2026-02-03", sched, films, 5, Options{})
	want := []string{"BLUE MOON", "SLEEPLESS CITY", "HALF MOON"}
	if !reflect.DeepEqual(titles(got), want) {
		t.Fatalf("Recommend() = %v, want %v", titles(got), want)
	}
	for _, r := range got {
		if r.Film.Title == "Not In Catalog" {
			t.Fatal("unmatched title selected")
		}
	}

	if empty := Recommend("2026-02-09", sched, films, 5, Options{}); len(empty) != 0 {
		t.Fatalf("Recommend() on unknown date = %v, want empty", titles(empty))
	}
}
