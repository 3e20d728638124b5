package catalog

import (
	"reflect"
	"testing"

	"github.com/iliyamo/festival-program/internal/model"
)

func queryFilms() []model.Film {
	return []model.Film{
		{ID: "1", Title: "Mahakavi", Category: "Kannada Cinema"},
		{ID: "2", Title: "Sound of Falling", OriginalTitle: "In die Sonne schauen", Category: "World Cinema"},
		{ID: "3", Title: "Memoria", Category: "World Cinema"},
		{ID: "4", Title: "Untitled Short"},
	}
}

func ids(fs []model.Film) []string {
	out := []string{}
	for _, f := range fs {
		out = append(out, f.ID)
	}
	return out
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name     string
		category string
		q        string
		want     []string
	}{
		{"no filters", "", "", []string{"1", "2", "3", "4"}},
		{"category is case-insensitive", "world cinema", "", []string{"2", "3"}},
		{"query on title", "", "memo", []string{"3"}},
		{"query on original title", "", "sonne", []string{"2"}},
		{"query ignores punctuation", "", "sound-of", []string{}},
		{"both", "World Cinema", "falling", []string{"2"}},
		{"unknown category", "Retrospective", "", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Filter(queryFilms(), tt.category, tt.q))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Filter(%q, %q) = %v, want %v", tt.category, tt.q, got, tt.want)
			}
		})
	}
}

func TestCategories(t *testing.T) {
	want := []CategoryCount{{Name: "Kannada Cinema", Films: 1}, {Name: "World Cinema", Films: 2}}
	if got := Categories(queryFilms()); !reflect.DeepEqual(got, want) {
		t.Errorf("Categories() = %v, want %v", got, want)
	}
}

func TestShowings(t *testing.T) {
	sched := model.Schedule{Days: []model.Day{
		{Date: "2026-01-31", Screenings: []model.Screening{
			{Venue: "cinepolis", Screen: "2", Showings: []model.Showing{{Time: "10:00", Film: "MEMORIA"}}},
		}},
		{Date: "2026-02-05", Screenings: []model.Screening{
			{Venue: "openair", Screen: "1", Showings: []model.Showing{{Time: "9:00", Film: "Memoria"}, {Time: "21:30", Film: "Other"}}},
		}},
	}}
	got := Showings(sched, "Memoria", map[string]string{"openair": "Open Air"})
	want := []model.AltShowing{
		{Date: "2026-01-31", DayLabel: "Sat Jan 31", Time: "10:00", Venue: "cinepolis", VenueLabel: "cinepolis", Screen: "2"},
		{Date: "2026-02-05", DayLabel: "Thu Feb 5", Time: "09:00", Venue: "openair", VenueLabel: "Open Air", Screen: "1"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Showings() = %+v, want %+v", got, want)
	}
}
