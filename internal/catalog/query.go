package catalog

import (
	"cmp"
	"slices"
	"strings"

	"github.com/iliyamo/festival-program/internal/model"
	"github.com/iliyamo/festival-program/internal/recommend"
)

// Filter returns the films in category (case-insensitive, empty matches
// all) whose title or original title contains q in normalized form.
func Filter(films []model.Film, category, q string) []model.Film {
	category = strings.TrimSpace(category)
	nq := Normalize(q)
	out := make([]model.Film, 0, len(films))
	for _, f := range films {
		if category != "" && !strings.EqualFold(strings.TrimSpace(f.Category), category) {
			continue
		}
		if nq != "" && !strings.Contains(Normalize(f.Title), nq) && !strings.Contains(Normalize(f.OriginalTitle), nq) {
			continue
		}
		out = append(out, f)
	}
	return out
}

// CategoryCount is a category name with the number of films in it.
type CategoryCount struct {
	Name  string `json:"name"`
	Films int    `json:"films"`
}

// Categories counts films per category, sorted by name.  Films without a
// category are not counted.
func Categories(films []model.Film) []CategoryCount {
	counts := make(map[string]int)
	for _, f := range films {
		if c := strings.TrimSpace(f.Category); c != "" {
			counts[c]++
		}
	}
	out := make([]CategoryCount, 0, len(counts))
	for name, n := range counts {
		out = append(out, CategoryCount{Name: name, Films: n})
	}
	slices.SortFunc(out, func(a, b CategoryCount) int { return cmp.Compare(a.Name, b.Name) })
	return out
}

// Showings lists every showing of title across the schedule, in schedule
// order.  The title is compared case-insensitively, as the recommender
// does, so s should already be resolved.
func Showings(s model.Schedule, title string, venueLabels map[string]string) []model.AltShowing {
	key := strings.ToLower(strings.TrimSpace(title))
	out := []model.AltShowing{}
	for _, d := range s.Days {
		for _, scr := range d.Screenings {
			for _, sh := range scr.Showings {
				if strings.ToLower(strings.TrimSpace(sh.Film)) != key {
					continue
				}
				clock := sh.Time
				if m, ok := recommend.ParseClock(clock); ok {
					clock = recommend.FormatClock(m)
				}
				label := venueLabels[scr.Venue]
				if label == "" {
					label = scr.Venue
				}
				out = append(out, model.AltShowing{
					Date:       d.Date,
					DayLabel:   recommend.ShortDayLabel(d.Date),
					Time:       clock,
					Venue:      scr.Venue,
					VenueLabel: label,
					Screen:     scr.Screen,
				})
			}
		}
	}
	return out
}
