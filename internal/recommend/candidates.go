package recommend

import (
	"fmt"
	"strings"
	"time"

	"github.com/iliyamo/festival-program/internal/model"
)

// DefaultDuration is assumed when neither the showing nor the film
// declares a runtime.
const DefaultDuration = 120

const minutesPerDay = 24 * 60

// Options carries the read-only lookup tables used while building
// candidates.
type Options struct {
	// VenueLabels maps venue ids to short display labels.  Venues
	// missing from the map are labelled with their id.
	VenueLabels map[string]string
}

func (o Options) venueLabel(venue string) string {
	if l, ok := o.VenueLabels[venue]; ok && l != "" {
		return l
	}
	return venue
}

// BuildCandidates returns every showing on date whose title matches a
// catalog film exactly, ignoring case.  Each candidate carries its film
// score, computed end time and the film's showings on other days.
// Showings without a catalog match or with an unreadable time are
// skipped.
func BuildCandidates(date string, sched model.Schedule, films []model.Film, opts Options) []model.RecommendedShowing {
	day, ok := sched.FindDay(date)
	if !ok {
		return []model.RecommendedShowing{}
	}

	byTitle := make(map[string]model.Film, len(films))
	for _, f := range films {
		k := titleKey(f.Title)
		if _, dup := byTitle[k]; !dup {
			byTitle[k] = f
		}
	}
	alternatives := collectAlternatives(sched, opts)
	scores := make(map[string]FilmScore)

	out := make([]model.RecommendedShowing, 0, day.ShowingCount())
	for _, scr := range day.Screenings {
		for _, sh := range scr.Showings {
			key := titleKey(sh.Film)
			film, ok := byTitle[key]
			if !ok {
				continue
			}
			start, ok := ParseClock(sh.Time)
			if !ok {
				continue
			}
			fs, ok := scores[key]
			if !ok {
				fs = ScoreFilm(film)
				scores[key] = fs
			}
			end := start + showingDuration(sh, film)

			var alts []model.AltShowing
			for _, a := range alternatives[key] {
				if a.Date != date {
					alts = append(alts, a)
				}
			}

			out = append(out, model.RecommendedShowing{
				Date:         date,
				Time:         FormatClock(start),
				EndTime:      FormatClock(end),
				Venue:        scr.Venue,
				VenueLabel:   opts.venueLabel(scr.Venue),
				Screen:       scr.Screen,
				Film:         film,
				Start:        start,
				End:          end,
				Score:        fs.Score,
				Reason:       fs.Reason,
				Alternatives: alts,
			})
		}
	}
	return out
}

// collectAlternatives indexes every showing in the schedule by title key.
func collectAlternatives(sched model.Schedule, opts Options) map[string][]model.AltShowing {
	idx := make(map[string][]model.AltShowing)
	for _, d := range sched.Days {
		label := ShortDayLabel(d.Date)
		for _, scr := range d.Screenings {
			for _, sh := range scr.Showings {
				k := titleKey(sh.Film)
				idx[k] = append(idx[k], model.AltShowing{
					Date:       d.Date,
					DayLabel:   label,
					Time:       canonicalClock(sh.Time),
					Venue:      scr.Venue,
					VenueLabel: opts.venueLabel(scr.Venue),
					Screen:     scr.Screen,
				})
			}
		}
	}
	return idx
}

func showingDuration(sh model.Showing, f model.Film) int {
	switch {
	case sh.Duration > 0:
		return sh.Duration
	case f.Duration > 0:
		return f.Duration
	default:
		return DefaultDuration
	}
}

func titleKey(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}

// ParseClock converts a 24-hour "HH:MM" string into minutes after
// midnight.
func ParseClock(s string) (int, bool) {
	h, m, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || len(h) == 0 || len(h) > 2 || len(m) != 2 {
		return 0, false
	}
	hh, ok := atoiDigits(h)
	if !ok || hh > 23 {
		return 0, false
	}
	mm, ok := atoiDigits(m)
	if !ok || mm > 59 {
		return 0, false
	}
	return hh*60 + mm, true
}

// canonicalClock zero-pads a readable clock string and returns anything
// else unchanged.
func canonicalClock(s string) string {
	if m, ok := ParseClock(s); ok {
		return FormatClock(m)
	}
	return s
}

// FormatClock renders minutes after midnight as "HH:MM", wrapping past
// midnight.
func FormatClock(minutes int) string {
	minutes %= minutesPerDay
	if minutes < 0 {
		minutes += minutesPerDay
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ShortDayLabel renders a YYYY-MM-DD date as e.g. "Sat Jan 31".  Dates
// that cannot be parsed are returned unchanged.
func ShortDayLabel(date string) string {
	t, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return date
	}
	return t.Format("Mon Jan 2")
}

func atoiDigits(s string) (int, bool) {
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}
