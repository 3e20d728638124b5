package catalog

import (
	"slices"
	"strings"

	"github.com/iliyamo/festival-program/internal/model"
)

// MatchKind records how a schedule title was joined to the catalog.
type MatchKind string

const (
	MatchExact      MatchKind = "exact"
	MatchNormalized MatchKind = "normalized"
	MatchAlias      MatchKind = "alias"
	MatchNone       MatchKind = "none"
)

const maxSuggestions = 3

// Resolver maps schedule titles to catalog films.
type Resolver struct {
	index   *Index
	aliases Aliases
	exact   map[string]int
}

// NewResolver returns a resolver over ix.  aliases may be nil.
func NewResolver(ix *Index, aliases Aliases) *Resolver {
	exact := make(map[string]int, ix.Len())
	for i, f := range ix.films {
		k := strings.ToLower(strings.TrimSpace(f.Title))
		if _, dup := exact[k]; !dup {
			exact[k] = i
		}
	}
	return &Resolver{index: ix, aliases: aliases, exact: exact}
}

// Resolve finds the catalog film for a schedule title.  It tries a
// case-insensitive exact match, then the normalized form, then the alias
// table.
func (r *Resolver) Resolve(title string) (model.Film, MatchKind) {
	if i, ok := r.exact[strings.ToLower(strings.TrimSpace(title))]; ok {
		return r.index.films[i], MatchExact
	}
	if f, ok := r.index.ByTitle(title); ok {
		return f, MatchNormalized
	}
	if to, ok := r.aliases.Lookup(title); ok {
		if f, ok := r.index.ByTitle(to); ok {
			return f, MatchAlias
		}
	}
	return model.Film{}, MatchNone
}

// Report summarizes how a schedule joined to the catalog.
type Report struct {
	Showings  int               `json:"showings"`
	Matched   int               `json:"matched"`
	ByKind    map[MatchKind]int `json:"by_kind"`
	Unmatched []Unmatched       `json:"unmatched"`
}

// Unmatched is one schedule title with no catalog film.  Suggestions are
// partial matches for a human to confirm, typically by adding an alias.
type Unmatched struct {
	Title       string   `json:"title"`
	Showings    int      `json:"showings"`
	Dates       []string `json:"dates"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// ResolveSchedule returns a copy of s in which every matched showing
// carries the catalog title, so the recommender's exact join finds it.
// Unmatched showings are left untouched and listed in the report.
func (r *Resolver) ResolveSchedule(s model.Schedule) (model.Schedule, Report) {
	rep := Report{ByKind: make(map[MatchKind]int), Unmatched: []Unmatched{}}
	unmatched := make(map[string]*Unmatched)

	out := s
	out.Meta.Venues = slices.Clone(s.Meta.Venues)
	out.Days = make([]model.Day, len(s.Days))
	for di, d := range s.Days {
		nd := d
		nd.Screenings = make([]model.Screening, len(d.Screenings))
		for si, scr := range d.Screenings {
			ns := scr
			ns.Showings = slices.Clone(scr.Showings)
			for hi := range ns.Showings {
				sh := &ns.Showings[hi]
				rep.Showings++
				f, kind := r.Resolve(sh.Film)
				rep.ByKind[kind]++
				if kind == MatchNone {
					key := Normalize(sh.Film)
					u, ok := unmatched[key]
					if !ok {
						u = &Unmatched{Title: strings.TrimSpace(sh.Film)}
						unmatched[key] = u
					}
					u.Showings++
					if len(u.Dates) == 0 || u.Dates[len(u.Dates)-1] != d.Date {
						u.Dates = append(u.Dates, d.Date)
					}
					continue
				}
				rep.Matched++
				sh.Film = f.Title
			}
			nd.Screenings[si] = ns
		}
		out.Days[di] = nd
	}

	for _, u := range unmatched {
		u.Suggestions = r.index.Suggest(u.Title, maxSuggestions)
		rep.Unmatched = append(rep.Unmatched, *u)
	}
	slices.SortFunc(rep.Unmatched, func(a, b Unmatched) int {
		return strings.Compare(a.Title, b.Title)
	})
	return out, rep
}
