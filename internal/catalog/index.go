package catalog

import (
	"slices"
	"strings"

	"github.com/iliyamo/festival-program/internal/model"
)

// Index is a read-only lookup structure over the catalog.  The first film
// wins when ids or normalized titles collide.
type Index struct {
	films  []model.Film
	byID   map[string]int
	byNorm map[string]int
	norms  []string
}

// NewIndex builds an index over films.  The slice is copied.
func NewIndex(films []model.Film) *Index {
	ix := &Index{
		films:  slices.Clone(films),
		byID:   make(map[string]int, len(films)),
		byNorm: make(map[string]int, len(films)),
		norms:  make([]string, len(films)),
	}
	for i, f := range ix.films {
		if _, dup := ix.byID[f.ID]; !dup && f.ID != "" {
			ix.byID[f.ID] = i
		}
		n := Normalize(f.Title)
		ix.norms[i] = n
		if _, dup := ix.byNorm[n]; !dup && n != "" {
			ix.byNorm[n] = i
		}
	}
	return ix
}

// Films returns the catalog in its original order.  Callers must not
// modify the returned slice.
func (ix *Index) Films() []model.Film { return ix.films }

// Len returns the number of films.
func (ix *Index) Len() int { return len(ix.films) }

// ByID looks a film up by id.
func (ix *Index) ByID(id string) (model.Film, bool) {
	i, ok := ix.byID[id]
	if !ok {
		return model.Film{}, false
	}
	return ix.films[i], true
}

// ByTitle looks a film up by normalized title.
func (ix *Index) ByTitle(title string) (model.Film, bool) {
	i, ok := ix.byNorm[Normalize(title)]
	if !ok {
		return model.Film{}, false
	}
	return ix.films[i], true
}

// Suggest returns up to max catalog titles where one normalized title
// contains the other.  Shorter catalog titles than three characters are
// ignored; they would contain-match almost anything.
func (ix *Index) Suggest(title string, max int) []string {
	n := Normalize(title)
	if n == "" || max <= 0 {
		return nil
	}
	var out []string
	for i, cand := range ix.norms {
		if len(cand) < 3 || cand == n {
			continue
		}
		if strings.Contains(cand, n) || strings.Contains(n, cand) {
			out = append(out, ix.films[i].Title)
			if len(out) == max {
				break
			}
		}
	}
	return out
}
