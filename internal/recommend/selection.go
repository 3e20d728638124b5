package recommend

import (
	"cmp"
	"slices"

	"github.com/iliyamo/festival-program/internal/model"
)

// Overlaps reports whether two showings share any time.  Intervals are
// half-open, so a showing that starts exactly when another ends does
// not overlap it.
func Overlaps(a, b model.RecommendedShowing) bool {
	return a.Start < b.End && b.Start < a.End
}

// SelectNonConflicting picks at most n candidates, highest score first,
// skipping any candidate that overlaps one already picked.  Ties keep
// input order.  The result is sorted by start time.
func SelectNonConflicting(cands []model.RecommendedShowing, n int) []model.RecommendedShowing {
	if n <= 0 || len(cands) == 0 {
		return []model.RecommendedShowing{}
	}

	ranked := slices.Clone(cands)
	slices.SortStableFunc(ranked, func(a, b model.RecommendedShowing) int {
		return cmp.Compare(b.Score, a.Score)
	})

	picked := make([]model.RecommendedShowing, 0, min(n, len(ranked)))
	for _, c := range ranked {
		if len(picked) == n {
			break
		}
		if conflictsWithAny(c, picked) {
			continue
		}
		picked = append(picked, c)
	}

	slices.SortStableFunc(picked, func(a, b model.RecommendedShowing) int {
		return cmp.Compare(a.Start, b.Start)
	})
	return picked
}

func conflictsWithAny(c model.RecommendedShowing, picked []model.RecommendedShowing) bool {
	for _, p := range picked {
		if Overlaps(c, p) {
			return true
		}
	}
	return false
}
