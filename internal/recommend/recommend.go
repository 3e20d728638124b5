package recommend

import "github.com/iliyamo/festival-program/internal/model"

// DefaultLimit is the number of showings recommended when the caller
// does not ask for a specific count.
const DefaultLimit = 5

// Recommend returns up to n non-overlapping showings for date, favouring
// the best-rated films, in chronological order.  A date without
// matching showings yields an empty slice.
func Recommend(date string, sched model.Schedule, films []model.Film, n int, opts Options) []model.RecommendedShowing {
	return SelectNonConflicting(BuildCandidates(date, sched, films, opts), n)
}
