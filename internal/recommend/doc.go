// Package recommend builds the daily "what to watch" plan for a festival
// day.  It scores every catalog film from its external ratings, joins the
// day's showings against the catalog by title, and then greedily picks
// the highest-scored showings that do not overlap in time.
//
// The selection is weight-first greedy, not an exact weighted interval
// scheduling solver: a single long, highly rated film can block two
// shorter films whose combined score would have been higher.
//
// Everything in this package is a pure function over values.  Callers
// fetch the catalog and schedule, resolve title aliases, and render the
// result.
package recommend
