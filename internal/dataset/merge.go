package dataset

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/iliyamo/festival-program/internal/festival"
	"github.com/iliyamo/festival-program/internal/model"
)

var (
	// ErrNoDays is returned when there is nothing to merge.
	ErrNoDays = errors.New("no schedule days")

	// ErrDuplicateDay is returned when two inputs describe the same date.
	ErrDuplicateDay = errors.New("duplicate schedule day")
)

// MergeResult is a merged schedule with its totals.
type MergeResult struct {
	Schedule model.Schedule
	Days     int
	Showings int
}

// MergeDays combines per-day files into one schedule ordered by date.
// Missing day numbers and labels are filled in from cal; days outside the
// festival keep whatever they carried.
func MergeDays(meta model.ScheduleMeta, days []model.Day, cal festival.Calendar) (MergeResult, error) {
	if len(days) == 0 {
		return MergeResult{}, ErrNoDays
	}

	sorted := slices.Clone(days)
	slices.SortStableFunc(sorted, func(a, b model.Day) int { return cmp.Compare(a.Date, b.Date) })

	res := MergeResult{Schedule: model.Schedule{Meta: meta, Days: sorted}}
	for i := range sorted {
		d := &sorted[i]
		if i > 0 && sorted[i-1].Date == d.Date {
			return MergeResult{}, fmt.Errorf("%w: %s", ErrDuplicateDay, d.Date)
		}
		if d.DayNumber == 0 {
			if n, ok := cal.DayNumber(d.Date); ok {
				d.DayNumber = n
			}
		}
		if d.Label == "" {
			if l, ok := cal.Label(d.Date); ok {
				d.Label = l
			}
		}
		if d.Screenings == nil {
			d.Screenings = []model.Screening{}
		}
		res.Showings += d.ShowingCount()
	}
	res.Days = len(sorted)
	return res, nil
}
