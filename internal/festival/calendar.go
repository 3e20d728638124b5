// Package festival describes the fixed facts of one festival edition: the
// dates it runs, how its days are labelled and which venues host it.
package festival

import (
	"errors"
	"fmt"
	"time"
)

// ErrEndBeforeStart is returned by Calendar.Validate when the closing date
// precedes the opening date.
var ErrEndBeforeStart = errors.New("festival end date is before start date")

// Calendar is the inclusive date range of the festival.  Dates use the
// dataset's YYYY-MM-DD form.
type Calendar struct {
	Start string `koanf:"start" json:"start" validate:"required,datetime=2006-01-02"`
	End   string `koanf:"end" json:"end" validate:"required,datetime=2006-01-02"`
}

// Validate checks the date formats and ordering.
func (c Calendar) Validate() error {
	start, err := time.Parse(time.DateOnly, c.Start)
	if err != nil {
		return fmt.Errorf("festival start %q: %w", c.Start, err)
	}
	end, err := time.Parse(time.DateOnly, c.End)
	if err != nil {
		return fmt.Errorf("festival end %q: %w", c.End, err)
	}
	if end.Before(start) {
		return ErrEndBeforeStart
	}
	return nil
}

// Days returns the number of festival days, or 0 for an invalid calendar.
func (c Calendar) Days() int {
	start, end, ok := c.bounds()
	if !ok {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}

// Dates lists every festival date in order.
func (c Calendar) Dates() []string {
	start, _, ok := c.bounds()
	if !ok {
		return nil
	}
	n := c.Days()
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, start.AddDate(0, 0, i).Format(time.DateOnly))
	}
	return out
}

// Contains reports whether date falls inside the festival.
func (c Calendar) Contains(date string) bool {
	_, ok := c.DayNumber(date)
	return ok
}

// DayNumber returns the 1-based festival day of date.
func (c Calendar) DayNumber(date string) (int, bool) {
	start, end, ok := c.bounds()
	if !ok {
		return 0, false
	}
	d, err := time.Parse(time.DateOnly, date)
	if err != nil || d.Before(start) || d.After(end) {
		return 0, false
	}
	return int(d.Sub(start).Hours()/24) + 1, true
}

// Label renders the long day label used in the dataset, for example
// "Day 5 - Tuesday".
func (c Calendar) Label(date string) (string, bool) {
	n, ok := c.DayNumber(date)
	if !ok {
		return "", false
	}
	d, _ := time.Parse(time.DateOnly, date)
	return fmt.Sprintf("Day %d - %s", n, d.Weekday()), true
}

func (c Calendar) bounds() (time.Time, time.Time, bool) {
	start, err := time.Parse(time.DateOnly, c.Start)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	end, err := time.Parse(time.DateOnly, c.End)
	if err != nil || end.Before(start) {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}
