package model

// Schedule is the full multi-day festival program as stored in the
// schedule dataset file.
type Schedule struct {
	Meta ScheduleMeta `json:"schedule"`
	Days []Day        `json:"days"`
}

// ScheduleMeta carries provenance information about the schedule file.
type ScheduleMeta struct {
	LastUpdated string          `json:"lastUpdated,omitempty"`
	Source      string          `json:"source,omitempty"`
	Note        string          `json:"note,omitempty"`
	Venues      []ScheduleVenue `json:"venues,omitempty"`
}

// ScheduleVenue is the venue description embedded in the schedule file.
type ScheduleVenue struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Screens []string `json:"screens,omitempty"`
}

// Day is one festival day.  Date is formatted YYYY-MM-DD.
type Day struct {
	Date       string      `json:"date"`
	DayNumber  int         `json:"dayNumber"`
	Label      string      `json:"label"`
	Screenings []Screening `json:"screenings"`
}

// Screening groups the showings of one venue screen on a day.
type Screening struct {
	Venue    string    `json:"venue"`
	Screen   string    `json:"screen"`
	Showings []Showing `json:"showings"`
}

// Showing is one scheduled screening.  Time is a 24-hour HH:MM string
// and Film is the title as printed in the schedule.  The remaining
// fields are optional metadata copied from the printed program.
type Showing struct {
	Time     string `json:"time"`
	Film     string `json:"film"`
	Director string `json:"director,omitempty"`
	Country  string `json:"country,omitempty"`
	Year     int    `json:"year,omitempty"`
	Language string `json:"language,omitempty"`
	Duration int    `json:"duration,omitempty"`
}

// ShowingCount returns the number of showings on the day.
func (d Day) ShowingCount() int {
	n := 0
	for _, s := range d.Screenings {
		n += len(s.Showings)
	}
	return n
}

// FindDay returns the day with the given date.
func (s Schedule) FindDay(date string) (Day, bool) {
	for _, d := range s.Days {
		if d.Date == date {
			return d, true
		}
	}
	return Day{}, false
}
