package model

// RecommendedShowing is a showing chosen by the daily recommender,
// joined with its catalog film.  Start and End are minutes after
// midnight; End is derived from the showing or film duration.
type RecommendedShowing struct {
	Date         string       `json:"date"`
	Time         string       `json:"time"`
	EndTime      string       `json:"end_time"`
	Venue        string       `json:"venue"`
	VenueLabel   string       `json:"venue_label"`
	Screen       string       `json:"screen"`
	Film         Film         `json:"film"`
	Start        int          `json:"start"`
	End          int          `json:"end"`
	Score        float64      `json:"score"`
	Reason       string       `json:"reason"`
	Alternatives []AltShowing `json:"alternatives,omitempty"`
}

// AltShowing is another showing of the same film on a different day.
type AltShowing struct {
	Date       string `json:"date"`
	DayLabel   string `json:"day_label"`
	Time       string `json:"time"`
	Venue      string `json:"venue"`
	VenueLabel string `json:"venue_label"`
	Screen     string `json:"screen"`
}
