package model

// Film represents one catalog entry of the festival dataset.  Title is
// the natural join key against schedule showings.  The four rating
// fields hold the raw strings scraped from each external source, each on
// its own scale; they are empty when the source has no rating.
//
// Fields:
//  ID             – stable identifier from the dataset.
//  Title          – display title, matched against showing titles.
//  IMDbRating     – 0–10 scale, e.g. "7.8" or "7.8/10".
//  RottenTomatoes – percentage, e.g. "94%".
//  Metacritic     – 0–100 scale, e.g. "82" or "82/100".
//  Letterboxd     – 0–5 scale, e.g. "3.9" or "3.9/5".
//  Awards         – free-text award citation.
//  Duration       – nominal runtime in minutes (0 when unknown).
type Film struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	OriginalTitle  string `json:"originalTitle,omitempty"`
	Director       string `json:"director,omitempty"`
	Country        string `json:"country,omitempty"`
	Year           int    `json:"year,omitempty"`
	Language       string `json:"language,omitempty"`
	Duration       int    `json:"duration,omitempty"`
	Category       string `json:"category,omitempty"`
	Synopsis       string `json:"synopsis,omitempty"`
	PosterURL      string `json:"posterUrl,omitempty"`
	IMDbRating     string `json:"imdbRating,omitempty"`
	RottenTomatoes string `json:"rottenTomatoes,omitempty"`
	Metacritic     string `json:"metacritic,omitempty"`
	Letterboxd     string `json:"letterboxdRating,omitempty"`
	Awards         string `json:"awards,omitempty"`
}

// Catalog is the top-level shape of the films dataset file.
type Catalog struct {
	Films []Film `json:"films"`
}
