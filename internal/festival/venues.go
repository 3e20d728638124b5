package festival

// Venue is one screening location.  Short is the label shown next to
// showings; Color and Icon are display hints passed through to clients.
type Venue struct {
	ID      string   `koanf:"id" json:"id" validate:"required"`
	Name    string   `koanf:"name" json:"name" validate:"required"`
	Short   string   `koanf:"short" json:"short"`
	Color   string   `koanf:"color" json:"color" validate:"omitempty,hexcolor"`
	Icon    string   `koanf:"icon" json:"icon"`
	Screens []string `koanf:"screens" json:"screens"`
}

// Label returns Short, falling back to Name.
func (v Venue) Label() string {
	if v.Short != "" {
		return v.Short
	}
	return v.Name
}

// Venues is the venue table.  It is built once at startup and shared
// read-only.
type Venues []Venue

// Lookup finds a venue by id.
func (vs Venues) Lookup(id string) (Venue, bool) {
	for _, v := range vs {
		if v.ID == id {
			return v, true
		}
	}
	return Venue{}, false
}

// Labels maps venue ids to their short labels.
func (vs Venues) Labels() map[string]string {
	m := make(map[string]string, len(vs))
	for _, v := range vs {
		m[v.ID] = v.Label()
	}
	return m
}

// DefaultVenues is the venue table of the 2026 edition.
var DefaultVenues = Venues{
	{
		ID:      "cinepolis",
		Name:    "Cinepolis, LuLu Mall",
		Short:   "Cinepolis",
		Color:   "#1f6feb",
		Icon:    "film",
		Screens: []string{"1", "2", "3", "4", "5", "6", "7", "8", "Open Forum"},
	},
	{
		ID:      "rajkumar",
		Name:    "Dr. Rajkumar Bhavana",
		Short:   "Rajkumar Bhavana",
		Color:   "#d29922",
		Icon:    "landmark",
		Screens: []string{"1"},
	},
	{
		ID:      "banashankari",
		Name:    "Suchitra Cinema, Banashankari",
		Short:   "Banashankari",
		Color:   "#8957e5",
		Icon:    "clapperboard",
		Screens: []string{"1"},
	},
	{
		ID:      "openair",
		Name:    "Open Air Screening",
		Short:   "Open Air",
		Color:   "#2da44e",
		Icon:    "moon",
		Screens: []string{"1"},
	},
}
