package festival

// Config is the per-edition configuration loaded from festival.yaml.
type Config struct {
	Name     string   `koanf:"name" json:"name" validate:"required"`
	Calendar Calendar `koanf:"calendar" json:"calendar"`
	Venues   Venues   `koanf:"venues" json:"venues" validate:"required,min=1,dive"`
}

// Default returns the configuration of the 2026 edition.
func Default() Config {
	return Config{
		Name: "Bengaluru International Film Festival",
		Calendar: Calendar{
			Start: "2026-01-30",
			End:   "2026-02-06",
		},
		Venues: append(Venues(nil), DefaultVenues...),
	}
}
