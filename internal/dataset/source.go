package dataset

import (
	"context"
	"fmt"
)

// Source yields the current dataset.  Implementations read files or a
// database.
type Source interface {
	Load(ctx context.Context) (Bundle, error)
}

// FileSource reads the dataset from JSON files on disk.
type FileSource struct {
	FilmsPath    string
	SchedulePath string
	AliasesPath  string
}

// Load reads all three files.  The alias file is optional.
func (s FileSource) Load(ctx context.Context) (Bundle, error) {
	if err := ctx.Err(); err != nil {
		return Bundle{}, err
	}
	films, err := LoadFilms(s.FilmsPath)
	if err != nil {
		return Bundle{}, fmt.Errorf("load films: %w", err)
	}
	sched, err := LoadSchedule(s.SchedulePath)
	if err != nil {
		return Bundle{}, fmt.Errorf("load schedule: %w", err)
	}
	aliases, err := LoadAliases(s.AliasesPath)
	if err != nil {
		return Bundle{}, fmt.Errorf("load aliases: %w", err)
	}
	return Bundle{Films: films, Schedule: sched, Aliases: aliases}, nil
}
