package repository

import (
	"context"
	"fmt"

	"github.com/iliyamo/festival-program/internal/dataset"
	"github.com/iliyamo/festival-program/internal/model"
)

// Source serves the dataset from MySQL.  Aliases still come from a file;
// they are edited by hand and never imported.
type Source struct {
	Films       *FilmRepo
	Schedule    *ScheduleRepo
	AliasesPath string
}

// Load implements dataset.Source.
func (s Source) Load(ctx context.Context) (dataset.Bundle, error) {
	films, err := s.Films.List(ctx)
	if err != nil {
		return dataset.Bundle{}, fmt.Errorf("list films: %w", err)
	}
	meta, err := s.Schedule.LoadMeta(ctx)
	if err != nil {
		return dataset.Bundle{}, fmt.Errorf("load schedule meta: %w", err)
	}
	days, err := s.Schedule.ListDays(ctx)
	if err != nil {
		return dataset.Bundle{}, fmt.Errorf("list days: %w", err)
	}
	aliases, err := dataset.LoadAliases(s.AliasesPath)
	if err != nil {
		return dataset.Bundle{}, fmt.Errorf("load aliases: %w", err)
	}
	return dataset.Bundle{
		Films:    films,
		Schedule: model.Schedule{Meta: meta, Days: days},
		Aliases:  aliases,
	}, nil
}
