// Command schedule-merge combines per-day schedule files into one
// schedule file and prints how its titles join the film catalog.
//
//	schedule-merge -days data/days -out data/schedule_data.json -films data/films.json
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/iliyamo/festival-program/internal/catalog"
	"github.com/iliyamo/festival-program/internal/config"
	"github.com/iliyamo/festival-program/internal/dataset"
	"github.com/iliyamo/festival-program/internal/festival"
	"github.com/iliyamo/festival-program/internal/logging"
	"github.com/iliyamo/festival-program/internal/model"
)

func main() {
	var (
		daysDir  = flag.String("days", "data/days", "directory of per-day schedule JSON files")
		out      = flag.String("out", "data/schedule_data.json", "merged schedule output path")
		films    = flag.String("films", "data/films.json", "film catalog for the match report; empty skips it")
		aliases  = flag.String("aliases", "data/aliases.json", "schedule title alias table")
		festPath = flag.String("festival", "festival.yaml", "festival config file")
		source   = flag.String("source", "", "schedule source note stored in the output")
		dryRun   = flag.Bool("dry-run", false, "print the report without writing the output")
	)
	flag.Parse()
	logging.Init(logging.Config{Level: "info", Format: "console"})

	fest, err := config.LoadFestival(*festPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load festival config")
	}
	days, err := dataset.LoadDays(*daysDir)
	if err != nil {
		log.Fatal().Err(err).Str("dir", *daysDir).Msg("load days")
	}

	meta := scheduleMeta(*source, fest.Venues, time.Now())
	res, err := dataset.MergeDays(meta, days, fest.Calendar)
	if err != nil {
		log.Fatal().Err(err).Msg("merge days")
	}
	printTotals(os.Stdout, res)

	if *films != "" {
		catalogFilms, err := dataset.LoadFilms(*films)
		if err != nil {
			log.Fatal().Err(err).Str("path", *films).Msg("load films")
		}
		table, err := dataset.LoadAliases(*aliases)
		if err != nil {
			log.Fatal().Err(err).Str("path", *aliases).Msg("load aliases")
		}
		r := catalog.NewResolver(catalog.NewIndex(catalogFilms), catalog.NewAliases(table))
		_, rep := r.ResolveSchedule(res.Schedule)
		printReport(os.Stdout, rep)
	}

	if *dryRun {
		return
	}
	if err := dataset.SaveSchedule(*out, res.Schedule); err != nil {
		log.Fatal().Err(err).Str("path", *out).Msg("write schedule")
	}
	log.Info().Str("path", *out).Int("days", res.Days).Int("showings", res.Showings).Msg("schedule written")
}

// scheduleMeta stamps the merged file with its build time in RFC 3339 UTC.
func scheduleMeta(source string, venues festival.Venues, now time.Time) model.ScheduleMeta {
	meta := model.ScheduleMeta{
		LastUpdated: now.UTC().Format(time.RFC3339),
		Source:      source,
	}
	for _, v := range venues {
		meta.Venues = append(meta.Venues, model.ScheduleVenue{ID: v.ID, Name: v.Name, Screens: v.Screens})
	}
	return meta
}

func printTotals(w io.Writer, res dataset.MergeResult) {
	fmt.Fprintf(w, "Merged %d days, %d showings\n", res.Days, res.Showings)
	for _, d := range res.Schedule.Days {
		fmt.Fprintf(w, "  %s  %-20s %4d showings\n", d.Date, d.Label, d.ShowingCount())
	}
}

func printReport(w io.Writer, rep catalog.Report) {
	fmt.Fprintf(w, "\nTitle matches: %d of %d showings\n", rep.Matched, rep.Showings)
	for _, k := range []catalog.MatchKind{catalog.MatchExact, catalog.MatchNormalized, catalog.MatchAlias} {
		fmt.Fprintf(w, "  %-10s %d\n", k, rep.ByKind[k])
	}
	if len(rep.Unmatched) == 0 {
		return
	}
	fmt.Fprintf(w, "\nUnmatched titles (%d):\n", len(rep.Unmatched))
	for _, u := range rep.Unmatched {
		fmt.Fprintf(w, "  %q  %d showings on %s\n", u.Title, u.Showings, strings.Join(u.Dates, ", "))
		if len(u.Suggestions) > 0 {
			fmt.Fprintf(w, "      maybe: %s\n", strings.Join(u.Suggestions, " | "))
		}
	}
}
