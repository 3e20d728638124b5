package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/iliyamo/festival-program/internal/catalog"
	"github.com/iliyamo/festival-program/internal/dataset"
	"github.com/iliyamo/festival-program/internal/festival"
	"github.com/iliyamo/festival-program/internal/model"
)

func TestPrintReport(t *testing.T) {
	rep := catalog.Report{
		Showings: 3,
		Matched:  2,
		ByKind:   map[catalog.MatchKind]int{catalog.MatchExact: 1, catalog.MatchAlias: 1},
		Unmatched: []catalog.Unmatched{{
			Title:       "Sound of Fallin",
			Showings:    1,
			Dates:       []string{"2026-02-03"},
			Suggestions: []string{"Sound of Falling"},
		}},
	}
	var buf bytes.Buffer
	printReport(&buf, rep)
	out := buf.String()
	for _, want := range []string{"2 of 3 showings", `"Sound of Fallin"`, "maybe: Sound of Falling"} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}

func TestPrintTotals(t *testing.T) {
	res := dataset.MergeResult{
		Schedule: model.Schedule{Days: []model.Day{{Date: "2026-01-30", Label: "Day 1 - Friday"}}},
		Days:     1,
	}
	var buf bytes.Buffer
	printTotals(&buf, res)
	if !strings.Contains(buf.String(), "Merged 1 days, 0 showings") || !strings.Contains(buf.String(), "Day 1 - Friday") {
		t.Errorf("totals = %q", buf.String())
	}
}

func TestScheduleMeta(t *testing.T) {
	now := time.Date(2026, 1, 28, 11, 30, 0, 0, time.FixedZone("IST", 5*3600+1800))
	venues := festival.Venues{{ID: "cinepolis", Name: "Cinepolis", Screens: []string{"1", "2"}}}

	m := scheduleMeta("print programme", venues, now)
	if m.LastUpdated != "2026-01-28T06:00:00Z" {
		t.Errorf("LastUpdated = %q, want UTC RFC 3339", m.LastUpdated)
	}
	if m.Source != "print programme" || len(m.Venues) != 1 || m.Venues[0].ID != "cinepolis" || len(m.Venues[0].Screens) != 2 {
		t.Errorf("meta = %+v", m)
	}
}
