// Package dataset reads and writes the festival's JSON data files.
package dataset

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goccy/go-json"

	"github.com/iliyamo/festival-program/internal/model"
)

// Bundle is everything the service reads from a source: the catalog, the
// schedule and the schedule-title alias table.
type Bundle struct {
	Films    []model.Film
	Schedule model.Schedule
	Aliases  map[string]string
}

// LoadFilms reads a {"films": [...]} catalog file.
func LoadFilms(path string) ([]model.Film, error) {
	var c model.Catalog
	if err := readJSON(path, &c); err != nil {
		return nil, err
	}
	if c.Films == nil {
		c.Films = []model.Film{}
	}
	return c.Films, nil
}

// LoadSchedule reads a schedule file.
func LoadSchedule(path string) (model.Schedule, error) {
	var s model.Schedule
	if err := readJSON(path, &s); err != nil {
		return model.Schedule{}, err
	}
	return s, nil
}

// LoadDay reads one per-day schedule file as produced by the extractor.
func LoadDay(path string) (model.Day, error) {
	var d model.Day
	if err := readJSON(path, &d); err != nil {
		return model.Day{}, err
	}
	return d, nil
}

// LoadDays reads every *.json file in dir as a day, in file name order.
func LoadDays(dir string) ([]model.Day, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	days := make([]model.Day, 0, len(paths))
	for _, p := range paths {
		d, err := LoadDay(p)
		if err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	return days, nil
}

// LoadAliases reads a flat {"schedule title": "catalog title"} object.  A
// missing file is not an error and yields an empty table.
func LoadAliases(path string) (map[string]string, error) {
	aliases := map[string]string{}
	if path == "" {
		return aliases, nil
	}
	err := readJSON(path, &aliases)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, err
	}
	return aliases, nil
}

// SaveSchedule writes s as indented JSON.  The file is replaced
// atomically so readers never observe a partial schedule.
func SaveSchedule(path string, s model.Schedule) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encode schedule: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return fmt.Errorf("read %s: empty file", path)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
