package refresh

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"slices"

	"github.com/goccy/go-json"

	"github.com/iliyamo/festival-program/internal/dataset"
)

// Digest keys.  Each day is stored under dayPrefix + date.
const (
	filmsKey  = "films"
	metaKey   = "meta"
	dayPrefix = "day:"
)

// Digests maps digest keys to hex sha256 sums of their JSON encoding.
type Digests map[string]string

// Compute digests every part of a bundle that refresh can import on its
// own: the catalog, the schedule metadata and each day.
func Compute(b dataset.Bundle) (Digests, error) {
	d := make(Digests, len(b.Schedule.Days)+2)
	var err error
	if d[filmsKey], err = sum(b.Films); err != nil {
		return nil, fmt.Errorf("digest films: %w", err)
	}
	if d[metaKey], err = sum(b.Schedule.Meta); err != nil {
		return nil, fmt.Errorf("digest meta: %w", err)
	}
	for _, day := range b.Schedule.Days {
		if d[dayPrefix+day.Date], err = sum(day); err != nil {
			return nil, fmt.Errorf("digest day %s: %w", day.Date, err)
		}
	}
	return d, nil
}

func sum(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	h := sha256.Sum256(raw)
	return hex.EncodeToString(h[:]), nil
}

// Diff lists what changed between the previous and the current digests.
type Diff struct {
	FilmsChanged bool
	MetaChanged  bool
	ChangedDays  []string
	RemovedDays  []string
	Unchanged    int
}

// Empty reports whether nothing changed.
func (d Diff) Empty() bool {
	return !d.FilmsChanged && !d.MetaChanged && len(d.ChangedDays) == 0 && len(d.RemovedDays) == 0
}

// Compare diffs prev against cur.  A missing previous digest counts as a
// change.  Day lists come back sorted.
func Compare(prev, cur Digests) Diff {
	var out Diff
	out.FilmsChanged = prev[filmsKey] != cur[filmsKey]
	out.MetaChanged = prev[metaKey] != cur[metaKey]
	for k, v := range cur {
		date, ok := dayDate(k)
		if !ok {
			continue
		}
		if prev[k] == v {
			out.Unchanged++
			continue
		}
		out.ChangedDays = append(out.ChangedDays, date)
	}
	for k := range prev {
		date, ok := dayDate(k)
		if !ok {
			continue
		}
		if _, still := cur[k]; !still {
			out.RemovedDays = append(out.RemovedDays, date)
		}
	}
	slices.Sort(out.ChangedDays)
	slices.Sort(out.RemovedDays)
	return out
}

func dayDate(key string) (string, bool) {
	if len(key) <= len(dayPrefix) || key[:len(dayPrefix)] != dayPrefix {
		return "", false
	}
	return key[len(dayPrefix):], true
}
