package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-json"

	"github.com/iliyamo/festival-program/internal/model"
)

// ScheduleRepo manages persistence for schedule days and the schedule
// header.
type ScheduleRepo struct {
	db *sql.DB
}

// NewScheduleRepo constructs a ScheduleRepo with the given DB handle.
func NewScheduleRepo(db *sql.DB) *ScheduleRepo {
	return &ScheduleRepo{db: db}
}

// UpsertDay inserts or replaces one day.
func (r *ScheduleRepo) UpsertDay(ctx context.Context, d model.Day) error {
	doc, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode day %s: %w", d.Date, err)
	}
	const q = `INSERT INTO schedule_days (date, day_number, label, doc) VALUES (?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE day_number = VALUES(day_number), label = VALUES(label), doc = VALUES(doc)`
	if _, err := r.db.ExecContext(ctx, q, d.Date, d.DayNumber, d.Label, doc); err != nil {
		return fmt.Errorf("upsert day %s: %w", d.Date, err)
	}
	return nil
}

// DeleteMissing removes every day whose date is not in keep.
func (r *ScheduleRepo) DeleteMissing(ctx context.Context, keep []string) error {
	if len(keep) == 0 {
		_, err := r.db.ExecContext(ctx, `DELETE FROM schedule_days`)
		return err
	}
	args := make([]any, len(keep))
	for i, d := range keep {
		args[i] = d
	}
	q := `DELETE FROM schedule_days WHERE date NOT IN (` + placeholders(len(keep)) + `)`
	_, err := r.db.ExecContext(ctx, q, args...)
	return err
}

// ListDays returns all stored days ordered by date.
func (r *ScheduleRepo) ListDays(ctx context.Context) ([]model.Day, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT doc FROM schedule_days ORDER BY date`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Day{}
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		var d model.Day
		if err := json.Unmarshal(doc, &d); err != nil {
			return nil, fmt.Errorf("decode day: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// GetDay returns ErrDayNotFound if the date is not stored.
func (r *ScheduleRepo) GetDay(ctx context.Context, date string) (model.Day, error) {
	var doc []byte
	err := r.db.QueryRowContext(ctx, `SELECT doc FROM schedule_days WHERE date = ?`, date).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Day{}, ErrDayNotFound
	}
	if err != nil {
		return model.Day{}, err
	}
	var d model.Day
	if err := json.Unmarshal(doc, &d); err != nil {
		return model.Day{}, fmt.Errorf("decode day %s: %w", date, err)
	}
	return d, nil
}

// SaveMeta stores the schedule header.
func (r *ScheduleRepo) SaveMeta(ctx context.Context, m model.ScheduleMeta) error {
	doc, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode schedule meta: %w", err)
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO schedule_meta (id, doc) VALUES (1, ?) ON DUPLICATE KEY UPDATE doc = VALUES(doc)`, doc)
	return err
}

// LoadMeta returns the stored header, or a zero value when none was saved.
func (r *ScheduleRepo) LoadMeta(ctx context.Context) (model.ScheduleMeta, error) {
	var doc []byte
	err := r.db.QueryRowContext(ctx, `SELECT doc FROM schedule_meta WHERE id = 1`).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return model.ScheduleMeta{}, nil
	}
	if err != nil {
		return model.ScheduleMeta{}, err
	}
	var m model.ScheduleMeta
	if err := json.Unmarshal(doc, &m); err != nil {
		return model.ScheduleMeta{}, fmt.Errorf("decode schedule meta: %w", err)
	}
	return m, nil
}

func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
