package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/iliyamo/festival-program/internal/model"
)

// FilmRepo manages persistence for catalog films.
type FilmRepo struct {
	db *sql.DB
}

// NewFilmRepo constructs a FilmRepo with the given DB handle.
func NewFilmRepo(db *sql.DB) *FilmRepo {
	return &FilmRepo{db: db}
}

// ReplaceAll swaps the whole catalog in one transaction.  Catalog order is
// kept in the position column.
func (r *FilmRepo) ReplaceAll(ctx context.Context, films []model.Film) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM films`); err != nil {
		return fmt.Errorf("clear films: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO films (id, position, title, category, doc) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	seen := make(map[string]bool, len(films))
	for i, f := range films {
		if f.ID == "" || seen[f.ID] {
			continue
		}
		seen[f.ID] = true
		doc, err := json.Marshal(f)
		if err != nil {
			return fmt.Errorf("encode film %s: %w", f.ID, err)
		}
		if _, err := stmt.ExecContext(ctx, f.ID, i, f.Title, f.Category, doc); err != nil {
			return fmt.Errorf("insert film %s: %w", f.ID, err)
		}
	}
	return tx.Commit()
}

// List returns all films in catalog order.
func (r *FilmRepo) List(ctx context.Context) ([]model.Film, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT doc FROM films ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Film{}
	for rows.Next() {
		f, err := scanFilm(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// GetByID returns ErrFilmNotFound if there is no matching row.
func (r *FilmRepo) GetByID(ctx context.Context, id string) (model.Film, error) {
	row := r.db.QueryRowContext(ctx, `SELECT doc FROM films WHERE id = ?`, id)
	f, err := scanFilm(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Film{}, ErrFilmNotFound
	}
	return f, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanFilm(s scanner) (model.Film, error) {
	var doc []byte
	if err := s.Scan(&doc); err != nil {
		return model.Film{}, err
	}
	var f model.Film
	if err := json.Unmarshal(doc, &f); err != nil {
		return model.Film{}, fmt.Errorf("decode film: %w", err)
	}
	return f, nil
}
