package repository

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"reflect"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/iliyamo/festival-program/internal/model"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Error(err)
		}
		db.Close()
	})
	return db, mock
}

func TestFilmRepo_ReplaceAll(t *testing.T) {
	db, mock := newMock(t)
	films := []model.Film{
		{ID: "f1", Title: "Aftersun", Category: "World"},
		{ID: "f1", Title: "Aftersun (dup)"},
		{ID: "", Title: "No id"},
		{ID: "f2", Title: "Past Lives", Category: "Gala"},
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM films")).WillReturnResult(sqlmock.NewResult(0, 5))
	prep := mock.ExpectPrepare(regexp.QuoteMeta("INSERT INTO films (id, position, title, category, doc)"))
	prep.ExpectExec().WithArgs("f1", 0, "Aftersun", "World", sqlmock.AnyArg()).WillReturnResult(sqlmock.NewResult(1, 1))
	prep.ExpectExec().WithArgs("f2", 3, "Past Lives", "Gala", sqlmock.AnyArg()).WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	if err := NewFilmRepo(db).ReplaceAll(context.Background(), films); err != nil {
		t.Fatalf("ReplaceAll() error = %v", err)
	}
}

func TestFilmRepo_ReplaceAllRollsBack(t *testing.T) {
	db, mock := newMock(t)
	boom := errors.New("duplicate entry")

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM films")).WillReturnResult(sqlmock.NewResult(0, 0))
	prep := mock.ExpectPrepare(regexp.QuoteMeta("INSERT INTO films"))
	prep.ExpectExec().WillReturnError(boom)
	mock.ExpectRollback()

	err := NewFilmRepo(db).ReplaceAll(context.Background(), []model.Film{{ID: "f1", Title: "Aftersun"}})
	if !errors.Is(err, boom) {
		t.Fatalf("ReplaceAll() error = %v, want %v", err, boom)
	}
}

func TestFilmRepo_GetByIDNotFound(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT doc FROM films WHERE id = ?")).
		WithArgs("nope").
		WillReturnRows(sqlmock.NewRows([]string{"doc"}))

	if _, err := NewFilmRepo(db).GetByID(context.Background(), "nope"); !errors.Is(err, ErrFilmNotFound) {
		t.Errorf("GetByID() error = %v, want ErrFilmNotFound", err)
	}
}

func TestScheduleRepo_UpsertDay(t *testing.T) {
	db, mock := newMock(t)
	day := model.Day{Date: "2026-01-30", DayNumber: 1, Label: "Fri 30 Jan"}
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO schedule_days (date, day_number, label, doc) VALUES (?, ?, ?, ?)")).
		WithArgs("2026-01-30", 1, "Fri 30 Jan", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := NewScheduleRepo(db).UpsertDay(context.Background(), day); err != nil {
		t.Fatalf("UpsertDay() error = %v", err)
	}
}

func TestScheduleRepo_DeleteMissing(t *testing.T) {
	tests := []struct {
		name  string
		keep  []string
		query string
	}{
		{"empty keep clears table", nil, `^DELETE FROM schedule_days$`},
		{"keeps listed dates", []string{"2026-01-30", "2026-01-31"},
			regexp.QuoteMeta("DELETE FROM schedule_days WHERE date NOT IN (?, ?)")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMock(t)
			exp := mock.ExpectExec(tt.query)
			if len(tt.keep) > 0 {
				exp.WithArgs("2026-01-30", "2026-01-31")
			}
			exp.WillReturnResult(sqlmock.NewResult(0, 1))

			if err := NewScheduleRepo(db).DeleteMissing(context.Background(), tt.keep); err != nil {
				t.Fatalf("DeleteMissing() error = %v", err)
			}
		})
	}
}

func TestScheduleRepo_LoadMeta(t *testing.T) {
	const q = "SELECT doc FROM schedule_meta WHERE id = 1"

	t.Run("none saved", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectQuery(regexp.QuoteMeta(q)).WillReturnRows(sqlmock.NewRows([]string{"doc"}))
		m, err := NewScheduleRepo(db).LoadMeta(context.Background())
		if err != nil || !reflect.DeepEqual(m, model.ScheduleMeta{}) {
			t.Errorf("LoadMeta() = %+v, %v, want zero value", m, err)
		}
	})
	t.Run("stored", func(t *testing.T) {
		db, mock := newMock(t)
		doc := []byte(`{"lastUpdated":"2026-01-28T10:00:00Z","source":"print"}`)
		mock.ExpectQuery(regexp.QuoteMeta(q)).WillReturnRows(sqlmock.NewRows([]string{"doc"}).AddRow(doc))
		m, err := NewScheduleRepo(db).LoadMeta(context.Background())
		if err != nil {
			t.Fatalf("LoadMeta() error = %v", err)
		}
		if m.Source != "print" || m.LastUpdated != "2026-01-28T10:00:00Z" {
			t.Errorf("LoadMeta() = %+v", m)
		}
	})
}

func TestSource_Load(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT doc FROM films ORDER BY position")).
		WillReturnRows(sqlmock.NewRows([]string{"doc"}).
			AddRow([]byte(`{"id":"f1","title":"Aftersun"}`)).
			AddRow([]byte(`{"id":"f2","title":"Past Lives"}`)))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT doc FROM schedule_meta")).
		WillReturnRows(sqlmock.NewRows([]string{"doc"}).AddRow([]byte(`{"source":"print"}`)))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT doc FROM schedule_days ORDER BY date")).
		WillReturnRows(sqlmock.NewRows([]string{"doc"}).
			AddRow([]byte(`{"date":"2026-01-30","dayNumber":1,"label":"Fri","screenings":[]}`)))

	src := Source{
		Films:       NewFilmRepo(db),
		Schedule:    NewScheduleRepo(db),
		AliasesPath: filepath.Join(t.TempDir(), "aliases.json"),
	}
	b, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(b.Films) != 2 || b.Films[1].Title != "Past Lives" {
		t.Errorf("Films = %+v", b.Films)
	}
	if b.Schedule.Meta.Source != "print" || len(b.Schedule.Days) != 1 || b.Schedule.Days[0].Date != "2026-01-30" {
		t.Errorf("Schedule = %+v", b.Schedule)
	}
	if b.Aliases == nil || len(b.Aliases) != 0 {
		t.Errorf("Aliases = %v, want empty map for a missing file", b.Aliases)
	}
}

func TestSource_LoadWrapsErrors(t *testing.T) {
	db, mock := newMock(t)
	boom := errors.New("connection refused")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT doc FROM films")).WillReturnError(boom)

	_, err := Source{Films: NewFilmRepo(db), Schedule: NewScheduleRepo(db)}.Load(context.Background())
	if !errors.Is(err, boom) {
		t.Errorf("Load() error = %v, want %v", err, boom)
	}
}
