package database

import (
	"context"
	"database/sql"
	"fmt"
)

// schema creates the tables the repositories use.  Films and days are
// stored as JSON documents next to the columns they are looked up by.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS films (
		id         VARCHAR(64)  NOT NULL PRIMARY KEY,
		position   INT          NOT NULL,
		title      VARCHAR(255) NOT NULL,
		category   VARCHAR(128) NOT NULL DEFAULT '',
		doc        JSON         NOT NULL,
		updated_at TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		KEY idx_films_position (position),
		KEY idx_films_category (category)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS schedule_days (
		date       CHAR(10)    NOT NULL PRIMARY KEY,
		day_number INT         NOT NULL,
		label      VARCHAR(64) NOT NULL,
		doc        JSON        NOT NULL,
		updated_at TIMESTAMP   NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS schedule_meta (
		id  TINYINT NOT NULL PRIMARY KEY,
		doc JSON    NOT NULL
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// Migrate creates missing tables.  It is idempotent.
func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate statement %d: %w", i+1, err)
		}
	}
	return nil
}
