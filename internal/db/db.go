package db

import (
	"context"
	"database/sql"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS employees (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	name        TEXT NOT NULL,
	email       TEXT NOT NULL UNIQUE,
	position    TEXT NOT NULL,
	created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

// Open connects to the SQLite file at path and makes sure the schema exists.
// The store executes statements serially, so the pool is pinned to one connection.
func Open(path string) (*sql.DB, error) {
	database, err := sql.Open("sqlite", path)

	if err != nil {
		return nil, err
	}

	database.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)

	defer cancel()

	err = database.PingContext(ctx)

	if err != nil {
		database.Close()
		return nil, err
	}

	_, err = database.ExecContext(ctx, `PRAGMA busy_timeout = 5000`)

	if err != nil {
		database.Close()
		return nil, err
	}

	_, err = database.ExecContext(ctx, schema)

	if err != nil {
		database.Close()
		return nil, err
	}

	return database, nil
}
