package main

import (
	"context"
	"database/sql"
	"fmt"
)

// The two backends need slightly different column types: postgres has
// native SERIAL, NUMERIC and BOOLEAN while sqlite stores booleans as
// integers. Reading code never sees the difference, normalization
// brings both encodings back to the same entity model.

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS authors (
		id SERIAL PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		last_name VARCHAR(100) NOT NULL,
		bio TEXT,
		birth_date TIMESTAMP,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS genres (
		id SERIAL PRIMARY KEY,
		name VARCHAR(50) NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS publishers (
		id SERIAL PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		address VARCHAR(200),
		phone VARCHAR(20),
		email VARCHAR(100),
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS books (
		id SERIAL PRIMARY KEY,
		title VARCHAR(200) NOT NULL,
		description TEXT NOT NULL,
		price NUMERIC(10,2) NOT NULL,
		discount INTEGER NOT NULL DEFAULT 0,
		rating NUMERIC(3,2) NOT NULL DEFAULT 0,
		is_best_seller BOOLEAN NOT NULL DEFAULT FALSE,
		cover VARCHAR(500) NOT NULL DEFAULT '',
		year INTEGER NOT NULL,
		edition VARCHAR(100),
		stock INTEGER NOT NULL DEFAULT 0,
		sales INTEGER NOT NULL DEFAULT 0,
		isbn VARCHAR(20) NOT NULL,
		author_id INTEGER NOT NULL REFERENCES authors(id),
		genre_id INTEGER NOT NULL REFERENCES genres(id),
		publisher_id INTEGER NOT NULL REFERENCES publishers(id),
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS authors (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		bio TEXT,
		birth_date TIMESTAMP,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS genres (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS publishers (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		address TEXT,
		phone TEXT,
		email TEXT,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS books (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		description TEXT NOT NULL,
		price REAL NOT NULL,
		discount INTEGER NOT NULL DEFAULT 0,
		rating REAL NOT NULL DEFAULT 0,
		is_best_seller INTEGER NOT NULL DEFAULT 0,
		cover TEXT NOT NULL DEFAULT '',
		year INTEGER NOT NULL,
		edition TEXT,
		stock INTEGER NOT NULL DEFAULT 0,
		sales INTEGER NOT NULL DEFAULT 0,
		isbn TEXT NOT NULL,
		author_id INTEGER NOT NULL REFERENCES authors(id),
		genre_id INTEGER NOT NULL REFERENCES genres(id),
		publisher_id INTEGER NOT NULL REFERENCES publishers(id),
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
}

// EnsureSchema creates the catalog tables for the given backend when
// they do not exist yet.
func EnsureSchema(ctx context.Context, db *sql.DB, d dialect) error {
	statements := sqliteSchema
	if d.name() == "postgres" {
		statements = postgresSchema
	}
	for _, statement := range statements {
		if _, err := db.ExecContext(ctx, statement); err != nil {
			return fmt.Errorf("failed to apply %s schema: %w", d.name(), err)
		}
	}
	return nil
}
