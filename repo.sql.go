package main

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// dialect isolates the few places where the two supported backends
// diverge: placeholder style and case-insensitive matching.
type dialect interface {
	name() string
	// placeholder renders the n-th (1-based) bound parameter marker.
	placeholder(n int) string
	// contains renders a case-insensitive substring match on col against
	// the n-th bound parameter.
	contains(col string, n int) string
}

type postgresDialect struct{}

func (postgresDialect) name() string { return "postgres" }

func (postgresDialect) placeholder(n int) string { return fmt.Sprintf("$%d", n) }

func (d postgresDialect) contains(col string, n int) string {
	return fmt.Sprintf("%s ILIKE %s", col, d.placeholder(n))
}

type sqliteDialect struct{}

func (sqliteDialect) name() string { return "sqlite" }

func (sqliteDialect) placeholder(n int) string { return "?" }

func (d sqliteDialect) contains(col string, n int) string {
	return fmt.Sprintf("LOWER(%s) LIKE LOWER(%s)", col, d.placeholder(n))
}

// GetPostgresClient provides a ready-to-use postgres connection pool.
func GetPostgresClient(ctx context.Context, config PostgresConfig) (*sql.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		config.Host, config.Port, config.User, config.Password, config.Database, config.SSLMode)
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres connection: %w", err)
	}
	db.SetMaxOpenConns(config.MaxOpenConns)
	db.SetMaxIdleConns(config.MaxIdleConns)
	db.SetConnMaxLifetime(config.ConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, config.ConnectTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping postgres database: %w", err)
	}
	return db, nil
}

// GetSQLiteClient provides a ready-to-use sqlite database handle. The
// busy timeout keeps concurrent writers from failing fast on locks.
func GetSQLiteClient(ctx context.Context, config SQLiteConfig) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=%d", config.FilePath, config.BusyTimeout.Milliseconds())
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}
	return db, nil
}

// scanRowMaps drains a result set into untyped per-column maps so the
// entity model can normalize driver-specific value encodings.
func scanRowMaps(rows *sql.Rows) ([]rowMap, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	var results []rowMap
	for rows.Next() {
		values := make([]any, len(columns))
		pointers := make([]any, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return nil, err
		}
		row := make(rowMap, len(columns))
		for i, col := range columns {
			row[col] = values[i]
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// queryRowMap runs a query expected to yield at most one row. It
// returns sql.ErrNoRows when the row does not exist.
func queryRowMap(ctx context.Context, db *sql.DB, query string, args ...any) (rowMap, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	maps, err := scanRowMaps(rows)
	if err != nil {
		return nil, err
	}
	if len(maps) == 0 {
		return nil, sql.ErrNoRows
	}
	return maps[0], nil
}
