package main

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"testing"

	"github.com/ory/dockertest/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func startPostgresDockerContainer(t *testing.T) (*sql.DB, func()) {
	t.Helper()

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("Failed to start Dockertest: %+v", err)
	}

	err = pool.Client.Ping()
	if err != nil {
		t.Fatalf("Could not connect to Docker: %+v", err)
	}

	resource, err := pool.Run("postgres", "15-alpine", []string{
		"POSTGRES_USER=catalog",
		"POSTGRES_PASSWORD=catalog",
		"POSTGRES_DB=catalog",
	})
	if err != nil {
		t.Fatalf("Failed to start postgres: %+v", err)
	}

	addr := net.JoinHostPort("localhost", resource.GetPort("5432/tcp"))
	dsn := fmt.Sprintf("postgres://catalog:catalog@%s/catalog?sslmode=disable", addr)

	var db *sql.DB
	// ensure to wait for the container to be ready
	err = pool.Retry(func() error {
		var e error
		db, e = sql.Open("postgres", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	})
	if err != nil {
		t.Fatalf("Failed to ping Postgres: %+v", err)
	}

	destroyFunc := func() {
		db.Close()
		if err := pool.Purge(resource); err != nil {
			t.Logf("Failed to purge resource: %+v", err)
		}
	}

	return db, destroyFunc
}

func TestPostgresBooksStore(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping postgres container test in short mode")
	}
	db, destroyFunc := startPostgresDockerContainer(t)
	defer destroyFunc()

	ctx := context.Background()
	require.NoError(t, EnsureSchema(ctx, db, postgresDialect{}))

	_, err := db.ExecContext(ctx, `INSERT INTO authors (name, last_name) VALUES ('Frank', 'Herbert')`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `INSERT INTO genres (name) VALUES ('Science Fiction')`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `INSERT INTO publishers (name) VALUES ('Ace Books')`)
	require.NoError(t, err)

	repo := NewBooksRepo(zap.NewNop(), db, postgresDialect{})

	t.Run("create normalizes numeric columns", func(t *testing.T) {
		// pq hands NUMERIC values back as []byte, the row must still
		// come out with native floats.
		created, err := repo.Create(ctx, duneCreatePayload())
		require.NoError(t, err)
		assert.Equal(t, int64(1), created.ID)
		assert.Equal(t, 12.50, created.Price)
		assert.Equal(t, 4.5, created.Rating)
		assert.True(t, created.IsBestSeller)
	})

	t.Run("case-insensitive title filter", func(t *testing.T) {
		title := "DUNE"
		books, err := repo.FindByFilters(ctx, BookFilter{Title: &title})
		require.NoError(t, err)
		require.Len(t, books, 1)
	})

	t.Run("update refreshes row", func(t *testing.T) {
		price := 17.25
		updated, err := repo.Update(ctx, 1, BookUpdate{Price: &price})
		require.NoError(t, err)
		assert.Equal(t, 17.25, updated.Price)
	})

	t.Run("delete then not found", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, 1))
		_, err := repo.FindByID(ctx, 1)
		assert.ErrorIs(t, err, ErrBookNotFound)
	})
}
