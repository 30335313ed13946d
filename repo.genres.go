package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

const genreColumns = "id, name, created_at, updated_at"

// GenresRepo implements GenreStorage on top of a relational backend.
type GenresRepo struct {
	logger  *zap.Logger
	db      *sql.DB
	dialect dialect
}

// NewGenresRepo provides a genres storage service.
func NewGenresRepo(logger *zap.Logger, db *sql.DB, d dialect) *GenresRepo {
	return &GenresRepo{logger: logger, db: db, dialect: d}
}

func (r *GenresRepo) findOne(ctx context.Context, query string, args ...any) (Genre, error) {
	row, err := queryRowMap(ctx, r.db, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return Genre{}, ErrGenreNotFound
	}
	if err != nil {
		return Genre{}, fmt.Errorf("failed to query genre: %w", err)
	}
	genre, err := normalizeGenre(row)
	if err != nil {
		r.logger.Error("genres storage returned an invalid row", zap.Error(err))
		return Genre{}, err
	}
	return genre, nil
}

// FindAll returns every genre ordered by id.
func (r *GenresRepo) FindAll(ctx context.Context) ([]Genre, error) {
	query := fmt.Sprintf("SELECT %s FROM genres ORDER BY id", genreColumns)
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query genres: %w", err)
	}
	defer rows.Close()
	maps, err := scanRowMaps(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan genres rows: %w", err)
	}
	genres := make([]Genre, 0, len(maps))
	for _, row := range maps {
		genre, err := normalizeGenre(row)
		if err != nil {
			r.logger.Error("genres storage returned an invalid row", zap.Error(err))
			return nil, err
		}
		genres = append(genres, genre)
	}
	return genres, nil
}

// FindByID returns the genre matching the given id.
func (r *GenresRepo) FindByID(ctx context.Context, id int64) (Genre, error) {
	query := fmt.Sprintf("SELECT %s FROM genres WHERE id = %s", genreColumns, r.dialect.placeholder(1))
	return r.findOne(ctx, query, id)
}

// FindByName returns the genre with the exact given name, the genre
// natural key used for uniqueness checks.
func (r *GenresRepo) FindByName(ctx context.Context, name string) (Genre, error) {
	query := fmt.Sprintf("SELECT %s FROM genres WHERE name = %s", genreColumns, r.dialect.placeholder(1))
	return r.findOne(ctx, query, name)
}

// Create inserts a new genre and reads the stored row back.
func (r *GenresRepo) Create(ctx context.Context, payload GenreCreate) (Genre, error) {
	query := fmt.Sprintf("INSERT INTO genres (name) VALUES (%s) RETURNING id", r.dialect.placeholder(1))
	var id int64
	if err := r.db.QueryRowContext(ctx, query, payload.Name).Scan(&id); err != nil {
		return Genre{}, fmt.Errorf("failed to insert genre: %w", err)
	}
	return r.FindByID(ctx, id)
}

// Update renames the genre matching the given id.
func (r *GenresRepo) Update(ctx context.Context, id int64, payload GenreUpdate) (Genre, error) {
	if payload.Name == nil {
		return Genre{}, ErrNothingToUpdate
	}
	query := fmt.Sprintf("UPDATE genres SET name = %s, updated_at = CURRENT_TIMESTAMP WHERE id = %s",
		r.dialect.placeholder(1), r.dialect.placeholder(2))
	result, err := r.db.ExecContext(ctx, query, *payload.Name, id)
	if err != nil {
		return Genre{}, fmt.Errorf("failed to update genre: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return Genre{}, fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return Genre{}, ErrGenreNotFound
	}
	return r.FindByID(ctx, id)
}

// Delete removes the genre matching the given id.
func (r *GenresRepo) Delete(ctx context.Context, id int64) error {
	query := fmt.Sprintf("DELETE FROM genres WHERE id = %s", r.dialect.placeholder(1))
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete genre: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return ErrGenreNotFound
	}
	return nil
}
