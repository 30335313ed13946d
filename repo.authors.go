package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

const authorColumns = "id, name, last_name, bio, birth_date, created_at, updated_at"

// AuthorsRepo implements AuthorStorage on top of a relational backend.
type AuthorsRepo struct {
	logger  *zap.Logger
	db      *sql.DB
	dialect dialect
}

// NewAuthorsRepo provides an authors storage service.
func NewAuthorsRepo(logger *zap.Logger, db *sql.DB, d dialect) *AuthorsRepo {
	return &AuthorsRepo{logger: logger, db: db, dialect: d}
}

func (r *AuthorsRepo) findOne(ctx context.Context, query string, args ...any) (Author, error) {
	row, err := queryRowMap(ctx, r.db, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return Author{}, ErrAuthorNotFound
	}
	if err != nil {
		return Author{}, fmt.Errorf("failed to query author: %w", err)
	}
	author, err := normalizeAuthor(row)
	if err != nil {
		r.logger.Error("authors storage returned an invalid row", zap.Error(err))
		return Author{}, err
	}
	return author, nil
}

// FindAll returns every author ordered by id.
func (r *AuthorsRepo) FindAll(ctx context.Context) ([]Author, error) {
	query := fmt.Sprintf("SELECT %s FROM authors ORDER BY id", authorColumns)
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query authors: %w", err)
	}
	defer rows.Close()
	maps, err := scanRowMaps(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan authors rows: %w", err)
	}
	authors := make([]Author, 0, len(maps))
	for _, row := range maps {
		author, err := normalizeAuthor(row)
		if err != nil {
			r.logger.Error("authors storage returned an invalid row", zap.Error(err))
			return nil, err
		}
		authors = append(authors, author)
	}
	return authors, nil
}

// FindByID returns the author matching the given id.
func (r *AuthorsRepo) FindByID(ctx context.Context, id int64) (Author, error) {
	query := fmt.Sprintf("SELECT %s FROM authors WHERE id = %s", authorColumns, r.dialect.placeholder(1))
	return r.findOne(ctx, query, id)
}

// FindByName returns the author with the exact given name and last
// name, the author natural key used for uniqueness checks.
func (r *AuthorsRepo) FindByName(ctx context.Context, name, lastName string) (Author, error) {
	query := fmt.Sprintf("SELECT %s FROM authors WHERE name = %s AND last_name = %s",
		authorColumns, r.dialect.placeholder(1), r.dialect.placeholder(2))
	return r.findOne(ctx, query, name, lastName)
}

// Create inserts a new author and reads the stored row back.
func (r *AuthorsRepo) Create(ctx context.Context, payload AuthorCreate) (Author, error) {
	d := r.dialect
	query := fmt.Sprintf("INSERT INTO authors (name, last_name, bio, birth_date) VALUES (%s, %s, %s, %s) RETURNING id",
		d.placeholder(1), d.placeholder(2), d.placeholder(3), d.placeholder(4))

	var bio, birthDate any
	if payload.Bio != nil {
		bio = *payload.Bio
	}
	if payload.BirthDate != nil {
		birthDate = *payload.BirthDate
	}
	var id int64
	if err := r.db.QueryRowContext(ctx, query, payload.Name, payload.LastName, bio, birthDate).Scan(&id); err != nil {
		return Author{}, fmt.Errorf("failed to insert author: %w", err)
	}
	return r.FindByID(ctx, id)
}

// Update writes the defined fields of a partial update. An explicit
// null clears the nullable bio and birth_date columns.
func (r *AuthorsRepo) Update(ctx context.Context, id int64, payload AuthorUpdate) (Author, error) {
	var sets []string
	var args []any

	set := func(col string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = %s", col, r.dialect.placeholder(len(args))))
	}

	if payload.Name != nil {
		set("name", *payload.Name)
	}
	if payload.LastName != nil {
		set("last_name", *payload.LastName)
	}
	if payload.Bio.Defined {
		if payload.Bio.Valid {
			set("bio", payload.Bio.Value)
		} else {
			set("bio", nil)
		}
	}
	if payload.BirthDate.Defined {
		if payload.BirthDate.Valid {
			set("birth_date", payload.BirthDate.Value)
		} else {
			set("birth_date", nil)
		}
	}
	if len(sets) == 0 {
		return Author{}, ErrNothingToUpdate
	}
	sets = append(sets, "updated_at = CURRENT_TIMESTAMP")

	args = append(args, id)
	query := fmt.Sprintf("UPDATE authors SET %s WHERE id = %s",
		strings.Join(sets, ", "), r.dialect.placeholder(len(args)))
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return Author{}, fmt.Errorf("failed to update author: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return Author{}, fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return Author{}, ErrAuthorNotFound
	}
	return r.FindByID(ctx, id)
}

// Delete removes the author matching the given id.
func (r *AuthorsRepo) Delete(ctx context.Context, id int64) error {
	query := fmt.Sprintf("DELETE FROM authors WHERE id = %s", r.dialect.placeholder(1))
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete author: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return ErrAuthorNotFound
	}
	return nil
}
