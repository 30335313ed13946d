package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

const publisherColumns = "id, name, address, phone, email, created_at, updated_at"

// PublishersRepo implements PublisherStorage on top of a relational backend.
type PublishersRepo struct {
	logger  *zap.Logger
	db      *sql.DB
	dialect dialect
}

// NewPublishersRepo provides a publishers storage service.
func NewPublishersRepo(logger *zap.Logger, db *sql.DB, d dialect) *PublishersRepo {
	return &PublishersRepo{logger: logger, db: db, dialect: d}
}

func (r *PublishersRepo) findOne(ctx context.Context, query string, args ...any) (Publisher, error) {
	row, err := queryRowMap(ctx, r.db, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return Publisher{}, ErrPublisherNotFound
	}
	if err != nil {
		return Publisher{}, fmt.Errorf("failed to query publisher: %w", err)
	}
	publisher, err := normalizePublisher(row)
	if err != nil {
		r.logger.Error("publishers storage returned an invalid row", zap.Error(err))
		return Publisher{}, err
	}
	return publisher, nil
}

// FindAll returns every publisher ordered by id.
func (r *PublishersRepo) FindAll(ctx context.Context) ([]Publisher, error) {
	query := fmt.Sprintf("SELECT %s FROM publishers ORDER BY id", publisherColumns)
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query publishers: %w", err)
	}
	defer rows.Close()
	maps, err := scanRowMaps(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan publishers rows: %w", err)
	}
	publishers := make([]Publisher, 0, len(maps))
	for _, row := range maps {
		publisher, err := normalizePublisher(row)
		if err != nil {
			r.logger.Error("publishers storage returned an invalid row", zap.Error(err))
			return nil, err
		}
		publishers = append(publishers, publisher)
	}
	return publishers, nil
}

// FindByID returns the publisher matching the given id.
func (r *PublishersRepo) FindByID(ctx context.Context, id int64) (Publisher, error) {
	query := fmt.Sprintf("SELECT %s FROM publishers WHERE id = %s", publisherColumns, r.dialect.placeholder(1))
	return r.findOne(ctx, query, id)
}

// FindByName returns the publisher with the exact given name, the
// publisher natural key used for uniqueness checks.
func (r *PublishersRepo) FindByName(ctx context.Context, name string) (Publisher, error) {
	query := fmt.Sprintf("SELECT %s FROM publishers WHERE name = %s", publisherColumns, r.dialect.placeholder(1))
	return r.findOne(ctx, query, name)
}

// Create inserts a new publisher and reads the stored row back.
func (r *PublishersRepo) Create(ctx context.Context, payload PublisherCreate) (Publisher, error) {
	d := r.dialect
	query := fmt.Sprintf("INSERT INTO publishers (name, address, phone, email) VALUES (%s, %s, %s, %s) RETURNING id",
		d.placeholder(1), d.placeholder(2), d.placeholder(3), d.placeholder(4))

	var address, phone, email any
	if payload.Address != nil {
		address = *payload.Address
	}
	if payload.Phone != nil {
		phone = *payload.Phone
	}
	if payload.Email != nil {
		email = *payload.Email
	}
	var id int64
	if err := r.db.QueryRowContext(ctx, query, payload.Name, address, phone, email).Scan(&id); err != nil {
		return Publisher{}, fmt.Errorf("failed to insert publisher: %w", err)
	}
	return r.FindByID(ctx, id)
}

// Update writes the defined fields of a partial update. An explicit
// null clears the nullable address, phone and email columns.
func (r *PublishersRepo) Update(ctx context.Context, id int64, payload PublisherUpdate) (Publisher, error) {
	var sets []string
	var args []any

	set := func(col string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = %s", col, r.dialect.placeholder(len(args))))
	}
	setNullable := func(col string, value NullableString) {
		if !value.Defined {
			return
		}
		if value.Valid {
			set(col, value.Value)
		} else {
			set(col, nil)
		}
	}

	if payload.Name != nil {
		set("name", *payload.Name)
	}
	setNullable("address", payload.Address)
	setNullable("phone", payload.Phone)
	setNullable("email", payload.Email)
	if len(sets) == 0 {
		return Publisher{}, ErrNothingToUpdate
	}
	sets = append(sets, "updated_at = CURRENT_TIMESTAMP")

	args = append(args, id)
	query := fmt.Sprintf("UPDATE publishers SET %s WHERE id = %s",
		strings.Join(sets, ", "), r.dialect.placeholder(len(args)))
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return Publisher{}, fmt.Errorf("failed to update publisher: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return Publisher{}, fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return Publisher{}, ErrPublisherNotFound
	}
	return r.FindByID(ctx, id)
}

// Delete removes the publisher matching the given id.
func (r *PublishersRepo) Delete(ctx context.Context, id int64) error {
	query := fmt.Sprintf("DELETE FROM publishers WHERE id = %s", r.dialect.placeholder(1))
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete publisher: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return ErrPublisherNotFound
	}
	return nil
}
