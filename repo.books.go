package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// BooksRepo implements BookStorage on top of a relational backend.
type BooksRepo struct {
	logger  *zap.Logger
	db      *sql.DB
	dialect dialect
}

// NewBooksRepo provides a books storage service.
func NewBooksRepo(logger *zap.Logger, db *sql.DB, d dialect) *BooksRepo {
	return &BooksRepo{logger: logger, db: db, dialect: d}
}

func (r *BooksRepo) findMany(ctx context.Context, query string, args ...any) ([]Book, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query books: %w", err)
	}
	defer rows.Close()
	maps, err := scanRowMaps(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan books rows: %w", err)
	}
	books := make([]Book, 0, len(maps))
	for _, row := range maps {
		book, err := normalizeBook(row)
		if err != nil {
			r.logger.Error("books storage returned an invalid row", zap.Error(err))
			return nil, err
		}
		books = append(books, book)
	}
	return books, nil
}

func (r *BooksRepo) findOne(ctx context.Context, query string, args ...any) (Book, error) {
	row, err := queryRowMap(ctx, r.db, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return Book{}, ErrBookNotFound
	}
	if err != nil {
		return Book{}, fmt.Errorf("failed to query book: %w", err)
	}
	book, err := normalizeBook(row)
	if err != nil {
		r.logger.Error("books storage returned an invalid row", zap.Error(err))
		return Book{}, err
	}
	return book, nil
}

// FindAll returns every book ordered by id.
func (r *BooksRepo) FindAll(ctx context.Context) ([]Book, error) {
	query := fmt.Sprintf("SELECT %s FROM books ORDER BY id", bookColumns)
	return r.findMany(ctx, query)
}

// FindByID returns the book matching the given id.
func (r *BooksRepo) FindByID(ctx context.Context, id int64) (Book, error) {
	query := fmt.Sprintf("SELECT %s FROM books WHERE id = %s", bookColumns, r.dialect.placeholder(1))
	return r.findOne(ctx, query, id)
}

// FindByTitle returns the book with the exact given title, the book
// natural key used for uniqueness checks.
func (r *BooksRepo) FindByTitle(ctx context.Context, title string) (Book, error) {
	query := fmt.Sprintf("SELECT %s FROM books WHERE title = %s", bookColumns, r.dialect.placeholder(1))
	return r.findOne(ctx, query, title)
}

// FindByFilters returns the books matching every set criterion.
func (r *BooksRepo) FindByFilters(ctx context.Context, filter BookFilter) ([]Book, error) {
	query, args := buildBookFilterQuery(r.dialect, filter)
	return r.findMany(ctx, query, args...)
}

// Search returns the books whose title or isbn contains the term.
func (r *BooksRepo) Search(ctx context.Context, term string) ([]Book, error) {
	query, args := buildBookSearchQuery(r.dialect, term)
	return r.findMany(ctx, query, args...)
}

// Create inserts a new book and reads the stored row back so the
// caller sees the backend-assigned id and timestamps.
func (r *BooksRepo) Create(ctx context.Context, payload BookCreate) (Book, error) {
	d := r.dialect
	query := fmt.Sprintf(`INSERT INTO books (title, description, price, discount, rating,
		is_best_seller, cover, year, edition, stock, sales, isbn, author_id, genre_id, publisher_id)
		VALUES (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s) RETURNING id`,
		d.placeholder(1), d.placeholder(2), d.placeholder(3), d.placeholder(4), d.placeholder(5),
		d.placeholder(6), d.placeholder(7), d.placeholder(8), d.placeholder(9), d.placeholder(10),
		d.placeholder(11), d.placeholder(12), d.placeholder(13), d.placeholder(14), d.placeholder(15))

	var edition any
	if payload.Edition != nil {
		edition = *payload.Edition
	}
	var id int64
	err := r.db.QueryRowContext(ctx, query, payload.Title, payload.Description, payload.Price,
		payload.Discount, payload.Rating, payload.IsBestSeller, payload.Cover, payload.Year,
		edition, payload.Stock, payload.Sales, payload.ISBN, payload.AuthorID, payload.GenreID,
		payload.PublisherID).Scan(&id)
	if err != nil {
		return Book{}, fmt.Errorf("failed to insert book: %w", err)
	}
	return r.FindByID(ctx, id)
}

// Update writes the defined fields of a partial update and refreshes
// the row modification timestamp. Updating a missing book reports a
// not-found failure.
func (r *BooksRepo) Update(ctx context.Context, id int64, payload BookUpdate) (Book, error) {
	var sets []string
	var args []any

	set := func(col string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = %s", col, r.dialect.placeholder(len(args))))
	}

	if payload.Title != nil {
		set("title", *payload.Title)
	}
	if payload.Description != nil {
		set("description", *payload.Description)
	}
	if payload.Price != nil {
		set("price", *payload.Price)
	}
	if payload.Discount != nil {
		set("discount", *payload.Discount)
	}
	if payload.Rating != nil {
		set("rating", *payload.Rating)
	}
	if payload.IsBestSeller != nil {
		set("is_best_seller", *payload.IsBestSeller)
	}
	if payload.Cover != nil {
		set("cover", *payload.Cover)
	}
	if payload.Year != nil {
		set("year", *payload.Year)
	}
	if payload.Edition.Defined {
		if payload.Edition.Valid {
			set("edition", payload.Edition.Value)
		} else {
			set("edition", nil)
		}
	}
	if payload.Stock != nil {
		set("stock", *payload.Stock)
	}
	if payload.Sales != nil {
		set("sales", *payload.Sales)
	}
	if payload.ISBN != nil {
		set("isbn", *payload.ISBN)
	}
	if payload.AuthorID != nil {
		set("author_id", *payload.AuthorID)
	}
	if payload.GenreID != nil {
		set("genre_id", *payload.GenreID)
	}
	if payload.PublisherID != nil {
		set("publisher_id", *payload.PublisherID)
	}
	if len(sets) == 0 {
		return Book{}, ErrNothingToUpdate
	}
	sets = append(sets, "updated_at = CURRENT_TIMESTAMP")

	args = append(args, id)
	query := fmt.Sprintf("UPDATE books SET %s WHERE id = %s",
		strings.Join(sets, ", "), r.dialect.placeholder(len(args)))
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return Book{}, fmt.Errorf("failed to update book: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return Book{}, fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return Book{}, ErrBookNotFound
	}
	return r.FindByID(ctx, id)
}

// Delete removes the book matching the given id.
func (r *BooksRepo) Delete(ctx context.Context, id int64) error {
	query := fmt.Sprintf("DELETE FROM books WHERE id = %s", r.dialect.placeholder(1))
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return ErrBookNotFound
	}
	return nil
}
