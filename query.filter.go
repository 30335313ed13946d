package main

import (
	"fmt"
	"strings"
)

const bookColumns = `id, title, description, price, discount, rating, is_best_seller,
	cover, year, edition, stock, sales, isbn, author_id, genre_id, publisher_id,
	created_at, updated_at`

// buildBookFilterQuery assembles the books listing query from the set
// criteria. Clauses always come out in the same order so an identical
// filter yields an identical statement, and every value is bound, never
// spliced into the text. An empty filter means no WHERE clause at all.
func buildBookFilterQuery(d dialect, filter BookFilter) (string, []any) {
	var clauses []string
	var args []any

	bind := func(clause string, value any) {
		args = append(args, value)
		clauses = append(clauses, fmt.Sprintf(clause, d.placeholder(len(args))))
	}

	if filter.Title != nil {
		args = append(args, "%"+*filter.Title+"%")
		clauses = append(clauses, d.contains("title", len(args)))
	}
	if filter.AuthorID != nil {
		bind("author_id = %s", *filter.AuthorID)
	}
	if filter.GenreID != nil {
		bind("genre_id = %s", *filter.GenreID)
	}
	if filter.PublisherID != nil {
		bind("publisher_id = %s", *filter.PublisherID)
	}
	if filter.MinPrice != nil {
		bind("price >= %s", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		bind("price <= %s", *filter.MaxPrice)
	}
	if filter.IsBestSeller != nil {
		bind("is_best_seller = %s", *filter.IsBestSeller)
	}
	if filter.MinRating != nil {
		bind("rating >= %s", *filter.MinRating)
	}
	if filter.MaxRating != nil {
		bind("rating <= %s", *filter.MaxRating)
	}
	if filter.MinDiscount != nil {
		bind("discount >= %s", *filter.MinDiscount)
	}
	if filter.MaxDiscount != nil {
		bind("discount <= %s", *filter.MaxDiscount)
	}
	if filter.Year != nil {
		bind("year = %s", *filter.Year)
	}

	query := fmt.Sprintf("SELECT %s FROM books", bookColumns)
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY id"
	return query, args
}

// buildBookSearchQuery assembles the free-text search over title and
// isbn, both matched case-insensitively as substrings.
func buildBookSearchQuery(d dialect, term string) (string, []any) {
	pattern := "%" + term + "%"
	query := fmt.Sprintf("SELECT %s FROM books WHERE %s OR %s ORDER BY id",
		bookColumns, d.contains("title", 1), d.contains("isbn", 2))
	return query, []any{pattern, pattern}
}
