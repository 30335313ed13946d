package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// The two relational backends return row values with different Go types:
// lib/pq hands NUMERIC columns back as []byte and booleans as bool, while
// go-sqlite3 hands booleans back as int64 and may return timestamps as
// strings. The coercion table below turns any of those encodings into the
// canonical type, so a single entity model serves both backends. Anything
// it cannot coerce makes the row fail closed as corrupt.

// toString coerces a driver or json value into a string.
func toString(v any) (string, error) {
	switch s := v.(type) {
	case string:
		return s, nil
	case []byte:
		return string(s), nil
	}
	return "", fmt.Errorf("unexpected type %T for string value", v)
}

// toFloat coerces a driver or json value into a float64. Numeric
// strings like "19.99" are accepted since pq encodes NUMERIC that way.
func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case int:
		return float64(n), nil
	case json.Number:
		return n.Float64()
	case []byte:
		return strconv.ParseFloat(string(n), 64)
	case string:
		return strconv.ParseFloat(n, 64)
	}
	return 0, fmt.Errorf("unexpected type %T for numeric value", v)
}

// toInt coerces a driver or json value into an int64. A fractional
// number is an error, not a truncation.
func toInt(v any) (int64, error) {
	switch n := v.(type) {
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	case float64:
		if n != float64(int64(n)) {
			return 0, fmt.Errorf("value %v is not an integer", n)
		}
		return int64(n), nil
	case json.Number:
		return n.Int64()
	case []byte:
		return strconv.ParseInt(string(n), 10, 64)
	case string:
		return strconv.ParseInt(n, 10, 64)
	}
	return 0, fmt.Errorf("unexpected type %T for integer value", v)
}

// toBool coerces a driver or json value into a bool. It accepts native
// booleans, 0/1 integers and the "true"/"false"/"t"/"f"/"0"/"1" strings.
func toBool(v any) (bool, error) {
	switch b := v.(type) {
	case bool:
		return b, nil
	case int64:
		return intToBool(b)
	case int:
		return intToBool(int64(b))
	case float64:
		if b != float64(int64(b)) {
			return false, fmt.Errorf("value %v is not a boolean", b)
		}
		return intToBool(int64(b))
	case []byte:
		return stringToBool(string(b))
	case string:
		return stringToBool(b)
	}
	return false, fmt.Errorf("unexpected type %T for boolean value", v)
}

func intToBool(n int64) (bool, error) {
	switch n {
	case 0:
		return false, nil
	case 1:
		return true, nil
	}
	return false, fmt.Errorf("value %d is not a boolean", n)
}

func stringToBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "true", "t", "1":
		return true, nil
	case "false", "f", "0":
		return false, nil
	}
	return false, fmt.Errorf("value %q is not a boolean", s)
}

// timeLayouts lists the textual date encodings seen across both
// backends, most specific first.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// toTime coerces a driver or json value into a time.Time.
func toTime(v any) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case []byte:
		return parseTime(string(t))
	case string:
		return parseTime(t)
	}
	return time.Time{}, fmt.Errorf("unexpected type %T for date value", v)
}

func parseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("value %q is not a valid date", s)
}

// rowMap is a raw storage row keyed by column name, as handed back by
// the driver before any normalization.
type rowMap map[string]any

func (r rowMap) int64Col(v *Validator, col string) int64 {
	raw, ok := r[col]
	if !ok || raw == nil {
		v.Add(col, "missing value")
		return 0
	}
	n, err := toInt(raw)
	if err != nil {
		v.Add(col, err.Error())
	}
	return n
}

func (r rowMap) intCol(v *Validator, col string) int {
	return int(r.int64Col(v, col))
}

func (r rowMap) floatCol(v *Validator, col string) float64 {
	raw, ok := r[col]
	if !ok || raw == nil {
		v.Add(col, "missing value")
		return 0
	}
	f, err := toFloat(raw)
	if err != nil {
		v.Add(col, err.Error())
	}
	return f
}

func (r rowMap) boolCol(v *Validator, col string) bool {
	raw, ok := r[col]
	if !ok || raw == nil {
		v.Add(col, "missing value")
		return false
	}
	b, err := toBool(raw)
	if err != nil {
		v.Add(col, err.Error())
	}
	return b
}

func (r rowMap) stringCol(v *Validator, col string) string {
	raw, ok := r[col]
	if !ok || raw == nil {
		v.Add(col, "missing value")
		return ""
	}
	s, err := toString(raw)
	if err != nil {
		v.Add(col, err.Error())
	}
	return s
}

func (r rowMap) timeCol(v *Validator, col string) time.Time {
	raw, ok := r[col]
	if !ok || raw == nil {
		v.Add(col, "missing value")
		return time.Time{}
	}
	t, err := toTime(raw)
	if err != nil {
		v.Add(col, err.Error())
	}
	return t
}

func (r rowMap) nullStringCol(v *Validator, col string) *string {
	raw, ok := r[col]
	if !ok || raw == nil {
		return nil
	}
	s, err := toString(raw)
	if err != nil {
		v.Add(col, err.Error())
		return nil
	}
	return &s
}

func (r rowMap) nullTimeCol(v *Validator, col string) *time.Time {
	raw, ok := r[col]
	if !ok || raw == nil {
		return nil
	}
	t, err := toTime(raw)
	if err != nil {
		v.Add(col, err.Error())
		return nil
	}
	return &t
}

// normalizeBook converts a raw books row into a canonical Book. After
// coercion the row is checked against the book schema; a failure means
// the stored content is corrupt and yields an IntegrityError.
func normalizeBook(row rowMap) (Book, error) {
	v := NewValidator()
	book := Book{
		ID:           row.int64Col(v, "id"),
		Title:        row.stringCol(v, "title"),
		Description:  row.stringCol(v, "description"),
		Price:        row.floatCol(v, "price"),
		Discount:     row.intCol(v, "discount"),
		Rating:       row.floatCol(v, "rating"),
		IsBestSeller: row.boolCol(v, "is_best_seller"),
		Cover:        row.stringCol(v, "cover"),
		Year:         row.intCol(v, "year"),
		Edition:      row.nullStringCol(v, "edition"),
		Stock:        row.intCol(v, "stock"),
		Sales:        row.intCol(v, "sales"),
		ISBN:         row.stringCol(v, "isbn"),
		AuthorID:     row.int64Col(v, "author_id"),
		GenreID:      row.int64Col(v, "genre_id"),
		PublisherID:  row.int64Col(v, "publisher_id"),
		CreatedAt:    row.timeCol(v, "created_at"),
		UpdatedAt:    row.timeCol(v, "updated_at"),
	}
	if v.Valid() {
		v.Check(book.ID >= 1, "id", "must be a positive integer")
		checkBookAttributes(v, bookAttributes{
			title: book.Title, description: book.Description, price: book.Price,
			discount: book.Discount, rating: book.Rating, cover: book.Cover,
			year: book.Year, stock: book.Stock, sales: book.Sales, isbn: book.ISBN,
			authorID: book.AuthorID, genreID: book.GenreID, publisherID: book.PublisherID,
		})
		v.Check(!book.CreatedAt.IsZero(), "created_at", "must be a valid date")
		v.Check(!book.UpdatedAt.IsZero(), "updated_at", "must be a valid date")
	}
	if !v.Valid() {
		return Book{}, newIntegrityError("book", v.Violations)
	}
	return book, nil
}

// normalizeAuthor converts a raw authors row into a canonical Author.
func normalizeAuthor(row rowMap) (Author, error) {
	v := NewValidator()
	author := Author{
		ID:        row.int64Col(v, "id"),
		Name:      row.stringCol(v, "name"),
		LastName:  row.stringCol(v, "last_name"),
		Bio:       row.nullStringCol(v, "bio"),
		BirthDate: row.nullTimeCol(v, "birth_date"),
		CreatedAt: row.timeCol(v, "created_at"),
		UpdatedAt: row.timeCol(v, "updated_at"),
	}
	if v.Valid() {
		v.Check(author.ID >= 1, "id", "must be a positive integer")
		checkNameLength(v, "name", author.Name, 100)
		checkNameLength(v, "last_name", author.LastName, 100)
		v.Check(!author.CreatedAt.IsZero(), "created_at", "must be a valid date")
		v.Check(!author.UpdatedAt.IsZero(), "updated_at", "must be a valid date")
	}
	if !v.Valid() {
		return Author{}, newIntegrityError("author", v.Violations)
	}
	return author, nil
}

// normalizeGenre converts a raw genres row into a canonical Genre.
func normalizeGenre(row rowMap) (Genre, error) {
	v := NewValidator()
	genre := Genre{
		ID:        row.int64Col(v, "id"),
		Name:      row.stringCol(v, "name"),
		CreatedAt: row.timeCol(v, "created_at"),
		UpdatedAt: row.timeCol(v, "updated_at"),
	}
	if v.Valid() {
		v.Check(genre.ID >= 1, "id", "must be a positive integer")
		checkNameLength(v, "name", genre.Name, 50)
		v.Check(!genre.CreatedAt.IsZero(), "created_at", "must be a valid date")
		v.Check(!genre.UpdatedAt.IsZero(), "updated_at", "must be a valid date")
	}
	if !v.Valid() {
		return Genre{}, newIntegrityError("genre", v.Violations)
	}
	return genre, nil
}

// normalizePublisher converts a raw publishers row into a canonical Publisher.
func normalizePublisher(row rowMap) (Publisher, error) {
	v := NewValidator()
	publisher := Publisher{
		ID:        row.int64Col(v, "id"),
		Name:      row.stringCol(v, "name"),
		Address:   row.nullStringCol(v, "address"),
		Phone:     row.nullStringCol(v, "phone"),
		Email:     row.nullStringCol(v, "email"),
		CreatedAt: row.timeCol(v, "created_at"),
		UpdatedAt: row.timeCol(v, "updated_at"),
	}
	if v.Valid() {
		v.Check(publisher.ID >= 1, "id", "must be a positive integer")
		checkNameLength(v, "name", publisher.Name, 100)
		if publisher.Address != nil {
			v.Check(len(*publisher.Address) <= 200, "address", "must not be more than 200 characters long")
		}
		if publisher.Phone != nil {
			v.Check(len(*publisher.Phone) <= 20, "phone", "must not be more than 20 characters long")
		}
		if publisher.Email != nil {
			v.Check(EmailRX.MatchString(*publisher.Email), "email", "must be a valid email address")
		}
		v.Check(!publisher.CreatedAt.IsZero(), "created_at", "must be a valid date")
		v.Check(!publisher.UpdatedAt.IsZero(), "updated_at", "must be a valid date")
	}
	if !v.Valid() {
		return Publisher{}, newIntegrityError("publisher", v.Violations)
	}
	return publisher, nil
}

// checkNameLength applies the usual non-empty plus bounded-length rule.
func checkNameLength(v *Validator, field, value string, max int) {
	v.Check(len(value) >= 1, field, "must be provided")
	v.Check(len(value) <= max, field, fmt.Sprintf("must not be more than %d characters long", max))
}
