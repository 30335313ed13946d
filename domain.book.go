package main

import (
	"context"
	"net/url"
	"time"
)

// Book is the canonical catalog record served to clients, whatever the
// storage backend encoded it as.
type Book struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Price        float64   `json:"price"`
	Discount     int       `json:"discount"`
	Rating       float64   `json:"rating"`
	IsBestSeller bool      `json:"is_best_seller"`
	Cover        string    `json:"cover"`
	Year         int       `json:"year"`
	Edition      *string   `json:"edition,omitempty"`
	Stock        int       `json:"stock"`
	Sales        int       `json:"sales"`
	ISBN         string    `json:"isbn"`
	AuthorID     int64     `json:"author_id"`
	GenreID      int64     `json:"genre_id"`
	PublisherID  int64     `json:"publisher_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// BookCreate carries a fully validated payload for a new book.
type BookCreate struct {
	Title        string
	Description  string
	Price        float64
	Discount     int
	Rating       float64
	IsBestSeller bool
	Cover        string
	Year         int
	Edition      *string
	Stock        int
	Sales        int
	ISBN         string
	AuthorID     int64
	GenreID      int64
	PublisherID  int64
}

// BookUpdate carries a partial update where only defined fields get
// written. Edition distinguishes explicit null from absent.
type BookUpdate struct {
	Title        *string
	Description  *string
	Price        *float64
	Discount     *int
	Rating       *float64
	IsBestSeller *bool
	Cover        *string
	Year         *int
	Edition      NullableString
	Stock        *int
	Sales        *int
	ISBN         *string
	AuthorID     *int64
	GenreID      *int64
	PublisherID  *int64
}

// Empty reports whether the update defines no field at all.
func (u BookUpdate) Empty() bool {
	return u.Title == nil && u.Description == nil && u.Price == nil &&
		u.Discount == nil && u.Rating == nil && u.IsBestSeller == nil &&
		u.Cover == nil && u.Year == nil && !u.Edition.Defined &&
		u.Stock == nil && u.Sales == nil && u.ISBN == nil &&
		u.AuthorID == nil && u.GenreID == nil && u.PublisherID == nil
}

// BookFilter holds the optional listing criteria. A nil field means
// the criterion is not part of the query.
type BookFilter struct {
	Title        *string
	AuthorID     *int64
	GenreID      *int64
	PublisherID  *int64
	MinPrice     *float64
	MaxPrice     *float64
	IsBestSeller *bool
	MinRating    *float64
	MaxRating    *float64
	MinDiscount  *int
	MaxDiscount  *int
	Year         *int
}

// Empty reports whether no criterion is set.
func (f BookFilter) Empty() bool {
	return f.Title == nil && f.AuthorID == nil && f.GenreID == nil &&
		f.PublisherID == nil && f.MinPrice == nil && f.MaxPrice == nil &&
		f.IsBestSeller == nil && f.MinRating == nil && f.MaxRating == nil &&
		f.MinDiscount == nil && f.MaxDiscount == nil && f.Year == nil
}

// BookStorage is the books persistence contract.
type BookStorage interface {
	FindAll(ctx context.Context) ([]Book, error)
	FindByID(ctx context.Context, id int64) (Book, error)
	FindByTitle(ctx context.Context, title string) (Book, error)
	FindByFilters(ctx context.Context, filter BookFilter) ([]Book, error)
	Search(ctx context.Context, term string) ([]Book, error)
	Create(ctx context.Context, payload BookCreate) (Book, error)
	Update(ctx context.Context, id int64, payload BookUpdate) (Book, error)
	Delete(ctx context.Context, id int64) error
}

// bookAttributes groups the checkable book fields so the same rules
// run on incoming payloads and on rows read back from storage.
type bookAttributes struct {
	title       string
	description string
	price       float64
	discount    int
	rating      float64
	cover       string
	year        int
	stock       int
	sales       int
	isbn        string
	authorID    int64
	genreID     int64
	publisherID int64
}

func checkBookAttributes(v *Validator, a bookAttributes) {
	v.Check(len(a.title) >= 1, "title", "must be provided")
	v.Check(len(a.title) <= 200, "title", "must not be more than 200 characters long")
	v.Check(len(a.description) >= 1, "description", "must be provided")
	v.Check(len(a.description) <= 2000, "description", "must not be more than 2000 characters long")
	v.Check(a.price >= 0, "price", "must not be negative")
	v.Check(a.discount >= 0 && a.discount <= 100, "discount", "must be between 0 and 100")
	v.Check(a.rating >= 0 && a.rating <= 5, "rating", "must be between 0 and 5")
	v.Check(len(a.cover) <= 500, "cover", "must not be more than 500 characters long")
	v.Check(a.year >= 1 && a.year <= 9999, "year", "must be a four digit year")
	v.Check(a.stock >= 0, "stock", "must not be negative")
	v.Check(a.sales >= 0, "sales", "must not be negative")
	v.Check(len(a.isbn) >= 1, "isbn", "must be provided")
	v.Check(len(a.isbn) <= 20, "isbn", "must not be more than 20 characters long")
	v.Check(a.authorID >= 1, "author_id", "must be a positive integer")
	v.Check(a.genreID >= 1, "genre_id", "must be a positive integer")
	v.Check(a.publisherID >= 1, "publisher_id", "must be a positive integer")
}

// BookCreateFromRaw coerces and validates an untyped json body into a
// creation payload. All violations come back in one ordered list.
func BookCreateFromRaw(raw map[string]any) (BookCreate, []Violation) {
	v := NewValidator()
	in := rawInput(raw)

	payload := BookCreate{
		Title:       in.requireString(v, "title"),
		Description: in.requireString(v, "description"),
		Price:       in.requireFloat(v, "price"),
		ISBN:        in.requireString(v, "isbn"),
		AuthorID:    in.requireInt(v, "author_id"),
		GenreID:     in.requireInt(v, "genre_id"),
		PublisherID: in.requireInt(v, "publisher_id"),
	}
	if year, ok := in.intField(v, "year"); ok {
		payload.Year = int(year)
	} else {
		v.Add("year", "must be provided")
	}
	if discount, ok := in.intField(v, "discount"); ok {
		payload.Discount = int(discount)
	}
	if rating, ok := in.floatField(v, "rating"); ok {
		payload.Rating = rating
	}
	if best, ok := in.boolField(v, "is_best_seller"); ok {
		payload.IsBestSeller = best
	}
	if cover, ok := in.stringField(v, "cover"); ok {
		payload.Cover = cover
	}
	if stock, ok := in.intField(v, "stock"); ok {
		payload.Stock = int(stock)
	}
	if sales, ok := in.intField(v, "sales"); ok {
		payload.Sales = int(sales)
	}
	if edition := in.nullableStringField(v, "edition"); edition.Defined && edition.Valid {
		payload.Edition = &edition.Value
	}

	if v.Valid() {
		checkBookAttributes(v, bookAttributes{
			title: payload.Title, description: payload.Description, price: payload.Price,
			discount: payload.Discount, rating: payload.Rating, cover: payload.Cover,
			year: payload.Year, stock: payload.Stock, sales: payload.Sales, isbn: payload.ISBN,
			authorID: payload.AuthorID, genreID: payload.GenreID, publisherID: payload.PublisherID,
		})
	}
	return payload, v.Violations
}

// BookUpdateFromRaw coerces and validates an untyped json body into a
// partial update. Absent fields stay nil and are left untouched.
func BookUpdateFromRaw(raw map[string]any) (BookUpdate, []Violation) {
	v := NewValidator()
	in := rawInput(raw)
	var payload BookUpdate

	if title, ok := in.stringField(v, "title"); ok {
		v.Check(len(title) >= 1, "title", "must be provided")
		v.Check(len(title) <= 200, "title", "must not be more than 200 characters long")
		payload.Title = &title
	}
	if description, ok := in.stringField(v, "description"); ok {
		v.Check(len(description) >= 1, "description", "must be provided")
		v.Check(len(description) <= 2000, "description", "must not be more than 2000 characters long")
		payload.Description = &description
	}
	if price, ok := in.floatField(v, "price"); ok {
		v.Check(price >= 0, "price", "must not be negative")
		payload.Price = &price
	}
	if discount, ok := in.intField(v, "discount"); ok {
		d := int(discount)
		v.Check(d >= 0 && d <= 100, "discount", "must be between 0 and 100")
		payload.Discount = &d
	}
	if rating, ok := in.floatField(v, "rating"); ok {
		v.Check(rating >= 0 && rating <= 5, "rating", "must be between 0 and 5")
		payload.Rating = &rating
	}
	if best, ok := in.boolField(v, "is_best_seller"); ok {
		payload.IsBestSeller = &best
	}
	if cover, ok := in.stringField(v, "cover"); ok {
		v.Check(len(cover) <= 500, "cover", "must not be more than 500 characters long")
		payload.Cover = &cover
	}
	if year, ok := in.intField(v, "year"); ok {
		y := int(year)
		v.Check(y >= 1 && y <= 9999, "year", "must be a four digit year")
		payload.Year = &y
	}
	payload.Edition = in.nullableStringField(v, "edition")
	if stock, ok := in.intField(v, "stock"); ok {
		s := int(stock)
		v.Check(s >= 0, "stock", "must not be negative")
		payload.Stock = &s
	}
	if sales, ok := in.intField(v, "sales"); ok {
		s := int(sales)
		v.Check(s >= 0, "sales", "must not be negative")
		payload.Sales = &s
	}
	if isbn, ok := in.stringField(v, "isbn"); ok {
		v.Check(len(isbn) >= 1, "isbn", "must be provided")
		v.Check(len(isbn) <= 20, "isbn", "must not be more than 20 characters long")
		payload.ISBN = &isbn
	}
	if authorID, ok := in.intField(v, "author_id"); ok {
		v.Check(authorID >= 1, "author_id", "must be a positive integer")
		payload.AuthorID = &authorID
	}
	if genreID, ok := in.intField(v, "genre_id"); ok {
		v.Check(genreID >= 1, "genre_id", "must be a positive integer")
		payload.GenreID = &genreID
	}
	if publisherID, ok := in.intField(v, "publisher_id"); ok {
		v.Check(publisherID >= 1, "publisher_id", "must be a positive integer")
		payload.PublisherID = &publisherID
	}
	return payload, v.Violations
}

// ParseBookFilter reads listing criteria from query parameters. Unknown
// parameters are ignored, malformed values on known ones are violations.
func ParseBookFilter(values url.Values) (BookFilter, []Violation) {
	v := NewValidator()
	var filter BookFilter

	if title := values.Get("title"); title != "" {
		filter.Title = &title
	}
	filter.AuthorID = queryInt64(v, values, "authorId")
	filter.GenreID = queryInt64(v, values, "genreId")
	filter.PublisherID = queryInt64(v, values, "publisherId")
	filter.MinPrice = queryFloat(v, values, "minPrice")
	filter.MaxPrice = queryFloat(v, values, "maxPrice")
	filter.IsBestSeller = queryBool(v, values, "isBestSeller")
	filter.MinRating = queryFloat(v, values, "minRating")
	filter.MaxRating = queryFloat(v, values, "maxRating")
	filter.MinDiscount = queryInt(v, values, "minDiscount")
	filter.MaxDiscount = queryInt(v, values, "maxDiscount")
	filter.Year = queryInt(v, values, "year")

	return filter, v.Violations
}

func queryInt64(v *Validator, values url.Values, key string) *int64 {
	raw := values.Get(key)
	if raw == "" {
		return nil
	}
	n, err := toInt(raw)
	if err != nil {
		v.Add(key, "must be an integer")
		return nil
	}
	return &n
}

func queryInt(v *Validator, values url.Values, key string) *int {
	n64 := queryInt64(v, values, key)
	if n64 == nil {
		return nil
	}
	n := int(*n64)
	return &n
}

func queryFloat(v *Validator, values url.Values, key string) *float64 {
	raw := values.Get(key)
	if raw == "" {
		return nil
	}
	f, err := toFloat(raw)
	if err != nil {
		v.Add(key, "must be a number")
		return nil
	}
	return &f
}

func queryBool(v *Validator, values url.Values, key string) *bool {
	raw := values.Get(key)
	if raw == "" {
		return nil
	}
	b, err := toBool(raw)
	if err != nil {
		v.Add(key, "must be a boolean")
		return nil
	}
	return &b
}
