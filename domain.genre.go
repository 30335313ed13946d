package main

import (
	"context"
	"time"
)

// Genre is a canonical catalog genre.
type Genre struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GenreCreate carries a fully validated payload for a new genre.
type GenreCreate struct {
	Name string
}

// GenreUpdate carries a partial genre update.
type GenreUpdate struct {
	Name *string
}

// Empty reports whether the update defines no field at all.
func (u GenreUpdate) Empty() bool {
	return u.Name == nil
}

// GenreStorage is the genres persistence contract.
type GenreStorage interface {
	FindAll(ctx context.Context) ([]Genre, error)
	FindByID(ctx context.Context, id int64) (Genre, error)
	FindByName(ctx context.Context, name string) (Genre, error)
	Create(ctx context.Context, payload GenreCreate) (Genre, error)
	Update(ctx context.Context, id int64, payload GenreUpdate) (Genre, error)
	Delete(ctx context.Context, id int64) error
}

// GenreCreateFromRaw coerces and validates an untyped json body into a
// genre creation payload.
func GenreCreateFromRaw(raw map[string]any) (GenreCreate, []Violation) {
	v := NewValidator()
	in := rawInput(raw)

	payload := GenreCreate{Name: in.requireString(v, "name")}
	if v.Valid() {
		checkNameLength(v, "name", payload.Name, 50)
	}
	return payload, v.Violations
}

// GenreUpdateFromRaw coerces and validates an untyped json body into a
// partial genre update.
func GenreUpdateFromRaw(raw map[string]any) (GenreUpdate, []Violation) {
	v := NewValidator()
	in := rawInput(raw)
	var payload GenreUpdate

	if name, ok := in.stringField(v, "name"); ok {
		checkNameLength(v, "name", name, 50)
		payload.Name = &name
	}
	return payload, v.Violations
}
