package main

import (
	"context"
	"time"
)

// Author is a canonical catalog author.
type Author struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	LastName  string     `json:"last_name"`
	Bio       *string    `json:"bio,omitempty"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// AuthorCreate carries a fully validated payload for a new author.
type AuthorCreate struct {
	Name      string
	LastName  string
	Bio       *string
	BirthDate *time.Time
}

// AuthorUpdate carries a partial author update.
type AuthorUpdate struct {
	Name      *string
	LastName  *string
	Bio       NullableString
	BirthDate NullableTime
}

// Empty reports whether the update defines no field at all.
func (u AuthorUpdate) Empty() bool {
	return u.Name == nil && u.LastName == nil && !u.Bio.Defined && !u.BirthDate.Defined
}

// AuthorStorage is the authors persistence contract. FindByName matches
// on the name plus last name pair, the author natural key.
type AuthorStorage interface {
	FindAll(ctx context.Context) ([]Author, error)
	FindByID(ctx context.Context, id int64) (Author, error)
	FindByName(ctx context.Context, name, lastName string) (Author, error)
	Create(ctx context.Context, payload AuthorCreate) (Author, error)
	Update(ctx context.Context, id int64, payload AuthorUpdate) (Author, error)
	Delete(ctx context.Context, id int64) error
}

// AuthorCreateFromRaw coerces and validates an untyped json body into
// an author creation payload.
func AuthorCreateFromRaw(raw map[string]any) (AuthorCreate, []Violation) {
	v := NewValidator()
	in := rawInput(raw)

	payload := AuthorCreate{
		Name:     in.requireString(v, "name"),
		LastName: in.requireString(v, "last_name"),
	}
	if bio := in.nullableStringField(v, "bio"); bio.Defined && bio.Valid {
		payload.Bio = &bio.Value
	}
	if birth := in.nullableDateField(v, "birth_date"); birth.Defined && birth.Valid {
		payload.BirthDate = &birth.Value
	}

	if v.Valid() {
		checkNameLength(v, "name", payload.Name, 100)
		checkNameLength(v, "last_name", payload.LastName, 100)
	}
	return payload, v.Violations
}

// AuthorUpdateFromRaw coerces and validates an untyped json body into a
// partial author update.
func AuthorUpdateFromRaw(raw map[string]any) (AuthorUpdate, []Violation) {
	v := NewValidator()
	in := rawInput(raw)
	var payload AuthorUpdate

	if name, ok := in.stringField(v, "name"); ok {
		checkNameLength(v, "name", name, 100)
		payload.Name = &name
	}
	if lastName, ok := in.stringField(v, "last_name"); ok {
		checkNameLength(v, "last_name", lastName, 100)
		payload.LastName = &lastName
	}
	payload.Bio = in.nullableStringField(v, "bio")
	payload.BirthDate = in.nullableDateField(v, "birth_date")
	return payload, v.Violations
}
