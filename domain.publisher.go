package main

import (
	"context"
	"time"
)

// Publisher is a canonical catalog publisher.
type Publisher struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Address   *string   `json:"address,omitempty"`
	Phone     *string   `json:"phone,omitempty"`
	Email     *string   `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PublisherCreate carries a fully validated payload for a new publisher.
type PublisherCreate struct {
	Name    string
	Address *string
	Phone   *string
	Email   *string
}

// PublisherUpdate carries a partial publisher update.
type PublisherUpdate struct {
	Name    *string
	Address NullableString
	Phone   NullableString
	Email   NullableString
}

// Empty reports whether the update defines no field at all.
func (u PublisherUpdate) Empty() bool {
	return u.Name == nil && !u.Address.Defined && !u.Phone.Defined && !u.Email.Defined
}

// PublisherStorage is the publishers persistence contract.
type PublisherStorage interface {
	FindAll(ctx context.Context) ([]Publisher, error)
	FindByID(ctx context.Context, id int64) (Publisher, error)
	FindByName(ctx context.Context, name string) (Publisher, error)
	Create(ctx context.Context, payload PublisherCreate) (Publisher, error)
	Update(ctx context.Context, id int64, payload PublisherUpdate) (Publisher, error)
	Delete(ctx context.Context, id int64) error
}

func checkPublisherOptionals(v *Validator, address, phone, email *string) {
	if address != nil {
		v.Check(len(*address) <= 200, "address", "must not be more than 200 characters long")
	}
	if phone != nil {
		v.Check(len(*phone) <= 20, "phone", "must not be more than 20 characters long")
	}
	if email != nil {
		v.Check(EmailRX.MatchString(*email), "email", "must be a valid email address")
	}
}

// PublisherCreateFromRaw coerces and validates an untyped json body
// into a publisher creation payload.
func PublisherCreateFromRaw(raw map[string]any) (PublisherCreate, []Violation) {
	v := NewValidator()
	in := rawInput(raw)

	payload := PublisherCreate{Name: in.requireString(v, "name")}
	if address := in.nullableStringField(v, "address"); address.Defined && address.Valid {
		payload.Address = &address.Value
	}
	if phone := in.nullableStringField(v, "phone"); phone.Defined && phone.Valid {
		payload.Phone = &phone.Value
	}
	if email := in.nullableStringField(v, "email"); email.Defined && email.Valid {
		payload.Email = &email.Value
	}

	if v.Valid() {
		checkNameLength(v, "name", payload.Name, 100)
		checkPublisherOptionals(v, payload.Address, payload.Phone, payload.Email)
	}
	return payload, v.Violations
}

// PublisherUpdateFromRaw coerces and validates an untyped json body
// into a partial publisher update.
func PublisherUpdateFromRaw(raw map[string]any) (PublisherUpdate, []Violation) {
	v := NewValidator()
	in := rawInput(raw)
	var payload PublisherUpdate

	if name, ok := in.stringField(v, "name"); ok {
		checkNameLength(v, "name", name, 100)
		payload.Name = &name
	}
	payload.Address = in.nullableStringField(v, "address")
	payload.Phone = in.nullableStringField(v, "phone")
	payload.Email = in.nullableStringField(v, "email")

	if v.Valid() {
		var address, phone, email *string
		if payload.Address.Valid {
			address = &payload.Address.Value
		}
		if payload.Phone.Valid {
			phone = &payload.Phone.Value
		}
		if payload.Email.Valid {
			email = &payload.Email.Value
		}
		checkPublisherOptionals(v, address, phone, email)
	}
	return payload, v.Violations
}
