package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validBookPayload() map[string]any {
	return map[string]any{
		"title":        "Dune",
		"description":  "Desert planet saga.",
		"price":        12.50,
		"year":         float64(1965),
		"isbn":         "978-0441013593",
		"author_id":    float64(1),
		"genre_id":     float64(1),
		"publisher_id": float64(1),
	}
}

func TestBookCreateFromRaw(t *testing.T) {
	t.Run("valid payload", func(t *testing.T) {
		payload, violations := BookCreateFromRaw(validBookPayload())
		require.Empty(t, violations)
		assert.Equal(t, "Dune", payload.Title)
		assert.Equal(t, 12.50, payload.Price)
		assert.Equal(t, 1965, payload.Year)
		assert.Equal(t, int64(1), payload.AuthorID)
	})

	t.Run("numeric string price coerced", func(t *testing.T) {
		raw := validBookPayload()
		raw["price"] = "19.99"
		payload, violations := BookCreateFromRaw(raw)
		require.Empty(t, violations)
		assert.Equal(t, 19.99, payload.Price)
	})

	t.Run("missing required fields reported together", func(t *testing.T) {
		_, violations := BookCreateFromRaw(map[string]any{})
		fields := make([]string, 0, len(violations))
		for _, violation := range violations {
			fields = append(fields, violation.Field)
		}
		assert.Contains(t, fields, "title")
		assert.Contains(t, fields, "description")
		assert.Contains(t, fields, "price")
		assert.Contains(t, fields, "isbn")
		assert.Contains(t, fields, "year")
		assert.Contains(t, fields, "author_id")
	})

	t.Run("range checks applied", func(t *testing.T) {
		raw := validBookPayload()
		raw["discount"] = float64(150)
		raw["rating"] = float64(7)
		_, violations := BookCreateFromRaw(raw)
		require.Len(t, violations, 2)
		assert.Equal(t, "discount", violations[0].Field)
		assert.Equal(t, "rating", violations[1].Field)
	})

	t.Run("same payload yields same ordered violations", func(t *testing.T) {
		raw := map[string]any{"price": "expensive", "year": "old"}
		_, first := BookCreateFromRaw(raw)
		_, second := BookCreateFromRaw(raw)
		assert.Equal(t, first, second)
	})

	t.Run("optional edition kept", func(t *testing.T) {
		raw := validBookPayload()
		raw["edition"] = "first"
		payload, violations := BookCreateFromRaw(raw)
		require.Empty(t, violations)
		require.NotNil(t, payload.Edition)
		assert.Equal(t, "first", *payload.Edition)
	})
}

func TestBookUpdateFromRaw(t *testing.T) {
	t.Run("absent fields stay undefined", func(t *testing.T) {
		payload, violations := BookUpdateFromRaw(map[string]any{"price": 9.99})
		require.Empty(t, violations)
		assert.Nil(t, payload.Title)
		require.NotNil(t, payload.Price)
		assert.Equal(t, 9.99, *payload.Price)
		assert.False(t, payload.Edition.Defined)
	})

	t.Run("explicit null clears edition", func(t *testing.T) {
		payload, violations := BookUpdateFromRaw(map[string]any{"edition": nil})
		require.Empty(t, violations)
		assert.True(t, payload.Edition.Defined)
		assert.False(t, payload.Edition.Valid)
		assert.False(t, payload.Empty())
	})

	t.Run("empty body yields empty update", func(t *testing.T) {
		payload, violations := BookUpdateFromRaw(map[string]any{})
		require.Empty(t, violations)
		assert.True(t, payload.Empty())
	})

	t.Run("defined fields still validated", func(t *testing.T) {
		_, violations := BookUpdateFromRaw(map[string]any{"title": "", "price": -1.0})
		require.Len(t, violations, 2)
		assert.Equal(t, "title", violations[0].Field)
		assert.Equal(t, "price", violations[1].Field)
	})

	t.Run("explicit null on non nullable field rejected", func(t *testing.T) {
		_, violations := BookUpdateFromRaw(map[string]any{"title": nil})
		require.Len(t, violations, 1)
		assert.Equal(t, "title", violations[0].Field)
		assert.Equal(t, "must not be null", violations[0].Reason)
	})
}

func TestAuthorCreateFromRaw(t *testing.T) {
	payload, violations := AuthorCreateFromRaw(map[string]any{
		"name":       "Frank",
		"last_name":  "Herbert",
		"bio":        "Science fiction writer.",
		"birth_date": "1920-10-08",
	})
	require.Empty(t, violations)
	assert.Equal(t, "Frank", payload.Name)
	require.NotNil(t, payload.Bio)
	require.NotNil(t, payload.BirthDate)
	assert.Equal(t, 1920, payload.BirthDate.Year())

	_, violations = AuthorCreateFromRaw(map[string]any{"name": "Frank"})
	require.Len(t, violations, 1)
	assert.Equal(t, "last_name", violations[0].Field)
}

func TestAuthorCreateFromRawAcceptsNullOnNullableFields(t *testing.T) {
	payload, violations := AuthorCreateFromRaw(map[string]any{
		"name":       "Frank",
		"last_name":  "Herbert",
		"bio":        nil,
		"birth_date": nil,
	})
	require.Empty(t, violations)
	assert.Nil(t, payload.Bio)
	assert.Nil(t, payload.BirthDate)
}

func TestGenreCreateFromRaw(t *testing.T) {
	_, violations := GenreCreateFromRaw(map[string]any{"name": ""})
	require.Len(t, violations, 1)
	assert.Equal(t, "name", violations[0].Field)

	payload, violations := GenreCreateFromRaw(map[string]any{"name": "Science Fiction"})
	require.Empty(t, violations)
	assert.Equal(t, "Science Fiction", payload.Name)
}

func TestPublisherCreateFromRaw(t *testing.T) {
	payload, violations := PublisherCreateFromRaw(map[string]any{
		"name":  "Ace Books",
		"email": "contact@acebooks.com",
	})
	require.Empty(t, violations)
	require.NotNil(t, payload.Email)

	_, violations = PublisherCreateFromRaw(map[string]any{
		"name":  "Ace Books",
		"email": "not-an-email",
	})
	require.Len(t, violations, 1)
	assert.Equal(t, "email", violations[0].Field)
}

func TestPublisherUpdateFromRawNullableFields(t *testing.T) {
	payload, violations := PublisherUpdateFromRaw(map[string]any{
		"address": nil,
		"phone":   "+33-1-23-45-67-89",
	})
	require.Empty(t, violations)
	assert.True(t, payload.Address.Defined)
	assert.False(t, payload.Address.Valid)
	assert.True(t, payload.Phone.Defined)
	assert.True(t, payload.Phone.Valid)
	assert.False(t, payload.Empty())
}
