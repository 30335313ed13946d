package main

import (
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
)

// ListGenres serves every genre of the catalog.
func (api *APIHandler) ListGenres(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	genres, err := api.services.Genres.List(r.Context())
	if err != nil {
		api.writeServiceError(w, requestID, "list genres", err)
		return
	}
	total := len(genres)
	api.writeSuccess(w, requestID, http.StatusOK, "Genres fetched successfully.", &total, genres)
}

// GetOneGenre serves a single genre by its id.
func (api *APIHandler) GetOneGenre(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	id, err := ParseEntityID(ps.ByName("id"))
	if err != nil {
		api.writeInvalidPayload(w, requestID, "get genre", []Violation{{Field: "id", Reason: err.Error()}})
		return
	}
	genre, err := api.services.Genres.Get(r.Context(), id)
	if err != nil {
		api.writeServiceError(w, requestID, "get genre", err)
		return
	}
	api.writeSuccess(w, requestID, http.StatusOK, "Genre fetched successfully.", nil, genre)
}

// CreateGenre adds a new genre to the catalog.
func (api *APIHandler) CreateGenre(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	raw, err := DecodeRequestBody(r)
	if err != nil {
		api.writeInvalidPayload(w, requestID, "create genre", []Violation{{Field: "body", Reason: "must be a valid json object"}})
		return
	}
	payload, violations := GenreCreateFromRaw(raw)
	if len(violations) > 0 {
		api.writeInvalidPayload(w, requestID, "create genre", violations)
		return
	}
	genre, err := api.services.Genres.Create(r.Context(), payload)
	if err != nil {
		api.writeServiceError(w, requestID, "create genre", err)
		return
	}
	api.logger.Info("success to create genre", zap.Int64("genre.id", genre.ID), zap.String("request.id", requestID))
	api.writeSuccess(w, requestID, http.StatusCreated, "Genre created successfully.", nil, genre)
}

// UpdateGenre renames an existing genre.
func (api *APIHandler) UpdateGenre(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	id, err := ParseEntityID(ps.ByName("id"))
	if err != nil {
		api.writeInvalidPayload(w, requestID, "update genre", []Violation{{Field: "id", Reason: err.Error()}})
		return
	}
	raw, err := DecodeRequestBody(r)
	if err != nil {
		api.writeInvalidPayload(w, requestID, "update genre", []Violation{{Field: "body", Reason: "must be a valid json object"}})
		return
	}
	payload, violations := GenreUpdateFromRaw(raw)
	if len(violations) > 0 {
		api.writeInvalidPayload(w, requestID, "update genre", violations)
		return
	}
	genre, err := api.services.Genres.Update(r.Context(), id, payload)
	if errors.Is(err, ErrNothingToUpdate) {
		api.writeSuccess(w, requestID, http.StatusOK, "Nothing to update.", nil, EmptyData)
		return
	}
	if err != nil {
		api.writeServiceError(w, requestID, "update genre", err)
		return
	}
	api.logger.Info("success to update genre", zap.Int64("genre.id", genre.ID), zap.String("request.id", requestID))
	api.writeSuccess(w, requestID, http.StatusOK, "Genre updated successfully.", nil, genre)
}

// DeleteOneGenre removes a genre from the catalog.
func (api *APIHandler) DeleteOneGenre(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	id, err := ParseEntityID(ps.ByName("id"))
	if err != nil {
		api.writeInvalidPayload(w, requestID, "delete genre", []Violation{{Field: "id", Reason: err.Error()}})
		return
	}
	if err := api.services.Genres.Delete(r.Context(), id); err != nil {
		api.writeServiceError(w, requestID, "delete genre", err)
		return
	}
	api.logger.Info("success to delete genre", zap.Int64("genre.id", id), zap.String("request.id", requestID))
	api.writeSuccess(w, requestID, http.StatusOK, "Genre deleted successfully.", nil, EmptyData)
}
