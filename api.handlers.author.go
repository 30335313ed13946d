package main

import (
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
)

// ListAuthors serves every author of the catalog.
func (api *APIHandler) ListAuthors(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	authors, err := api.services.Authors.List(r.Context())
	if err != nil {
		api.writeServiceError(w, requestID, "list authors", err)
		return
	}
	total := len(authors)
	api.writeSuccess(w, requestID, http.StatusOK, "Authors fetched successfully.", &total, authors)
}

// GetOneAuthor serves a single author by its id.
func (api *APIHandler) GetOneAuthor(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	id, err := ParseEntityID(ps.ByName("id"))
	if err != nil {
		api.writeInvalidPayload(w, requestID, "get author", []Violation{{Field: "id", Reason: err.Error()}})
		return
	}
	author, err := api.services.Authors.Get(r.Context(), id)
	if err != nil {
		api.writeServiceError(w, requestID, "get author", err)
		return
	}
	api.writeSuccess(w, requestID, http.StatusOK, "Author fetched successfully.", nil, author)
}

// CreateAuthor adds a new author to the catalog.
func (api *APIHandler) CreateAuthor(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	raw, err := DecodeRequestBody(r)
	if err != nil {
		api.writeInvalidPayload(w, requestID, "create author", []Violation{{Field: "body", Reason: "must be a valid json object"}})
		return
	}
	payload, violations := AuthorCreateFromRaw(raw)
	if len(violations) > 0 {
		api.writeInvalidPayload(w, requestID, "create author", violations)
		return
	}
	author, err := api.services.Authors.Create(r.Context(), payload)
	if err != nil {
		api.writeServiceError(w, requestID, "create author", err)
		return
	}
	api.logger.Info("success to create author", zap.Int64("author.id", author.ID), zap.String("request.id", requestID))
	api.writeSuccess(w, requestID, http.StatusCreated, "Author created successfully.", nil, author)
}

// UpdateAuthor applies a partial update to an existing author.
func (api *APIHandler) UpdateAuthor(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	id, err := ParseEntityID(ps.ByName("id"))
	if err != nil {
		api.writeInvalidPayload(w, requestID, "update author", []Violation{{Field: "id", Reason: err.Error()}})
		return
	}
	raw, err := DecodeRequestBody(r)
	if err != nil {
		api.writeInvalidPayload(w, requestID, "update author", []Violation{{Field: "body", Reason: "must be a valid json object"}})
		return
	}
	payload, violations := AuthorUpdateFromRaw(raw)
	if len(violations) > 0 {
		api.writeInvalidPayload(w, requestID, "update author", violations)
		return
	}
	author, err := api.services.Authors.Update(r.Context(), id, payload)
	if errors.Is(err, ErrNothingToUpdate) {
		api.writeSuccess(w, requestID, http.StatusOK, "Nothing to update.", nil, EmptyData)
		return
	}
	if err != nil {
		api.writeServiceError(w, requestID, "update author", err)
		return
	}
	api.logger.Info("success to update author", zap.Int64("author.id", author.ID), zap.String("request.id", requestID))
	api.writeSuccess(w, requestID, http.StatusOK, "Author updated successfully.", nil, author)
}

// DeleteOneAuthor removes an author from the catalog.
func (api *APIHandler) DeleteOneAuthor(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	id, err := ParseEntityID(ps.ByName("id"))
	if err != nil {
		api.writeInvalidPayload(w, requestID, "delete author", []Violation{{Field: "id", Reason: err.Error()}})
		return
	}
	if err := api.services.Authors.Delete(r.Context(), id); err != nil {
		api.writeServiceError(w, requestID, "delete author", err)
		return
	}
	api.logger.Info("success to delete author", zap.Int64("author.id", id), zap.String("request.id", requestID))
	api.writeSuccess(w, requestID, http.StatusOK, "Author deleted successfully.", nil, EmptyData)
}
