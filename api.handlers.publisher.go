package main

import (
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
)

// ListPublishers serves every publisher of the catalog.
func (api *APIHandler) ListPublishers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	publishers, err := api.services.Publishers.List(r.Context())
	if err != nil {
		api.writeServiceError(w, requestID, "list publishers", err)
		return
	}
	total := len(publishers)
	api.writeSuccess(w, requestID, http.StatusOK, "Publishers fetched successfully.", &total, publishers)
}

// GetOnePublisher serves a single publisher by its id.
func (api *APIHandler) GetOnePublisher(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	id, err := ParseEntityID(ps.ByName("id"))
	if err != nil {
		api.writeInvalidPayload(w, requestID, "get publisher", []Violation{{Field: "id", Reason: err.Error()}})
		return
	}
	publisher, err := api.services.Publishers.Get(r.Context(), id)
	if err != nil {
		api.writeServiceError(w, requestID, "get publisher", err)
		return
	}
	api.writeSuccess(w, requestID, http.StatusOK, "Publisher fetched successfully.", nil, publisher)
}

// CreatePublisher adds a new publisher to the catalog.
func (api *APIHandler) CreatePublisher(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	raw, err := DecodeRequestBody(r)
	if err != nil {
		api.writeInvalidPayload(w, requestID, "create publisher", []Violation{{Field: "body", Reason: "must be a valid json object"}})
		return
	}
	payload, violations := PublisherCreateFromRaw(raw)
	if len(violations) > 0 {
		api.writeInvalidPayload(w, requestID, "create publisher", violations)
		return
	}
	publisher, err := api.services.Publishers.Create(r.Context(), payload)
	if err != nil {
		api.writeServiceError(w, requestID, "create publisher", err)
		return
	}
	api.logger.Info("success to create publisher", zap.Int64("publisher.id", publisher.ID), zap.String("request.id", requestID))
	api.writeSuccess(w, requestID, http.StatusCreated, "Publisher created successfully.", nil, publisher)
}

// UpdatePublisher applies a partial update to an existing publisher.
func (api *APIHandler) UpdatePublisher(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	id, err := ParseEntityID(ps.ByName("id"))
	if err != nil {
		api.writeInvalidPayload(w, requestID, "update publisher", []Violation{{Field: "id", Reason: err.Error()}})
		return
	}
	raw, err := DecodeRequestBody(r)
	if err != nil {
		api.writeInvalidPayload(w, requestID, "update publisher", []Violation{{Field: "body", Reason: "must be a valid json object"}})
		return
	}
	payload, violations := PublisherUpdateFromRaw(raw)
	if len(violations) > 0 {
		api.writeInvalidPayload(w, requestID, "update publisher", violations)
		return
	}
	publisher, err := api.services.Publishers.Update(r.Context(), id, payload)
	if errors.Is(err, ErrNothingToUpdate) {
		api.writeSuccess(w, requestID, http.StatusOK, "Nothing to update.", nil, EmptyData)
		return
	}
	if err != nil {
		api.writeServiceError(w, requestID, "update publisher", err)
		return
	}
	api.logger.Info("success to update publisher", zap.Int64("publisher.id", publisher.ID), zap.String("request.id", requestID))
	api.writeSuccess(w, requestID, http.StatusOK, "Publisher updated successfully.", nil, publisher)
}

// DeleteOnePublisher removes a publisher from the catalog.
func (api *APIHandler) DeleteOnePublisher(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	id, err := ParseEntityID(ps.ByName("id"))
	if err != nil {
		api.writeInvalidPayload(w, requestID, "delete publisher", []Violation{{Field: "id", Reason: err.Error()}})
		return
	}
	if err := api.services.Publishers.Delete(r.Context(), id); err != nil {
		api.writeServiceError(w, requestID, "delete publisher", err)
		return
	}
	api.logger.Info("success to delete publisher", zap.Int64("publisher.id", id), zap.String("request.id", requestID))
	api.writeSuccess(w, requestID, http.StatusOK, "Publisher deleted successfully.", nil, EmptyData)
}
