package main

import (
	"errors"
	"io"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
)

// maxCoverUploadSize bounds cover image uploads to 5MB.
const maxCoverUploadSize = 5 << 20

// ListBooks serves books matching the query parameters. A `search`
// term takes precedence over the field filters and matches the title
// or isbn as a substring.
func (api *APIHandler) ListBooks(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)

	if term := r.URL.Query().Get("search"); term != "" {
		books, err := api.services.Books.Search(r.Context(), term)
		if err != nil {
			api.writeServiceError(w, requestID, "search books", err)
			return
		}
		total := len(books)
		api.writeSuccess(w, requestID, http.StatusOK, "Books fetched successfully.", &total, books)
		return
	}

	filter, violations := ParseBookFilter(r.URL.Query())
	if len(violations) > 0 {
		api.writeInvalidPayload(w, requestID, "list books", violations)
		return
	}
	books, err := api.services.Books.List(r.Context(), filter)
	if err != nil {
		api.writeServiceError(w, requestID, "list books", err)
		return
	}
	total := len(books)
	api.writeSuccess(w, requestID, http.StatusOK, "Books fetched successfully.", &total, books)
}

// GetOneBook serves a single book by its id.
func (api *APIHandler) GetOneBook(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	id, err := ParseEntityID(ps.ByName("id"))
	if err != nil {
		api.writeInvalidPayload(w, requestID, "get book", []Violation{{Field: "id", Reason: err.Error()}})
		return
	}
	book, err := api.services.Books.Get(r.Context(), id)
	if err != nil {
		api.writeServiceError(w, requestID, "get book", err)
		return
	}
	api.writeSuccess(w, requestID, http.StatusOK, "Book fetched successfully.", nil, book)
}

// CreateBook adds a new book to the catalog.
func (api *APIHandler) CreateBook(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	raw, err := DecodeRequestBody(r)
	if err != nil {
		api.writeInvalidPayload(w, requestID, "create book", []Violation{{Field: "body", Reason: "must be a valid json object"}})
		return
	}
	payload, violations := BookCreateFromRaw(raw)
	if len(violations) > 0 {
		api.writeInvalidPayload(w, requestID, "create book", violations)
		return
	}
	book, err := api.services.Books.Create(r.Context(), payload)
	if err != nil {
		api.writeServiceError(w, requestID, "create book", err)
		return
	}
	api.logger.Info("success to create book", zap.Int64("book.id", book.ID), zap.String("request.id", requestID))
	api.writeSuccess(w, requestID, http.StatusCreated, "Book created successfully.", nil, book)
}

// UpdateBook applies a partial update to an existing book.
func (api *APIHandler) UpdateBook(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	id, err := ParseEntityID(ps.ByName("id"))
	if err != nil {
		api.writeInvalidPayload(w, requestID, "update book", []Violation{{Field: "id", Reason: err.Error()}})
		return
	}
	raw, err := DecodeRequestBody(r)
	if err != nil {
		api.writeInvalidPayload(w, requestID, "update book", []Violation{{Field: "body", Reason: "must be a valid json object"}})
		return
	}
	payload, violations := BookUpdateFromRaw(raw)
	if len(violations) > 0 {
		api.writeInvalidPayload(w, requestID, "update book", violations)
		return
	}
	book, err := api.services.Books.Update(r.Context(), id, payload)
	if errors.Is(err, ErrNothingToUpdate) {
		api.writeSuccess(w, requestID, http.StatusOK, "Nothing to update.", nil, EmptyData)
		return
	}
	if err != nil {
		api.writeServiceError(w, requestID, "update book", err)
		return
	}
	api.logger.Info("success to update book", zap.Int64("book.id", book.ID), zap.String("request.id", requestID))
	api.writeSuccess(w, requestID, http.StatusOK, "Book updated successfully.", nil, book)
}

// DeleteOneBook removes a book from the catalog.
func (api *APIHandler) DeleteOneBook(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	id, err := ParseEntityID(ps.ByName("id"))
	if err != nil {
		api.writeInvalidPayload(w, requestID, "delete book", []Violation{{Field: "id", Reason: err.Error()}})
		return
	}
	if err := api.services.Books.Delete(r.Context(), id); err != nil {
		api.writeServiceError(w, requestID, "delete book", err)
		return
	}
	api.logger.Info("success to delete book", zap.Int64("book.id", id), zap.String("request.id", requestID))
	api.writeSuccess(w, requestID, http.StatusOK, "Book deleted successfully.", nil, EmptyData)
}

// UploadBookCover stores a cover image for an existing book and
// records the url it gets served from.
func (api *APIHandler) UploadBookCover(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	id, err := ParseEntityID(ps.ByName("id"))
	if err != nil {
		api.writeInvalidPayload(w, requestID, "upload book cover", []Violation{{Field: "id", Reason: err.Error()}})
		return
	}

	if err := r.ParseMultipartForm(maxCoverUploadSize); err != nil {
		api.writeInvalidPayload(w, requestID, "upload book cover", []Violation{{Field: "cover", Reason: "must be a multipart form with a cover file"}})
		return
	}
	file, header, err := r.FormFile("cover")
	if err != nil {
		api.writeInvalidPayload(w, requestID, "upload book cover", []Violation{{Field: "cover", Reason: "must be provided"}})
		return
	}
	defer file.Close()
	data, err := io.ReadAll(io.LimitReader(file, maxCoverUploadSize))
	if err != nil {
		api.writeServiceError(w, requestID, "upload book cover", err)
		return
	}

	coverURL, err := api.covers.Upload(r.Context(), header.Filename, data)
	if err != nil {
		api.writeServiceError(w, requestID, "upload book cover", err)
		return
	}
	book, err := api.services.Books.SetCover(r.Context(), id, coverURL)
	if err != nil {
		api.writeServiceError(w, requestID, "upload book cover", err)
		return
	}
	api.logger.Info("success to upload book cover", zap.Int64("book.id", id), zap.String("request.id", requestID))
	api.writeSuccess(w, requestID, http.StatusOK, "Book cover uploaded successfully.", nil, book)
}
