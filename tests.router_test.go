package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// newTestRouter wires the full routing stack over mocked storages.
func newTestRouter() *httprouter.Router {
	logger := zap.NewNop()
	services := &Services{
		Books: NewBookService(logger, &MockBookStorage{
			FindAllFunc: func(ctx context.Context) ([]Book, error) { return nil, nil },
			FindByIDFunc: func(ctx context.Context, id int64) (Book, error) {
				return Book{ID: id}, nil
			},
			DeleteFunc: func(ctx context.Context, id int64) error { return nil },
		}),
		Authors: NewAuthorService(logger, &MockAuthorStorage{
			FindAllFunc: func(ctx context.Context) ([]Author, error) { return nil, nil },
		}),
		Genres: NewGenreService(logger, &MockGenreStorage{
			FindAllFunc: func(ctx context.Context) ([]Genre, error) { return nil, nil },
		}),
		Publishers: NewPublisherService(logger, &MockPublisherStorage{
			FindAllFunc: func(ctx context.Context) ([]Publisher, error) { return nil, nil },
		}),
	}
	api := newTestAPIHandler(services)
	return api.SetupRoutes(httprouter.New(), api.MiddlewaresStacks())
}

func TestSetupRoutes(t *testing.T) {
	router := newTestRouter()

	cases := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/status", http.StatusOK},
		{http.MethodGet, "/", http.StatusSeeOther},
		{http.MethodGet, "/v1/books", http.StatusOK},
		{http.MethodGet, "/v1/books/1", http.StatusOK},
		{http.MethodDelete, "/v1/books/1", http.StatusOK},
		{http.MethodGet, "/v1/authors", http.StatusOK},
		{http.MethodGet, "/v1/genres", http.StatusOK},
		{http.MethodGet, "/v1/publishers", http.StatusOK},
		{http.MethodGet, "/ops/stats", http.StatusOK},
		{http.MethodGet, "/ops/configs", http.StatusOK},
		{http.MethodGet, "/unknown", http.StatusNotFound},
		{http.MethodPut, "/v1/books/1", http.StatusMethodNotAllowed},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))
		assert.Equal(t, tc.want, w.Code, "%s %s", tc.method, tc.path)
	}
}

func TestRouterMaintenanceModeShieldsPublicRoutesOnly(t *testing.T) {
	logger := zap.NewNop()
	services := &Services{
		Books: NewBookService(logger, &MockBookStorage{
			FindAllFunc: func(ctx context.Context) ([]Book, error) { return nil, nil },
		}),
	}
	api := newTestAPIHandler(services)
	router := api.SetupRoutes(httprouter.New(), api.MiddlewaresStacks())

	api.mode.enabled.Store(true)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/books", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ops/stats", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
