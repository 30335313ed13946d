package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newTestAPIHandler provides an api handler wired on mocks for tests.
func newTestAPIHandler(services *Services) *APIHandler {
	return NewAPIHandler(
		zap.NewNop(),
		&Config{},
		&Statistics{started: time.Now()},
		NewMockClocker(),
		NewMockUIDHandler("fixed"),
		&MockCoverStorage{},
		services,
	)
}

func decodeAPIResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	return body
}

func TestStatusHandler(t *testing.T) {
	api := newTestAPIHandler(&Services{})
	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	w := httptest.NewRecorder()
	api.Status(w, req, httprouter.Params{})

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeAPIResponse(t, w)
	assert.Contains(t, body["message"], "catalog api is available")
}

func TestCreateBookHandler(t *testing.T) {
	t.Run("valid payload creates the book", func(t *testing.T) {
		books := &MockBookStorage{
			FindByTitleFunc: func(ctx context.Context, title string) (Book, error) {
				return Book{}, ErrBookNotFound
			},
			CreateFunc: func(ctx context.Context, p BookCreate) (Book, error) {
				return Book{ID: 1, Title: p.Title, Price: p.Price}, nil
			},
		}
		api := newTestAPIHandler(&Services{Books: NewBookService(zap.NewNop(), books)})

		payload := `{"title":"Dune","description":"Desert planet saga.","price":"19.99",
			"year":1965,"isbn":"978-0441013593","author_id":1,"genre_id":1,"publisher_id":1}`
		req := httptest.NewRequest(http.MethodPost, "/v1/books", strings.NewReader(payload))
		w := httptest.NewRecorder()
		api.CreateBook(w, req, httprouter.Params{})

		require.Equal(t, http.StatusCreated, w.Code)
		body := decodeAPIResponse(t, w)
		data := body["data"].(map[string]any)
		assert.Equal(t, float64(1), data["id"])
		assert.Equal(t, 19.99, data["price"])
	})

	t.Run("invalid payload returns ordered violations", func(t *testing.T) {
		api := newTestAPIHandler(&Services{})
		req := httptest.NewRequest(http.MethodPost, "/v1/books", strings.NewReader(`{"price":"expensive"}`))
		w := httptest.NewRecorder()
		api.CreateBook(w, req, httprouter.Params{})

		require.Equal(t, http.StatusBadRequest, w.Code)
		body := decodeAPIResponse(t, w)
		violations := body["data"].([]any)
		require.NotEmpty(t, violations)
		first := violations[0].(map[string]any)
		assert.Equal(t, "title", first["field"])
	})

	t.Run("malformed body rejected", func(t *testing.T) {
		api := newTestAPIHandler(&Services{})
		req := httptest.NewRequest(http.MethodPost, "/v1/books", strings.NewReader("{not-json"))
		w := httptest.NewRecorder()
		api.CreateBook(w, req, httprouter.Params{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("duplicated title conflicts", func(t *testing.T) {
		books := &MockBookStorage{
			FindByTitleFunc: func(ctx context.Context, title string) (Book, error) {
				return Book{ID: 7, Title: title}, nil
			},
		}
		api := newTestAPIHandler(&Services{Books: NewBookService(zap.NewNop(), books)})

		payload := `{"title":"Dune","description":"Desert planet saga.","price":12.5,
			"year":1965,"isbn":"978-0441013593","author_id":1,"genre_id":1,"publisher_id":1}`
		req := httptest.NewRequest(http.MethodPost, "/v1/books", strings.NewReader(payload))
		w := httptest.NewRecorder()
		api.CreateBook(w, req, httprouter.Params{})

		require.Equal(t, http.StatusBadRequest, w.Code)
		body := decodeAPIResponse(t, w)
		assert.Contains(t, body["message"], "already exists")
	})

	t.Run("storage fault stays generic", func(t *testing.T) {
		books := &MockBookStorage{
			FindByTitleFunc: func(ctx context.Context, title string) (Book, error) {
				return Book{}, errors.New("connection reset by peer")
			},
		}
		api := newTestAPIHandler(&Services{Books: NewBookService(zap.NewNop(), books)})

		payload := `{"title":"Dune","description":"Desert planet saga.","price":12.5,
			"year":1965,"isbn":"978-0441013593","author_id":1,"genre_id":1,"publisher_id":1}`
		req := httptest.NewRequest(http.MethodPost, "/v1/books", strings.NewReader(payload))
		w := httptest.NewRecorder()
		api.CreateBook(w, req, httprouter.Params{})

		require.Equal(t, http.StatusInternalServerError, w.Code)
		body := decodeAPIResponse(t, w)
		assert.NotContains(t, body["message"], "connection reset")
	})
}

func TestGetOneBookHandler(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		books := &MockBookStorage{
			FindByIDFunc: func(ctx context.Context, id int64) (Book, error) {
				return Book{ID: id, Title: "Dune"}, nil
			},
		}
		api := newTestAPIHandler(&Services{Books: NewBookService(zap.NewNop(), books)})

		req := httptest.NewRequest(http.MethodGet, "/v1/books/1", nil)
		w := httptest.NewRecorder()
		api.GetOneBook(w, req, httprouter.Params{{Key: "id", Value: "1"}})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing book", func(t *testing.T) {
		books := &MockBookStorage{
			FindByIDFunc: func(ctx context.Context, id int64) (Book, error) {
				return Book{}, ErrBookNotFound
			},
		}
		api := newTestAPIHandler(&Services{Books: NewBookService(zap.NewNop(), books)})

		req := httptest.NewRequest(http.MethodGet, "/v1/books/404", nil)
		w := httptest.NewRecorder()
		api.GetOneBook(w, req, httprouter.Params{{Key: "id", Value: "404"}})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("invalid id", func(t *testing.T) {
		api := newTestAPIHandler(&Services{})
		req := httptest.NewRequest(http.MethodGet, "/v1/books/abc", nil)
		w := httptest.NewRecorder()
		api.GetOneBook(w, req, httprouter.Params{{Key: "id", Value: "abc"}})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestListBooksHandler(t *testing.T) {
	t.Run("plain listing reports total", func(t *testing.T) {
		books := &MockBookStorage{
			FindAllFunc: func(ctx context.Context) ([]Book, error) {
				return []Book{{ID: 1}, {ID: 2}}, nil
			},
		}
		api := newTestAPIHandler(&Services{Books: NewBookService(zap.NewNop(), books)})

		req := httptest.NewRequest(http.MethodGet, "/v1/books", nil)
		w := httptest.NewRecorder()
		api.ListBooks(w, req, httprouter.Params{})

		require.Equal(t, http.StatusOK, w.Code)
		body := decodeAPIResponse(t, w)
		assert.Equal(t, float64(2), body["total"])
	})

	t.Run("filters forwarded", func(t *testing.T) {
		var gotFilter BookFilter
		books := &MockBookStorage{
			FindByFiltersFunc: func(ctx context.Context, filter BookFilter) ([]Book, error) {
				gotFilter = filter
				return nil, nil
			},
		}
		api := newTestAPIHandler(&Services{Books: NewBookService(zap.NewNop(), books)})

		req := httptest.NewRequest(http.MethodGet, "/v1/books?minPrice=5&year=1965", nil)
		w := httptest.NewRecorder()
		api.ListBooks(w, req, httprouter.Params{})

		require.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, gotFilter.MinPrice)
		assert.Equal(t, 5.0, *gotFilter.MinPrice)
		require.NotNil(t, gotFilter.Year)
		assert.Equal(t, 1965, *gotFilter.Year)
	})

	t.Run("search takes precedence over filters", func(t *testing.T) {
		var searched string
		books := &MockBookStorage{
			SearchFunc: func(ctx context.Context, term string) ([]Book, error) {
				searched = term
				return []Book{{ID: 1}}, nil
			},
		}
		api := newTestAPIHandler(&Services{Books: NewBookService(zap.NewNop(), books)})

		req := httptest.NewRequest(http.MethodGet, "/v1/books?search=dune&year=1965", nil)
		w := httptest.NewRecorder()
		api.ListBooks(w, req, httprouter.Params{})

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "dune", searched)
	})

	t.Run("malformed filter rejected", func(t *testing.T) {
		api := newTestAPIHandler(&Services{})
		req := httptest.NewRequest(http.MethodGet, "/v1/books?minRating=high", nil)
		w := httptest.NewRecorder()
		api.ListBooks(w, req, httprouter.Params{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestUpdateBookHandler(t *testing.T) {
	t.Run("empty payload is a no-op", func(t *testing.T) {
		api := newTestAPIHandler(&Services{Books: NewBookService(zap.NewNop(), &MockBookStorage{})})
		req := httptest.NewRequest(http.MethodPatch, "/v1/books/1", strings.NewReader(`{}`))
		w := httptest.NewRecorder()
		api.UpdateBook(w, req, httprouter.Params{{Key: "id", Value: "1"}})

		require.Equal(t, http.StatusOK, w.Code)
		body := decodeAPIResponse(t, w)
		assert.Equal(t, "Nothing to update.", body["message"])
	})

	t.Run("partial update applied", func(t *testing.T) {
		books := &MockBookStorage{
			UpdateFunc: func(ctx context.Context, id int64, p BookUpdate) (Book, error) {
				return Book{ID: id, Price: *p.Price}, nil
			},
		}
		api := newTestAPIHandler(&Services{Books: NewBookService(zap.NewNop(), books)})

		req := httptest.NewRequest(http.MethodPatch, "/v1/books/1", strings.NewReader(`{"price":9.99}`))
		w := httptest.NewRecorder()
		api.UpdateBook(w, req, httprouter.Params{{Key: "id", Value: "1"}})
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestDeleteOneBookHandler(t *testing.T) {
	books := &MockBookStorage{
		DeleteFunc: func(ctx context.Context, id int64) error {
			if id != 1 {
				return ErrBookNotFound
			}
			return nil
		},
	}
	api := newTestAPIHandler(&Services{Books: NewBookService(zap.NewNop(), books)})

	req := httptest.NewRequest(http.MethodDelete, "/v1/books/1", nil)
	w := httptest.NewRecorder()
	api.DeleteOneBook(w, req, httprouter.Params{{Key: "id", Value: "1"}})
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodDelete, "/v1/books/9", nil)
	w = httptest.NewRecorder()
	api.DeleteOneBook(w, req, httprouter.Params{{Key: "id", Value: "9"}})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUploadBookCoverHandler(t *testing.T) {
	var storedName string
	covers := &MockCoverStorage{
		UploadFunc: func(ctx context.Context, name string, data []byte) (string, error) {
			storedName = name
			return "http://127.0.0.1:8080/covers/" + name, nil
		},
	}
	var gotUpdate BookUpdate
	books := &MockBookStorage{
		UpdateFunc: func(ctx context.Context, id int64, p BookUpdate) (Book, error) {
			gotUpdate = p
			return Book{ID: id, Cover: *p.Cover}, nil
		},
	}
	api := NewAPIHandler(zap.NewNop(), &Config{}, &Statistics{started: time.Now()},
		NewMockClocker(), NewMockUIDHandler("fixed"), covers,
		&Services{Books: NewBookService(zap.NewNop(), books)})

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	part, err := form.CreateFormFile("cover", "dune.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte("fake image bytes"))
	require.NoError(t, err)
	require.NoError(t, form.Close())

	req := httptest.NewRequest(http.MethodPut, "/v1/books/1/cover", &buf)
	req.Header.Set("Content-Type", form.FormDataContentType())
	w := httptest.NewRecorder()
	api.UploadBookCover(w, req, httprouter.Params{{Key: "id", Value: "1"}})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "dune.jpg", storedName)
	require.NotNil(t, gotUpdate.Cover)
	assert.Equal(t, "http://127.0.0.1:8080/covers/dune.jpg", *gotUpdate.Cover)
}
