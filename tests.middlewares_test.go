package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewaresChainOrder(t *testing.T) {
	var calls []string

	middlewareA := func(next httprouter.Handle) httprouter.Handle {
		return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
			calls = append(calls, "A")
			next(w, r, ps)
		}
	}
	middlewareB := func(next httprouter.Handle) httprouter.Handle {
		return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
			calls = append(calls, "B")
			next(w, r, ps)
		}
	}
	handler := func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		calls = append(calls, "H")
	}

	m := Middlewares{middlewareA, middlewareB}
	chained := m.Chain(handler)
	chained(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil), httprouter.Params{})

	assert.Equal(t, []string{"A", "B", "H"}, calls)
}

func TestMiddlewaresChainEmptyStack(t *testing.T) {
	called := false
	handler := func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		called = true
	}
	m := Middlewares{}
	m.Chain(handler)(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil), httprouter.Params{})
	assert.True(t, called)
}

func TestRequestsCounterMiddleware(t *testing.T) {
	api := newTestAPIHandler(&Services{})
	var seen uint64
	handler := func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		seen = GetRequestNumberFromContext(r.Context())
	}

	wrapped := api.RequestsCounterMiddleware(handler)
	wrapped(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil), httprouter.Params{})
	assert.Equal(t, uint64(1), seen)
	wrapped(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil), httprouter.Params{})
	assert.Equal(t, uint64(2), seen)
}

func TestRequestIDMiddleware(t *testing.T) {
	api := newTestAPIHandler(&Services{})
	var requestID string
	handler := func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		requestID = GetValueFromContext(r.Context(), RequestIDContextKey)
	}

	api.RequestIDMiddleware(handler)(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil), httprouter.Params{})
	assert.Equal(t, RequestIDPrefix+":fixed", requestID)
}

func TestPanicRecoveryMiddleware(t *testing.T) {
	api := newTestAPIHandler(&Services{})
	handler := func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		panic("boom")
	}

	w := httptest.NewRecorder()
	api.PanicRecoveryMiddleware(handler)(w, httptest.NewRequest(http.MethodGet, "/", nil), httprouter.Params{})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestMaintenanceModeMiddleware(t *testing.T) {
	api := newTestAPIHandler(&Services{})
	called := false
	handler := func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		called = true
	}
	wrapped := api.MaintenanceModeMiddleware(handler)

	w := httptest.NewRecorder()
	wrapped(w, httptest.NewRequest(http.MethodGet, "/v1/books", nil), httprouter.Params{})
	assert.True(t, called)

	api.mode.enabled.Store(true)
	api.mode.message = "upgrading storage"
	called = false
	w = httptest.NewRecorder()
	wrapped(w, httptest.NewRequest(http.MethodGet, "/v1/books", nil), httprouter.Params{})
	assert.False(t, called)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestCoreMiddlewareRecordsStatus(t *testing.T) {
	api := newTestAPIHandler(&Services{})
	handler := func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		w.WriteHeader(http.StatusTeapot)
	}

	api.CoreMiddleware(handler)(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil), httprouter.Params{})

	api.stats.mu.RLock()
	defer api.stats.mu.RUnlock()
	require.Contains(t, api.stats.status, http.StatusTeapot)
	assert.Equal(t, uint64(1), api.stats.status[http.StatusTeapot])
}

func TestCORSMiddleware(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {}
	w := httptest.NewRecorder()
	CORSMiddleware(handler)(w, httptest.NewRequest(http.MethodGet, "/", nil), httprouter.Params{})
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PATCH")
}
