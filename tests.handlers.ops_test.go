package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMaintenanceHandler(t *testing.T) {
	t.Run("enable then disable", func(t *testing.T) {
		api := newTestAPIHandler(&Services{})

		req := httptest.NewRequest(http.MethodGet, "/ops/maintenance?status=enable&msg=upgrading", nil)
		w := httptest.NewRecorder()
		api.Maintenance(w, req, httprouter.Params{})
		require.Equal(t, http.StatusOK, w.Code)
		assert.True(t, api.mode.enabled.Load())
		assert.Equal(t, "upgrading", api.mode.message)

		req = httptest.NewRequest(http.MethodGet, "/ops/maintenance?status=disable", nil)
		w = httptest.NewRecorder()
		api.Maintenance(w, req, httprouter.Params{})
		require.Equal(t, http.StatusOK, w.Code)
		assert.False(t, api.mode.enabled.Load())
		assert.Empty(t, api.mode.message)
	})

	t.Run("show reports unavailability", func(t *testing.T) {
		api := newTestAPIHandler(&Services{})
		api.mode.enabled.Store(true)
		api.mode.message = "upgrading storage"

		req := httptest.NewRequest(http.MethodGet, "/ops/maintenance", nil)
		w := httptest.NewRecorder()
		api.Maintenance(w, req, httprouter.Params{{Key: "status", Value: "show"}})
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		body := decodeAPIResponse(t, w)
		assert.Equal(t, "upgrading storage", body["reason"])
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		api := newTestAPIHandler(&Services{})

		req := httptest.NewRequest(http.MethodGet, "/ops/maintenance?status=nonsense", nil)
		w := httptest.NewRecorder()
		api.Maintenance(w, req, httprouter.Params{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.False(t, api.mode.enabled.Load())
	})

	t.Run("missing status rejected", func(t *testing.T) {
		api := newTestAPIHandler(&Services{})

		req := httptest.NewRequest(http.MethodGet, "/ops/maintenance", nil)
		w := httptest.NewRecorder()
		api.Maintenance(w, req, httprouter.Params{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetStatisticsHandler(t *testing.T) {
	api := NewAPIHandler(
		zap.NewNop(),
		&Config{Storage: StorageConfig{Backend: "sqlite"}},
		&Statistics{version: "v1.2.3", container: true, started: time.Now()},
		NewMockClocker(),
		NewMockUIDHandler("fixed"),
		&MockCoverStorage{},
		&Services{},
	)

	req := httptest.NewRequest(http.MethodGet, "/ops/stats", nil)
	w := httptest.NewRecorder()
	api.GetStatistics(w, req, httprouter.Params{})

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeAPIResponse(t, w)
	assert.Equal(t, "v1.2.3", body["app.version"])
	assert.Equal(t, true, body["app.container"])
	assert.Equal(t, "sqlite", body["storage.backend"])
}
