package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
)

// Statistics holds app stats for ops.
type Statistics struct {
	version   string
	container bool
	runtime   string
	platform  string
	called    uint64
	started   time.Time
	status    map[int]uint64
	mu        *sync.RWMutex
}

// Maintenance holds app maintenance mode infos.
type Maintenance struct {
	enabled atomic.Bool
	message string
	started time.Time
}

// APIHandler defines the API handler.
type APIHandler struct {
	logger   *zap.Logger
	config   *Config
	stats    *Statistics
	mode     *Maintenance
	clock    Clocker
	uids     UIDHandler
	covers   CoverStorage
	services *Services
}

// NewAPIHandler provides a new instance of APIHandler.
func NewAPIHandler(logger *zap.Logger, config *Config, stats *Statistics, clock Clocker,
	uids UIDHandler, covers CoverStorage, services *Services,
) *APIHandler {
	m := &Maintenance{}
	m.enabled.Store(false)
	stats.status = make(map[int]uint64)
	stats.mu = &sync.RWMutex{}
	return &APIHandler{
		logger: logger, config: config, stats: stats, mode: m,
		clock: clock, uids: uids, covers: covers, services: services,
	}
}

// Index provides same details like `Status` handler by redirecting the request.
func (api *APIHandler) Index(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	http.Redirect(w, r, "/status", http.StatusSeeOther)
}

// Status provides basics details about the application to the public users.
func (api *APIHandler) Status(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	if err := json.NewEncoder(w).Encode(
		map[string]interface{}{
			"requestid": requestID,
			"status":    fmt.Sprintf("up & running since %.0f mins", api.clock.Now().Sub(api.stats.started).Minutes()),
			"message":   "Hello. Books catalog api is available. Enjoy :)",
		},
	); err != nil {
		api.logger.Error("failed to send status response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// writeServiceError translates a business failure into the api error
// envelope. Invalid requests and missing records keep their details,
// anything else is an internal fault reported without internals.
func (api *APIHandler) writeServiceError(w http.ResponseWriter, requestID, action string, err error) {
	var errResp *APIError
	var invalid *InvalidRequestError
	var missing *NotFoundError
	switch {
	case errors.As(err, &invalid):
		errResp = NewAPIError(requestID, http.StatusBadRequest, invalid.Message, invalid.Violations)
		if invalid.Violations == nil {
			errResp.Data = EmptyData
		}
	case errors.As(err, &missing):
		errResp = NewAPIError(requestID, http.StatusNotFound, missing.Error(), EmptyData)
	default:
		api.logger.Error("failed to "+action, zap.String("request.id", requestID), zap.Error(err))
		errResp = NewAPIError(requestID, http.StatusInternalServerError, "failed to "+action, EmptyData)
	}
	if werr := WriteErrorResponse(w, errResp); werr != nil {
		api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(werr))
	}
}

// writeInvalidPayload reports a request body which failed its schema.
func (api *APIHandler) writeInvalidPayload(w http.ResponseWriter, requestID, action string, violations []Violation) {
	api.logger.Info("rejected invalid payload",
		zap.String("request.id", requestID),
		zap.String("request.action", action),
		zap.Int("violations", len(violations)),
	)
	errResp := NewAPIError(requestID, http.StatusBadRequest, "failed to "+action, violations)
	if err := WriteErrorResponse(w, errResp); err != nil {
		api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// writeSuccess sends the api success envelope.
func (api *APIHandler) writeSuccess(w http.ResponseWriter, requestID string, status int, message string, total *int, data interface{}) {
	resp := GenericResponse(requestID, status, message, total, data)
	if err := WriteResponse(w, resp); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}
