// Package handlers provides HTTP handlers for the buy signal.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/aristath/tactical/internal/clients/alphavantage"
	"github.com/aristath/tactical/internal/modules/metrics"
	"github.com/aristath/tactical/internal/modules/signal"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"
)

const contentTypeMsgpack = "application/msgpack"

// Handler handles signal HTTP requests
type Handler struct {
	service *signal.Service
	log     zerolog.Logger
}

// NewHandler creates a new signal handler
func NewHandler(service *signal.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "signal").Logger(),
	}
}

// HandleGetSignal handles GET /api/signal/{symbol}
func (h *Handler) HandleGetSignal(w http.ResponseWriter, r *http.Request) {
	symbol := symbolParam(r)
	if symbol == "" {
		h.writeError(w, r, http.StatusBadRequest, "symbol is required")
		return
	}

	decision, err := h.service.IsGoodTimeToBuy(r.Context(), symbol)
	if err != nil {
		h.writeFetchError(w, r, symbol, err)
		return
	}

	h.writeResponse(w, r, http.StatusOK, decision)
}

// HandleGetMetrics handles GET /api/metrics/{symbol}
func (h *Handler) HandleGetMetrics(w http.ResponseWriter, r *http.Request) {
	symbol := symbolParam(r)
	if symbol == "" {
		h.writeError(w, r, http.StatusBadRequest, "symbol is required")
		return
	}

	m, err := h.service.Metrics(r.Context(), symbol)
	if err != nil {
		h.writeFetchError(w, r, symbol, err)
		return
	}

	h.writeResponse(w, r, http.StatusOK, m)
}

// HandleGetThresholds handles GET /api/signal/thresholds
func (h *Handler) HandleGetThresholds(w http.ResponseWriter, r *http.Request) {
	h.writeResponse(w, r, http.StatusOK, h.service.Thresholds())
}

func symbolParam(r *http.Request) string {
	return strings.ToUpper(strings.TrimSpace(chi.URLParam(r, "symbol")))
}

// statusForError maps fetch failures to HTTP statuses.
func statusForError(err error) int {
	var (
		histErr      *metrics.InsufficientHistoryError
		notFound     alphavantage.ErrSymbolNotFound
		rateLimited  alphavantage.ErrRateLimitExceeded
		invalidKey   alphavantage.ErrInvalidAPIKey
		networkErr   *alphavantage.NetworkError
		malformedErr *alphavantage.MalformedResponseError
	)

	switch {
	case errors.As(err, &histErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &rateLimited):
		return http.StatusTooManyRequests
	case errors.As(err, &invalidKey), errors.As(err, &networkErr), errors.As(err, &malformedErr):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) writeFetchError(w http.ResponseWriter, r *http.Request, symbol string, err error) {
	status := statusForError(err)
	event := h.log.Warn()
	if status >= http.StatusInternalServerError {
		event = h.log.Error()
	}
	event.Err(err).Str("symbol", symbol).Int("status", status).Msg("Signal request failed")

	h.writeError(w, r, status, err.Error())
}

// writeResponse encodes data as msgpack when the client asks for it, JSON otherwise.
func (h *Handler) writeResponse(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	if strings.Contains(r.Header.Get("Accept"), contentTypeMsgpack) {
		body, err := msgpack.Marshal(data)
		if err != nil {
			h.log.Error().Err(err).Msg("Failed to encode msgpack response")
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", contentTypeMsgpack)
		w.WriteHeader(status)
		_, _ = w.Write(body)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// writeError writes an error response
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	h.writeResponse(w, r, status, map[string]string{
		"error": message,
	})
}
