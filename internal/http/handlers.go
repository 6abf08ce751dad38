package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dsjohal14/stockroom/internal/scope/db"
	"github.com/dsjohal14/stockroom/internal/scope/inventory"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// Handler contains HTTP handlers for the API
type Handler struct {
	store  db.Storage
	query  *inventory.Service
	logger zerolog.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(store db.Storage, query *inventory.Service, logger zerolog.Logger) *Handler {
	return &Handler{
		store:  store,
		query:  query,
		logger: logger,
	}
}

// Routes mounts the API on a new chi router. Extra middleware runs after
// the request ID, real IP and recoverer middleware.
func (h *Handler) Routes(extra ...func(http.Handler) http.Handler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(extra...)

	r.Get("/health", h.HandleHealth)
	r.Route("/items", func(r chi.Router) {
		r.Get("/", h.HandleListItems)
		r.Post("/", h.HandleAddItem)
		r.Put("/{particulars}", h.HandleUpdateItem)
		r.Delete("/{particulars}", h.HandleDeleteItem)
	})
	r.Post("/search", h.HandleSearch)

	return r
}

// Helper functions used across all handlers

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes an error response with the given status code
func writeError(w http.ResponseWriter, status int, message, code string) {
	writeJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// writeStoreError maps storage errors to responses
func (h *Handler) writeStoreError(w http.ResponseWriter, err error, op string) {
	switch {
	case errors.Is(err, inventory.ErrInvalidRecord):
		writeError(w, http.StatusBadRequest, err.Error(), "INVALID_RECORD")
	case errors.Is(err, db.ErrNotFound):
		writeError(w, http.StatusNotFound, "item not found in inventory", "NOT_FOUND")
	case errors.Is(err, db.ErrUnavailable):
		h.logger.Error().Err(err).Str("op", op).Msg("inventory unavailable")
		writeError(w, http.StatusServiceUnavailable, "unable to open inventory", "INVENTORY_UNAVAILABLE")
	default:
		h.logger.Error().Err(err).Str("op", op).Msg("store operation failed")
		writeError(w, http.StatusInternalServerError, "failed to "+op, "STORE_ERROR")
	}
}
