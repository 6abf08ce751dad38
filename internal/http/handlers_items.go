package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dsjohal14/stockroom/internal/scope/db"
	"github.com/dsjohal14/stockroom/internal/scope/inventory"
	"github.com/go-chi/chi/v5"
)

// HandleListItems returns every well-formed record in file order
func (h *Handler) HandleListItems(w http.ResponseWriter, r *http.Request) {
	records, err := h.store.Records(r.Context())
	if errors.Is(err, db.ErrUnavailable) {
		records, err = []inventory.Record{}, nil
	}
	if err != nil {
		h.writeStoreError(w, err, "list items")
		return
	}

	writeJSON(w, http.StatusOK, ItemsResponse{
		Items: records,
		Count: len(records),
	})
}

// HandleAddItem appends an item to the inventory
func (h *Handler) HandleAddItem(w http.ResponseWriter, r *http.Request) {
	var req ItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn().Err(err).Msg("invalid add request")
		writeError(w, http.StatusBadRequest, "invalid JSON", "INVALID_JSON")
		return
	}

	rec := inventory.Record{Particulars: req.Particulars, Quantity: req.Quantity}
	if err := h.store.Add(r.Context(), rec); err != nil {
		h.writeStoreError(w, err, "add item")
		return
	}

	h.logger.Info().
		Str("particulars", rec.Particulars).
		Str("quantity", rec.Quantity).
		Msg("item added")

	writeJSON(w, http.StatusCreated, ItemResponse{
		Item:    rec,
		Success: true,
		Message: "Item added to inventory.",
	})
}

// HandleUpdateItem sets the quantity of the first item with the given particulars
func (h *Handler) HandleUpdateItem(w http.ResponseWriter, r *http.Request) {
	particulars := chi.URLParam(r, "particulars")

	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn().Err(err).Msg("invalid update request")
		writeError(w, http.StatusBadRequest, "invalid JSON", "INVALID_JSON")
		return
	}

	if err := h.store.Update(r.Context(), particulars, req.Quantity); err != nil {
		h.writeStoreError(w, err, "update item")
		return
	}

	h.logger.Info().
		Str("particulars", particulars).
		Str("quantity", req.Quantity).
		Msg("item upgraded")

	writeJSON(w, http.StatusOK, ItemResponse{
		Item:    inventory.Record{Particulars: particulars, Quantity: req.Quantity},
		Success: true,
		Message: "Item upgraded in inventory.",
	})
}

// HandleDeleteItem removes the first item with the given particulars
func (h *Handler) HandleDeleteItem(w http.ResponseWriter, r *http.Request) {
	particulars := chi.URLParam(r, "particulars")

	if err := h.store.Delete(r.Context(), particulars); err != nil {
		h.writeStoreError(w, err, "delete item")
		return
	}

	h.logger.Info().Str("particulars", particulars).Msg("item deleted")

	writeJSON(w, http.StatusOK, ItemResponse{
		Item:    inventory.Record{Particulars: particulars},
		Success: true,
		Message: "Item deleted from inventory.",
	})
}
