package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/dsjohal14/stockroom/internal/scope/inventory"
)

// HandleSearch filters inventory lines containing the query
func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn().Err(err).Msg("invalid search request")
		writeError(w, http.StatusBadRequest, "invalid JSON", "INVALID_JSON")
		return
	}

	// An empty pattern never matches, so reject it up front
	if req.Query == "" {
		writeError(w, http.StatusBadRequest, "query is required", "MISSING_QUERY")
		return
	}

	lines, err := h.store.Lines(r.Context())
	if err != nil {
		h.writeStoreError(w, err, "read inventory")
		return
	}

	res, err := h.query.Query(r.Context(), lines, req.Query)
	if err != nil {
		h.logger.Warn().Err(err).Msg("search aborted")
		writeError(w, http.StatusServiceUnavailable, "search aborted", "SEARCH_ABORTED")
		return
	}

	results := res.Records
	if results == nil {
		results = []inventory.Record{}
	}

	h.logger.Info().
		Str("query", req.Query).
		Int("results", len(results)).
		Int("skipped", res.Skipped).
		Msg("search completed")

	writeJSON(w, http.StatusOK, SearchResponse{
		Results: results,
		Count:   len(results),
		Query:   req.Query,
		Skipped: res.Skipped,
	})
}
