package httpapi

import "net/http"

// HandleHealth returns API health status and line count.
// A missing inventory file is reported as healthy with zero lines.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	count, err := h.store.Count(r.Context())
	status := "healthy"
	if err != nil {
		h.logger.Warn().Err(err).Msg("health check could not count lines")
		status = "degraded"
		count = 0
	}

	h.logger.Debug().Int("line_count", count).Msg("health check")

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    status,
		LineCount: count,
	})
}
