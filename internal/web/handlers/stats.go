package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/goia/careers-os/internal/logger"
)

// StatsHandler serves admin dashboard statistics.
type StatsHandler struct {
	repo StatsRepository
	log  *logger.Logger
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(repo StatsRepository) *StatsHandler {
	return &StatsHandler{
		repo: repo,
		log:  logger.Get(),
	}
}

// GetStats returns aggregated dashboard statistics.
// GET /api/v1/stats
func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.repo.GetStats(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("fetch stats failed")
		http.Error(w, `{"error":"failed to fetch stats"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}
