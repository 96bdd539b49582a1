package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/mail"

	"github.com/goia/careers-os/internal/logger"
)

// SubscribersRepository defines the interface for signup persistence.
type SubscribersRepository interface {
	Subscribe(ctx context.Context, email string) error
}

// SubscribeHandler handles landing-page email signups.
type SubscribeHandler struct {
	repo SubscribersRepository
	log  *logger.Logger
}

// NewSubscribeHandler creates a new SubscribeHandler.
func NewSubscribeHandler(repo SubscribersRepository) *SubscribeHandler {
	return &SubscribeHandler{
		repo: repo,
		log:  logger.Get(),
	}
}

// Subscribe records an email signup. Duplicates succeed silently.
// POST /api/subscribe
func (h *SubscribeHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email string `json:"email"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, `{"error":"invalid request payload"}`, http.StatusBadRequest)
		return
	}

	if _, err := mail.ParseAddress(payload.Email); err != nil {
		http.Error(w, `{"error":"invalid email address"}`, http.StatusBadRequest)
		return
	}

	if err := h.repo.Subscribe(r.Context(), payload.Email); err != nil {
		h.log.Error().Err(err).Msg("subscribe failed")
		http.Error(w, `{"error":"failed to subscribe"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"success": true})
}
