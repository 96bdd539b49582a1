package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/goia/careers-os/internal/models"
)

// NotificationsRepository defines the interface for send-history access.
type NotificationsRepository interface {
	ListByApplication(ctx context.Context, applicationID uuid.UUID) ([]*models.NotificationLog, error)
}

// NotificationsHandler exposes the outcome email history per application.
type NotificationsHandler struct {
	repo NotificationsRepository
}

// NewNotificationsHandler creates a new NotificationsHandler.
func NewNotificationsHandler(repo NotificationsRepository) *NotificationsHandler {
	return &NotificationsHandler{repo: repo}
}

// List returns send attempts for an application, newest first.
// GET /api/v1/notifications?application_id={uuid}
func (h *NotificationsHandler) List(w http.ResponseWriter, r *http.Request) {
	idStr := r.URL.Query().Get("application_id")
	if idStr == "" {
		http.Error(w, `{"error":"application_id query parameter is required"}`, http.StatusBadRequest)
		return
	}

	applicationID, err := uuid.Parse(idStr)
	if err != nil {
		http.Error(w, `{"error":"invalid application_id format"}`, http.StatusBadRequest)
		return
	}

	logs, err := h.repo.ListByApplication(r.Context(), applicationID)
	if err != nil {
		http.Error(w, `{"error":"failed to fetch notifications"}`, http.StatusInternalServerError)
		return
	}
	if logs == nil {
		logs = []*models.NotificationLog{}
	}

	resp := struct {
		Notifications []*models.NotificationLog `json:"notifications"`
		Total         int                       `json:"total"`
	}{
		Notifications: logs,
		Total:         len(logs),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
