package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/goia/careers-os/internal/dispatcher"
	"github.com/goia/careers-os/internal/logger"
	"github.com/goia/careers-os/internal/models"
	"github.com/goia/careers-os/internal/web/events"
)

// EmailDispatcher defines the interface for sending outcome emails.
type EmailDispatcher interface {
	SendOutcomeEmail(ctx context.Context, applicationID uuid.UUID, outcome models.OutcomeType) (*dispatcher.SendResult, error)
	SendBatch(ctx context.Context, applicationIDs []uuid.UUID, outcome models.OutcomeType) *dispatcher.BatchResult
}

// EmailsHandler handles outcome email HTTP requests.
type EmailsHandler struct {
	dispatcher EmailDispatcher
	hub        Broadcaster
	log        *logger.Logger
}

// NewEmailsHandler creates a new EmailsHandler. hub may be nil.
func NewEmailsHandler(d EmailDispatcher, hub Broadcaster) *EmailsHandler {
	return &EmailsHandler{
		dispatcher: d,
		hub:        hub,
		log:        logger.Get(),
	}
}

// SendRequest is the payload for sending a single outcome email.
type SendRequest struct {
	ApplicationID string `json:"applicationId"`
	EmailType     string `json:"emailType"`
}

// Send sends the acceptance or rejection email for one application.
// POST /emails/send
func (h *EmailsHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req SendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid request payload"}`, http.StatusBadRequest)
		return
	}

	if req.ApplicationID == "" || req.EmailType == "" {
		http.Error(w, `{"error":"applicationId and emailType are required"}`, http.StatusBadRequest)
		return
	}

	outcome := models.OutcomeType(req.EmailType)
	if !outcome.IsValid() {
		http.Error(w, `{"error":"emailType must be \"accepted\" or \"rejected\""}`, http.StatusBadRequest)
		return
	}

	applicationID, err := uuid.Parse(req.ApplicationID)
	if err != nil {
		http.Error(w, `{"error":"invalid applicationId format"}`, http.StatusBadRequest)
		return
	}

	result, err := h.dispatcher.SendOutcomeEmail(r.Context(), applicationID, outcome)
	if err != nil {
		h.writeSendError(w, err)
		return
	}

	if h.hub != nil {
		h.hub.Broadcast(events.EmailSentEvent(applicationID, string(outcome)))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Email sent successfully",
		"emailId": result.EmailID,
	})
}

// BatchSendRequest is the payload for sending outcome emails in bulk.
type BatchSendRequest struct {
	ApplicationIDs []string `json:"applicationIds"`
	EmailType      string   `json:"emailType"`
}

// SendBatch sends the outcome email to several applications, one at a
// time. A failure on one recipient never aborts the rest; the response
// carries both lists.
// POST /emails/send-batch
func (h *EmailsHandler) SendBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchSendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid request payload"}`, http.StatusBadRequest)
		return
	}

	if len(req.ApplicationIDs) == 0 {
		http.Error(w, `{"error":"applicationIds is required"}`, http.StatusBadRequest)
		return
	}

	outcome := models.OutcomeType(req.EmailType)
	if !outcome.IsValid() {
		http.Error(w, `{"error":"emailType must be \"accepted\" or \"rejected\""}`, http.StatusBadRequest)
		return
	}

	ids := make([]uuid.UUID, 0, len(req.ApplicationIDs))
	for _, idStr := range req.ApplicationIDs {
		id, err := uuid.Parse(idStr)
		if err != nil {
			http.Error(w, `{"error":"invalid application ID: `+idStr+`"}`, http.StatusBadRequest)
			return
		}
		ids = append(ids, id)
	}

	result := h.dispatcher.SendBatch(r.Context(), ids, outcome)

	if h.hub != nil {
		for _, sent := range result.Sent {
			h.hub.Broadcast(events.EmailSentEvent(sent.ApplicationID, string(outcome)))
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(result)
}

// writeSendError maps dispatcher errors onto the REST contract.
func (h *EmailsHandler) writeSendError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")

	switch {
	case errors.Is(err, dispatcher.ErrApplicationNotFound):
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "Application not found"})
	case errors.Is(err, dispatcher.ErrEmailServiceUnavailable):
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{
			"error": "Email service is not configured. Please set RESEND_API_KEY environment variable.",
		})
	case errors.Is(err, dispatcher.ErrInvalidOutcome):
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
	default:
		// delivery failure or unexpected error; pass details through
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{
			"error":   "Failed to send email",
			"details": err.Error(),
		})
	}
}
