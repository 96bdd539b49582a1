package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/mail"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/goia/careers-os/internal/logger"
	"github.com/goia/careers-os/internal/models"
	"github.com/goia/careers-os/internal/repository"
	"github.com/goia/careers-os/internal/web/events"
)

// ApplicationsRepository defines the interface for application data access.
type ApplicationsRepository interface {
	Create(ctx context.Context, app *models.JobApplication) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.JobApplication, error)
	List(ctx context.Context, filter repository.ApplicationFilter) ([]*models.JobApplication, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.ApplicationStatus) error
}

// ApplicationsHandler handles application-related HTTP requests.
type ApplicationsHandler struct {
	repo ApplicationsRepository
	hub  Broadcaster
	pub  EventPublisher
	log  *logger.Logger
}

// NewApplicationsHandler creates a new ApplicationsHandler.
// hub and pub may be nil; events are then skipped.
func NewApplicationsHandler(repo ApplicationsRepository, hub Broadcaster, pub EventPublisher) *ApplicationsHandler {
	return &ApplicationsHandler{
		repo: repo,
		hub:  hub,
		pub:  pub,
		log:  logger.Get(),
	}
}

// Create accepts a public application submission.
// POST /api/v1/applications
func (h *ApplicationsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		JobID       string  `json:"job_id"`
		FullName    string  `json:"full_name"`
		Email       string  `json:"email"`
		Phone       *string `json:"phone,omitempty"`
		ResumeURL   *string `json:"resume_url,omitempty"`
		CoverLetter *string `json:"cover_letter,omitempty"`
		LinkedInURL *string `json:"linkedin_url,omitempty"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, `{"error":"invalid request payload"}`, http.StatusBadRequest)
		return
	}

	jobID, err := uuid.Parse(payload.JobID)
	if err != nil || jobID == uuid.Nil {
		http.Error(w, `{"error":"invalid job_id format"}`, http.StatusBadRequest)
		return
	}

	payload.FullName = strings.TrimSpace(payload.FullName)
	if payload.FullName == "" {
		http.Error(w, `{"error":"full_name is required"}`, http.StatusBadRequest)
		return
	}

	if _, err := mail.ParseAddress(payload.Email); err != nil {
		http.Error(w, `{"error":"invalid email address"}`, http.StatusBadRequest)
		return
	}

	app := &models.JobApplication{
		JobID:       jobID,
		FullName:    payload.FullName,
		Email:       payload.Email,
		Phone:       payload.Phone,
		ResumeURL:   payload.ResumeURL,
		CoverLetter: payload.CoverLetter,
		LinkedInURL: payload.LinkedInURL,
		Status:      models.StatusPending,
	}

	if err := h.repo.Create(r.Context(), app); err != nil {
		http.Error(w, `{"error":"failed to submit application"}`, http.StatusInternalServerError)
		return
	}

	if h.hub != nil {
		h.hub.Broadcast(events.ApplicationNewEvent(app.ID, app.JobID, app.FullName))
	}
	if h.pub != nil {
		if err := h.pub.PublishApplicationNew(r.Context(), app); err != nil {
			h.log.Warn().Err(err).Msg("publish application.new event failed")
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(app)
}

// List returns applications, optionally filtered by job_id and status.
// GET /api/v1/applications?job_id={uuid}&status={status}
func (h *ApplicationsHandler) List(w http.ResponseWriter, r *http.Request) {
	var filter repository.ApplicationFilter

	if jobIDStr := r.URL.Query().Get("job_id"); jobIDStr != "" {
		jobID, err := uuid.Parse(jobIDStr)
		if err != nil {
			http.Error(w, `{"error":"invalid job_id format"}`, http.StatusBadRequest)
			return
		}
		filter.JobID = &jobID
	}

	if statusStr := r.URL.Query().Get("status"); statusStr != "" {
		status := models.ApplicationStatus(statusStr)
		if !status.IsValid() {
			http.Error(w, `{"error":"invalid status filter"}`, http.StatusBadRequest)
			return
		}
		filter.Status = status
	}

	applications, err := h.repo.List(r.Context(), filter)
	if err != nil {
		http.Error(w, `{"error":"failed to fetch applications"}`, http.StatusInternalServerError)
		return
	}

	resp := struct {
		Applications []*models.JobApplication `json:"applications"`
		Total        int                      `json:"total"`
	}{
		Applications: applications,
		Total:        len(applications),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// GetByID returns a single application by ID.
// GET /api/v1/applications/{id}
func (h *ApplicationsHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		http.Error(w, `{"error":"invalid application ID"}`, http.StatusBadRequest)
		return
	}

	app, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		http.Error(w, `{"error":"failed to fetch application"}`, http.StatusInternalServerError)
		return
	}
	if app == nil {
		http.Error(w, `{"error":"application not found"}`, http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(app)
}

// UpdateStatusRequest is the payload for updating application status.
type UpdateStatusRequest struct {
	Status models.ApplicationStatus `json:"status"`
}

// UpdateStatus updates the review status of an application. Any
// transition is permitted; outcome emails are a separate, manual step.
// PATCH /api/v1/applications/{id}/status
func (h *ApplicationsHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		http.Error(w, `{"error":"invalid application ID"}`, http.StatusBadRequest)
		return
	}

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid request payload"}`, http.StatusBadRequest)
		return
	}

	if !req.Status.IsValid() {
		http.Error(w, `{"error":"status must be pending, reviewing, accepted, or rejected"}`, http.StatusBadRequest)
		return
	}

	app, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		http.Error(w, `{"error":"failed to fetch application"}`, http.StatusInternalServerError)
		return
	}
	if app == nil {
		http.Error(w, `{"error":"application not found"}`, http.StatusNotFound)
		return
	}

	if err := h.repo.UpdateStatus(r.Context(), id, req.Status); err != nil {
		http.Error(w, `{"error":"failed to update status"}`, http.StatusInternalServerError)
		return
	}

	if h.hub != nil {
		h.hub.Broadcast(events.ApplicationStatusEvent(id, string(req.Status)))
	}
	if h.pub != nil {
		if err := h.pub.PublishStatusChanged(r.Context(), id, req.Status); err != nil {
			h.log.Warn().Err(err).Msg("publish application.status event failed")
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status": "updated",
	})
}
