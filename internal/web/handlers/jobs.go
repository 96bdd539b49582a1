package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/goia/careers-os/internal/logger"
	"github.com/goia/careers-os/internal/models"
)

// JobsHandler handles job posting HTTP requests.
type JobsHandler struct {
	repo JobsRepository
	log  *logger.Logger
}

// NewJobsHandler creates a new JobsHandler.
func NewJobsHandler(repo JobsRepository) *JobsHandler {
	return &JobsHandler{
		repo: repo,
		log:  logger.Get(),
	}
}

// List returns job postings. The public careers page sees active jobs
// only; admins pass ?all=true.
// GET /api/v1/jobs[?all=true]
func (h *JobsHandler) List(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("all") != "true"

	jobs, err := h.repo.List(r.Context(), activeOnly)
	if err != nil {
		http.Error(w, `{"error":"failed to fetch jobs"}`, http.StatusInternalServerError)
		return
	}
	if jobs == nil {
		jobs = []*models.Job{}
	}

	resp := struct {
		Jobs  []*models.Job `json:"jobs"`
		Total int           `json:"total"`
	}{
		Jobs:  jobs,
		Total: len(jobs),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// GetByID returns a single job posting.
// GET /api/v1/jobs/{id}
func (h *JobsHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		http.Error(w, `{"error":"invalid job ID"}`, http.StatusBadRequest)
		return
	}

	job, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		http.Error(w, `{"error":"failed to fetch job"}`, http.StatusInternalServerError)
		return
	}
	if job == nil {
		http.Error(w, `{"error":"job not found"}`, http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(job)
}

// jobPayload is the create/update request body.
type jobPayload struct {
	Title        string  `json:"title"`
	Location     *string `json:"location,omitempty"`
	Type         string  `json:"type"`
	Description  *string `json:"description,omitempty"`
	Requirements *string `json:"requirements,omitempty"`
	SalaryRange  *string `json:"salary_range,omitempty"`
	IsActive     *bool   `json:"is_active,omitempty"`
}

// Create creates a new job posting.
// POST /api/v1/jobs
func (h *JobsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload jobPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, `{"error":"invalid request payload"}`, http.StatusBadRequest)
		return
	}

	payload.Title = strings.TrimSpace(payload.Title)
	if payload.Title == "" {
		http.Error(w, `{"error":"title is required"}`, http.StatusBadRequest)
		return
	}

	job := &models.Job{
		Title:        payload.Title,
		Location:     payload.Location,
		Type:         payload.Type,
		Description:  payload.Description,
		Requirements: payload.Requirements,
		SalaryRange:  payload.SalaryRange,
		IsActive:     true,
	}
	if payload.IsActive != nil {
		job.IsActive = *payload.IsActive
	}

	if err := h.repo.Create(r.Context(), job); err != nil {
		http.Error(w, `{"error":"failed to create job"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(job)
}

// Update updates an existing job posting.
// PUT /api/v1/jobs/{id}
func (h *JobsHandler) Update(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		http.Error(w, `{"error":"invalid job ID"}`, http.StatusBadRequest)
		return
	}

	job, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		http.Error(w, `{"error":"failed to fetch job"}`, http.StatusInternalServerError)
		return
	}
	if job == nil {
		http.Error(w, `{"error":"job not found"}`, http.StatusNotFound)
		return
	}

	var payload jobPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, `{"error":"invalid request payload"}`, http.StatusBadRequest)
		return
	}

	if title := strings.TrimSpace(payload.Title); title != "" {
		job.Title = title
	}
	if payload.Type != "" {
		job.Type = payload.Type
	}
	if payload.Location != nil {
		job.Location = payload.Location
	}
	if payload.Description != nil {
		job.Description = payload.Description
	}
	if payload.Requirements != nil {
		job.Requirements = payload.Requirements
	}
	if payload.SalaryRange != nil {
		job.SalaryRange = payload.SalaryRange
	}
	if payload.IsActive != nil {
		job.IsActive = *payload.IsActive
	}

	if err := h.repo.Update(r.Context(), job); err != nil {
		http.Error(w, `{"error":"failed to update job"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(job)
}

// Delete deletes a job posting.
// DELETE /api/v1/jobs/{id}
func (h *JobsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		http.Error(w, `{"error":"invalid job ID"}`, http.StatusBadRequest)
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		http.Error(w, `{"error":"failed to delete job"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"success": true})
}
