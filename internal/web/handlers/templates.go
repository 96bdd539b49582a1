package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/goia/careers-os/internal/logger"
	"github.com/goia/careers-os/internal/models"
)

// TemplatesRepository defines the interface for template data access.
type TemplatesRepository interface {
	Create(ctx context.Context, t *models.EmailTemplate) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.EmailTemplate, error)
	GetDefault(ctx context.Context, outcome models.OutcomeType) (*models.EmailTemplate, error)
	List(ctx context.Context) ([]*models.EmailTemplate, error)
	Update(ctx context.Context, t *models.EmailTemplate) error
	SetDefault(ctx context.Context, id uuid.UUID, outcome models.OutcomeType) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// TemplatesHandler handles email template CRUD requests at the paths the
// admin template editor relies on.
type TemplatesHandler struct {
	repo TemplatesRepository
	log  *logger.Logger
}

// NewTemplatesHandler creates a new TemplatesHandler.
func NewTemplatesHandler(repo TemplatesRepository) *TemplatesHandler {
	return &TemplatesHandler{
		repo: repo,
		log:  logger.Get(),
	}
}

// Get fetches all templates, one by id, or the default for a type.
// GET /email-templates[?id=|type=]
func (h *TemplatesHandler) Get(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if idStr := r.URL.Query().Get("id"); idStr != "" {
		id, err := uuid.Parse(idStr)
		if err != nil {
			http.Error(w, `{"error":"invalid template ID"}`, http.StatusBadRequest)
			return
		}

		tmpl, err := h.repo.GetByID(r.Context(), id)
		if err != nil {
			http.Error(w, `{"error":"failed to fetch template"}`, http.StatusInternalServerError)
			return
		}
		if tmpl == nil {
			http.Error(w, `{"error":"template not found"}`, http.StatusNotFound)
			return
		}

		json.NewEncoder(w).Encode(map[string]interface{}{"template": tmpl})
		return
	}

	if typeStr := r.URL.Query().Get("type"); typeStr != "" {
		outcome := models.OutcomeType(typeStr)
		if !outcome.IsValid() {
			http.Error(w, `{"error":"type must be \"accepted\" or \"rejected\""}`, http.StatusBadRequest)
			return
		}

		tmpl, err := h.repo.GetDefault(r.Context(), outcome)
		if err != nil {
			http.Error(w, `{"error":"failed to fetch template"}`, http.StatusInternalServerError)
			return
		}

		// null when no default exists; the editor shows the built-in then
		json.NewEncoder(w).Encode(map[string]interface{}{"template": tmpl})
		return
	}

	templates, err := h.repo.List(r.Context())
	if err != nil {
		http.Error(w, `{"error":"failed to fetch templates"}`, http.StatusInternalServerError)
		return
	}
	if templates == nil {
		templates = []*models.EmailTemplate{}
	}

	json.NewEncoder(w).Encode(map[string]interface{}{"templates": templates})
}

// templatePayload is the create/update request body.
type templatePayload struct {
	ID          string  `json:"id,omitempty"`
	Name        *string `json:"name,omitempty"`
	Type        string  `json:"type,omitempty"`
	Subject     *string `json:"subject,omitempty"`
	HTMLContent *string `json:"html_content,omitempty"`
	IsDefault   *bool   `json:"is_default,omitempty"`
}

// Create creates a new template. Flagging it default demotes the
// previous default of the same type atomically.
// POST /email-templates
func (h *TemplatesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload templatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, `{"error":"invalid request payload"}`, http.StatusBadRequest)
		return
	}

	if payload.Name == nil || *payload.Name == "" ||
		payload.Type == "" ||
		payload.Subject == nil || *payload.Subject == "" ||
		payload.HTMLContent == nil || *payload.HTMLContent == "" {
		http.Error(w, `{"error":"missing required fields: name, type, subject, html_content"}`, http.StatusBadRequest)
		return
	}

	outcome := models.OutcomeType(payload.Type)
	if !outcome.IsValid() {
		http.Error(w, `{"error":"type must be \"accepted\" or \"rejected\""}`, http.StatusBadRequest)
		return
	}

	tmpl := &models.EmailTemplate{
		Name:        *payload.Name,
		Type:        outcome,
		Subject:     *payload.Subject,
		HTMLContent: *payload.HTMLContent,
	}
	if payload.IsDefault != nil {
		tmpl.IsDefault = *payload.IsDefault
	}

	if err := h.repo.Create(r.Context(), tmpl); err != nil {
		h.log.Error().Err(err).Msg("create template failed")
		http.Error(w, `{"error":"failed to create template"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{"template": tmpl})
}

// Update updates a template; only supplied fields change.
// PUT /email-templates
func (h *TemplatesHandler) Update(w http.ResponseWriter, r *http.Request) {
	var payload templatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, `{"error":"invalid request payload"}`, http.StatusBadRequest)
		return
	}

	if payload.ID == "" {
		http.Error(w, `{"error":"template ID is required"}`, http.StatusBadRequest)
		return
	}

	id, err := uuid.Parse(payload.ID)
	if err != nil {
		http.Error(w, `{"error":"invalid template ID"}`, http.StatusBadRequest)
		return
	}

	tmpl, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		http.Error(w, `{"error":"failed to fetch template"}`, http.StatusInternalServerError)
		return
	}
	if tmpl == nil {
		http.Error(w, `{"error":"template not found"}`, http.StatusNotFound)
		return
	}

	if payload.Name != nil {
		tmpl.Name = *payload.Name
	}
	if payload.Subject != nil {
		tmpl.Subject = *payload.Subject
	}
	if payload.HTMLContent != nil {
		tmpl.HTMLContent = *payload.HTMLContent
	}
	if payload.IsDefault != nil {
		tmpl.IsDefault = *payload.IsDefault
	}

	if err := h.repo.Update(r.Context(), tmpl); err != nil {
		h.log.Error().Err(err).Str("id", id.String()).Msg("update template failed")
		http.Error(w, `{"error":"failed to update template"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"template": tmpl})
}

// SetDefault makes a template the single default for its outcome type,
// demoting the previous default in the same transaction.
// POST /email-templates/default
func (h *TemplatesHandler) SetDefault(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, `{"error":"invalid request payload"}`, http.StatusBadRequest)
		return
	}

	id, err := uuid.Parse(payload.ID)
	if err != nil {
		http.Error(w, `{"error":"invalid template ID"}`, http.StatusBadRequest)
		return
	}

	tmpl, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		http.Error(w, `{"error":"failed to fetch template"}`, http.StatusInternalServerError)
		return
	}
	if tmpl == nil {
		http.Error(w, `{"error":"template not found"}`, http.StatusNotFound)
		return
	}

	if err := h.repo.SetDefault(r.Context(), id, tmpl.Type); err != nil {
		h.log.Error().Err(err).Str("id", id.String()).Msg("set default template failed")
		http.Error(w, `{"error":"failed to set default template"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"success": true})
}

// Delete deletes a template.
// DELETE /email-templates?id=
func (h *TemplatesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	idStr := r.URL.Query().Get("id")
	if idStr == "" {
		http.Error(w, `{"error":"template ID is required"}`, http.StatusBadRequest)
		return
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		http.Error(w, `{"error":"invalid template ID"}`, http.StatusBadRequest)
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		http.Error(w, `{"error":"failed to delete template"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"success": true})
}
