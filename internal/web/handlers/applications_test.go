package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/goia/careers-os/internal/models"
	"github.com/goia/careers-os/internal/repository"
)

// MockApplicationsRepository is a mock for ApplicationsRepository
type MockApplicationsRepository struct {
	mock.Mock
}

func (m *MockApplicationsRepository) Create(ctx context.Context, app *models.JobApplication) error {
	args := m.Called(ctx, app)
	return args.Error(0)
}

func (m *MockApplicationsRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.JobApplication, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.JobApplication), args.Error(1)
}

func (m *MockApplicationsRepository) List(ctx context.Context, filter repository.ApplicationFilter) ([]*models.JobApplication, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.JobApplication), args.Error(1)
}

func (m *MockApplicationsRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.ApplicationStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

// MockWebEventPublisher is a mock for the handler-side EventPublisher
type MockWebEventPublisher struct {
	mock.Mock
}

func (m *MockWebEventPublisher) PublishApplicationNew(ctx context.Context, app *models.JobApplication) error {
	args := m.Called(ctx, app)
	return args.Error(0)
}

func (m *MockWebEventPublisher) PublishStatusChanged(ctx context.Context, applicationID uuid.UUID, status models.ApplicationStatus) error {
	args := m.Called(ctx, applicationID, status)
	return args.Error(0)
}

func applicationsRouter(h *ApplicationsHandler) *chi.Mux {
	r := chi.NewRouter()
	r.Post("/api/v1/applications", h.Create)
	r.Get("/api/v1/applications", h.List)
	r.Get("/api/v1/applications/{id}", h.GetByID)
	r.Patch("/api/v1/applications/{id}/status", h.UpdateStatus)
	return r
}

func TestApplicationsCreate(t *testing.T) {
	jobID := uuid.New()

	repo := new(MockApplicationsRepository)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(app *models.JobApplication) bool {
		return app.JobID == jobID &&
			app.FullName == "Jane Doe" &&
			app.Email == "jane@example.com" &&
			app.Status == models.StatusPending
	})).Return(nil)

	hub := &MockBroadcaster{}
	pub := new(MockWebEventPublisher)
	pub.On("PublishApplicationNew", mock.Anything, mock.Anything).Return(nil)

	router := applicationsRouter(NewApplicationsHandler(repo, hub, pub))

	body := fmt.Sprintf(`{"job_id": %q, "full_name": "Jane Doe", "email": "jane@example.com"}`, jobID)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/applications", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var created models.JobApplication
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	assert.Equal(t, models.StatusPending, created.Status)

	assert.Len(t, hub.messages, 1)
	repo.AssertExpectations(t)
	pub.AssertExpectations(t)
}

func TestApplicationsCreate_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "invalid json", body: `nope`},
		{name: "missing job_id", body: `{"full_name": "Jane", "email": "jane@example.com"}`},
		{name: "bad job_id", body: `{"job_id": "nope", "full_name": "Jane", "email": "jane@example.com"}`},
		{name: "blank name", body: fmt.Sprintf(`{"job_id": %q, "full_name": "   ", "email": "jane@example.com"}`, uuid.New())},
		{name: "bad email", body: fmt.Sprintf(`{"job_id": %q, "full_name": "Jane", "email": "not-an-email"}`, uuid.New())},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockApplicationsRepository)
			router := applicationsRouter(NewApplicationsHandler(repo, nil, nil))

			req := httptest.NewRequest(http.MethodPost, "/api/v1/applications", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestApplicationsList_Filters(t *testing.T) {
	jobID := uuid.New()

	repo := new(MockApplicationsRepository)
	repo.On("List", mock.Anything, mock.MatchedBy(func(f repository.ApplicationFilter) bool {
		return f.JobID != nil && *f.JobID == jobID && f.Status == models.StatusPending
	})).Return([]*models.JobApplication{
		{ID: uuid.New(), JobID: jobID, FullName: "Jane Doe", Status: models.StatusPending},
	}, nil)

	router := applicationsRouter(NewApplicationsHandler(repo, nil, nil))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/applications?job_id="+jobID.String()+"&status=pending", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Applications []*models.JobApplication `json:"applications"`
		Total        int                      `json:"total"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 1, resp.Total)
	repo.AssertExpectations(t)
}

func TestApplicationsList_BadStatusFilter(t *testing.T) {
	router := applicationsRouter(NewApplicationsHandler(new(MockApplicationsRepository), nil, nil))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/applications?status=celebrated", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestApplicationsGetByID_NotFound(t *testing.T) {
	repo := new(MockApplicationsRepository)
	repo.On("GetByID", mock.Anything, mock.Anything).Return(nil, nil)

	router := applicationsRouter(NewApplicationsHandler(repo, nil, nil))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/applications/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestApplicationsUpdateStatus(t *testing.T) {
	id := uuid.New()

	repo := new(MockApplicationsRepository)
	repo.On("GetByID", mock.Anything, id).Return(&models.JobApplication{
		ID:     id,
		Status: models.StatusPending,
	}, nil)
	repo.On("UpdateStatus", mock.Anything, id, models.StatusAccepted).Return(nil)

	hub := &MockBroadcaster{}
	pub := new(MockWebEventPublisher)
	pub.On("PublishStatusChanged", mock.Anything, id, models.StatusAccepted).Return(nil)

	router := applicationsRouter(NewApplicationsHandler(repo, hub, pub))

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/applications/"+id.String()+"/status", bytes.NewBufferString(`{"status": "accepted"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, hub.messages, 1)
	repo.AssertExpectations(t)
	pub.AssertExpectations(t)
}

func TestApplicationsUpdateStatus_AnyTransition(t *testing.T) {
	tests := []struct {
		name string
		from models.ApplicationStatus
		to   models.ApplicationStatus
		body string
	}{
		{
			// accepted back to pending is allowed; review states are not a one-way street
			name: "accepted to pending",
			from: models.StatusAccepted,
			to:   models.StatusPending,
			body: `{"status": "pending"}`,
		},
		{
			// setting the same status again is a no-op update, not an error
			name: "accepted to accepted",
			from: models.StatusAccepted,
			to:   models.StatusAccepted,
			body: `{"status": "accepted"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := uuid.New()

			repo := new(MockApplicationsRepository)
			repo.On("GetByID", mock.Anything, id).Return(&models.JobApplication{
				ID:     id,
				Status: tt.from,
			}, nil)
			repo.On("UpdateStatus", mock.Anything, id, tt.to).Return(nil)

			router := applicationsRouter(NewApplicationsHandler(repo, nil, nil))

			req := httptest.NewRequest(http.MethodPatch, "/api/v1/applications/"+id.String()+"/status", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			repo.AssertExpectations(t)
		})
	}
}

func TestApplicationsUpdateStatus_InvalidStatus(t *testing.T) {
	repo := new(MockApplicationsRepository)
	router := applicationsRouter(NewApplicationsHandler(repo, nil, nil))

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/applications/"+uuid.NewString()+"/status", bytes.NewBufferString(`{"status": "celebrated"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestApplicationsUpdateStatus_NotFound(t *testing.T) {
	repo := new(MockApplicationsRepository)
	repo.On("GetByID", mock.Anything, mock.Anything).Return(nil, nil)

	router := applicationsRouter(NewApplicationsHandler(repo, nil, nil))

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/applications/"+uuid.NewString()+"/status", bytes.NewBufferString(`{"status": "rejected"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}
