package handlers

import (
	"context"

	"github.com/google/uuid"

	"github.com/goia/careers-os/internal/models"
	"github.com/goia/careers-os/internal/repository"
)

// Broadcaster pushes events to connected admin dashboard clients.
type Broadcaster interface {
	Broadcast(message []byte)
}

// EventPublisher publishes application lifecycle events to the broker.
type EventPublisher interface {
	PublishApplicationNew(ctx context.Context, app *models.JobApplication) error
	PublishStatusChanged(ctx context.Context, applicationID uuid.UUID, status models.ApplicationStatus) error
}

// JobsRepository defines interface for jobs data access
type JobsRepository interface {
	Create(ctx context.Context, j *models.Job) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Job, error)
	List(ctx context.Context, activeOnly bool) ([]*models.Job, error)
	Update(ctx context.Context, j *models.Job) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// StatsRepository defines interface for stats data access
type StatsRepository interface {
	GetStats(ctx context.Context) (*repository.DashboardStats, error)
}
