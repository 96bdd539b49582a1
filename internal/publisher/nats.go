// Package publisher emits careers domain events onto NATS for external
// consumers (analytics, CRM sync). Publishing is best-effort; the
// service runs without a broker.
package publisher

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/goia/careers-os/internal/models"
)

// Subjects for careers events.
const (
	SubjectApplicationNew    = "careers.applications.new"
	SubjectApplicationStatus = "careers.applications.status"
	SubjectEmailSent         = "careers.emails.sent"
)

// NATSClient is the jetstream publish surface the publisher depends on.
// Publishing through jetstream means every event is acked by the stream.
type NATSClient interface {
	Publish(ctx context.Context, subject string, data any) error
}

// NATSPublisher publishes careers events to NATS.
type NATSPublisher struct {
	nc NATSClient
}

// NewNATSPublisher creates a new publisher
func NewNATSPublisher(nc NATSClient) *NATSPublisher {
	return &NATSPublisher{nc: nc}
}

// ApplicationEvent is the payload for application lifecycle events.
type ApplicationEvent struct {
	ApplicationID uuid.UUID `json:"application_id"`
	JobID         uuid.UUID `json:"job_id"`
	Status        string    `json:"status"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// EmailSentEvent is the payload for outcome email events.
type EmailSentEvent struct {
	ApplicationID uuid.UUID `json:"application_id"`
	OutcomeType   string    `json:"outcome_type"`
	EmailID       string    `json:"email_id"`
	OccurredAt    time.Time `json:"occurred_at"`
}

func (p *NATSPublisher) publish(ctx context.Context, subject string, event any) error {
	if err := p.nc.Publish(ctx, subject, event); err != nil {
		return fmt.Errorf("publish event: %w", err)
	}

	return nil
}

// PublishApplicationNew publishes a new application event
func (p *NATSPublisher) PublishApplicationNew(ctx context.Context, app *models.JobApplication) error {
	return p.publish(ctx, SubjectApplicationNew, ApplicationEvent{
		ApplicationID: app.ID,
		JobID:         app.JobID,
		Status:        string(app.Status),
		OccurredAt:    time.Now().UTC(),
	})
}

// PublishStatusChanged publishes a status transition event
func (p *NATSPublisher) PublishStatusChanged(ctx context.Context, applicationID uuid.UUID, status models.ApplicationStatus) error {
	return p.publish(ctx, SubjectApplicationStatus, ApplicationEvent{
		ApplicationID: applicationID,
		Status:        string(status),
		OccurredAt:    time.Now().UTC(),
	})
}

// PublishEmailSent publishes an outcome email event
func (p *NATSPublisher) PublishEmailSent(ctx context.Context, applicationID uuid.UUID, outcome models.OutcomeType, emailID string) error {
	return p.publish(ctx, SubjectEmailSent, EmailSentEvent{
		ApplicationID: applicationID,
		OutcomeType:   string(outcome),
		EmailID:       emailID,
		OccurredAt:    time.Now().UTC(),
	})
}
