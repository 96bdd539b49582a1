// Package dispatcher orchestrates outcome emails: load the application,
// resolve and render the template, deliver via the mail provider, and
// record the attempt.
package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/goia/careers-os/internal/logger"
	"github.com/goia/careers-os/internal/mailer"
	"github.com/goia/careers-os/internal/mailtmpl"
	"github.com/goia/careers-os/internal/models"
)

var (
	// ErrApplicationNotFound means the application id does not resolve.
	ErrApplicationNotFound = errors.New("application not found")

	// ErrEmailServiceUnavailable means the mail provider credential is
	// missing. Detected before any network call; a configuration error,
	// not a per-request transient.
	ErrEmailServiceUnavailable = errors.New("email service is not configured")

	// ErrDeliveryFailed means the provider rejected the send after all
	// retry attempts.
	ErrDeliveryFailed = errors.New("email delivery failed")

	// ErrInvalidOutcome means the outcome type is not accepted/rejected.
	ErrInvalidOutcome = errors.New("outcome type must be accepted or rejected")
)

// fallbackJobTitle is used when the parent job has been deleted or unlinked.
const fallbackJobTitle = "the position"

// ApplicationStore fetches applications joined with their parent job.
type ApplicationStore interface {
	GetWithJob(ctx context.Context, id uuid.UUID) (*models.ApplicationWithJob, error)
}

// NotificationStore persists send attempts.
type NotificationStore interface {
	Create(ctx context.Context, n *models.NotificationLog) error
}

// TemplateResolver resolves the template for an outcome type.
// Never fails; falls back to built-ins.
type TemplateResolver interface {
	ResolveDefault(ctx context.Context, outcome models.OutcomeType) mailtmpl.ResolvedTemplate
}

// EventPublisher publishes domain events after successful sends.
type EventPublisher interface {
	PublishEmailSent(ctx context.Context, applicationID uuid.UUID, outcome models.OutcomeType, emailID string) error
}

// RetryPolicy bounds delivery retries with exponential backoff.
type RetryPolicy struct {
	MaxRetries int           // additional attempts after the first
	BaseDelay  time.Duration // doubled after each failed attempt
}

// Service sends outcome emails for applications.
type Service struct {
	apps          ApplicationStore
	notifications NotificationStore
	resolver      TemplateResolver
	sender        mailer.Sender // nil when no credential is configured
	events        EventPublisher
	from          string
	retry         RetryPolicy
	log           *logger.Logger
}

// NewService creates a new dispatcher service. sender may be nil (email
// disabled); events may be nil (publishing disabled).
func NewService(
	apps ApplicationStore,
	notifications NotificationStore,
	resolver TemplateResolver,
	sender mailer.Sender,
	events EventPublisher,
	from string,
	retry RetryPolicy,
) *Service {
	return &Service{
		apps:          apps,
		notifications: notifications,
		resolver:      resolver,
		sender:        sender,
		events:        events,
		from:          from,
		retry:         retry,
		log:           logger.Get(),
	}
}

// SendResult reports a successful send.
type SendResult struct {
	EmailID string `json:"email_id"`
}

// SendOutcomeEmail sends the acceptance or rejection email for one
// application. No state on the application itself is mutated; the
// attempt is recorded in the notification log. Re-invoking for the same
// application sends again.
func (s *Service) SendOutcomeEmail(ctx context.Context, applicationID uuid.UUID, outcome models.OutcomeType) (*SendResult, error) {
	if !outcome.IsValid() {
		return nil, ErrInvalidOutcome
	}

	app, err := s.apps.GetWithJob(ctx, applicationID)
	if err != nil {
		s.log.Error().Err(err).Str("application_id", applicationID.String()).Msg("fetch application failed")
		return nil, ErrApplicationNotFound
	}
	if app == nil {
		return nil, ErrApplicationNotFound
	}

	jobTitle := fallbackJobTitle
	if app.JobTitle != nil && *app.JobTitle != "" {
		jobTitle = *app.JobTitle
	}

	if s.sender == nil {
		return nil, ErrEmailServiceUnavailable
	}

	tmpl := s.resolver.ResolveDefault(ctx, outcome)
	rendered := mailtmpl.Render(tmpl, mailtmpl.MergeData{
		ApplicantName: app.FullName,
		JobTitle:      jobTitle,
	})

	emailID, sendErr := s.deliver(ctx, mailer.Message{
		From:    s.from,
		To:      app.Email,
		Subject: rendered.Subject,
		HTML:    rendered.HTMLBody,
	})

	s.recordAttempt(ctx, app, outcome, rendered.Subject, emailID, sendErr)

	if sendErr != nil {
		s.log.Error().
			Err(sendErr).
			Str("application_id", applicationID.String()).
			Str("outcome", string(outcome)).
			Msg("outcome email delivery failed")
		return nil, fmt.Errorf("%w: %s", ErrDeliveryFailed, sendErr)
	}

	s.log.Info().
		Str("application_id", applicationID.String()).
		Str("outcome", string(outcome)).
		Str("email_id", emailID).
		Msg("outcome email sent")

	if s.events != nil {
		if err := s.events.PublishEmailSent(ctx, applicationID, outcome, emailID); err != nil {
			s.log.Warn().Err(err).Msg("publish email.sent event failed")
		}
	}

	return &SendResult{EmailID: emailID}, nil
}

// deliver sends with bounded exponential backoff.
func (s *Service) deliver(ctx context.Context, msg mailer.Message) (string, error) {
	delay := s.retry.BaseDelay
	var lastErr error

	for attempt := 0; attempt <= s.retry.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return "", ctx.Err()
			}
			delay *= 2
		}

		emailID, err := s.sender.Send(ctx, msg)
		if err == nil {
			return emailID, nil
		}
		lastErr = err
	}

	return "", lastErr
}

// recordAttempt writes the notification log entry. Best-effort: a log
// write failure must not turn a delivered email into a reported error.
func (s *Service) recordAttempt(ctx context.Context, app *models.ApplicationWithJob, outcome models.OutcomeType, subject, emailID string, sendErr error) {
	if s.notifications == nil {
		return
	}

	entry := &models.NotificationLog{
		ApplicationID: app.ID,
		OutcomeType:   outcome,
		Recipient:     app.Email,
		Subject:       subject,
		Success:       sendErr == nil,
	}
	if emailID != "" {
		entry.EmailID = &emailID
	}
	if sendErr != nil {
		msg := sendErr.Error()
		entry.ErrorMessage = &msg
	}

	if err := s.notifications.Create(ctx, entry); err != nil {
		s.log.Warn().Err(err).Str("application_id", app.ID.String()).Msg("record notification attempt failed")
	}
}

// BatchFailure is one failed item in a batch send.
type BatchFailure struct {
	ApplicationID uuid.UUID `json:"application_id"`
	Error         string    `json:"error"`
}

// BatchSent is one successful item in a batch send.
type BatchSent struct {
	ApplicationID uuid.UUID `json:"application_id"`
	EmailID       string    `json:"email_id"`
}

// BatchResult aggregates a batch send outcome.
type BatchResult struct {
	Sent   []BatchSent    `json:"sent"`
	Failed []BatchFailure `json:"failed"`
}

// SendBatch sends the outcome email to each application sequentially.
// A failure on one recipient never aborts the rest.
func (s *Service) SendBatch(ctx context.Context, applicationIDs []uuid.UUID, outcome models.OutcomeType) *BatchResult {
	result := &BatchResult{
		Sent:   []BatchSent{},
		Failed: []BatchFailure{},
	}

	for _, id := range applicationIDs {
		res, err := s.SendOutcomeEmail(ctx, id, outcome)
		if err != nil {
			result.Failed = append(result.Failed, BatchFailure{
				ApplicationID: id,
				Error:         err.Error(),
			})
			continue
		}
		result.Sent = append(result.Sent, BatchSent{
			ApplicationID: id,
			EmailID:       res.EmailID,
		})
	}

	return result
}
