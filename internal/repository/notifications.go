package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/goia/careers-os/internal/models"
)

// NotificationsRepository persists outcome email attempts.
type NotificationsRepository struct {
	pool *pgxpool.Pool
}

// NewNotificationsRepository creates a new notifications repository
func NewNotificationsRepository(pool *pgxpool.Pool) *NotificationsRepository {
	return &NotificationsRepository{pool: pool}
}

// Create records a single send attempt
func (r *NotificationsRepository) Create(ctx context.Context, n *models.NotificationLog) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO notification_log (
			application_id, outcome_type, recipient, subject, success, email_id, error_message
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, sent_at
	`, n.ApplicationID, n.OutcomeType, n.Recipient, n.Subject,
		n.Success, n.EmailID, n.ErrorMessage,
	).Scan(&n.ID, &n.SentAt)
	if err != nil {
		return fmt.Errorf("create notification log: %w", err)
	}
	return nil
}

// ListByApplication returns attempts for one application, newest first
func (r *NotificationsRepository) ListByApplication(ctx context.Context, applicationID uuid.UUID) ([]*models.NotificationLog, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, application_id, outcome_type, recipient, subject,
		       success, email_id, error_message, sent_at
		FROM notification_log
		WHERE application_id = $1
		ORDER BY sent_at DESC
	`, applicationID)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	var logs []*models.NotificationLog
	for rows.Next() {
		var n models.NotificationLog
		err := rows.Scan(
			&n.ID, &n.ApplicationID, &n.OutcomeType, &n.Recipient, &n.Subject,
			&n.Success, &n.EmailID, &n.ErrorMessage, &n.SentAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		logs = append(logs, &n)
	}

	return logs, nil
}
