package models

import (
	"time"

	"github.com/google/uuid"
)

// NotificationLog is a persisted record of one outcome email attempt.
// Written by the dispatcher for both successes and failures so operators
// can see what was actually sent (and re-sent) per application.
type NotificationLog struct {
	ID            uuid.UUID   `json:"id"`
	ApplicationID uuid.UUID   `json:"application_id"`
	OutcomeType   OutcomeType `json:"outcome_type"`
	Recipient     string      `json:"recipient"`
	Subject       string      `json:"subject"`
	Success       bool        `json:"success"`
	EmailID       *string     `json:"email_id,omitempty"`
	ErrorMessage  *string     `json:"error_message,omitempty"`
	SentAt        time.Time   `json:"sent_at"`
}
