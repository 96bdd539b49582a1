package models

import (
	"time"

	"github.com/google/uuid"
)

// OutcomeType is one of the two terminal email categories.
type OutcomeType string

const (
	OutcomeAccepted OutcomeType = "accepted"
	OutcomeRejected OutcomeType = "rejected"
)

// IsValid checks if the outcome type is known.
func (o OutcomeType) IsValid() bool {
	return o == OutcomeAccepted || o == OutcomeRejected
}

// EmailTemplate is an operator-editable email template.
// At most one template per outcome type carries the default flag;
// the repository write path enforces this transactionally.
type EmailTemplate struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	Type        OutcomeType `json:"type"`
	Subject     string      `json:"subject"`
	HTMLContent string      `json:"html_content"`
	IsDefault   bool        `json:"is_default"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}
