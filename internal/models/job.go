package models

import (
	"time"

	"github.com/google/uuid"
)

// Job is a public job posting on the careers page.
type Job struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Location     *string   `json:"location,omitempty"`
	Type         string    `json:"type"` // full-time, part-time, contract, internship
	Description  *string   `json:"description,omitempty"`
	Requirements *string   `json:"requirements,omitempty"`
	SalaryRange  *string   `json:"salary_range,omitempty"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
