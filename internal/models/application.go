package models

import (
	"time"

	"github.com/google/uuid"
)

// ApplicationStatus is the review state of a job application.
type ApplicationStatus string

const (
	StatusPending   ApplicationStatus = "pending"
	StatusReviewing ApplicationStatus = "reviewing"
	StatusAccepted  ApplicationStatus = "accepted"
	StatusRejected  ApplicationStatus = "rejected"
)

// IsValid checks if the status is one of the four known values.
func (s ApplicationStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusReviewing, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// JobApplication is a candidate's submission for a job posting.
type JobApplication struct {
	ID          uuid.UUID         `json:"id"`
	JobID       uuid.UUID         `json:"job_id"`
	FullName    string            `json:"full_name"`
	Email       string            `json:"email"`
	Phone       *string           `json:"phone,omitempty"`
	ResumeURL   *string           `json:"resume_url,omitempty"`
	CoverLetter *string           `json:"cover_letter,omitempty"`
	LinkedInURL *string           `json:"linkedin_url,omitempty"`
	Status      ApplicationStatus `json:"status"`
	SubmittedAt time.Time         `json:"submitted_at"`
}

// ApplicationWithJob is an application joined with its parent job's title.
// JobTitle is nil when the job has been deleted or was never linked.
type ApplicationWithJob struct {
	JobApplication
	JobTitle *string `json:"job_title,omitempty"`
}
