// Package events builds the JSON messages pushed to admin dashboard
// websocket clients.
package events

import (
	"encoding/json"

	"github.com/google/uuid"
)

// WebSocket event types pushed to the admin dashboard
const (
	EventApplicationNew    = "application.new"
	EventApplicationStatus = "application.status"
	EventEmailSent         = "email.sent"
)

// WSEvent represents a structured WebSocket message
type WSEvent struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// ApplicationStatusPayload is the payload for EventApplicationStatus
type ApplicationStatusPayload struct {
	ApplicationID string `json:"application_id"`
	Status        string `json:"status"`
}

// ApplicationNewPayload is the payload for EventApplicationNew
type ApplicationNewPayload struct {
	ApplicationID string `json:"application_id"`
	JobID         string `json:"job_id"`
	FullName      string `json:"full_name"`
}

// EmailSentPayload is the payload for EventEmailSent
type EmailSentPayload struct {
	ApplicationID string `json:"application_id"`
	OutcomeType   string `json:"outcome_type"`
}

// ApplicationStatusEvent creates a JSON message for status transitions
func ApplicationStatusEvent(applicationID uuid.UUID, status string) []byte {
	evt := WSEvent{
		Type: EventApplicationStatus,
		Payload: ApplicationStatusPayload{
			ApplicationID: applicationID.String(),
			Status:        status,
		},
	}
	b, _ := json.Marshal(evt)
	return b
}

// ApplicationNewEvent creates a JSON message for new submissions
func ApplicationNewEvent(applicationID, jobID uuid.UUID, fullName string) []byte {
	evt := WSEvent{
		Type: EventApplicationNew,
		Payload: ApplicationNewPayload{
			ApplicationID: applicationID.String(),
			JobID:         jobID.String(),
			FullName:      fullName,
		},
	}
	b, _ := json.Marshal(evt)
	return b
}

// EmailSentEvent creates a JSON message for sent outcome emails
func EmailSentEvent(applicationID uuid.UUID, outcome string) []byte {
	evt := WSEvent{
		Type: EventEmailSent,
		Payload: EmailSentPayload{
			ApplicationID: applicationID.String(),
			OutcomeType:   outcome,
		},
	}
	b, _ := json.Marshal(evt)
	return b
}
