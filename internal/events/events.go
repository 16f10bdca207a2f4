// Package events defines the wire format of job activity events exchanged
// between the API service and the worker service over RabbitMQ.
package events

import (
	"time"

	"github.com/google/uuid"
)

// Event types emitted by the API service on job mutations.
const (
	TypeJobCreated       = "job.created"
	TypeJobStatusChanged = "job.status_changed"
	TypeJobUpdated       = "job.updated"
	TypeJobDeleted       = "job.deleted"
)

// JobEvent is published on every job mutation and recorded by the worker
// into the job_events audit table.
type JobEvent struct {
	EventID    string    `json:"event_id"`
	JobID      int64     `json:"job_id"`
	EventType  string    `json:"event_type"`
	Details    string    `json:"details"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewJobEvent builds an event with a fresh identifier and timestamp.
func NewJobEvent(jobID int64, eventType, details string) *JobEvent {
	return &JobEvent{
		EventID:    uuid.New().String(),
		JobID:      jobID,
		EventType:  eventType,
		Details:    details,
		OccurredAt: time.Now().UTC(),
	}
}
