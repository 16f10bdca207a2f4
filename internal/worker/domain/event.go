package domain

import "github.com/jobtrack/jobtrack-be/internal/events"

// EventTask pairs a decoded job event with its broker delivery tag so the
// worker can ack or nack once the audit row is written.
type EventTask struct {
	Event       *events.JobEvent
	DeliveryTag uint64
}
