package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
)

// Broker is the subset of the RabbitMQ client the publisher needs.
type Broker interface {
	PublishWithRetry(ctx context.Context, body []byte, contentType string) error
}

// Publisher serializes job events onto the activity exchange.
type Publisher struct {
	broker Broker
	logger *slog.Logger
}

func NewPublisher(broker Broker, logger *slog.Logger) *Publisher {
	return &Publisher{
		broker: broker,
		logger: logger,
	}
}

// Publish sends one event. Callers treat failures as best-effort: a mutation
// must not fail because the broker is down.
func (p *Publisher) Publish(ctx context.Context, ev *JobEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal job event: %w", err)
	}

	if err := p.broker.PublishWithRetry(ctx, body, "application/json"); err != nil {
		return fmt.Errorf("failed to publish job event: %w", err)
	}

	p.logger.Debug("Job event published",
		slog.String("event_id", ev.EventID),
		slog.String("event_type", ev.EventType),
		slog.Int64("job_id", ev.JobID),
	)

	return nil
}
