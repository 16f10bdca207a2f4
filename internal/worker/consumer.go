package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/jobtrack/jobtrack-be/internal/events"
	"github.com/jobtrack/jobtrack-be/internal/worker/domain"
	amqp "github.com/rabbitmq/amqp091-go"
)

// setupConsumer configures QoS and returns the delivery channel
func (w *Worker) setupConsumer() (<-chan amqp.Delivery, error) {
	channel := w.rabbitClient.GetChannel()
	if channel == nil {
		return nil, fmt.Errorf("rabbitmq channel is nil")
	}

	// Per-consumer prefetch; manual acknowledgment keeps redeliveries
	// possible on failure.
	if err := channel.Qos(w.prefetchCount, 0, false); err != nil {
		return nil, fmt.Errorf("failed to set QoS: %w", err)
	}

	deliveries, err := w.rabbitClient.Consume(w.workerID)
	if err != nil {
		return nil, fmt.Errorf("failed to start consuming: %w", err)
	}

	return deliveries, nil
}

// decodeEvent parses a delivery body into a job event. A body that does not
// parse, or parses without its identifier or type, is malformed.
func decodeEvent(body []byte) (*events.JobEvent, error) {
	var ev events.JobEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedEvent, err)
	}

	if ev.EventID == "" || ev.EventType == "" {
		return nil, fmt.Errorf("%w: missing event_id or event_type", domain.ErrMalformedEvent)
	}

	return &ev, nil
}

// startDispatcher decodes deliveries and feeds the worker pool. Malformed
// events are nacked without requeue; nothing downstream could process them.
func (w *Worker) startDispatcher(ctx context.Context, deliveries <-chan amqp.Delivery) {
	w.logger.Info("Event dispatcher started",
		slog.String("worker_id", w.workerID),
	)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Event dispatcher stopped - context canceled")
			return

		case delivery, ok := <-deliveries:
			if !ok {
				w.logger.Warn("RabbitMQ delivery channel closed")
				return
			}

			ev, err := decodeEvent(delivery.Body)
			if err != nil {
				w.logger.Error("Dropping undecodable event",
					slog.String("error", err.Error()),
					slog.String("body", string(delivery.Body)),
				)
				if nackErr := delivery.Nack(false, false); nackErr != nil {
					w.logger.Error("Failed to NACK malformed event",
						slog.String("error", nackErr.Error()),
					)
				}
				continue
			}

			task := &domain.EventTask{
				Event:       ev,
				DeliveryTag: delivery.DeliveryTag,
			}

			select {
			case w.tasksChan <- task:
				w.logger.Debug("Event dispatched to worker pool",
					slog.String("event_id", ev.EventID),
					slog.Uint64("delivery_tag", delivery.DeliveryTag),
				)
			case <-ctx.Done():
				w.logger.Info("Event dispatcher stopped while dispatching")
				// Requeue so the event is reprocessed after restart.
				if nackErr := delivery.Nack(false, true); nackErr != nil {
					w.logger.Error("Failed to NACK event on shutdown",
						slog.String("error", nackErr.Error()),
					)
				}
				return
			}
		}
	}
}
