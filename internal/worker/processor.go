package worker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jobtrack/jobtrack-be/internal/worker/domain"
)

// processEvent writes one audit row for a decoded job event. Insert failures
// are wrapped as retryable so the delivery is requeued.
func (w *Worker) processEvent(ctx context.Context, task *domain.EventTask) error {
	ev := task.Event

	w.logger.Info("Recording job event",
		slog.String("event_id", ev.EventID),
		slog.String("event_type", ev.EventType),
		slog.Int64("job_id", ev.JobID),
	)

	if err := w.storage.InsertEvent(ctx, ev); err != nil {
		return domain.NewRetryableError(fmt.Errorf("failed to record event: %w", err))
	}

	return nil
}
