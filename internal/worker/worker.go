// Package worker consumes job activity events from RabbitMQ and records
// them in the job_events audit table.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/jobtrack/jobtrack-be/internal/events"
	"github.com/jobtrack/jobtrack-be/internal/worker/domain"
	"github.com/jobtrack/jobtrack-be/internal/worker/storage"
	"github.com/jobtrack/jobtrack-be/shared/postgresql"
	"github.com/jobtrack/jobtrack-be/shared/rabbitmq"
)

// auditStore is the persistence surface the worker writes through.
type auditStore interface {
	Migrate(ctx context.Context) error
	InsertEvent(ctx context.Context, ev *events.JobEvent) error
}

// Config holds worker configuration
type Config struct {
	Logger        *slog.Logger
	DBClient      *postgresql.Client
	RabbitClient  *rabbitmq.Client
	Concurrency   int
	PrefetchCount int
}

// Worker represents the background audit recorder
type Worker struct {
	logger        *slog.Logger
	storage       auditStore
	rabbitClient  *rabbitmq.Client
	concurrency   int
	prefetchCount int
	workerID      string
	wg            sync.WaitGroup
	stopChan      chan struct{}
	tasksChan     chan *domain.EventTask
}

// NewWorker creates a new worker instance
func NewWorker(cfg *Config) *Worker {
	return &Worker{
		logger:        cfg.Logger,
		storage:       storage.NewStorage(cfg.DBClient.GetDB(), cfg.Logger),
		rabbitClient:  cfg.RabbitClient,
		concurrency:   cfg.Concurrency,
		prefetchCount: cfg.PrefetchCount,
		workerID:      fmt.Sprintf("audit-worker-%s", uuid.New().String()[:8]),
		stopChan:      make(chan struct{}),
		tasksChan:     make(chan *domain.EventTask),
	}
}

// Start prepares the audit table, spawns the worker pool, and dispatches
// deliveries until the context is canceled.
func (w *Worker) Start(ctx context.Context) error {
	w.logger.Info("Starting worker",
		slog.String("worker_id", w.workerID),
		slog.Int("concurrency", w.concurrency),
	)

	if err := w.storage.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to prepare audit table: %w", err)
	}

	deliveries, err := w.setupConsumer()
	if err != nil {
		return fmt.Errorf("failed to setup consumer: %w", err)
	}

	w.spawnWorkerPool(ctx)
	w.startDispatcher(ctx, deliveries)

	return nil
}

// Stop gracefully stops the worker pool
func (w *Worker) Stop() {
	w.logger.Info("Stopping worker...")
	close(w.stopChan)
	w.wg.Wait()
	w.logger.Info("Worker stopped")
}
