package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/jobtrack/jobtrack-be/internal/events"
	"github.com/jobtrack/jobtrack-be/shared/postgresql"
)

// Storage handles the audit-table operations of the worker
type Storage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewStorage creates a new Storage instance
func NewStorage(db *sqlx.DB, logger *slog.Logger) *Storage {
	return &Storage{
		db:     db,
		logger: logger,
	}
}

// Migrate creates the audit table if it does not exist yet. Safe to run at
// every startup.
func (s *Storage) Migrate(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS job_events (
			id BIGSERIAL PRIMARY KEY,
			event_id VARCHAR(36) UNIQUE NOT NULL,
			job_id BIGINT NOT NULL,
			event_type VARCHAR(50) NOT NULL,
			details TEXT NOT NULL DEFAULT '',
			occurred_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`

	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create job_events table: %w", err)
	}

	return nil
}

// InsertEvent records one audit row. Redelivered events hit the event_id
// uniqueness constraint and are treated as already recorded.
func (s *Storage) InsertEvent(ctx context.Context, ev *events.JobEvent) error {
	query := `
		INSERT INTO job_events (event_id, job_id, event_type, details, occurred_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := s.db.ExecContext(
		ctx,
		query,
		ev.EventID,
		ev.JobID,
		ev.EventType,
		ev.Details,
		ev.OccurredAt,
	)

	if err != nil {
		if postgresql.IsUniqueViolation(err) {
			s.logger.Warn("Event already recorded, skipping",
				slog.String("event_id", ev.EventID),
			)
			return nil
		}
		return fmt.Errorf("failed to insert job event: %w", err)
	}

	return nil
}
