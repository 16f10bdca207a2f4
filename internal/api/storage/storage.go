package storage

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/jobtrack/jobtrack-be/shared/postgresql"
)

type Storage struct {
	db *sqlx.DB
}

func NewStorage(pg *postgresql.Client) *Storage {
	return &Storage{
		db: pg.GetDB(),
	}
}

// Migrate applies the idempotent schema setup. It is run at every startup
// and must succeed against a database that already has the target schema.
func (s *Storage) Migrate(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			username VARCHAR(255) UNIQUE NOT NULL,
			password_hash VARCHAR(255) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS jobs (
			id BIGSERIAL PRIMARY KEY,
			company VARCHAR(255),
			title VARCHAR(255),
			status VARCHAR(50),
			resume_data BYTEA,
			resume_name VARCHAR(255),
			resume_type VARCHAR(100),
			date_applied TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		// job_link arrived after the first release of the jobs table
		`ALTER TABLE jobs ADD COLUMN IF NOT EXISTS job_link TEXT`,
		// audit table written by the worker service, read by /api/activity;
		// both services declare it so either can start first
		`CREATE TABLE IF NOT EXISTS job_events (
			id BIGSERIAL PRIMARY KEY,
			event_id VARCHAR(36) UNIQUE NOT NULL,
			job_id BIGINT NOT NULL,
			event_type VARCHAR(50) NOT NULL,
			details TEXT NOT NULL DEFAULT '',
			occurred_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to run schema setup: %w", err)
		}
	}

	return nil
}
