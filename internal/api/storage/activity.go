package storage

import (
	"context"
	"fmt"
	"time"
)

// ActivityEntry is one row of the job_events audit table written by the
// worker service.
type ActivityEntry struct {
	ID         int64     `db:"id"`
	EventID    string    `db:"event_id"`
	JobID      int64     `db:"job_id"`
	EventType  string    `db:"event_type"`
	Details    string    `db:"details"`
	OccurredAt time.Time `db:"occurred_at"`
}

// ListActivity returns the most recent audit entries, newest first.
func (s *Storage) ListActivity(ctx context.Context, limit int) ([]ActivityEntry, error) {
	query := `
		SELECT id, event_id, job_id, event_type, details, occurred_at
		FROM job_events
		ORDER BY occurred_at DESC, id DESC
		LIMIT $1
	`

	entries := []ActivityEntry{}
	err := s.db.SelectContext(ctx, &entries, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}

	return entries, nil
}
