package handler

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/jobtrack/jobtrack-be/internal/api/model"
	"github.com/jobtrack/jobtrack-be/internal/api/storage"
	"github.com/jobtrack/jobtrack-be/internal/events"
)

// UserStore is the account persistence surface used by AuthHandler.
type UserStore interface {
	CreateUser(ctx context.Context, username, passwordHash string) (int64, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
}

// JobStore is the job-record persistence surface used by JobHandler.
type JobStore interface {
	ListJobs(ctx context.Context) ([]model.JobSummary, error)
	CreateJob(ctx context.Context, job *model.Job) error
	GetResume(ctx context.Context, jobID int64) (*model.Resume, error)
	DeleteJob(ctx context.Context, jobID int64) error
	SetStatus(ctx context.Context, jobID int64, status string) error
	ReplaceFields(ctx context.Context, jobID int64, company, title, status string, jobLink sql.NullString) error
	ListActivity(ctx context.Context, limit int) ([]storage.ActivityEntry, error)
}

// EventPublisher emits job activity events. May be nil when the event bus
// is disabled.
type EventPublisher interface {
	Publish(ctx context.Context, ev *events.JobEvent) error
}

// Dependencies holds all dependencies needed by handlers
type Dependencies struct {
	Logger    *slog.Logger
	Users     UserStore
	Jobs      JobStore
	Publisher EventPublisher
}

// AuthHandler handles registration and login requests
type AuthHandler struct {
	logger *slog.Logger
	users  UserStore
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(deps *Dependencies) *AuthHandler {
	return &AuthHandler{
		logger: deps.Logger,
		users:  deps.Users,
	}
}

// JobHandler handles job-record HTTP requests
type JobHandler struct {
	logger    *slog.Logger
	jobs      JobStore
	publisher EventPublisher
}

// NewJobHandler creates a new JobHandler instance
func NewJobHandler(deps *Dependencies) *JobHandler {
	return &JobHandler{
		logger:    deps.Logger,
		jobs:      deps.Jobs,
		publisher: deps.Publisher,
	}
}

// publishEvent emits a job event best-effort. Publish failures are logged,
// never surfaced to the client.
func (h *JobHandler) publishEvent(ctx context.Context, ev *events.JobEvent) {
	if h.publisher == nil {
		return
	}

	if err := h.publisher.Publish(ctx, ev); err != nil {
		h.logger.Error("Failed to publish job event",
			slog.String("event_type", ev.EventType),
			slog.Int64("job_id", ev.JobID),
			slog.String("error", err.Error()),
		)
	}
}
