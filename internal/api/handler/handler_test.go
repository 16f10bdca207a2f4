package handler

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/jobtrack/jobtrack-be/internal/api/domain"
	"github.com/jobtrack/jobtrack-be/internal/api/model"
	"github.com/jobtrack/jobtrack-be/internal/api/storage"
	"github.com/jobtrack/jobtrack-be/internal/events"
)

// fakeUserStore is an in-memory UserStore for handler tests.
type fakeUserStore struct {
	users  map[string]*model.User
	nextID int64
	err    error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		users:  make(map[string]*model.User),
		nextID: 1,
	}
}

func (f *fakeUserStore) CreateUser(_ context.Context, username, passwordHash string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	if _, ok := f.users[username]; ok {
		return 0, domain.ErrUsernameTaken
	}
	id := f.nextID
	f.nextID++
	f.users[username] = &model.User{
		ID:           id,
		Username:     username,
		PasswordHash: passwordHash,
	}
	return id, nil
}

func (f *fakeUserStore) GetUserByUsername(_ context.Context, username string) (*model.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	user, ok := f.users[username]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return user, nil
}

// fakeJobStore is an in-memory JobStore that records which operations were
// called with which arguments.
type fakeJobStore struct {
	summaries []model.JobSummary
	jobs      map[int64]*model.Job
	activity  []storage.ActivityEntry
	nextID    int64
	err       error

	setStatusCalls []struct {
		JobID  int64
		Status string
	}
	replaceCalls []struct {
		JobID                  int64
		Company, Title, Status string
		JobLink                sql.NullString
	}
	deletedIDs []int64
}

func newFakeJobStore() *fakeJobStore {
	return &fakeJobStore{
		jobs:   make(map[int64]*model.Job),
		nextID: 1,
	}
}

func (f *fakeJobStore) ListJobs(_ context.Context) ([]model.JobSummary, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.summaries, nil
}

func (f *fakeJobStore) CreateJob(_ context.Context, job *model.Job) error {
	if f.err != nil {
		return f.err
	}
	job.ID = f.nextID
	f.nextID++
	stored := *job
	f.jobs[job.ID] = &stored
	return nil
}

func (f *fakeJobStore) GetResume(_ context.Context, jobID int64) (*model.Resume, error) {
	if f.err != nil {
		return nil, f.err
	}
	job, ok := f.jobs[jobID]
	if !ok || len(job.ResumeData) == 0 {
		return nil, domain.ErrNoResume
	}
	return &model.Resume{
		Data: job.ResumeData,
		Name: job.ResumeName,
		Type: job.ResumeType,
	}, nil
}

func (f *fakeJobStore) DeleteJob(_ context.Context, jobID int64) error {
	if f.err != nil {
		return f.err
	}
	delete(f.jobs, jobID)
	f.deletedIDs = append(f.deletedIDs, jobID)
	return nil
}

func (f *fakeJobStore) SetStatus(_ context.Context, jobID int64, status string) error {
	if f.err != nil {
		return f.err
	}
	f.setStatusCalls = append(f.setStatusCalls, struct {
		JobID  int64
		Status string
	}{jobID, status})
	return nil
}

func (f *fakeJobStore) ReplaceFields(_ context.Context, jobID int64, company, title, status string, jobLink sql.NullString) error {
	if f.err != nil {
		return f.err
	}
	f.replaceCalls = append(f.replaceCalls, struct {
		JobID                  int64
		Company, Title, Status string
		JobLink                sql.NullString
	}{jobID, company, title, status, jobLink})
	return nil
}

func (f *fakeJobStore) ListActivity(_ context.Context, _ int) ([]storage.ActivityEntry, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.activity, nil
}

// fakePublisher records published events.
type fakePublisher struct {
	events []*events.JobEvent
	err    error
}

func (f *fakePublisher) Publish(_ context.Context, ev *events.JobEvent) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, ev)
	return nil
}

// newTestRouter wires the handlers under test onto a bare gin engine.
func newTestRouter(deps *Dependencies) *gin.Engine {
	gin.SetMode(gin.TestMode)

	if deps.Logger == nil {
		deps.Logger = slog.New(slog.DiscardHandler)
	}

	authHandler := NewAuthHandler(deps)
	jobHandler := NewJobHandler(deps)

	r := gin.New()
	api := r.Group("/api")
	{
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)
		api.GET("/activity", jobHandler.GetActivity)

		jobs := api.Group("/jobs")
		{
			jobs.GET("", jobHandler.ListJobs)
			jobs.POST("", jobHandler.CreateJob)
			jobs.GET("/:id/resume", jobHandler.FetchResume)
			jobs.PUT("/:id", jobHandler.UpdateJob)
			jobs.DELETE("/:id", jobHandler.DeleteJob)
		}
	}

	return r
}
