package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jobtrack/jobtrack-be/internal/api/domain"
	"github.com/jobtrack/jobtrack-be/internal/api/model"
)

// ListJobs returns all job summaries ordered by application date descending.
// The attachment payload is never part of the projection.
func (s *Storage) ListJobs(ctx context.Context) ([]model.JobSummary, error) {
	query := `
		SELECT id, company, title, status, job_link, date_applied, resume_name
		FROM jobs
		ORDER BY date_applied DESC, id DESC
	`

	jobs := []model.JobSummary{}
	err := s.db.SelectContext(ctx, &jobs, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	return jobs, nil
}

// CreateJob inserts a new record and fills in the assigned identifier and
// application timestamp. The three attachment columns are written as a unit:
// all null when no resume was attached, all populated otherwise.
func (s *Storage) CreateJob(ctx context.Context, job *model.Job) error {
	query := `
		INSERT INTO jobs (company, title, status, job_link, resume_data, resume_name, resume_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, date_applied
	`

	err := s.db.QueryRowContext(
		ctx,
		query,
		job.Company,
		job.Title,
		job.Status,
		job.JobLink,
		job.ResumeData,
		job.ResumeName,
		job.ResumeType,
	).Scan(&job.ID, &job.DateApplied)

	if err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}

	return nil
}

// GetResume fetches the attachment of a job. A missing row or a row without
// an attachment both surface as domain.ErrNoResume.
func (s *Storage) GetResume(ctx context.Context, jobID int64) (*model.Resume, error) {
	query := `
		SELECT resume_data, resume_name, resume_type
		FROM jobs
		WHERE id = $1
	`

	var resume model.Resume
	err := s.db.GetContext(ctx, &resume, query, jobID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNoResume
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}

	if len(resume.Data) == 0 {
		return nil, domain.ErrNoResume
	}

	return &resume, nil
}

// DeleteJob hard-deletes a row. Deleting an id that does not exist is not an
// error; deletion is idempotent from the caller's perspective.
func (s *Storage) DeleteJob(ctx context.Context, jobID int64) error {
	query := `DELETE FROM jobs WHERE id = $1`

	if _, err := s.db.ExecContext(ctx, query, jobID); err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}

	return nil
}

// SetStatus updates only the status column.
func (s *Storage) SetStatus(ctx context.Context, jobID int64, status string) error {
	query := `UPDATE jobs SET status = $1 WHERE id = $2`

	if _, err := s.db.ExecContext(ctx, query, status, jobID); err != nil {
		return fmt.Errorf("failed to update job status: %w", err)
	}

	return nil
}

// ReplaceFields updates company, title, status, and job link together. The
// attachment columns are never touched by updates.
func (s *Storage) ReplaceFields(ctx context.Context, jobID int64, company, title, status string, jobLink sql.NullString) error {
	query := `
		UPDATE jobs
		SET company = $1, title = $2, status = $3, job_link = $4
		WHERE id = $5
	`

	if _, err := s.db.ExecContext(ctx, query, company, title, status, jobLink, jobID); err != nil {
		return fmt.Errorf("failed to update job: %w", err)
	}

	return nil
}
