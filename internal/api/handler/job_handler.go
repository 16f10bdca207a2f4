package handler

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jobtrack/jobtrack-be/internal/api/domain"
	"github.com/jobtrack/jobtrack-be/internal/api/dto"
	"github.com/jobtrack/jobtrack-be/internal/api/model"
	"github.com/jobtrack/jobtrack-be/internal/events"
)

// activityLimit caps the number of audit rows returned by GetActivity.
const activityLimit = 50

// ListJobs handles GET /api/jobs
// Returns all job summaries ordered by application date descending. The
// attachment payload is never included, only its filename.
func (h *JobHandler) ListJobs(c *gin.Context) {
	jobs, err := h.jobs.ListJobs(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list jobs", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch jobs",
		})
		return
	}

	response := make([]dto.JobSummaryDTO, len(jobs))
	for i, job := range jobs {
		response[i] = dto.JobSummaryDTO{
			ID:          job.ID,
			Company:     job.Company,
			Title:       job.Title,
			Status:      job.Status,
			JobLink:     nullableString(job.JobLink),
			DateApplied: job.DateApplied.Format(time.RFC3339),
			ResumeName:  nullableString(job.ResumeName),
		}
	}

	c.JSON(http.StatusOK, response)
}

// CreateJob handles POST /api/jobs
// Accepts a multipart form: company, title, status, jobLink fields and an
// optional resume file part. The attachment is held fully in memory between
// receipt and store-write.
func (h *JobHandler) CreateJob(c *gin.Context) {
	company := c.PostForm("company")
	title := c.PostForm("title")
	status := c.PostForm("status")
	jobLink := c.PostForm("jobLink")

	job := model.Job{
		Company: company,
		Title:   title,
		Status:  status,
		JobLink: toNullString(jobLink),
	}

	fileHeader, err := c.FormFile("resume")
	switch {
	case err == nil:
		file, openErr := fileHeader.Open()
		if openErr != nil {
			h.logger.Error("Failed to open uploaded resume", slog.String("error", openErr.Error()))
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Failed to read resume file",
			})
			return
		}
		defer file.Close()

		data, readErr := io.ReadAll(file)
		if readErr != nil {
			h.logger.Error("Failed to read uploaded resume", slog.String("error", readErr.Error()))
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Failed to read resume file",
			})
			return
		}

		// The three attachment fields travel as a unit; a zero-byte upload
		// is treated as no attachment at all.
		if len(data) > 0 {
			job.ResumeData = data
			job.ResumeName = toNullString(fileHeader.Filename)
			job.ResumeType = toNullString(fileHeader.Header.Get("Content-Type"))
		}

	case errors.Is(err, http.ErrMissingFile):
		// No attachment; all three resume columns stay null.

	default:
		h.logger.Error("Invalid multipart form", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid form data",
		})
		return
	}

	if err := h.jobs.CreateJob(c.Request.Context(), &job); err != nil {
		h.logger.Error("Failed to create job", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create job",
		})
		return
	}

	h.logger.Info("Job created",
		slog.Int64("job_id", job.ID),
		slog.String("company", company),
		slog.Bool("has_resume", job.ResumeData != nil),
	)

	h.publishEvent(c.Request.Context(), events.NewJobEvent(
		job.ID,
		events.TypeJobCreated,
		fmt.Sprintf("%s at %s (%s)", title, company, status),
	))

	// Echo the fields as submitted rather than re-reading the row.
	c.JSON(http.StatusOK, gin.H{
		"id":       job.ID,
		"company":  company,
		"title":    title,
		"job_link": nullableString(job.JobLink),
	})
}

// FetchResume handles GET /api/jobs/:id/resume
// Streams the stored attachment with its declared media type and original
// filename in the disposition header.
func (h *JobHandler) FetchResume(c *gin.Context) {
	jobID, ok := h.jobIDParam(c)
	if !ok {
		return
	}

	resume, err := h.jobs.GetResume(c.Request.Context(), jobID)
	if err != nil {
		if errors.Is(err, domain.ErrNoResume) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "No resume found",
			})
			return
		}
		h.logger.Error("Failed to fetch resume",
			slog.Int64("job_id", jobID),
			slog.String("error", err.Error()),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch resume",
		})
		return
	}

	contentType := resume.Type.String
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", resume.Name.String))
	c.Data(http.StatusOK, contentType, resume.Data)
}

// DeleteJob handles DELETE /api/jobs/:id
// Hard-deletes the row. Reports success even when no row matched.
func (h *JobHandler) DeleteJob(c *gin.Context) {
	jobID, ok := h.jobIDParam(c)
	if !ok {
		return
	}

	if err := h.jobs.DeleteJob(c.Request.Context(), jobID); err != nil {
		h.logger.Error("Failed to delete job",
			slog.Int64("job_id", jobID),
			slog.String("error", err.Error()),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to delete job",
		})
		return
	}

	h.logger.Info("Job deleted", slog.Int64("job_id", jobID))

	h.publishEvent(c.Request.Context(), events.NewJobEvent(
		jobID,
		events.TypeJobDeleted,
		"application removed",
	))

	c.JSON(http.StatusOK, gin.H{
		"message": "Deleted",
	})
}

// UpdateJob handles PUT /api/jobs/:id
// Two shapes are accepted: status alone performs a status-only update, and
// status with both company and title performs a full-field replace. A body
// carrying exactly one of company/title is rejected rather than guessed at.
func (h *JobHandler) UpdateJob(c *gin.Context) {
	jobID, ok := h.jobIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body",
		})
		return
	}

	if req.Status == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Status is required",
		})
		return
	}

	switch {
	case req.Company == "" && req.Title == "":
		if err := h.jobs.SetStatus(c.Request.Context(), jobID, req.Status); err != nil {
			h.logger.Error("Failed to update job status",
				slog.Int64("job_id", jobID),
				slog.String("error", err.Error()),
			)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to update job",
			})
			return
		}

		h.publishEvent(c.Request.Context(), events.NewJobEvent(
			jobID,
			events.TypeJobStatusChanged,
			fmt.Sprintf("status set to %s", req.Status),
		))

	case req.Company != "" && req.Title != "":
		err := h.jobs.ReplaceFields(
			c.Request.Context(),
			jobID,
			req.Company,
			req.Title,
			req.Status,
			toNullString(req.JobLink),
		)
		if err != nil {
			h.logger.Error("Failed to update job",
				slog.Int64("job_id", jobID),
				slog.String("error", err.Error()),
			)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to update job",
			})
			return
		}

		h.publishEvent(c.Request.Context(), events.NewJobEvent(
			jobID,
			events.TypeJobUpdated,
			fmt.Sprintf("%s at %s (%s)", req.Title, req.Company, req.Status),
		))

	default:
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Company and title must be provided together",
		})
		return
	}

	h.logger.Info("Job updated",
		slog.Int64("job_id", jobID),
		slog.String("status", req.Status),
	)

	c.JSON(http.StatusOK, gin.H{
		"message": "Updated",
	})
}

// GetActivity handles GET /api/activity
// Returns the most recent mutation events recorded by the worker service.
func (h *JobHandler) GetActivity(c *gin.Context) {
	entries, err := h.jobs.ListActivity(c.Request.Context(), activityLimit)
	if err != nil {
		h.logger.Error("Failed to list activity", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch activity",
		})
		return
	}

	response := make([]dto.ActivityDTO, len(entries))
	for i, entry := range entries {
		response[i] = dto.ActivityDTO{
			ID:         entry.ID,
			JobID:      entry.JobID,
			EventType:  entry.EventType,
			Details:    entry.Details,
			OccurredAt: entry.OccurredAt.Format(time.RFC3339),
		}
	}

	c.JSON(http.StatusOK, response)
}

// jobIDParam parses the :id path parameter, replying 400 on garbage input.
func (h *JobHandler) jobIDParam(c *gin.Context) (int64, bool) {
	raw := c.Param("id")
	jobID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		h.logger.Error("Invalid job id", slog.String("id", raw))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Job id must be numeric",
		})
		return 0, false
	}
	return jobID, true
}

func toNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullableString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}
