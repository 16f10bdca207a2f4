package dto

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type UserDTO struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// UpdateJobRequest is the body of PUT /api/jobs/:id. Which fields are set
// selects the update operation: status alone is a status-only update, status
// plus company and title is a full-field replace.
type UpdateJobRequest struct {
	Status  string `json:"status"`
	Company string `json:"company"`
	Title   string `json:"title"`
	JobLink string `json:"jobLink"`
}

// JobSummaryDTO mirrors the listing projection. job_link and resume_name are
// null when absent, matching the wire format clients already depend on.
type JobSummaryDTO struct {
	ID          int64   `json:"id"`
	Company     string  `json:"company"`
	Title       string  `json:"title"`
	Status      string  `json:"status"`
	JobLink     *string `json:"job_link"`
	DateApplied string  `json:"date_applied"`
	ResumeName  *string `json:"resume_name"`
}

type ActivityDTO struct {
	ID         int64  `json:"id"`
	JobID      int64  `json:"job_id"`
	EventType  string `json:"event_type"`
	Details    string `json:"details"`
	OccurredAt string `json:"occurred_at"`
}
