package model

import (
	"database/sql"
	"time"
)

type User struct {
	ID           int64     `db:"id"`
	Username     string    `db:"username"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

// Job is the full jobs row, attachment payload included. Only the resume
// endpoint ever reads ResumeData; everything else works with JobSummary.
type Job struct {
	ID          int64          `db:"id"`
	Company     string         `db:"company"`
	Title       string         `db:"title"`
	Status      string         `db:"status"`
	JobLink     sql.NullString `db:"job_link"`
	ResumeData  []byte         `db:"resume_data"`
	ResumeName  sql.NullString `db:"resume_name"`
	ResumeType  sql.NullString `db:"resume_type"`
	DateApplied time.Time      `db:"date_applied"`
}

// JobSummary is the listing projection: no attachment bytes, just the
// filename so the client can tell whether a resume exists.
type JobSummary struct {
	ID          int64          `db:"id"`
	Company     string         `db:"company"`
	Title       string         `db:"title"`
	Status      string         `db:"status"`
	JobLink     sql.NullString `db:"job_link"`
	DateApplied time.Time      `db:"date_applied"`
	ResumeName  sql.NullString `db:"resume_name"`
}

// Resume carries an attachment out of the store as a unit.
type Resume struct {
	Data []byte         `db:"resume_data"`
	Name sql.NullString `db:"resume_name"`
	Type sql.NullString `db:"resume_type"`
}
