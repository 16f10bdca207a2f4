package domain

import (
	"errors"
)

var (
	// ErrNotFound is returned when a user or job row does not exist
	ErrNotFound = errors.New("record not found")

	// ErrUsernameTaken is returned when registration hits the username
	// uniqueness constraint
	ErrUsernameTaken = errors.New("username already exists")

	// ErrNoResume is returned when a job exists but carries no attachment,
	// or the job itself is missing
	ErrNoResume = errors.New("no resume attached")
)
