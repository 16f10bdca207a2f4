package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jobtrack/jobtrack-be/internal/api/domain"
	"github.com/jobtrack/jobtrack-be/internal/api/model"
	"github.com/jobtrack/jobtrack-be/shared/postgresql"
)

// CreateUser inserts a new account in a single statement and returns the
// assigned identifier. Username uniqueness is enforced by the store's
// constraint; a violation surfaces as domain.ErrUsernameTaken.
func (s *Storage) CreateUser(ctx context.Context, username, passwordHash string) (int64, error) {
	query := `
		INSERT INTO users (username, password_hash)
		VALUES ($1, $2)
		RETURNING id
	`

	var id int64
	err := s.db.QueryRowContext(ctx, query, username, passwordHash).Scan(&id)
	if err != nil {
		if postgresql.IsUniqueViolation(err) {
			return 0, domain.ErrUsernameTaken
		}
		return 0, fmt.Errorf("failed to create user: %w", err)
	}

	return id, nil
}

// GetUserByUsername fetches an account for credential verification.
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `
		SELECT id, username, password_hash, created_at
		FROM users
		WHERE username = $1
	`

	var user model.User
	err := s.db.GetContext(ctx, &user, query, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}
