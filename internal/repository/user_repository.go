package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mheijden/portfolio-tracker/internal/apperrors"
	"github.com/mheijden/portfolio-tracker/internal/model"
)

// UserRepository provides data access methods for the user table.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository with the provided database connection.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// InsertUser persists a new user account.
func (s *UserRepository) InsertUser(ctx context.Context, u model.User) error {
	query := `
		INSERT INTO user (id, username, email, password_hash, created_at)
		VALUES (?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		u.ID,
		u.Username,
		u.Email,
		u.PasswordHash,
		u.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// GetUserByUsername retrieves a user account by username.
// Returns apperrors.ErrUserNotFound when no such user exists.
func (s *UserRepository) GetUserByUsername(ctx context.Context, username string) (model.User, error) {
	query := `
		SELECT id, username, email, password_hash, created_at
		FROM user
		WHERE username = ?
	`
	return s.queryUser(ctx, query, username)
}

// GetUserOnID retrieves a user account by ID.
// Returns apperrors.ErrUserNotFound when no such user exists.
func (s *UserRepository) GetUserOnID(ctx context.Context, userID string) (model.User, error) {
	query := `
		SELECT id, username, email, password_hash, created_at
		FROM user
		WHERE id = ?
	`
	return s.queryUser(ctx, query, userID)
}

// UserExists reports whether a user with the given username or email exists.
func (s *UserRepository) UserExists(ctx context.Context, username, email string) (bool, error) {
	query := `
		SELECT COUNT(*)
		FROM user
		WHERE username = ? OR email = ?
	`
	var count int
	if err := s.db.QueryRowContext(ctx, query, username, email).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to query user table: %w", err)
	}
	return count > 0, nil
}

func (s *UserRepository) queryUser(ctx context.Context, query string, arg any) (model.User, error) {
	var u model.User
	var createdAtStr string

	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&createdAtStr,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, apperrors.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to query user: %w", err)
	}

	u.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.User{}, err
	}

	return u, nil
}
