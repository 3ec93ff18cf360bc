package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Rahul-Chotaliya/tradehub/internal/apperrors"
	"github.com/Rahul-Chotaliya/tradehub/internal/model"
)

// UserRepository provides data access methods for the users table.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository with the provided database connection.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// InsertUser stores a new user. Returns ErrDuplicateUsername if the username is taken.
func (r *UserRepository) InsertUser(ctx context.Context, u *model.User) error {
	query := `
		INSERT INTO users (id, username, password_hash, created_at)
		VALUES (?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query, u.ID, u.Username, u.PasswordHash, FormatTime(u.CreatedAt))
	if err != nil {
		if isUniqueViolation(err, "users.username") {
			return apperrors.ErrDuplicateUsername
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

// GetUserByUsername returns the user with the given username, or ErrUserNotFound.
func (r *UserRepository) GetUserByUsername(ctx context.Context, username string) (model.User, error) {
	return r.getUser(ctx, `WHERE username = ?`, username)
}

// GetUserByID returns the user with the given id, or ErrUserNotFound.
func (r *UserRepository) GetUserByID(ctx context.Context, id string) (model.User, error) {
	return r.getUser(ctx, `WHERE id = ?`, id)
}

func (r *UserRepository) getUser(ctx context.Context, where string, arg string) (model.User, error) {
	query := `SELECT id, username, password_hash, created_at FROM users ` + where

	var u model.User
	var createdAtStr string
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&u.ID, &u.Username, &u.PasswordHash, &createdAtStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, apperrors.ErrUserNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user: %w", err)
	}

	u.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.User{}, err
	}

	return u, nil
}
