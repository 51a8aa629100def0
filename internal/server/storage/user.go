package storage

import (
	"context"

	"stockroom/internal/models"
)

// UserStorage defines interface for user data persistence
type UserStorage interface {
	// CreateUser creates a new user in the storage.
	// Returns ErrUserAlreadyExists if the email is already taken; the
	// uniqueness guarantee lives here, not in the caller.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves user by email (byte-for-byte match)
	// Returns ErrUserNotFound if user doesn't exist
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID retrieves user by ID
	// Returns ErrUserNotFound if user doesn't exist
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
}
