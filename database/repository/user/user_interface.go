package userRepo

import (
	"context"
	"errors"

	"kisansaarthi/models"
)

// ErrDuplicateUser is returned by Create when the email or phone is taken.
var ErrDuplicateUser = errors.New("user with this email or phone already exists")

// ErrUserNotFound is returned by updates that match no user.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines methods for user data access. Lookups return
// (nil, nil) when nothing matches.
type UserRepository interface {
	// GetByPhone retrieves a user by mobile number.
	GetByPhone(ctx context.Context, phone string) (*models.User, error)
	// GetByEmail retrieves a user by its email address.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// Create inserts a new user record.
	Create(ctx context.Context, user *models.User) error
	// UpdatePassword replaces the password hash of user id.
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}
