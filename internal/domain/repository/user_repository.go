// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"planner/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrUserNotFound is returned when a user lookup matches no record.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the interface for user persistence operations.
// The authentication path only ever reads from it.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByUsername retrieves a single user by the username embedded in token claims.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// Create persists a new user.
	Create(ctx context.Context, user *entity.User) error
}
