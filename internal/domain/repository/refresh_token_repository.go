package repository

import (
	"context"

	"planner/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Domain-specific errors for refresh token persistence.
var (
	// ErrRefreshTokenNotFound is returned when no stored record matches the
	// requested ID. It also stands in for revoked and logged-out sessions.
	ErrRefreshTokenNotFound = errors.New("refresh token not found")
	// ErrRefreshTokenExpired is returned when the stored refresh token has
	// expired; the record is deleted before this error is surfaced.
	ErrRefreshTokenExpired = errors.New("refresh token has expired")
)

// RefreshTokenRepository defines the interface for the server-side session store.
type RefreshTokenRepository interface {
	// Create persists a new refresh token record.
	Create(ctx context.Context, token *entity.RefreshToken) error

	// FindByID retrieves a refresh token record by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.RefreshToken, error)

	// Delete removes a refresh token record by its ID, ending the session.
	// Deleting an absent record is a no-op, not an error.
	Delete(ctx context.Context, id uuid.UUID) error
}
