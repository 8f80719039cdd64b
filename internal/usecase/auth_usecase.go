// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"planner/internal/domain/entity"

	"github.com/google/uuid"
)

// RefreshOutput carries the result of a successful token refresh: a freshly
// signed access token bound to the same session, and the resolved user.
type RefreshOutput struct {
	AccessToken string
	User        *entity.User
}

// AuthUsecase defines the interface for the token refresh flow.
type AuthUsecase interface {
	// Refresh attempts to reissue an access token for the session identified
	// by refreshTokenID. The username comes from the expired access token's
	// claims and must match the session owner. Failure modes:
	//   - repository.ErrRefreshTokenNotFound: no usable session (missing
	//     record, unverifiable stored token, or owner mismatch)
	//   - repository.ErrRefreshTokenExpired: session expired; the record has
	//     been deleted
	Refresh(ctx context.Context, refreshTokenID uuid.UUID, username string) (*RefreshOutput, error)
}
