// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "planner/internal/delivery/context"
	"planner/internal/domain/repository"
	"planner/internal/domain/service"
	"planner/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// authService implements the AuthUsecase interface. It coordinates the
// refresh-token store and the token codec to transparently reissue access
// tokens for expired-but-authentic sessions.
type authService struct {
	txManager    repository.TransactionManager
	tokenService service.TokenService
	logger       *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(
	txManager repository.TransactionManager,
	tokenService service.TokenService,
	logger *slog.Logger,
) usecase.AuthUsecase {
	return &authService{
		txManager:    txManager,
		tokenService: tokenService,
		logger:       logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Refresh reissues an access token for the session identified by refreshTokenID.
// The session record stores a signed refresh token whose own signature and
// expiry decide whether the session is still alive. The refresh-token ID is
// carried over into the new access token unchanged; only access tokens rotate.
func (srv *authService) Refresh(ctx context.Context, refreshTokenID uuid.UUID, username string) (*usecase.RefreshOutput, error) {
	srv.log(ctx).Debug("Refreshing access token", slog.Any("refresh_token_id", refreshTokenID))

	var output *usecase.RefreshOutput
	// Outcome of a session that was found but cannot be refreshed. Kept out
	// of the callback's error return: an error there rolls the transaction
	// back, and the expired path carries a DELETE that must commit.
	var sessionErr error

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()
		refreshRepo := repoFactory.RefreshTokenRepo()

		// 1. Look up the session record
		record, err := refreshRepo.FindByID(ctx, refreshTokenID)
		if err != nil {
			if errors.Is(err, repository.ErrRefreshTokenNotFound) {
				return repository.ErrRefreshTokenNotFound
			}

			return errors.Wrap(err, "failed to find refresh token")
		}

		// 2. Verify the stored refresh token's own signature and expiry
		claims, err := srv.tokenService.VerifyRefresh(record.Token)
		if err != nil {
			if errors.Is(err, service.ErrTokenExpired) {
				// The session is over. Delete the record; Delete is a
				// no-op when a concurrent refresh already removed it.
				if delErr := refreshRepo.Delete(ctx, record.ID); delErr != nil {
					return errors.Wrap(delErr, "failed to delete expired refresh token")
				}

				sessionErr = repository.ErrRefreshTokenExpired

				return nil
			}

			// A stored token that fails verification means the store was
			// written with a different secret or tampered with. Keep the
			// record for inspection and treat the session as unusable.
			srv.log(ctx).Warn("Stored refresh token failed verification",
				slog.Any("refresh_token_id", record.ID),
			)

			return repository.ErrRefreshTokenNotFound
		}

		// 3. The claimed identity must line up with the session on record.
		if claims.Username != username {
			srv.log(ctx).Warn("Refresh token username mismatch",
				slog.Any("refresh_token_id", record.ID),
			)

			return repository.ErrRefreshTokenNotFound
		}

		// 4. Resolve the user named by the verified claims
		user, err := userRepo.FindByUsername(ctx, username)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return repository.ErrUserNotFound
			}

			return errors.Wrap(err, "failed to find user")
		}

		if record.UserID != user.ID {
			srv.log(ctx).Warn("Refresh token owner mismatch",
				slog.Any("refresh_token_id", record.ID),
				slog.Any("user_id", user.ID),
			)

			return repository.ErrRefreshTokenNotFound
		}

		// 5. Reissue the access token against the same session
		accessToken, err := srv.tokenService.IssueAccess(user, record.ID)
		if err != nil {
			return errors.Wrap(err, "failed to issue access token")
		}

		output = &usecase.RefreshOutput{
			AccessToken: accessToken,
			User:        user,
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	if sessionErr != nil {
		return nil, sessionErr
	}
	srv.log(ctx).Debug("Successfully refreshed access token", slog.Any("refresh_token_id", refreshTokenID))

	return output, nil
}
