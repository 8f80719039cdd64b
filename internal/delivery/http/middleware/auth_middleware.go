// Package middleware contains the HTTP middleware chain: authentication,
// error translation and request logging.
package middleware

import (
	"log/slog"
	"net/http"

	"planner/config"
	deliverycontext "planner/internal/delivery/context"
	domainerrors "planner/internal/domain/errors"
	"planner/internal/domain/repository"
	"planner/internal/domain/service"
	"planner/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AccessTokenCookie is the cookie carrying the access token.
const AccessTokenCookie = "access_token"

// AuthMiddleware authenticates requests from the access-token cookie and
// transparently reissues expired access tokens backed by a live session.
// Authentication failure is never a request failure: the request continues
// anonymously and the handler decides whether a principal is required.
type AuthMiddleware struct {
	tokenSvc    service.TokenService
	authUsecase usecase.AuthUsecase
	userRepo    repository.UserRepository
	cfg         *config.Config
	logger      *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(
	tokenSvc service.TokenService,
	authUsecase usecase.AuthUsecase,
	userRepo repository.UserRepository,
	cfg *config.Config,
	logger *slog.Logger,
) *AuthMiddleware {
	return &AuthMiddleware{
		tokenSvc:    tokenSvc,
		authUsecase: authUsecase,
		userRepo:    userRepo,
		cfg:         cfg,
		logger:      logger,
	}
}

// Authenticate is the core middleware. For every request it runs exactly one
// of three paths: attach a principal from a valid token, recover an expired
// token through the refresh flow, or pass the request through anonymously.
// next runs exactly once; only an internal inconsistency short-circuits it.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(AccessTokenCookie)
		if err != nil || cookie.Value == "" {
			return next(c)
		}

		ctx := c.Request().Context()

		claims, err := m.tokenSvc.VerifyAccess(cookie.Value)
		if err == nil {
			user, err := m.userRepo.FindByUsername(ctx, claims.Username)
			if err != nil {
				if errors.Is(err, repository.ErrUserNotFound) {
					// A validly signed token names a user that does not
					// exist. That is data corruption or secret compromise,
					// not a client mistake; surface it.
					return domainerrors.ErrTokenUserMissing.WrapMessage("user not found for valid access token")
				}

				return errors.Wrap(err, "failed to resolve token user")
			}

			deliverycontext.SetPrincipal(c, user)

			return next(c)
		}

		if errors.Is(err, service.ErrTokenExpired) {
			return m.refreshAndContinue(c, next, claims)
		}

		// Forged, malformed or wrong-algorithm token. No store lookups, no
		// detail in the log beyond the fact itself.
		m.logger.Warn("Rejected invalid access token", slog.String("path", c.Request().URL.Path))

		return next(c)
	}
}

// refreshAndContinue runs the refresh flow for an expired access token whose
// signature already validated. On success the response carries a fresh cookie
// and the request proceeds authenticated; on a dead session it proceeds
// anonymously.
func (m *AuthMiddleware) refreshAndContinue(c echo.Context, next echo.HandlerFunc, claims *service.AccessClaims) error {
	ctx := c.Request().Context()

	output, err := m.authUsecase.Refresh(ctx, claims.RefreshTokenID, claims.Username)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRefreshTokenNotFound),
			errors.Is(err, repository.ErrRefreshTokenExpired):
			m.logger.Info("Session not refreshable",
				slog.Any("refresh_token_id", claims.RefreshTokenID),
				slog.String("reason", err.Error()),
			)

			return next(c)
		case errors.Is(err, repository.ErrUserNotFound):
			return domainerrors.ErrTokenUserMissing.WrapMessage("user not found for valid refresh session")
		default:
			return errors.Wrap(err, "refresh flow failed")
		}
	}

	m.setAccessCookie(c, output.AccessToken)
	deliverycontext.SetPrincipal(c, output.User)

	return next(c)
}

// setAccessCookie writes the reissued access token onto the response.
func (m *AuthMiddleware) setAccessCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     AccessTokenCookie,
		Value:    token,
		Path:     "/",
		Domain:   m.cfg.Cookie.Domain,
		MaxAge:   m.cfg.Cookie.MaxAge,
		Secure:   m.cfg.Cookie.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

// RequireAuthenticated rejects requests that reached the handler without a
// principal. It must be used AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequireAuthenticated(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if deliverycontext.GetPrincipal(c) == nil {
			return domainerrors.ErrUnauthenticated
		}

		return next(c)
	}
}
