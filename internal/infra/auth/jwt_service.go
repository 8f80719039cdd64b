// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"planner/config"
	"planner/internal/domain/entity"
	"planner/internal/domain/service"
)

// jwtService implements TokenService with HMAC-SHA512 signatures. Access and
// refresh tokens are signed with distinct secrets so a leak of one secret
// never validates the other token class.
type jwtService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewJWTService is the constructor for jwtService.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Access == "" || cfg.SecretKey.Refresh == "" {
		return nil, errors.New("jwt secrets must be provided")
	}
	if cfg.SecretKey.Access == cfg.SecretKey.Refresh {
		return nil, errors.New("access and refresh secrets must differ")
	}

	return &jwtService{
		accessSecret:  []byte(cfg.SecretKey.Access),
		refreshSecret: []byte(cfg.SecretKey.Refresh),
		accessTTL:     cfg.Auth.AccessTokenTTL,
		refreshTTL:    cfg.Auth.RefreshTokenTTL,
	}, nil
}

// VerifyAccess validates an access token against the access secret.
func (s *jwtService) VerifyAccess(tokenString string) (*service.AccessClaims, error) {
	claims := &service.AccessClaims{}
	if err := s.verify(tokenString, claims, s.accessSecret); err != nil {
		if errors.Is(err, service.ErrTokenExpired) {
			// The parser checks the signature before the expiry claim, so
			// claims decoded here are trustworthy for identity.
			return claims, err
		}

		return nil, err
	}

	return claims, nil
}

// VerifyRefresh validates a refresh token against the refresh secret.
func (s *jwtService) VerifyRefresh(tokenString string) (*service.RefreshClaims, error) {
	claims := &service.RefreshClaims{}
	if err := s.verify(tokenString, claims, s.refreshSecret); err != nil {
		if errors.Is(err, service.ErrTokenExpired) {
			return claims, err
		}

		return nil, err
	}

	return claims, nil
}

// verify parses and validates a token, collapsing every non-expiry failure
// into ErrTokenInvalid so callers cannot distinguish a bad signature from a
// malformed token or a wrong algorithm.
func (s *jwtService) verify(tokenString string, claims jwt.Claims, secret []byte) error {
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(token *jwt.Token) (any, error) {
			return secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err == nil {
		return nil
	}

	if errors.Is(err, jwt.ErrTokenExpired) && !errors.Is(err, jwt.ErrTokenSignatureInvalid) {
		return service.ErrTokenExpired
	}

	return service.ErrTokenInvalid
}

// IssueAccess mints a new access token embedding the refresh-token ID that
// authorizes its renewal.
func (s *jwtService) IssueAccess(user *entity.User, refreshTokenID uuid.UUID) (string, error) {
	now := time.Now()
	claims := &service.AccessClaims{
		Username:       user.Username,
		RefreshTokenID: refreshTokenID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(s.accessSecret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign access token")
	}

	return signed, nil
}

// IssueRefresh mints a new refresh token. The signed string carries its own
// expiry; the server-side record stores it verbatim.
func (s *jwtService) IssueRefresh(user *entity.User) (string, error) {
	now := time.Now()
	claims := &service.RefreshClaims{
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.refreshTTL)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(s.refreshSecret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign refresh token")
	}

	return signed, nil
}
