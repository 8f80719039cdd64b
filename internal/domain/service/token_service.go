// Package service defines domain service interfaces consumed by the use cases
// and implemented by the infrastructure layer.
package service

import (
	"planner/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Verification outcomes. Expiry of a correctly signed token is a recoverable
// condition distinct from a forged or malformed one.
var (
	// ErrTokenExpired marks a token whose signature validated but whose
	// expiry has passed. VerifyAccess returns the decoded claims alongside
	// this error so the refresh flow can read the token's identity.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid covers bad signature, malformed structure and wrong
	// algorithm. Callers must not learn which check failed.
	ErrTokenInvalid = errors.New("token invalid")
)

// AccessClaims are the claims carried by a short-lived access token.
type AccessClaims struct {
	Username       string    `json:"username"`
	RefreshTokenID uuid.UUID `json:"refreshTokenId"`
	jwt.RegisteredClaims
}

// RefreshClaims are the claims carried by a stored refresh token.
type RefreshClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// TokenService encodes, decodes and cryptographically verifies access and
// refresh tokens. It is pure: no side effects, deterministic for a given
// secret and clock.
type TokenService interface {
	// VerifyAccess validates an access token against the access secret.
	// On expiry it returns the decoded claims together with ErrTokenExpired;
	// the signature has already been checked at that point, so the claims
	// are trustworthy for identity. Any other failure returns ErrTokenInvalid
	// with nil claims.
	VerifyAccess(token string) (*AccessClaims, error)

	// VerifyRefresh validates a refresh token against the refresh secret,
	// with the same error semantics as VerifyAccess.
	VerifyRefresh(token string) (*RefreshClaims, error)

	// IssueAccess mints a new signed access token for the user, embedding
	// the given refresh-token ID.
	IssueAccess(user *entity.User, refreshTokenID uuid.UUID) (string, error)

	// IssueRefresh mints a new signed refresh token for the user. Sessions
	// are provisioned by the login service, not the refresh path: the
	// middleware only verifies stored refresh tokens and never mints them.
	IssueRefresh(user *entity.User) (string, error)
}
