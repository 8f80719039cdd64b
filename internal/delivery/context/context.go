// Package context carries request-scoped values between the delivery layer
// and the rest of the application: request IDs, request-scoped loggers and
// the authenticated principal.
package context

import (
	"context"
	"log/slog"

	"planner/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ContextKey is a custom type for context keys to avoid collisions.
type ContextKey string

const (
	// KeyRequestID is the key for storing request ID in context.
	KeyRequestID ContextKey = "request_id"

	// KeyLogger is the key for storing request-scoped logger in context.
	KeyLogger ContextKey = "logger"

	// KeyPrincipal is the key for storing the authenticated principal in context.
	KeyPrincipal ContextKey = "principal"

	// HeaderXRequestID is the HTTP header name for request ID.
	HeaderXRequestID = "X-Request-Id"
)

// GetRequestID extracts the request ID from echo.Context.
// If not found, generates a new UUID.
func GetRequestID(c echo.Context) string {
	val := c.Get(string(KeyRequestID))
	if id, ok := val.(string); ok && id != "" {
		return id
	}

	return uuid.New().String()
}

// SetRequestID sets the request ID in echo.Context.
func SetRequestID(c echo.Context, requestID string) {
	c.Set(string(KeyRequestID), requestID)
}

// GetRequestIDFromContext extracts the request ID from standard context.Context.
// If not found, returns empty string.
func GetRequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(KeyRequestID).(string); ok {
		return id
	}

	return ""
}

// WithRequestID returns a new context with the request ID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, KeyRequestID, requestID)
}

// GetLogger extracts the request-scoped logger from context.Context.
// If not found, returns nil.
func GetLogger(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(KeyLogger).(*slog.Logger); ok {
		return logger
	}

	return nil
}

// GetLoggerOrDefault extracts the request-scoped logger from context.Context.
// If not found, returns the provided fallback logger.
func GetLoggerOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger := GetLogger(ctx); logger != nil {
		return logger
	}

	return fallback
}

// WithLogger returns a new context with the logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, KeyLogger, logger)
}

// SetPrincipal attaches the authenticated user to both the echo context and
// the request's context.Context, so handlers and usecases can read it.
func SetPrincipal(c echo.Context, user *entity.User) {
	c.Set(string(KeyPrincipal), user)
	req := c.Request()
	c.SetRequest(req.WithContext(WithPrincipal(req.Context(), user)))
}

// GetPrincipal extracts the authenticated user from echo.Context.
// Returns nil when the request is anonymous.
func GetPrincipal(c echo.Context) *entity.User {
	if user, ok := c.Get(string(KeyPrincipal)).(*entity.User); ok {
		return user
	}

	return nil
}

// WithPrincipal returns a new context with the authenticated user.
func WithPrincipal(ctx context.Context, user *entity.User) context.Context {
	return context.WithValue(ctx, KeyPrincipal, user)
}

// GetPrincipalFromContext extracts the authenticated user from standard
// context.Context. Returns nil when the request is anonymous.
func GetPrincipalFromContext(ctx context.Context) *entity.User {
	if user, ok := ctx.Value(KeyPrincipal).(*entity.User); ok {
		return user
	}

	return nil
}
