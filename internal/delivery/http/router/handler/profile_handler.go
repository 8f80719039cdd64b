package handler

import (
	"net/http"

	deliverycontext "planner/internal/delivery/context"
	"planner/internal/delivery/http/response"

	"github.com/labstack/echo/v4"
)

// ProfileHandler serves the authenticated user's own profile.
type ProfileHandler struct{}

// NewProfileHandler is the constructor for ProfileHandler.
func NewProfileHandler() *ProfileHandler {
	return &ProfileHandler{}
}

// GetProfile returns the principal attached by the auth middleware.
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	principal := deliverycontext.GetPrincipal(c)

	return response.Success(c, http.StatusOK, principal, "")
}
