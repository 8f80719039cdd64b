package handler

import (
	"log/slog"
	"net/http"

	deliverycontext "planner/internal/delivery/context"
	"planner/internal/delivery/http/response"
	"planner/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AttendanceHandler holds dependencies for attendance handlers.
type AttendanceHandler struct {
	uc     usecase.AttendanceUsecase
	logger *slog.Logger
}

// NewAttendanceHandler is the constructor for AttendanceHandler, injected by Fx.
func NewAttendanceHandler(uc usecase.AttendanceUsecase, logger *slog.Logger) *AttendanceHandler {
	return &AttendanceHandler{
		uc:     uc,
		logger: logger,
	}
}

// CheckIn records an attendance check for the authenticated user.
func (h *AttendanceHandler) CheckIn(c echo.Context) error {
	principal := deliverycontext.GetPrincipal(c)

	check, err := h.uc.CheckIn(c.Request().Context(), principal.ID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, check, "Attendance recorded")
}

// List returns the authenticated user's attendance checks.
func (h *AttendanceHandler) List(c echo.Context) error {
	principal := deliverycontext.GetPrincipal(c)

	checks, err := h.uc.ListChecks(c.Request().Context(), principal.ID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, checks, "")
}
