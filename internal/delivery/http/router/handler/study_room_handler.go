package handler

import (
	"log/slog"
	"net/http"

	"planner/internal/delivery/http/response"
	"planner/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// StudyRoomHandler holds dependencies for study room handlers.
type StudyRoomHandler struct {
	uc     usecase.StudyRoomUsecase
	logger *slog.Logger
}

// NewStudyRoomHandler is the constructor for StudyRoomHandler, injected by Fx.
func NewStudyRoomHandler(uc usecase.StudyRoomUsecase, logger *slog.Logger) *StudyRoomHandler {
	return &StudyRoomHandler{
		uc:     uc,
		logger: logger,
	}
}

type createStudyRoomRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=1000"`
}

// Create handles creating a study room inside a category.
func (h *StudyRoomHandler) Create(c echo.Context) error {
	categoryID, err := uuid.Parse(c.Param("categoryId"))
	if err != nil {
		return response.BindingError(c, "INVALID_ID", "Invalid category ID")
	}

	var req createStudyRoomRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid room input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	room, err := h.uc.CreateRoom(c.Request().Context(), categoryID, usecase.CreateStudyRoomInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, room, "Study room created")
}

// ListByCategory handles listing rooms in a category.
func (h *StudyRoomHandler) ListByCategory(c echo.Context) error {
	categoryID, err := uuid.Parse(c.Param("categoryId"))
	if err != nil {
		return response.BindingError(c, "INVALID_ID", "Invalid category ID")
	}

	rooms, err := h.uc.ListRoomsByCategory(c.Request().Context(), categoryID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, rooms, "")
}

// Get handles retrieving a single study room.
func (h *StudyRoomHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_ID", "Invalid room ID")
	}

	room, err := h.uc.GetRoom(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, room, "")
}

// Delete handles deleting a study room.
func (h *StudyRoomHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_ID", "Invalid room ID")
	}

	if err := h.uc.DeleteRoom(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Study room deleted")
}
