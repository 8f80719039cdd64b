package repository

import (
	"context"

	"planner/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Domain-specific errors for the study domain.
var (
	// ErrStudyCategoryNotFound is returned when a study category is not found.
	ErrStudyCategoryNotFound = errors.New("study category not found")
	// ErrStudyRoomNotFound is returned when a study room is not found.
	ErrStudyRoomNotFound = errors.New("study room not found")
)

// StudyCategoryRepository defines persistence operations for study categories.
type StudyCategoryRepository interface {
	Create(ctx context.Context, category *entity.StudyCategory) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.StudyCategory, error)
	List(ctx context.Context) ([]*entity.StudyCategory, error)
	Update(ctx context.Context, category *entity.StudyCategory) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// StudyRoomRepository defines persistence operations for study rooms.
type StudyRoomRepository interface {
	Create(ctx context.Context, room *entity.StudyRoom) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.StudyRoom, error)
	ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]*entity.StudyRoom, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// AttendanceCheckRepository defines persistence operations for attendance checks.
type AttendanceCheckRepository interface {
	Create(ctx context.Context, check *entity.AttendanceCheck) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.AttendanceCheck, error)
}
