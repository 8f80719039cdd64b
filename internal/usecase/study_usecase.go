package usecase

import (
	"context"

	"planner/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateStudyCategoryInput carries the fields for creating a study category.
type CreateStudyCategoryInput struct {
	Name        string
	Description string
}

// UpdateStudyCategoryInput carries the fields for updating a study category.
type UpdateStudyCategoryInput struct {
	Name        string
	Description string
}

// StudyCategoryUsecase defines the interface for study category management.
type StudyCategoryUsecase interface {
	CreateCategory(ctx context.Context, input CreateStudyCategoryInput) (*entity.StudyCategory, error)
	GetCategory(ctx context.Context, id uuid.UUID) (*entity.StudyCategory, error)
	ListCategories(ctx context.Context) ([]*entity.StudyCategory, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, input UpdateStudyCategoryInput) (*entity.StudyCategory, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}

// CreateStudyRoomInput carries the fields for creating a study room.
type CreateStudyRoomInput struct {
	Name        string
	Description string
}

// StudyRoomUsecase defines the interface for study room management.
type StudyRoomUsecase interface {
	CreateRoom(ctx context.Context, categoryID uuid.UUID, input CreateStudyRoomInput) (*entity.StudyRoom, error)
	GetRoom(ctx context.Context, id uuid.UUID) (*entity.StudyRoom, error)
	ListRoomsByCategory(ctx context.Context, categoryID uuid.UUID) ([]*entity.StudyRoom, error)
	DeleteRoom(ctx context.Context, id uuid.UUID) error
}

// AttendanceUsecase defines the interface for attendance check-ins.
type AttendanceUsecase interface {
	CheckIn(ctx context.Context, userID uuid.UUID) (*entity.AttendanceCheck, error)
	ListChecks(ctx context.Context, userID uuid.UUID) ([]*entity.AttendanceCheck, error)
}
