package postgres

import (
	"context"

	"planner/internal/domain/entity"
	domainerrors "planner/internal/domain/errors"
	"planner/internal/domain/repository"
	"planner/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// attendanceCheckRepository implements the domain.AttendanceCheckRepository interface.
type attendanceCheckRepository struct {
	db *gorm.DB
}

// NewAttendanceCheckRepository is the constructor for attendanceCheckRepository.
func NewAttendanceCheckRepository(db *gorm.DB) repository.AttendanceCheckRepository {
	return &attendanceCheckRepository{db: db}
}

// Create persists a new attendance check for a user.
func (repo *attendanceCheckRepository) Create(ctx context.Context, check *entity.AttendanceCheck) error {
	checkM := fromAttendanceCheckDomain(check)

	if err := repo.db.WithContext(ctx).Create(checkM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrUserNotFound.WrapMessage("invalid user reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create attendance check")
	}

	check.ID = checkM.ID
	check.CreatedAt = checkM.CreatedAt

	return nil
}

// ListByUser retrieves all attendance checks for a user, newest first.
func (repo *attendanceCheckRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.AttendanceCheck, error) {
	var checkModels []model.AttendanceCheckModel
	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&checkModels).Error; err != nil {
		return nil, errors.WithStack(err)
	}

	checks := make([]*entity.AttendanceCheck, 0, len(checkModels))
	for i := range checkModels {
		checks = append(checks, toAttendanceCheckDomain(&checkModels[i]))
	}

	return checks, nil
}

// --- Mapper Functions ---

func toAttendanceCheckDomain(data *model.AttendanceCheckModel) *entity.AttendanceCheck {
	if data == nil {
		return nil
	}

	return &entity.AttendanceCheck{
		ID:        data.ID,
		UserID:    data.UserID,
		CreatedAt: data.CreatedAt,
	}
}

func fromAttendanceCheckDomain(data *entity.AttendanceCheck) *model.AttendanceCheckModel {
	if data == nil {
		return nil
	}

	return &model.AttendanceCheckModel{
		ID:        data.ID,
		UserID:    data.UserID,
		CreatedAt: data.CreatedAt,
	}
}
