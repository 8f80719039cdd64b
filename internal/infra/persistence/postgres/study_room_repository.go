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

// studyRoomRepository implements the domain.StudyRoomRepository interface.
type studyRoomRepository struct {
	db *gorm.DB
}

// NewStudyRoomRepository is the constructor for studyRoomRepository.
func NewStudyRoomRepository(db *gorm.DB) repository.StudyRoomRepository {
	return &studyRoomRepository{db: db}
}

// Create persists a new study room.
func (repo *studyRoomRepository) Create(ctx context.Context, room *entity.StudyRoom) error {
	roomM := fromStudyRoomDomain(room)

	if err := repo.db.WithContext(ctx).Create(roomM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrStudyCategoryNotFound.WrapMessage("invalid category reference")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required room information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create study room")
	}

	room.ID = roomM.ID
	room.CreatedAt = roomM.CreatedAt
	room.UpdatedAt = roomM.UpdatedAt

	return nil
}

// FindByID retrieves a study room by its unique ID.
func (repo *studyRoomRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.StudyRoom, error) {
	var roomM model.StudyRoomModel
	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&roomM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrStudyRoomNotFound
		}

		return nil, errors.WithStack(err)
	}

	return toStudyRoomDomain(&roomM), nil
}

// ListByCategory retrieves all study rooms within a category, newest first.
func (repo *studyRoomRepository) ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]*entity.StudyRoom, error) {
	var roomModels []model.StudyRoomModel
	if err := repo.db.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Order("created_at desc").
		Find(&roomModels).Error; err != nil {
		return nil, errors.WithStack(err)
	}

	rooms := make([]*entity.StudyRoom, 0, len(roomModels))
	for i := range roomModels {
		rooms = append(rooms, toStudyRoomDomain(&roomModels[i]))
	}

	return rooms, nil
}

// Delete removes a study room by its ID.
func (repo *studyRoomRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.StudyRoomModel{})

	if result.Error != nil {
		return errors.WithStack(result.Error)
	}

	if result.RowsAffected == 0 {
		return repository.ErrStudyRoomNotFound
	}

	return nil
}

// --- Mapper Functions ---

func toStudyRoomDomain(data *model.StudyRoomModel) *entity.StudyRoom {
	if data == nil {
		return nil
	}

	return &entity.StudyRoom{
		ID:          data.ID,
		Name:        data.Name,
		Description: data.Description,
		CategoryID:  data.CategoryID,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

func fromStudyRoomDomain(data *entity.StudyRoom) *model.StudyRoomModel {
	if data == nil {
		return nil
	}

	return &model.StudyRoomModel{
		ID:          data.ID,
		Name:        data.Name,
		Description: data.Description,
		CategoryID:  data.CategoryID,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}
