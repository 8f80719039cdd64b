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

// studyCategoryRepository implements the domain.StudyCategoryRepository interface.
type studyCategoryRepository struct {
	db *gorm.DB
}

// NewStudyCategoryRepository is the constructor for studyCategoryRepository.
func NewStudyCategoryRepository(db *gorm.DB) repository.StudyCategoryRepository {
	return &studyCategoryRepository{db: db}
}

// Create persists a new study category.
func (repo *studyCategoryRepository) Create(ctx context.Context, category *entity.StudyCategory) error {
	categoryM := fromStudyCategoryDomain(category)

	if err := repo.db.WithContext(ctx).Create(categoryM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrConflict.WrapMessage("study category name already exists")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required category information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create study category")
	}

	category.ID = categoryM.ID
	category.CreatedAt = categoryM.CreatedAt
	category.UpdatedAt = categoryM.UpdatedAt

	return nil
}

// FindByID retrieves a study category by its unique ID.
func (repo *studyCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.StudyCategory, error) {
	var categoryM model.StudyCategoryModel
	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&categoryM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrStudyCategoryNotFound
		}

		return nil, errors.WithStack(err)
	}

	return toStudyCategoryDomain(&categoryM), nil
}

// List retrieves all study categories ordered by name.
func (repo *studyCategoryRepository) List(ctx context.Context) ([]*entity.StudyCategory, error) {
	var categoryModels []model.StudyCategoryModel
	if err := repo.db.WithContext(ctx).
		Order("name asc").
		Find(&categoryModels).Error; err != nil {
		return nil, errors.WithStack(err)
	}

	categories := make([]*entity.StudyCategory, 0, len(categoryModels))
	for i := range categoryModels {
		categories = append(categories, toStudyCategoryDomain(&categoryModels[i]))
	}

	return categories, nil
}

// Update saves changes to an existing study category.
func (repo *studyCategoryRepository) Update(ctx context.Context, category *entity.StudyCategory) error {
	result := repo.db.WithContext(ctx).
		Model(&model.StudyCategoryModel{}).
		Where("id = ?", category.ID).
		Updates(map[string]any{
			"name":        category.Name,
			"description": category.Description,
		})

	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return domainerrors.ErrConflict.WrapMessage("study category name already exists")
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update study category")
	}

	if result.RowsAffected == 0 {
		return repository.ErrStudyCategoryNotFound
	}

	return nil
}

// Delete removes a study category by its ID.
func (repo *studyCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.StudyCategoryModel{})

	if result.Error != nil {
		if isForeignKeyConstraintViolation(result.Error) {
			return domainerrors.ErrConflict.WrapMessage("study category still has rooms")
		}

		return errors.WithStack(result.Error)
	}

	if result.RowsAffected == 0 {
		return repository.ErrStudyCategoryNotFound
	}

	return nil
}

// --- Mapper Functions ---

func toStudyCategoryDomain(data *model.StudyCategoryModel) *entity.StudyCategory {
	if data == nil {
		return nil
	}

	return &entity.StudyCategory{
		ID:          data.ID,
		Name:        data.Name,
		Description: data.Description,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

func fromStudyCategoryDomain(data *entity.StudyCategory) *model.StudyCategoryModel {
	if data == nil {
		return nil
	}

	return &model.StudyCategoryModel{
		ID:          data.ID,
		Name:        data.Name,
		Description: data.Description,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}
