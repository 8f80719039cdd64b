package impl

import (
	"context"
	"log/slog"

	deliverycontext "planner/internal/delivery/context"
	"planner/internal/domain/entity"
	domainerrors "planner/internal/domain/errors"
	"planner/internal/domain/repository"
	"planner/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// studyCategoryService implements the StudyCategoryUsecase interface.
type studyCategoryService struct {
	categoryRepo repository.StudyCategoryRepository
	logger       *slog.Logger
}

// NewStudyCategoryService is the constructor for studyCategoryService.
func NewStudyCategoryService(
	categoryRepo repository.StudyCategoryRepository,
	logger *slog.Logger,
) usecase.StudyCategoryUsecase {
	return &studyCategoryService{
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *studyCategoryService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateCategory creates a new study category.
func (srv *studyCategoryService) CreateCategory(ctx context.Context, input usecase.CreateStudyCategoryInput) (*entity.StudyCategory, error) {
	srv.log(ctx).Info("Creating study category", slog.String("name", input.Name))

	category := &entity.StudyCategory{
		Name:        input.Name,
		Description: input.Description,
	}

	if err := srv.categoryRepo.Create(ctx, category); err != nil {
		srv.log(ctx).Error("Failed to create study category", slog.Any("error", err), slog.String("name", input.Name))

		return nil, err
	}

	return category, nil
}

// GetCategory retrieves a study category by its ID.
func (srv *studyCategoryService) GetCategory(ctx context.Context, id uuid.UUID) (*entity.StudyCategory, error) {
	category, err := srv.categoryRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrStudyCategoryNotFound) {
			return nil, domainerrors.ErrStudyCategoryNotFound
		}

		return nil, errors.Wrap(err, "failed to find study category")
	}

	return category, nil
}

// ListCategories retrieves all study categories.
func (srv *studyCategoryService) ListCategories(ctx context.Context) ([]*entity.StudyCategory, error) {
	categories, err := srv.categoryRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list study categories")
	}

	return categories, nil
}

// UpdateCategory updates an existing study category.
func (srv *studyCategoryService) UpdateCategory(ctx context.Context, id uuid.UUID, input usecase.UpdateStudyCategoryInput) (*entity.StudyCategory, error) {
	srv.log(ctx).Info("Updating study category", slog.Any("category_id", id))

	category := &entity.StudyCategory{
		ID:          id,
		Name:        input.Name,
		Description: input.Description,
	}

	if err := srv.categoryRepo.Update(ctx, category); err != nil {
		if errors.Is(err, repository.ErrStudyCategoryNotFound) {
			return nil, domainerrors.ErrStudyCategoryNotFound
		}
		srv.log(ctx).Error("Failed to update study category", slog.Any("error", err), slog.Any("category_id", id))

		return nil, err
	}

	return srv.GetCategory(ctx, id)
}

// DeleteCategory removes a study category.
func (srv *studyCategoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	srv.log(ctx).Info("Deleting study category", slog.Any("category_id", id))

	if err := srv.categoryRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrStudyCategoryNotFound) {
			return domainerrors.ErrStudyCategoryNotFound
		}

		return err
	}

	return nil
}
