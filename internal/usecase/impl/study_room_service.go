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

// studyRoomService implements the StudyRoomUsecase interface.
type studyRoomService struct {
	txManager repository.TransactionManager
	roomRepo  repository.StudyRoomRepository
	logger    *slog.Logger
}

// NewStudyRoomService is the constructor for studyRoomService.
func NewStudyRoomService(
	txManager repository.TransactionManager,
	roomRepo repository.StudyRoomRepository,
	logger *slog.Logger,
) usecase.StudyRoomUsecase {
	return &studyRoomService{
		txManager: txManager,
		roomRepo:  roomRepo,
		logger:    logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *studyRoomService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateRoom creates a new study room inside an existing category. The
// category check and the insert run in one transaction.
func (srv *studyRoomService) CreateRoom(ctx context.Context, categoryID uuid.UUID, input usecase.CreateStudyRoomInput) (*entity.StudyRoom, error) {
	srv.log(ctx).Info("Creating study room", slog.Any("category_id", categoryID), slog.String("name", input.Name))

	room := &entity.StudyRoom{
		Name:        input.Name,
		Description: input.Description,
		CategoryID:  categoryID,
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		categoryRepo := repoFactory.StudyCategoryRepo()
		roomRepo := repoFactory.StudyRoomRepo()

		// 1. Verify the category exists
		if _, err := categoryRepo.FindByID(ctx, categoryID); err != nil {
			if errors.Is(err, repository.ErrStudyCategoryNotFound) {
				return domainerrors.ErrStudyCategoryNotFound
			}

			return errors.Wrap(err, "failed to find study category")
		}

		// 2. Create the room
		if err := roomRepo.Create(ctx, room); err != nil {
			return err
		}

		return nil
	})

	if err != nil {
		srv.log(ctx).Error("Failed to create study room", slog.Any("error", err), slog.Any("category_id", categoryID))

		return nil, err
	}

	return room, nil
}

// GetRoom retrieves a study room by its ID.
func (srv *studyRoomService) GetRoom(ctx context.Context, id uuid.UUID) (*entity.StudyRoom, error) {
	room, err := srv.roomRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrStudyRoomNotFound) {
			return nil, domainerrors.ErrStudyRoomNotFound
		}

		return nil, errors.Wrap(err, "failed to find study room")
	}

	return room, nil
}

// ListRoomsByCategory retrieves all study rooms within a category.
func (srv *studyRoomService) ListRoomsByCategory(ctx context.Context, categoryID uuid.UUID) ([]*entity.StudyRoom, error) {
	rooms, err := srv.roomRepo.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list study rooms")
	}

	return rooms, nil
}

// DeleteRoom removes a study room.
func (srv *studyRoomService) DeleteRoom(ctx context.Context, id uuid.UUID) error {
	srv.log(ctx).Info("Deleting study room", slog.Any("room_id", id))

	if err := srv.roomRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrStudyRoomNotFound) {
			return domainerrors.ErrStudyRoomNotFound
		}

		return err
	}

	return nil
}
