package impl

import (
	"context"
	"log/slog"

	deliverycontext "planner/internal/delivery/context"
	"planner/internal/domain/entity"
	"planner/internal/domain/repository"
	"planner/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// attendanceService implements the AttendanceUsecase interface.
type attendanceService struct {
	attendanceRepo repository.AttendanceCheckRepository
	logger         *slog.Logger
}

// NewAttendanceService is the constructor for attendanceService.
func NewAttendanceService(
	attendanceRepo repository.AttendanceCheckRepository,
	logger *slog.Logger,
) usecase.AttendanceUsecase {
	return &attendanceService{
		attendanceRepo: attendanceRepo,
		logger:         logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *attendanceService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CheckIn records an attendance check for the user.
func (srv *attendanceService) CheckIn(ctx context.Context, userID uuid.UUID) (*entity.AttendanceCheck, error) {
	srv.log(ctx).Info("Recording attendance check", slog.Any("user_id", userID))

	check := &entity.AttendanceCheck{
		UserID: userID,
	}

	if err := srv.attendanceRepo.Create(ctx, check); err != nil {
		srv.log(ctx).Error("Failed to record attendance check", slog.Any("error", err), slog.Any("user_id", userID))

		return nil, err
	}

	return check, nil
}

// ListChecks retrieves all attendance checks for the user.
func (srv *attendanceService) ListChecks(ctx context.Context, userID uuid.UUID) ([]*entity.AttendanceCheck, error) {
	checks, err := srv.attendanceRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list attendance checks")
	}

	return checks, nil
}
