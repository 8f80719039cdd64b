package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"planner/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAttendanceRepo struct {
	checks []*entity.AttendanceCheck
}

func (f *fakeAttendanceRepo) Create(_ context.Context, check *entity.AttendanceCheck) error {
	check.ID = uuid.New()
	check.CreatedAt = time.Now()
	f.checks = append(f.checks, check)

	return nil
}

func (f *fakeAttendanceRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]*entity.AttendanceCheck, error) {
	var result []*entity.AttendanceCheck
	for _, check := range f.checks {
		if check.UserID == userID {
			result = append(result, check)
		}
	}

	return result, nil
}

func TestAttendance_CheckInAndList(t *testing.T) {
	repo := &fakeAttendanceRepo{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := NewAttendanceService(repo, logger)

	userID := uuid.New()

	check, err := srv.CheckIn(context.Background(), userID)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, check.ID)
	assert.Equal(t, userID, check.UserID)

	checks, err := srv.ListChecks(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, checks, 1)

	// Another user's list stays empty.
	other, err := srv.ListChecks(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, other)
}
