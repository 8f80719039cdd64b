package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"planner/internal/domain/entity"
	domainerrors "planner/internal/domain/errors"
	"planner/internal/domain/repository"
	"planner/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStudyRoomRepo struct {
	rooms map[uuid.UUID]*entity.StudyRoom
}

func (f *fakeStudyRoomRepo) Create(_ context.Context, room *entity.StudyRoom) error {
	if room.ID == uuid.Nil {
		room.ID = uuid.New()
	}
	f.rooms[room.ID] = room

	return nil
}

func (f *fakeStudyRoomRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.StudyRoom, error) {
	if room, ok := f.rooms[id]; ok {
		return room, nil
	}

	return nil, repository.ErrStudyRoomNotFound
}

func (f *fakeStudyRoomRepo) ListByCategory(_ context.Context, categoryID uuid.UUID) ([]*entity.StudyRoom, error) {
	var result []*entity.StudyRoom
	for _, room := range f.rooms {
		if room.CategoryID == categoryID {
			result = append(result, room)
		}
	}

	return result, nil
}

func (f *fakeStudyRoomRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.rooms[id]; !ok {
		return repository.ErrStudyRoomNotFound
	}
	delete(f.rooms, id)

	return nil
}

func newRoomService(categoryRepo repository.StudyCategoryRepository, roomRepo repository.StudyRoomRepository) usecase.StudyRoomUsecase {
	txManager := &fakeTxManager{factory: &fakeRepoFactory{categoryRepo: categoryRepo, roomRepo: roomRepo}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewStudyRoomService(txManager, roomRepo, logger)
}

func TestStudyRoom_CreateInExistingCategory(t *testing.T) {
	category := &entity.StudyCategory{ID: uuid.New(), Name: "algorithms"}
	categoryRepo := &fakeStudyCategoryRepo{categories: map[uuid.UUID]*entity.StudyCategory{category.ID: category}}
	roomRepo := &fakeStudyRoomRepo{rooms: map[uuid.UUID]*entity.StudyRoom{}}
	srv := newRoomService(categoryRepo, roomRepo)

	room, err := srv.CreateRoom(context.Background(), category.ID, usecase.CreateStudyRoomInput{
		Name: "morning session",
	})
	require.NoError(t, err)
	assert.Equal(t, category.ID, room.CategoryID)

	rooms, err := srv.ListRoomsByCategory(context.Background(), category.ID)
	require.NoError(t, err)
	assert.Len(t, rooms, 1)
}

func TestStudyRoom_CreateInMissingCategory(t *testing.T) {
	categoryRepo := &fakeStudyCategoryRepo{categories: map[uuid.UUID]*entity.StudyCategory{}}
	roomRepo := &fakeStudyRoomRepo{rooms: map[uuid.UUID]*entity.StudyRoom{}}
	srv := newRoomService(categoryRepo, roomRepo)

	_, err := srv.CreateRoom(context.Background(), uuid.New(), usecase.CreateStudyRoomInput{Name: "orphan"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrStudyCategoryNotFound)
	assert.Empty(t, roomRepo.rooms)
}

func TestStudyRoom_DeleteMissing(t *testing.T) {
	categoryRepo := &fakeStudyCategoryRepo{categories: map[uuid.UUID]*entity.StudyCategory{}}
	roomRepo := &fakeStudyRoomRepo{rooms: map[uuid.UUID]*entity.StudyRoom{}}
	srv := newRoomService(categoryRepo, roomRepo)

	err := srv.DeleteRoom(context.Background(), uuid.New())
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrStudyRoomNotFound)
}
