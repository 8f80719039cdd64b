package impl

import (
	"context"
	"io"
	"log/slog"
	"maps"
	"slices"
	"testing"
	"time"

	"planner/config"
	"planner/internal/domain/entity"
	"planner/internal/domain/repository"
	"planner/internal/domain/service"
	"planner/internal/infra/auth"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Fakes ---

type fakeUserRepo struct {
	users map[string]*entity.User
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	for _, user := range f.users {
		if user.ID == id {
			return user, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (f *fakeUserRepo) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	if user, ok := f.users[username]; ok {
		return user, nil
	}

	return nil, repository.ErrUserNotFound
}

func (f *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	f.users[user.Username] = user

	return nil
}

type fakeRefreshTokenRepo struct {
	records map[uuid.UUID]*entity.RefreshToken
	deleted []uuid.UUID
}

func (f *fakeRefreshTokenRepo) Create(_ context.Context, token *entity.RefreshToken) error {
	f.records[token.ID] = token

	return nil
}

func (f *fakeRefreshTokenRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.RefreshToken, error) {
	if record, ok := f.records[id]; ok {
		return record, nil
	}

	return nil, repository.ErrRefreshTokenNotFound
}

func (f *fakeRefreshTokenRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.records, id)
	f.deleted = append(f.deleted, id)

	return nil
}

type fakeRepoFactory struct {
	userRepo     repository.UserRepository
	refreshRepo  repository.RefreshTokenRepository
	categoryRepo repository.StudyCategoryRepository
	roomRepo     repository.StudyRoomRepository
}

func (f *fakeRepoFactory) UserRepo() repository.UserRepository { return f.userRepo }
func (f *fakeRepoFactory) RefreshTokenRepo() repository.RefreshTokenRepository {
	return f.refreshRepo
}
func (f *fakeRepoFactory) StudyCategoryRepo() repository.StudyCategoryRepository {
	return f.categoryRepo
}
func (f *fakeRepoFactory) StudyRoomRepo() repository.StudyRoomRepository { return f.roomRepo }
func (f *fakeRepoFactory) AttendanceCheckRepo() repository.AttendanceCheckRepository {
	return nil
}

// fakeTxManager mirrors the transactional contract of the real manager: an
// error returned from the callback discards every write made through the
// factory's repositories.
type fakeTxManager struct {
	factory *fakeRepoFactory
}

func (f *fakeTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	restore := f.snapshot()
	if err := fn(f.factory); err != nil {
		restore()

		return err
	}

	return nil
}

func (f *fakeTxManager) snapshot() func() {
	var restores []func()
	if repo, ok := f.factory.userRepo.(*fakeUserRepo); ok {
		users := maps.Clone(repo.users)
		restores = append(restores, func() { repo.users = users })
	}
	if repo, ok := f.factory.refreshRepo.(*fakeRefreshTokenRepo); ok {
		records := maps.Clone(repo.records)
		deleted := slices.Clone(repo.deleted)
		restores = append(restores, func() { repo.records, repo.deleted = records, deleted })
	}
	if repo, ok := f.factory.categoryRepo.(*fakeStudyCategoryRepo); ok {
		categories := maps.Clone(repo.categories)
		restores = append(restores, func() { repo.categories = categories })
	}
	if repo, ok := f.factory.roomRepo.(*fakeStudyRoomRepo); ok {
		rooms := maps.Clone(repo.rooms)
		restores = append(restores, func() { repo.rooms = rooms })
	}

	return func() {
		for _, restore := range restores {
			restore()
		}
	}
}

// --- Helpers ---

func newTestTokenService(t *testing.T, refreshTTL time.Duration) service.TokenService {
	t.Helper()

	cfg := &config.Config{
		Auth: &config.AuthConfig{
			AccessTokenTTL:  30 * time.Minute,
			RefreshTokenTTL: refreshTTL,
		},
	}
	cfg.SecretKey.Access = "test-access-secret"
	cfg.SecretKey.Refresh = "test-refresh-secret"

	tokenService, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	return tokenService
}

type refreshFixture struct {
	authUsecase  *authService
	tokenService service.TokenService
	userRepo     *fakeUserRepo
	refreshRepo  *fakeRefreshTokenRepo
	user         *entity.User
	record       *entity.RefreshToken
}

// newRefreshFixture builds a coordinator with one stored user and one stored
// session whose refresh token has the given TTL at signing time.
func newRefreshFixture(t *testing.T, refreshTTL time.Duration) *refreshFixture {
	t.Helper()

	tokenService := newTestTokenService(t, refreshTTL)

	user := &entity.User{
		ID:       uuid.New(),
		Username: "alice",
		Name:     "Alice",
		Role:     "user",
	}

	refreshToken, err := tokenService.IssueRefresh(user)
	require.NoError(t, err)

	record := &entity.RefreshToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		Token:     refreshToken,
		CreatedAt: time.Now(),
	}

	userRepo := &fakeUserRepo{users: map[string]*entity.User{user.Username: user}}
	refreshRepo := &fakeRefreshTokenRepo{records: map[uuid.UUID]*entity.RefreshToken{record.ID: record}}
	txManager := &fakeTxManager{factory: &fakeRepoFactory{userRepo: userRepo, refreshRepo: refreshRepo}}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	// The coordinator verifies stored tokens with the same service under a
	// normal TTL, regardless of the TTL the fixture signed with.
	verifyingService := newTestTokenService(t, 14*24*time.Hour)

	return &refreshFixture{
		authUsecase:  NewAuthService(txManager, verifyingService, logger).(*authService),
		tokenService: verifyingService,
		userRepo:     userRepo,
		refreshRepo:  refreshRepo,
		user:         user,
		record:       record,
	}
}

// --- Tests ---

func TestRefresh_Success(t *testing.T) {
	fixture := newRefreshFixture(t, 14*24*time.Hour)

	output, err := fixture.authUsecase.Refresh(context.Background(), fixture.record.ID, "alice")
	require.NoError(t, err)
	require.NotNil(t, output)

	assert.Equal(t, fixture.user.ID, output.User.ID)
	assert.NotEmpty(t, output.AccessToken)

	// The reissued access token binds to the same session.
	claims, err := fixture.tokenService.VerifyAccess(output.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, fixture.record.ID, claims.RefreshTokenID)

	// The session record is untouched.
	assert.Contains(t, fixture.refreshRepo.records, fixture.record.ID)
	assert.Empty(t, fixture.refreshRepo.deleted)
}

func TestRefresh_NoRecord(t *testing.T) {
	fixture := newRefreshFixture(t, 14*24*time.Hour)

	output, err := fixture.authUsecase.Refresh(context.Background(), uuid.New(), "alice")
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrRefreshTokenNotFound)
	assert.Nil(t, output)
}

func TestRefresh_ExpiredSessionDeletesRecord(t *testing.T) {
	fixture := newRefreshFixture(t, -time.Hour)

	output, err := fixture.authUsecase.Refresh(context.Background(), fixture.record.ID, "alice")
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrRefreshTokenExpired)
	assert.Nil(t, output)

	// The dead session is removed from the store, and the removal sticks:
	// the expired outcome must not travel through the transaction's error
	// return, or the delete would be rolled back with it.
	assert.NotContains(t, fixture.refreshRepo.records, fixture.record.ID)
	assert.Equal(t, []uuid.UUID{fixture.record.ID}, fixture.refreshRepo.deleted)
}

func TestRefresh_UnverifiableStoredTokenKeepsRecord(t *testing.T) {
	fixture := newRefreshFixture(t, 14*24*time.Hour)
	fixture.record.Token = "not-a-jwt"

	output, err := fixture.authUsecase.Refresh(context.Background(), fixture.record.ID, "alice")
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrRefreshTokenNotFound)
	assert.Nil(t, output)

	// Unlike expiry, an unverifiable stored token is kept for inspection.
	assert.Contains(t, fixture.refreshRepo.records, fixture.record.ID)
	assert.Empty(t, fixture.refreshRepo.deleted)
}

func TestRefresh_UsernameMismatch(t *testing.T) {
	fixture := newRefreshFixture(t, 14*24*time.Hour)
	fixture.userRepo.users["mallory"] = &entity.User{
		ID:       uuid.New(),
		Username: "mallory",
	}

	output, err := fixture.authUsecase.Refresh(context.Background(), fixture.record.ID, "mallory")
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrRefreshTokenNotFound)
	assert.Nil(t, output)
	assert.Contains(t, fixture.refreshRepo.records, fixture.record.ID)
}

func TestRefresh_UserMissingForValidSession(t *testing.T) {
	fixture := newRefreshFixture(t, 14*24*time.Hour)
	delete(fixture.userRepo.users, "alice")

	output, err := fixture.authUsecase.Refresh(context.Background(), fixture.record.ID, "alice")
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
	assert.Nil(t, output)
}

func TestRefresh_OwnerMismatch(t *testing.T) {
	fixture := newRefreshFixture(t, 14*24*time.Hour)
	// The record points at a different user than the one the claims resolve to.
	fixture.record.UserID = uuid.New()

	output, err := fixture.authUsecase.Refresh(context.Background(), fixture.record.ID, "alice")
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrRefreshTokenNotFound)
	assert.Nil(t, output)
	assert.Contains(t, fixture.refreshRepo.records, fixture.record.ID)
}
