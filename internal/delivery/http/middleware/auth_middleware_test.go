package middleware

import (
	"context"
	"io"
	"log/slog"
	"maps"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"planner/config"
	deliverycontext "planner/internal/delivery/context"
	"planner/internal/domain/entity"
	"planner/internal/domain/repository"
	"planner/internal/domain/service"
	"planner/internal/infra/auth"
	"planner/internal/usecase/impl"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Fakes ---

type fakeUserRepo struct {
	users   map[string]*entity.User
	lookups int
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	f.lookups++
	for _, user := range f.users {
		if user.ID == id {
			return user, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (f *fakeUserRepo) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	f.lookups++
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
	lookups int
}

func (f *fakeRefreshTokenRepo) Create(_ context.Context, token *entity.RefreshToken) error {
	f.records[token.ID] = token

	return nil
}

func (f *fakeRefreshTokenRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.RefreshToken, error) {
	f.lookups++
	if record, ok := f.records[id]; ok {
		return record, nil
	}

	return nil, repository.ErrRefreshTokenNotFound
}

func (f *fakeRefreshTokenRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.records, id)

	return nil
}

type fakeRepoFactory struct {
	userRepo    *fakeUserRepo
	refreshRepo *fakeRefreshTokenRepo
}

func (f *fakeRepoFactory) UserRepo() repository.UserRepository { return f.userRepo }
func (f *fakeRepoFactory) RefreshTokenRepo() repository.RefreshTokenRepository {
	return f.refreshRepo
}
func (f *fakeRepoFactory) StudyCategoryRepo() repository.StudyCategoryRepository { return nil }
func (f *fakeRepoFactory) StudyRoomRepo() repository.StudyRoomRepository        { return nil }
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
	users, records := maps.Clone(f.factory.userRepo.users), maps.Clone(f.factory.refreshRepo.records)
	if err := fn(f.factory); err != nil {
		f.factory.userRepo.users = users
		f.factory.refreshRepo.records = records

		return err
	}

	return nil
}

// --- Fixture ---

type middlewareFixture struct {
	echo         *echo.Echo
	tokenService service.TokenService
	userRepo     *fakeUserRepo
	refreshRepo  *fakeRefreshTokenRepo
	user         *entity.User
	record       *entity.RefreshToken

	// observed by the terminal handler
	sawPrincipal *entity.User
	handlerRuns  int
}

func newConfig(accessTTL, refreshTTL time.Duration) *config.Config {
	cfg := &config.Config{
		Auth: &config.AuthConfig{
			AccessTokenTTL:  accessTTL,
			RefreshTokenTTL: refreshTTL,
		},
		Cookie: &config.CookieConfig{
			Domain: "planner.test",
			Secure: true,
			MaxAge: 259200,
		},
	}
	cfg.SecretKey.Access = "test-access-secret"
	cfg.SecretKey.Refresh = "test-refresh-secret"

	return cfg
}

// newMiddlewareFixture wires a real echo instance with the auth middleware,
// a real token codec and coordinator, and fake stores holding one user with
// one live session.
func newMiddlewareFixture(t *testing.T, refreshTTL time.Duration) *middlewareFixture {
	t.Helper()

	cfg := newConfig(30*time.Minute, refreshTTL)
	tokenService, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

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

	// The middleware always verifies with a normal-TTL service; the fixture
	// TTL only controls what the stored refresh token was signed with.
	verifyCfg := newConfig(30*time.Minute, 14*24*time.Hour)
	verifyingService, err := auth.NewJWTService(verifyCfg)
	require.NoError(t, err)

	authUsecase := impl.NewAuthService(txManager, verifyingService, logger)
	authMiddleware := NewAuthMiddleware(verifyingService, authUsecase, userRepo, verifyCfg, logger)

	fixture := &middlewareFixture{
		tokenService: verifyingService,
		userRepo:     userRepo,
		refreshRepo:  refreshRepo,
		user:         user,
		record:       record,
	}

	e := echo.New()
	e.HTTPErrorHandler = NewErrorMiddleware(logger).HandleHTTPError
	e.Use(authMiddleware.Authenticate)
	e.GET("/probe", func(c echo.Context) error {
		fixture.handlerRuns++
		fixture.sawPrincipal = deliverycontext.GetPrincipal(c)

		return c.NoContent(http.StatusOK)
	})
	e.GET("/protected", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, authMiddleware.RequireAuthenticated)

	fixture.echo = e

	return fixture
}

func (f *middlewareFixture) request(t *testing.T, path, cookieValue string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookieValue != "" {
		req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: cookieValue})
	}
	rec := httptest.NewRecorder()
	f.echo.ServeHTTP(rec, req)

	return rec
}

// issueAccessToken signs an access token with the given TTL using the
// fixture's secrets.
func issueAccessToken(t *testing.T, user *entity.User, refreshTokenID uuid.UUID, ttl time.Duration) string {
	t.Helper()

	cfg := newConfig(ttl, 14*24*time.Hour)
	tokenService, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	token, err := tokenService.IssueAccess(user, refreshTokenID)
	require.NoError(t, err)

	return token
}

func findAccessCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	res := http.Response{Header: rec.Header()}
	for _, cookie := range res.Cookies() {
		if cookie.Name == AccessTokenCookie {
			return cookie
		}
	}

	return nil
}

// --- Tests ---

func TestAuthenticate_NoCookiePassesThroughAnonymously(t *testing.T) {
	fixture := newMiddlewareFixture(t, 14*24*time.Hour)

	rec := fixture.request(t, "/probe", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, fixture.handlerRuns)
	assert.Nil(t, fixture.sawPrincipal)
	assert.Nil(t, findAccessCookie(rec))
}

func TestAuthenticate_ValidTokenAttachesPrincipal(t *testing.T) {
	fixture := newMiddlewareFixture(t, 14*24*time.Hour)
	token := issueAccessToken(t, fixture.user, fixture.record.ID, 30*time.Minute)

	rec := fixture.request(t, "/probe", token)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, fixture.sawPrincipal)
	assert.Equal(t, fixture.user.ID, fixture.sawPrincipal.ID)
	// No reissue happened, so the response carries no cookie.
	assert.Nil(t, findAccessCookie(rec))
	assert.Zero(t, fixture.refreshRepo.lookups)
}

func TestAuthenticate_ExpiredTokenWithLiveSessionReissues(t *testing.T) {
	fixture := newMiddlewareFixture(t, 14*24*time.Hour)
	expired := issueAccessToken(t, fixture.user, fixture.record.ID, -time.Minute)

	rec := fixture.request(t, "/probe", expired)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, fixture.sawPrincipal)
	assert.Equal(t, "alice", fixture.sawPrincipal.Username)

	cookie := findAccessCookie(rec)
	require.NotNil(t, cookie)
	assert.Equal(t, 259200, cookie.MaxAge)
	assert.Equal(t, "/", cookie.Path)
	assert.Equal(t, "planner.test", cookie.Domain)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
	assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)

	// The new token is valid and bound to the same session.
	claims, err := fixture.tokenService.VerifyAccess(cookie.Value)
	require.NoError(t, err)
	assert.Equal(t, fixture.record.ID, claims.RefreshTokenID)

	// The session record survives; only access tokens rotate.
	assert.Contains(t, fixture.refreshRepo.records, fixture.record.ID)
}

func TestAuthenticate_ExpiredTokenWithDeadSessionIsAnonymous(t *testing.T) {
	fixture := newMiddlewareFixture(t, -time.Hour)
	expired := issueAccessToken(t, fixture.user, fixture.record.ID, -time.Minute)

	rec := fixture.request(t, "/probe", expired)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, fixture.handlerRuns)
	assert.Nil(t, fixture.sawPrincipal)
	assert.Nil(t, findAccessCookie(rec))

	// The expired session record is deleted on the way.
	assert.NotContains(t, fixture.refreshRepo.records, fixture.record.ID)
}

func TestAuthenticate_ExpiredTokenWithNoSessionIsAnonymous(t *testing.T) {
	fixture := newMiddlewareFixture(t, 14*24*time.Hour)
	expired := issueAccessToken(t, fixture.user, uuid.New(), -time.Minute)

	rec := fixture.request(t, "/probe", expired)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, fixture.sawPrincipal)
	assert.Nil(t, findAccessCookie(rec))
}

func TestAuthenticate_ForgedTokenIsAnonymousWithoutStoreLookups(t *testing.T) {
	fixture := newMiddlewareFixture(t, 14*24*time.Hour)

	forgedCfg := newConfig(30*time.Minute, 14*24*time.Hour)
	forgedCfg.SecretKey.Access = "attacker-secret"
	forgedService, err := auth.NewJWTService(forgedCfg)
	require.NoError(t, err)
	forged, err := forgedService.IssueAccess(fixture.user, fixture.record.ID)
	require.NoError(t, err)

	rec := fixture.request(t, "/probe", forged)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, fixture.handlerRuns)
	assert.Nil(t, fixture.sawPrincipal)
	assert.Nil(t, findAccessCookie(rec))

	// An unverifiable token never touches the stores.
	assert.Zero(t, fixture.userRepo.lookups)
	assert.Zero(t, fixture.refreshRepo.lookups)
}

func TestAuthenticate_GarbageCookieIsAnonymous(t *testing.T) {
	fixture := newMiddlewareFixture(t, 14*24*time.Hour)

	rec := fixture.request(t, "/probe", "not-a-jwt")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, fixture.sawPrincipal)
	assert.Zero(t, fixture.userRepo.lookups)
}

func TestAuthenticate_ValidTokenForMissingUserSurfacesError(t *testing.T) {
	fixture := newMiddlewareFixture(t, 14*24*time.Hour)
	token := issueAccessToken(t, fixture.user, fixture.record.ID, 30*time.Minute)
	delete(fixture.userRepo.users, "alice")

	rec := fixture.request(t, "/probe", token)

	// The inconsistency is surfaced, not treated as an anonymous request.
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Zero(t, fixture.handlerRuns)
}

func TestRequireAuthenticated(t *testing.T) {
	fixture := newMiddlewareFixture(t, 14*24*time.Hour)

	rec := fixture.request(t, "/protected", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token := issueAccessToken(t, fixture.user, fixture.record.ID, 30*time.Minute)
	rec = fixture.request(t, "/protected", token)
	assert.Equal(t, http.StatusOK, rec.Code)
}
