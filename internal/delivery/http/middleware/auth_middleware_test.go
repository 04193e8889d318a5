package middleware

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/infra/auth"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTokenService(t *testing.T) service.TokenService {
	t.Helper()

	cfg := &config.Config{}
	cfg.SecretKey.Access = "test-access-secret"
	cfg.SecretKey.Refresh = "test-refresh-secret"

	svc, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	return svc
}

type fakeAdminRepo struct {
	mu     sync.Mutex
	admins map[uuid.UUID]*entity.Admin
}

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{admins: make(map[uuid.UUID]*entity.Admin)}
}

func (r *fakeAdminRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	admin, ok := r.admins[id]
	if !ok {
		return nil, repository.ErrAdminNotFound
	}
	clone := *admin

	return &clone, nil
}

func (r *fakeAdminRepo) FindByUsername(_ context.Context, username string) (*entity.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, admin := range r.admins {
		if admin.Username == username {
			clone := *admin

			return &clone, nil
		}
	}

	return nil, repository.ErrAdminNotFound
}

func (r *fakeAdminRepo) Create(_ context.Context, admin *entity.Admin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *admin
	r.admins[admin.ID] = &clone

	return nil
}

func (r *fakeAdminRepo) Update(_ context.Context, admin *entity.Admin) (*entity.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.admins[admin.ID]; !ok {
		return nil, repository.ErrAdminNotFound
	}
	clone := *admin
	r.admins[admin.ID] = &clone
	result := clone

	return &result, nil
}

func (r *fakeAdminRepo) StampLastLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	admin, ok := r.admins[id]
	if !ok {
		return repository.ErrAdminNotFound
	}
	admin.LastLoginAt = &at

	return nil
}

func newTestContext(t *testing.T, token string) echo.Context {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set(HeaderAuthToken, token)
	}

	return e.NewContext(req, httptest.NewRecorder())
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	m := NewAuthMiddleware(testTokenService(t), newFakeAdminRepo(), discardLogger())

	called := false
	handler := m.Authenticate(func(echo.Context) error {
		called = true

		return nil
	})

	err := handler(newTestContext(t, ""))
	require.ErrorIs(t, err, domainerrors.ErrUnauthenticated)
	assert.False(t, called)
}

func TestAuthenticate_InvalidToken(t *testing.T) {
	m := NewAuthMiddleware(testTokenService(t), newFakeAdminRepo(), discardLogger())

	called := false
	handler := m.Authenticate(func(echo.Context) error {
		called = true

		return nil
	})

	err := handler(newTestContext(t, "not-a-token"))
	require.ErrorIs(t, err, domainerrors.ErrInvalidToken)
	assert.False(t, called)
}

func TestAuthenticate_ValidUserToken(t *testing.T) {
	tokenSvc := testTokenService(t)
	m := NewAuthMiddleware(tokenSvc, newFakeAdminRepo(), discardLogger())

	identity := entity.Identity{
		Kind:  entity.PrincipalUser,
		ID:    uuid.New(),
		Name:  "Iris",
		Email: "iris@example.com",
	}
	token, err := tokenSvc.IssueAccessToken(identity)
	require.NoError(t, err)

	var seen entity.Identity
	handler := m.Authenticate(func(c echo.Context) error {
		seen = deliverycontext.GetIdentity(c)

		return nil
	})

	c := newTestContext(t, token)
	require.NoError(t, handler(c))
	assert.Equal(t, identity, seen)
}

func TestAuthenticate_UnknownKindPassesWithZeroIdentity(t *testing.T) {
	tokenSvc := testTokenService(t)
	m := NewAuthMiddleware(tokenSvc, newFakeAdminRepo(), discardLogger())

	token, err := tokenSvc.IssueAccessToken(entity.Identity{
		Kind: entity.PrincipalKind("service-account"),
		ID:   uuid.New(),
	})
	require.NoError(t, err)

	var seen entity.Identity
	handler := m.Authenticate(func(c echo.Context) error {
		seen = deliverycontext.GetIdentity(c)

		return nil
	})

	require.NoError(t, handler(newTestContext(t, token)))
	assert.True(t, seen.IsZero())
}

func TestRequireAdmin_RejectsUserKind(t *testing.T) {
	tokenSvc := testTokenService(t)
	m := NewAuthMiddleware(tokenSvc, newFakeAdminRepo(), discardLogger())

	identity := entity.Identity{
		Kind:  entity.PrincipalUser,
		ID:    uuid.New(),
		Email: "iris@example.com",
	}
	token, err := tokenSvc.IssueAccessToken(identity)
	require.NoError(t, err)

	called := false
	handler := m.Authenticate(m.RequireAdmin(func(echo.Context) error {
		called = true

		return nil
	}))

	err = handler(newTestContext(t, token))
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusForbidden, appErr.HTTPCode())
	assert.False(t, called)
}

func TestRequireAdmin_RejectsDeletedAdmin(t *testing.T) {
	tokenSvc := testTokenService(t)
	adminRepo := newFakeAdminRepo()
	m := NewAuthMiddleware(tokenSvc, adminRepo, discardLogger())

	// Valid token for an admin row that no longer exists.
	token, err := tokenSvc.IssueAccessToken(entity.Identity{
		Kind:     entity.PrincipalAdmin,
		ID:       uuid.New(),
		Username: "ghost",
	})
	require.NoError(t, err)

	called := false
	handler := m.Authenticate(m.RequireAdmin(func(echo.Context) error {
		called = true

		return nil
	}))

	err = handler(newTestContext(t, token))
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusForbidden, appErr.HTTPCode())
	assert.False(t, called)
}

func TestRequireAdmin_RefreshesUsernameFromStore(t *testing.T) {
	tokenSvc := testTokenService(t)
	adminRepo := newFakeAdminRepo()
	m := NewAuthMiddleware(tokenSvc, adminRepo, discardLogger())

	adminID := uuid.New()
	require.NoError(t, adminRepo.Create(context.Background(), &entity.Admin{
		ID:       adminID,
		Username: "renamed",
	}))

	// Token still carries the old username.
	token, err := tokenSvc.IssueAccessToken(entity.Identity{
		Kind:     entity.PrincipalAdmin,
		ID:       adminID,
		Username: "original",
	})
	require.NoError(t, err)

	var seen entity.Identity
	handler := m.Authenticate(m.RequireAdmin(func(c echo.Context) error {
		seen = deliverycontext.GetIdentity(c)

		return nil
	}))

	require.NoError(t, handler(newTestContext(t, token)))
	assert.Equal(t, "renamed", seen.Username)
	assert.Equal(t, adminID, seen.ID)
}
