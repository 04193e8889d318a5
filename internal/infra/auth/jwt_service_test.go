package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/config"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"
)

func newTestService(t *testing.T) service.TokenService {
	t.Helper()

	cfg := &config.Config{}
	cfg.SecretKey.Access = "access-secret-for-tests"
	cfg.SecretKey.Refresh = "refresh-secret-for-tests"

	svc, err := NewJWTService(cfg)
	require.NoError(t, err)

	return svc
}

func TestNewJWTService_MissingSecrets(t *testing.T) {
	cfg := &config.Config{}
	cfg.SecretKey.Access = "only-access"

	_, err := NewJWTService(cfg)
	assert.Error(t, err)
}

func TestAccessToken_RoundTrip(t *testing.T) {
	svc := newTestService(t)

	identity := entity.Identity{
		Kind:  entity.PrincipalUser,
		ID:    uuid.New(),
		Name:  "Alice",
		Email: "alice@example.com",
	}

	tokenString, err := svc.IssueAccessToken(identity)
	require.NoError(t, err)

	claims, err := svc.VerifyAccess(tokenString)
	require.NoError(t, err)

	assert.Equal(t, identity.ID.String(), claims.ID)
	assert.Equal(t, entity.PrincipalUser, claims.Kind)
	assert.Equal(t, "Alice", claims.Name)
	assert.Equal(t, "alice@example.com", claims.Email)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)

	recovered := service.IdentityFromClaims(claims)
	assert.Equal(t, identity, recovered)
}

func TestRefreshToken_HasNoExpiry(t *testing.T) {
	svc := newTestService(t)

	identity := entity.Identity{
		Kind:     entity.PrincipalAdmin,
		ID:       uuid.New(),
		Username: "root",
	}

	tokenString, err := svc.IssueRefreshToken(identity)
	require.NoError(t, err)

	claims, err := svc.VerifyRefresh(tokenString)
	require.NoError(t, err)

	assert.Nil(t, claims.ExpiresAt)
	assert.Equal(t, entity.PrincipalAdmin, claims.Kind)
	assert.Equal(t, "root", claims.Username)
}

func TestVerify_RejectsWrongSecret(t *testing.T) {
	svc := newTestService(t)

	identity := entity.Identity{Kind: entity.PrincipalUser, ID: uuid.New()}

	accessToken, err := svc.IssueAccessToken(identity)
	require.NoError(t, err)
	refreshToken, err := svc.IssueRefreshToken(identity)
	require.NoError(t, err)

	// Each token only verifies against its own secret.
	_, err = svc.VerifyRefresh(accessToken)
	assert.Error(t, err)
	_, err = svc.VerifyAccess(refreshToken)
	assert.Error(t, err)

	other := &config.Config{}
	other.SecretKey.Access = "a-different-access-secret"
	other.SecretKey.Refresh = "a-different-refresh-secret"
	otherSvc, err := NewJWTService(other)
	require.NoError(t, err)

	_, err = otherSvc.VerifyAccess(accessToken)
	assert.Error(t, err)
}

func TestVerifyAccess_RejectsExpiredToken(t *testing.T) {
	svc := newTestService(t)

	// Hand-craft a token whose expiry is already in the past.
	claims := &service.Claims{
		ID:   uuid.New().String(),
		Kind: entity.PrincipalUser,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte("access-secret-for-tests"))
	require.NoError(t, err)

	_, err = svc.VerifyAccess(expired)
	require.Error(t, err)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestIdentityFromClaims_UnknownKind(t *testing.T) {
	svc := newTestService(t)

	// A token signed with the right secret but an unrecognised kind should
	// degrade to an empty identity instead of failing.
	claims := &service.Claims{
		ID:   uuid.New().String(),
		Kind: entity.PrincipalKind("service-account"),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte("access-secret-for-tests"))
	require.NoError(t, err)

	parsed, err := svc.VerifyAccess(tokenString)
	require.NoError(t, err)

	identity := service.IdentityFromClaims(parsed)
	assert.True(t, identity.IsZero())
	assert.False(t, identity.IsAdmin())
}

func TestIdentityFromClaims_Nil(t *testing.T) {
	assert.True(t, service.IdentityFromClaims(nil).IsZero())
}
