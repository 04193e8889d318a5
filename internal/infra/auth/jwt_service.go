// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"storefront/config"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"
)

// accessTokenTTL is the lifetime of an access token. Refresh tokens have no
// expiry; they are invalidated only by rotating the refresh secret.
const accessTokenTTL = time.Hour

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	accessSecret  string // Secret key for signing access tokens.
	refreshSecret string // Secret key for signing refresh tokens.
}

// NewJWTService is the constructor for jwtService.
// It takes configuration values to create a new token service instance.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Access == "" || cfg.SecretKey.Refresh == "" {
		return nil, errors.New("jwt secrets must be provided")
	}

	return &jwtService{
		accessSecret:  cfg.SecretKey.Access,
		refreshSecret: cfg.SecretKey.Refresh,
	}, nil
}

// IssueAccessToken signs an access token that expires one hour after issuance.
func (s *jwtService) IssueAccessToken(identity entity.Identity) (string, error) {
	claims := claimsFor(identity)
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(accessTokenTTL))

	return s.sign(claims, s.accessSecret)
}

// IssueRefreshToken signs a refresh token with no expiry claim.
func (s *jwtService) IssueRefreshToken(identity entity.Identity) (string, error) {
	return s.sign(claimsFor(identity), s.refreshSecret)
}

// VerifyAccess validates the token against the access secret.
func (s *jwtService) VerifyAccess(tokenString string) (*service.Claims, error) {
	return s.verify(tokenString, s.accessSecret)
}

// VerifyRefresh validates the token against the refresh secret.
func (s *jwtService) VerifyRefresh(tokenString string) (*service.Claims, error) {
	return s.verify(tokenString, s.refreshSecret)
}

func (s *jwtService) sign(claims *service.Claims, secret string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(secret))
}

func (s *jwtService) verify(tokenString, secret string) (*service.Claims, error) {
	claims := new(service.Claims)
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}

	return claims, nil
}

// claimsFor projects an identity into token claims. The kind discriminator
// travels inside the signed payload, so the verifying side never infers the
// account type from which fields are present.
func claimsFor(identity entity.Identity) *service.Claims {
	return &service.Claims{
		ID:       identity.ID.String(),
		Kind:     identity.Kind,
		Name:     identity.Name,
		Email:    identity.Email,
		Username: identity.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}
}
