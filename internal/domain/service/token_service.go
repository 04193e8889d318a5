package service

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"storefront/internal/domain/entity"
)

// Claims defines the custom claims carried by both access and refresh tokens.
// Kind discriminates the account namespace so verification never has to
// guess from which fields happen to be present.
type Claims struct {
	ID       string               `json:"id"`
	Kind     entity.PrincipalKind `json:"kind"`
	Name     string               `json:"name,omitempty"`
	Email    string               `json:"email,omitempty"`
	Username string               `json:"username,omitempty"`
	jwt.RegisteredClaims
}

// TokenService defines the interface for generating and validating JWTs.
// This abstracts the details of token creation from the use cases.
//
// Access and refresh tokens are signed with independent secrets. Access
// tokens expire one hour after issuance; refresh tokens carry no expiry and
// stay valid until the refresh secret rotates. Neither kind is persisted.
type TokenService interface {
	// IssueAccessToken signs a short-lived access token for the identity.
	IssueAccessToken(identity entity.Identity) (string, error)

	// IssueRefreshToken signs a non-expiring refresh token for the identity.
	IssueRefreshToken(identity entity.Identity) (string, error)

	// VerifyAccess validates an access token's signature and expiry and
	// returns its claims.
	VerifyAccess(tokenString string) (*Claims, error)

	// VerifyRefresh validates a refresh token's signature and returns its
	// claims.
	VerifyRefresh(tokenString string) (*Claims, error)
}

// IdentityFromClaims projects verified claims back onto an Identity. An
// unknown or absent kind yields a zero identity, never an error.
func IdentityFromClaims(claims *Claims) entity.Identity {
	if claims == nil || !claims.Kind.IsValid() {
		return entity.Identity{}
	}

	id, err := uuid.Parse(claims.ID)
	if err != nil {
		return entity.Identity{}
	}

	return entity.Identity{
		Kind:     claims.Kind,
		ID:       id,
		Name:     claims.Name,
		Email:    claims.Email,
		Username: claims.Username,
	}
}
