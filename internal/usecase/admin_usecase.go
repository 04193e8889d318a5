package usecase

import (
	"context"

	"github.com/google/uuid"
)

// RegisterAdminInput defines the data required to register a new admin.
type RegisterAdminInput struct {
	Username string
	Password string
}

// AdminLoginInput defines the data required for an admin to log in.
type AdminLoginInput struct {
	Username string
	Password string
}

// ChangeUsernameInput defines the data required to change an admin's username.
type ChangeUsernameInput struct {
	AdminID  uuid.UUID
	Username string
}

// ChangePasswordInput defines the data required to change an admin's password.
type ChangePasswordInput struct {
	AdminID  uuid.UUID
	Password string
}

// AdminInfo is the outward-facing projection of an admin account. It never
// carries the password hash.
type AdminInfo struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	RegisteredAt string    `json:"registered_at"`
	LastLoginAt  string    `json:"last_login_at,omitempty"`
}

// AdminLoginOutput returns the generated tokens after a successful login.
type AdminLoginOutput struct {
	AccessToken  string
	RefreshToken string
	Admin        AdminInfo
}

// AdminTokenOutput returns a freshly minted access token together with the
// current account info it was minted from.
type AdminTokenOutput struct {
	AccessToken string
	Admin       AdminInfo
}

// AdminUsecase defines the interface for admin-related business operations.
type AdminUsecase interface {
	// Register creates a new admin account with a hashed password.
	Register(ctx context.Context, input RegisterAdminInput) (*AdminInfo, error)

	// Login verifies credentials, stamps the last-login time, and issues an
	// access/refresh token pair.
	Login(ctx context.Context, input AdminLoginInput) (*AdminLoginOutput, error)

	// Refresh re-resolves the admin behind a verified refresh token and
	// mints a new access token from the current stored record.
	Refresh(ctx context.Context, adminID uuid.UUID) (*AdminTokenOutput, error)

	// GetAccount returns the caller's current account info.
	GetAccount(ctx context.Context, adminID uuid.UUID) (*AdminInfo, error)

	// ChangeUsername updates the username and returns a new access token carrying it.
	ChangeUsername(ctx context.Context, input ChangeUsernameInput) (*AdminTokenOutput, error)

	// ChangePassword re-hashes and stores the password, returning a fresh token.
	ChangePassword(ctx context.Context, input ChangePasswordInput) (*AdminTokenOutput, error)
}
