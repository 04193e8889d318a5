// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterUserInput defines the data required to register a new user.
type RegisterUserInput struct {
	Name     string
	Email    string
	Password string
}

// UserLoginInput defines the data required for a user to log in.
type UserLoginInput struct {
	Email    string
	Password string
}

// ChangeEmailInput defines the data required to change a user's email.
type ChangeEmailInput struct {
	UserID uuid.UUID
	Email  string
}

// ChangeNameInput defines the data required to change a user's display name.
type ChangeNameInput struct {
	UserID uuid.UUID
	Name   string
}

// --- Output DTOs ---

// UserInfo is the outward-facing projection of a user account. It never
// carries the password hash.
type UserInfo struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	RegisteredAt string    `json:"registered_at"`
}

// UserLoginOutput returns the generated tokens after a successful login.
type UserLoginOutput struct {
	AccessToken  string
	RefreshToken string
	User         UserInfo
}

// UserTokenOutput returns a freshly minted access token together with the
// current account info it was minted from.
type UserTokenOutput struct {
	AccessToken string
	User        UserInfo
}

// UserUsecase defines the interface for user-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type UserUsecase interface {
	// Register creates a new user account with a hashed password.
	Register(ctx context.Context, input RegisterUserInput) (*UserInfo, error)

	// Login verifies credentials and issues an access/refresh token pair.
	Login(ctx context.Context, input UserLoginInput) (*UserLoginOutput, error)

	// Refresh re-resolves the user behind a verified refresh token and mints
	// a new access token from the current stored record.
	Refresh(ctx context.Context, userID uuid.UUID) (*UserTokenOutput, error)

	// GetProfile returns the caller's current account info.
	GetProfile(ctx context.Context, userID uuid.UUID) (*UserInfo, error)

	// ChangeEmail updates the email and returns a new access token carrying it.
	ChangeEmail(ctx context.Context, input ChangeEmailInput) (*UserTokenOutput, error)

	// ChangeName updates the display name and returns a new access token carrying it.
	ChangeName(ctx context.Context, input ChangeNameInput) (*UserTokenOutput, error)
}
