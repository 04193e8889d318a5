package repository

import (
	"context"
	"errors"
	"time"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrAdminNotFound is a domain-specific error returned when an admin is not found.
var ErrAdminNotFound = errors.New("admin not found")

// AdminRepository defines the standard operations for admin persistence.
type AdminRepository interface {
	// FindByID retrieves a single admin by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Admin, error)

	// FindByUsername retrieves a single admin by their username.
	FindByUsername(ctx context.Context, username string) (*entity.Admin, error)

	// Create persists a new admin entity to the storage.
	Create(ctx context.Context, admin *entity.Admin) error

	// Update modifies an existing admin and returns the post-update record.
	// Returns ErrAdminNotFound if no row matched the ID.
	Update(ctx context.Context, admin *entity.Admin) (*entity.Admin, error)

	// StampLastLogin records a successful login time on the admin row.
	StampLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}
