package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrProductNotFound is a domain-specific error returned when a product is not found.
var ErrProductNotFound = errors.New("product not found")

// ProductRepository defines the standard operations for product persistence.
type ProductRepository interface {
	// FindByID retrieves a single product by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// List retrieves all products.
	List(ctx context.Context) ([]*entity.Product, error)

	// Create persists a new product entity to the storage.
	Create(ctx context.Context, product *entity.Product) error

	// Update modifies an existing product and returns the post-update record.
	// Returns ErrProductNotFound if no row matched the ID.
	Update(ctx context.Context, product *entity.Product) (*entity.Product, error)

	// Delete removes a product. Returns ErrProductNotFound if no row matched.
	Delete(ctx context.Context, id uuid.UUID) error

	// AdjustStock atomically applies a signed delta to the product's stock
	// counter in a single statement and returns the post-update record, so
	// concurrent adjustments never lose increments. Returns
	// ErrProductNotFound if no row matched the ID.
	AdjustStock(ctx context.Context, id uuid.UUID, delta int) (*entity.Product, error)
}
