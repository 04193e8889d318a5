package usecase

import (
	"context"

	"github.com/google/uuid"

	"storefront/internal/domain/entity"
)

// CreateProductInput defines the data required to create a product.
type CreateProductInput struct {
	Name        string
	Description string
	Capital     float64
	Profit      float64
	Stock       int
	Discount    float64
}

// UpdateProductInput defines the data for a full product update.
type UpdateProductInput struct {
	ID          uuid.UUID
	Name        string
	Description string
	Capital     float64
	Profit      float64
	Stock       int
	Discount    float64
}

// ProductUsecase defines the interface for catalogue management.
type ProductUsecase interface {
	// List returns the full catalogue.
	List(ctx context.Context) ([]*entity.Product, error)

	// Create adds a new product.
	Create(ctx context.Context, input CreateProductInput) (*entity.Product, error)

	// Update replaces the product's fields and bumps its updated-at time.
	Update(ctx context.Context, input UpdateProductInput) (*entity.Product, error)

	// Delete removes a product from the catalogue. Historical order lines
	// keep their snapshot of it.
	Delete(ctx context.Context, id uuid.UUID) error
}
