package usecase

import (
	"context"

	"github.com/google/uuid"

	"storefront/internal/domain/entity"
)

// AddStockInput defines a manual stock increase for one product.
type AddStockInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// AddStockOutput returns the refreshed product and the ledger entry that
// recorded the movement.
type AddStockOutput struct {
	Product *entity.Product
	Entry   *entity.StockEntry
}

// InventoryUsecase defines the interface over the stock counter and its
// append-only ledger.
type InventoryUsecase interface {
	// AddStock atomically increases a product's stock and appends a ledger
	// entry carrying the delta and the resulting total.
	AddStock(ctx context.Context, input AddStockInput) (*AddStockOutput, error)

	// History returns the full ledger, newest first.
	History(ctx context.Context) ([]*entity.StockEntry, error)
}
