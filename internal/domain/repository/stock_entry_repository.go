package repository

import (
	"context"

	"storefront/internal/domain/entity"
)

// StockEntryRepository defines the operations on the append-only inventory
// ledger. There is no update or delete: ledger entries are immutable once
// written.
type StockEntryRepository interface {
	// Append writes one ledger entry.
	Append(ctx context.Context, entry *entity.StockEntry) error

	// List retrieves the full ledger, newest first.
	List(ctx context.Context) ([]*entity.StockEntry, error)
}
