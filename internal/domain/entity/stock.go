package entity

import (
	"time"

	"github.com/google/uuid"
)

// StockEntry is one line of the append-only inventory ledger. An entry is
// written for every stock movement: positive deltas from manual restocking,
// negative deltas from order completion. Entries are never updated or
// deleted, so the ledger is a full audit trail of inventory changes.
type StockEntry struct {
	ID          uuid.UUID // The unique identifier for the ledger entry.
	ProductID   uuid.UUID // The product whose stock moved.
	ProductName string    // Product name at the time of the movement, denormalized for the audit trail.
	Delta       int       // Signed quantity applied to the stock counter.
	Total       int       // The stock counter right after the delta was applied.
	RecordedAt  time.Time // Timestamp of the movement.
}
