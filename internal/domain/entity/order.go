package entity

import (
	"time"

	"github.com/google/uuid"
)

// Known order statuses. The status field is an open string: transitions accept
// any value, and only OrderStatusCompleted triggers inventory side effects.
const (
	OrderStatusPosted    = "POSTED"
	OrderStatusAccepted  = "ACCEPTED"
	OrderStatusCompleted = "COMPLETED"
)

// Order represents a customer purchase. Line items are snapshots taken at
// order time, not live references into the catalogue, and TotalCost is
// whatever the caller supplied; it is never recomputed from the lines.
type Order struct {
	ID           uuid.UUID   // The unique identifier for the order.
	UserID       *uuid.UUID  // The owning user. Nil for orders placed on behalf of walk-in customers.
	CustomerName string      // Free-text customer name for admin-placed orders.
	Lines        []OrderLine // Snapshot of the purchased items.
	TotalCost    float64     // Caller-supplied order total.
	Status       string      // Current status. Defaults to OrderStatusPosted.
	OrderedAt    time.Time   // Timestamp of when the order was placed.
	CompletedAt  *time.Time  // Set together with the COMPLETED status, nil otherwise.
}

// OrderLine is a point-in-time snapshot of one purchased product.
type OrderLine struct {
	ProductID uuid.UUID // The product this line refers to. The product may since have been deleted.
	Name      string    // Product name at order time.
	Cost      float64   // Per-unit cost at order time.
	Quantity  int       // Units purchased. Always positive.
}
