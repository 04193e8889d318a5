package entity

import (
	"time"

	"github.com/google/uuid"
)

// Product represents a sellable item in the catalogue.
//
// Stock is a plain signed counter: the completion flow decrements it without
// a lower bound, so it can legitimately read negative after concurrent
// completions. Pricing is split into cost basis (Capital) and margin (Profit).
type Product struct {
	ID          uuid.UUID // The unique identifier for the product.
	Name        string    // The product's display name. Unique.
	Description string    // Free-text product description.
	Capital     float64   // Per-unit cost basis.
	Profit      float64   // Per-unit margin on top of the capital.
	Stock       int       // Units currently on hand. May go negative.
	Discount    float64   // Per-unit discount applied at sale time.
	CreatedAt   time.Time // Timestamp of when this product was created.
	UpdatedAt   time.Time // Timestamp of the last modification.
}
