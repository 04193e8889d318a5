package usecase

import (
	"context"

	"github.com/google/uuid"

	"storefront/internal/domain/entity"
)

// CreateOrderInput defines the data required to place an order. Lines are
// snapshots supplied by the caller; TotalCost is trusted as-is.
type CreateOrderInput struct {
	UserID       *uuid.UUID
	CustomerName string
	Lines        []entity.OrderLine
	TotalCost    float64
	Status       string
}

// UpdateOrderStatusInput defines an order status transition.
type UpdateOrderStatusInput struct {
	OrderID uuid.UUID
	Status  string
}

// LineResult reports the inventory outcome for one order line during
// completion. A failed line never blocks its siblings or rolls back the
// status transition; it is reported here instead.
type LineResult struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
	Stock     int       `json:"stock,omitempty"` // Resulting stock when the decrement succeeded.
	Err       string    `json:"error,omitempty"` // Failure reason when it did not.
}

// OK reports whether the line's stock decrement succeeded.
func (r LineResult) OK() bool {
	return r.Err == ""
}

// UpdateOrderStatusOutput carries the refreshed order and, for COMPLETED
// transitions, the per-line inventory outcomes.
type UpdateOrderStatusOutput struct {
	Order *entity.Order
	Lines []LineResult
}

// OrderUsecase defines the interface for order processing.
type OrderUsecase interface {
	// ListAll returns every order, newest first.
	ListAll(ctx context.Context) ([]*entity.Order, error)

	// ListByUser returns the orders owned by one user, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error)

	// Create places a new order. Quantities must be positive.
	Create(ctx context.Context, input CreateOrderInput) (*entity.Order, error)

	// UpdateStatus transitions the order. A COMPLETED target additionally
	// decrements stock per line and appends one ledger entry per line;
	// there is no guard against re-completing an already COMPLETED order.
	UpdateStatus(ctx context.Context, input UpdateOrderStatusInput) (*UpdateOrderStatusOutput, error)
}
