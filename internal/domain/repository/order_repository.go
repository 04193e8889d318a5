package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrOrderNotFound is a domain-specific error returned when an order is not found.
var ErrOrderNotFound = errors.New("order not found")

// OrderRepository defines the standard operations for order persistence.
type OrderRepository interface {
	// FindByID retrieves a single order with its line items.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// List retrieves all orders, newest first.
	List(ctx context.Context) ([]*entity.Order, error)

	// ListByUser retrieves the orders owned by one user, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error)

	// Create persists a new order together with its line items.
	Create(ctx context.Context, order *entity.Order) error

	// UpdateStatus sets the order status in one statement. When the target
	// status is COMPLETED the completion timestamp is set in the same
	// statement, so the two can never disagree. Returns the post-update
	// order, or ErrOrderNotFound if no row matched the ID.
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*entity.Order, error)
}
