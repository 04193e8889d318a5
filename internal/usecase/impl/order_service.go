package impl

import (
	"context"
	"log/slog"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// orderService implements the OrderUsecase interface.
type orderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	stockRepo   repository.StockEntryRepository
	logger      *slog.Logger
}

// OrderServiceParams holds dependencies for orderService, injected by Fx.
type OrderServiceParams struct {
	fx.In

	OrderRepo   repository.OrderRepository
	ProductRepo repository.ProductRepository
	StockRepo   repository.StockEntryRepository
	Logger      *slog.Logger
}

// NewOrderService is the constructor for orderService.
func NewOrderService(params OrderServiceParams) usecase.OrderUsecase {
	return &orderService{
		orderRepo:   params.OrderRepo,
		productRepo: params.ProductRepo,
		stockRepo:   params.StockRepo,
		logger:      params.Logger,
	}
}

func (srv *orderService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListAll returns every order, newest first.
func (srv *orderService) ListAll(ctx context.Context) ([]*entity.Order, error) {
	orders, err := srv.orderRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	return orders, nil
}

// ListByUser returns the orders owned by one user, newest first.
func (srv *orderService) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	orders, err := srv.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list user orders")
	}

	return orders, nil
}

// Create places a new order. Line snapshots and the total come from the
// caller untouched; only quantity positivity is checked.
func (srv *orderService) Create(ctx context.Context, input usecase.CreateOrderInput) (*entity.Order, error) {
	if len(input.Lines) == 0 {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("order has no line items")
	}
	for _, line := range input.Lines {
		if line.Quantity <= 0 {
			return nil, domainerrors.ErrValidationFailed.WrapMessage("line quantity must be positive")
		}
	}

	status := input.Status
	if status == "" {
		status = entity.OrderStatusPosted
	}

	order := &entity.Order{
		UserID:       input.UserID,
		CustomerName: input.CustomerName,
		Lines:        input.Lines,
		TotalCost:    input.TotalCost,
		Status:       status,
	}

	if err := srv.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Order created", slog.Any("orderID", order.ID), slog.String("status", order.Status))

	return order, nil
}

// UpdateStatus transitions the order, and on a COMPLETED target runs the
// per-line inventory decrements.
//
// The decrements run outside any wrapping transaction: each stock UPDATE
// is individually atomic, a failing line neither blocks its siblings nor
// rolls back the status change, and re-completing an already COMPLETED
// order decrements again. Callers get the full per-line picture in the
// returned batch.
func (srv *orderService) UpdateStatus(ctx context.Context, input usecase.UpdateOrderStatusInput) (*usecase.UpdateOrderStatusOutput, error) {
	order, err := srv.orderRepo.UpdateStatus(ctx, input.OrderID, input.Status)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrOrderNotFound.WrapMessage("order not found for status update")
		}

		return nil, err
	}

	output := &usecase.UpdateOrderStatusOutput{Order: order}
	if input.Status != entity.OrderStatusCompleted {
		return output, nil
	}

	output.Lines = srv.applyCompletion(ctx, order)

	return output, nil
}

// applyCompletion decrements stock and appends one ledger entry per order
// line, collecting the outcome of each line.
func (srv *orderService) applyCompletion(ctx context.Context, order *entity.Order) []usecase.LineResult {
	results := make([]usecase.LineResult, 0, len(order.Lines))

	for _, line := range order.Lines {
		result := usecase.LineResult{
			ProductID: line.ProductID,
			Name:      line.Name,
			Quantity:  line.Quantity,
		}

		product, err := srv.productRepo.AdjustStock(ctx, line.ProductID, -line.Quantity)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				result.Err = "product not found"
			} else {
				result.Err = err.Error()
			}

			srv.log(ctx).Warn("Order line stock decrement failed",
				slog.Any("orderID", order.ID),
				slog.Any("productID", line.ProductID),
				slog.String("error", result.Err),
			)
			results = append(results, result)

			continue
		}

		entry := &entity.StockEntry{
			ProductID:   product.ID,
			ProductName: product.Name,
			Delta:       -line.Quantity,
			Total:       product.Stock,
		}
		if err := srv.stockRepo.Append(ctx, entry); err != nil {
			// The counter moved but the ledger write failed; report the
			// line as failed so the caller sees the gap.
			result.Err = err.Error()
			srv.log(ctx).Error("Ledger append failed after stock decrement",
				slog.Any("orderID", order.ID),
				slog.Any("productID", line.ProductID),
				slog.Any("error", err),
			)
			results = append(results, result)

			continue
		}

		result.Stock = product.Stock
		results = append(results, result)
	}

	return results
}
