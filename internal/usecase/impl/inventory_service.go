package impl

import (
	"context"
	"log/slog"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// inventoryService implements the InventoryUsecase interface.
type inventoryService struct {
	txManager repository.TransactionManager
	stockRepo repository.StockEntryRepository
	logger    *slog.Logger
}

// InventoryServiceParams holds dependencies for inventoryService, injected by Fx.
type InventoryServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	StockRepo repository.StockEntryRepository
	Logger    *slog.Logger
}

// NewInventoryService is the constructor for inventoryService.
func NewInventoryService(params InventoryServiceParams) usecase.InventoryUsecase {
	return &inventoryService{
		txManager: params.TxManager,
		stockRepo: params.StockRepo,
		logger:    params.Logger,
	}
}

func (srv *inventoryService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// AddStock increases a product's stock and appends the matching ledger
// entry. Counter and ledger are written inside one transaction: a manual
// restock either fully happens or leaves no trace.
func (srv *inventoryService) AddStock(ctx context.Context, input usecase.AddStockInput) (*usecase.AddStockOutput, error) {
	if input.Quantity <= 0 {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("stock quantity must be positive")
	}

	var output usecase.AddStockOutput
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		product, err := repoFactory.NewProductRepository().AdjustStock(ctx, input.ProductID, input.Quantity)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return domainerrors.ErrProductNotFound.WrapMessage("product not found for restock")
			}

			return err
		}

		entry := &entity.StockEntry{
			ProductID:   product.ID,
			ProductName: product.Name,
			Delta:       input.Quantity,
			Total:       product.Stock,
		}
		if err := repoFactory.NewStockEntryRepository().Append(ctx, entry); err != nil {
			return err
		}

		output.Product = product
		output.Entry = entry

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Stock added",
		slog.Any("productID", input.ProductID),
		slog.Int("quantity", input.Quantity),
		slog.Int("total", output.Product.Stock),
	)

	return &output, nil
}

// History returns the full ledger, newest first.
func (srv *inventoryService) History(ctx context.Context) ([]*entity.StockEntry, error) {
	entries, err := srv.stockRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list stock history")
	}

	return entries, nil
}
