package impl

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/usecase"
)

func newInventoryService(env *testEnv) usecase.InventoryUsecase {
	return NewInventoryService(InventoryServiceParams{
		TxManager: env.txManager,
		StockRepo: env.stockRepo,
		Logger:    discardLogger(),
	})
}

func TestInventoryService_AddStockAppendsLedger(t *testing.T) {
	env := newTestEnv()
	svc := newInventoryService(env)
	ctx := context.Background()

	product := seedProduct(t, env, "Tea", 5)

	out, err := svc.AddStock(ctx, usecase.AddStockInput{ProductID: product.ID, Quantity: 7})
	require.NoError(t, err)

	assert.Equal(t, 12, out.Product.Stock)
	assert.Equal(t, 7, out.Entry.Delta)
	assert.Equal(t, 12, out.Entry.Total)
	assert.Equal(t, "Tea", out.Entry.ProductName)

	refreshed, err := env.productRepo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 12, refreshed.Stock)
}

func TestInventoryService_AddStockRejectsNonPositive(t *testing.T) {
	env := newTestEnv()
	svc := newInventoryService(env)
	ctx := context.Background()

	for _, quantity := range []int{0, -3} {
		_, err := svc.AddStock(ctx, usecase.AddStockInput{ProductID: uuid.New(), Quantity: quantity})
		var appErr domainerrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, domainerrors.ErrValidationFailed.ErrorCode(), appErr.ErrorCode())
	}
}

func TestInventoryService_AddStockUnknownProduct(t *testing.T) {
	env := newTestEnv()
	svc := newInventoryService(env)

	_, err := svc.AddStock(context.Background(), usecase.AddStockInput{ProductID: uuid.New(), Quantity: 3})
	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.ErrProductNotFound.ErrorCode(), appErr.ErrorCode())
}

func TestInventoryService_HistoryNewestFirst(t *testing.T) {
	env := newTestEnv()
	svc := newInventoryService(env)
	ctx := context.Background()

	product := seedProduct(t, env, "Tea", 0)

	_, err := svc.AddStock(ctx, usecase.AddStockInput{ProductID: product.ID, Quantity: 1})
	require.NoError(t, err)
	_, err = svc.AddStock(ctx, usecase.AddStockInput{ProductID: product.ID, Quantity: 2})
	require.NoError(t, err)

	entries, err := svc.History(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Newest first: the second movement leads.
	assert.Equal(t, 2, entries[0].Delta)
	assert.Equal(t, 3, entries[0].Total)
	assert.Equal(t, 1, entries[1].Delta)
}
