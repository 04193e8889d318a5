package impl

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/usecase"
)

func newOrderService(env *testEnv) usecase.OrderUsecase {
	return NewOrderService(OrderServiceParams{
		OrderRepo:   env.orderRepo,
		ProductRepo: env.productRepo,
		StockRepo:   env.stockRepo,
		Logger:      discardLogger(),
	})
}

func seedProduct(t *testing.T, env *testEnv, name string, stock int) *entity.Product {
	t.Helper()

	product := &entity.Product{Name: name, Capital: 10, Profit: 5, Stock: stock}
	require.NoError(t, env.productRepo.Create(context.Background(), product))

	return product
}

func seedOrder(t *testing.T, env *testEnv, svc usecase.OrderUsecase, lines []entity.OrderLine) *entity.Order {
	t.Helper()

	order, err := svc.Create(context.Background(), usecase.CreateOrderInput{
		CustomerName: "Walk-in",
		Lines:        lines,
		TotalCost:    100,
	})
	require.NoError(t, err)

	return order
}

func TestOrderService_CreateValidatesQuantities(t *testing.T) {
	env := newTestEnv()
	svc := newOrderService(env)
	ctx := context.Background()

	_, err := svc.Create(ctx, usecase.CreateOrderInput{
		Lines: []entity.OrderLine{{ProductID: uuid.New(), Name: "Tea", Cost: 5, Quantity: 0}},
	})
	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.ErrValidationFailed.ErrorCode(), appErr.ErrorCode())

	_, err = svc.Create(ctx, usecase.CreateOrderInput{})
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.ErrValidationFailed.ErrorCode(), appErr.ErrorCode())
}

func TestOrderService_CreateDefaultsToPosted(t *testing.T) {
	env := newTestEnv()
	svc := newOrderService(env)

	order := seedOrder(t, env, svc, []entity.OrderLine{{ProductID: uuid.New(), Name: "Tea", Cost: 5, Quantity: 2}})
	assert.Equal(t, entity.OrderStatusPosted, order.Status)
	assert.Nil(t, order.CompletedAt)
}

func TestOrderService_CompletionDecrementsStockAndWritesLedger(t *testing.T) {
	env := newTestEnv()
	svc := newOrderService(env)
	ctx := context.Background()

	product := seedProduct(t, env, "Tea", 10)
	order := seedOrder(t, env, svc, []entity.OrderLine{
		{ProductID: product.ID, Name: product.Name, Cost: 15, Quantity: 3},
	})

	out, err := svc.UpdateStatus(ctx, usecase.UpdateOrderStatusInput{OrderID: order.ID, Status: entity.OrderStatusCompleted})
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStatusCompleted, out.Order.Status)
	require.NotNil(t, out.Order.CompletedAt)

	require.Len(t, out.Lines, 1)
	assert.True(t, out.Lines[0].OK())
	assert.Equal(t, 7, out.Lines[0].Stock)

	refreshed, err := env.productRepo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, refreshed.Stock)

	entries, err := env.stockRepo.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, -3, entries[0].Delta)
	assert.Equal(t, 7, entries[0].Total)
	assert.Equal(t, product.Name, entries[0].ProductName)
}

func TestOrderService_NonCompletionTransitionSkipsInventory(t *testing.T) {
	env := newTestEnv()
	svc := newOrderService(env)
	ctx := context.Background()

	product := seedProduct(t, env, "Tea", 10)
	order := seedOrder(t, env, svc, []entity.OrderLine{
		{ProductID: product.ID, Name: product.Name, Cost: 15, Quantity: 3},
	})

	out, err := svc.UpdateStatus(ctx, usecase.UpdateOrderStatusInput{OrderID: order.ID, Status: entity.OrderStatusAccepted})
	require.NoError(t, err)
	assert.Empty(t, out.Lines)
	assert.Nil(t, out.Order.CompletedAt)

	refreshed, err := env.productRepo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, refreshed.Stock)
}

// Completing a COMPLETED order again decrements again. There is no
// idempotency guard; this pins the behavior.
func TestOrderService_RecompletionDoubleDecrements(t *testing.T) {
	env := newTestEnv()
	svc := newOrderService(env)
	ctx := context.Background()

	product := seedProduct(t, env, "Tea", 4)
	order := seedOrder(t, env, svc, []entity.OrderLine{
		{ProductID: product.ID, Name: product.Name, Cost: 15, Quantity: 3},
	})

	input := usecase.UpdateOrderStatusInput{OrderID: order.ID, Status: entity.OrderStatusCompleted}

	_, err := svc.UpdateStatus(ctx, input)
	require.NoError(t, err)

	out, err := svc.UpdateStatus(ctx, input)
	require.NoError(t, err)
	require.Len(t, out.Lines, 1)
	assert.True(t, out.Lines[0].OK())

	// Stock went negative; there is no lower bound.
	refreshed, err := env.productRepo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, -2, refreshed.Stock)

	entries, err := env.stockRepo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

// A line whose product has been deleted fails alone; sibling lines and the
// status transition go through.
func TestOrderService_LineFailureDoesNotBlockSiblings(t *testing.T) {
	env := newTestEnv()
	svc := newOrderService(env)
	ctx := context.Background()

	kept := seedProduct(t, env, "Tea", 10)
	deleted := seedProduct(t, env, "Coffee", 10)
	order := seedOrder(t, env, svc, []entity.OrderLine{
		{ProductID: deleted.ID, Name: deleted.Name, Cost: 20, Quantity: 2},
		{ProductID: kept.ID, Name: kept.Name, Cost: 15, Quantity: 3},
	})

	require.NoError(t, env.productRepo.Delete(ctx, deleted.ID))

	out, err := svc.UpdateStatus(ctx, usecase.UpdateOrderStatusInput{OrderID: order.ID, Status: entity.OrderStatusCompleted})
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStatusCompleted, out.Order.Status)
	require.Len(t, out.Lines, 2)

	assert.False(t, out.Lines[0].OK())
	assert.Equal(t, "product not found", out.Lines[0].Err)
	assert.True(t, out.Lines[1].OK())
	assert.Equal(t, 7, out.Lines[1].Stock)

	entries, err := env.stockRepo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestOrderService_UpdateStatusUnknownOrder(t *testing.T) {
	env := newTestEnv()
	svc := newOrderService(env)

	_, err := svc.UpdateStatus(context.Background(), usecase.UpdateOrderStatusInput{
		OrderID: uuid.New(),
		Status:  entity.OrderStatusCompleted,
	})
	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.ErrOrderNotFound.ErrorCode(), appErr.ErrorCode())
	assert.Equal(t, 400, appErr.HTTPCode())
}

func TestOrderService_ListByUser(t *testing.T) {
	env := newTestEnv()
	svc := newOrderService(env)
	ctx := context.Background()

	owner := uuid.New()
	other := uuid.New()

	_, err := svc.Create(ctx, usecase.CreateOrderInput{
		UserID: &owner,
		Lines:  []entity.OrderLine{{ProductID: uuid.New(), Name: "Tea", Cost: 5, Quantity: 1}},
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, usecase.CreateOrderInput{
		UserID: &other,
		Lines:  []entity.OrderLine{{ProductID: uuid.New(), Name: "Coffee", Cost: 7, Quantity: 1}},
	})
	require.NoError(t, err)

	mine, err := svc.ListByUser(ctx, owner)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, owner, *mine[0].UserID)

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
