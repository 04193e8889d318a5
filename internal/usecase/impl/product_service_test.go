package impl

import (
	"context"
	"testing"

	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProductService(env *testEnv) usecase.ProductUsecase {
	return NewProductService(ProductServiceParams{
		ProductRepo: env.productRepo,
		Logger:      discardLogger(),
	})
}

func TestProductService_CreateAndList(t *testing.T) {
	env := newTestEnv()
	svc := newProductService(env)
	ctx := context.Background()

	created, err := svc.Create(ctx, usecase.CreateProductInput{
		Name:    "Keyboard",
		Capital: 40,
		Profit:  20,
		Stock:   15,
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, 15, created.Stock)

	products, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Keyboard", products[0].Name)
}

func TestProductService_UpdateReplacesFields(t *testing.T) {
	env := newTestEnv()
	svc := newProductService(env)
	ctx := context.Background()

	created, err := svc.Create(ctx, usecase.CreateProductInput{Name: "Mouse", Stock: 5})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, usecase.UpdateProductInput{
		ID:       created.ID,
		Name:     "Mouse v2",
		Capital:  10,
		Profit:   5,
		Stock:    8,
		Discount: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, "Mouse v2", updated.Name)
	assert.Equal(t, 8, updated.Stock)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
}

func TestProductService_UpdateUnknownProduct(t *testing.T) {
	env := newTestEnv()
	svc := newProductService(env)

	_, err := svc.Update(context.Background(), usecase.UpdateProductInput{ID: uuid.New(), Name: "Ghost"})
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.ErrProductNotFound.ErrorCode(), appErr.ErrorCode())
}

func TestProductService_Delete(t *testing.T) {
	env := newTestEnv()
	svc := newProductService(env)
	ctx := context.Background()

	created, err := svc.Create(ctx, usecase.CreateProductInput{Name: "Headset", Stock: 3})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))

	products, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)

	err = svc.Delete(ctx, created.ID)
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.ErrProductNotFound.ErrorCode(), appErr.ErrorCode())
}
