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

// productService implements the ProductUsecase interface.
type productService struct {
	productRepo repository.ProductRepository
	logger      *slog.Logger
}

// ProductServiceParams holds dependencies for productService, injected by Fx.
type ProductServiceParams struct {
	fx.In

	ProductRepo repository.ProductRepository
	Logger      *slog.Logger
}

// NewProductService is the constructor for productService.
func NewProductService(params ProductServiceParams) usecase.ProductUsecase {
	return &productService{
		productRepo: params.ProductRepo,
		logger:      params.Logger,
	}
}

func (srv *productService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// List returns the full catalogue.
func (srv *productService) List(ctx context.Context) ([]*entity.Product, error) {
	products, err := srv.productRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	return products, nil
}

// Create adds a new product.
func (srv *productService) Create(ctx context.Context, input usecase.CreateProductInput) (*entity.Product, error) {
	product := &entity.Product{
		Name:        input.Name,
		Description: input.Description,
		Capital:     input.Capital,
		Profit:      input.Profit,
		Stock:       input.Stock,
		Discount:    input.Discount,
	}

	if err := srv.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Product created", slog.Any("productID", product.ID), slog.String("name", product.Name))

	return product, nil
}

// Update replaces the product's fields.
func (srv *productService) Update(ctx context.Context, input usecase.UpdateProductInput) (*entity.Product, error) {
	updated, err := srv.productRepo.Update(ctx, &entity.Product{
		ID:          input.ID,
		Name:        input.Name,
		Description: input.Description,
		Capital:     input.Capital,
		Profit:      input.Profit,
		Stock:       input.Stock,
		Discount:    input.Discount,
	})
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound.WrapMessage("product not found for update")
		}

		return nil, err
	}

	srv.log(ctx).Info("Product updated", slog.Any("productID", updated.ID))

	return updated, nil
}

// Delete removes a product from the catalogue.
func (srv *productService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := srv.productRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return domainerrors.ErrProductNotFound.WrapMessage("product not found for delete")
		}

		return err
	}

	srv.log(ctx).Info("Product deleted", slog.Any("productID", id))

	return nil
}
