package handler

import (
	"log/slog"
	"net/http"

	"storefront/internal/delivery/http/response"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ProductHandler holds dependencies for catalogue and inventory handlers.
type ProductHandler struct {
	productUC   usecase.ProductUsecase
	inventoryUC usecase.InventoryUsecase
	logger      *slog.Logger
}

// NewProductHandler is the constructor for ProductHandler, injected by Fx.
func NewProductHandler(productUC usecase.ProductUsecase, inventoryUC usecase.InventoryUsecase, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		productUC:   productUC,
		inventoryUC: inventoryUC,
		logger:      logger,
	}
}

type createProductRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Capital     float64 `json:"capital" validate:"gte=0"`
	Profit      float64 `json:"profit" validate:"gte=0"`
	Stock       int     `json:"stock"`
	Discount    float64 `json:"discount" validate:"gte=0"`
}

type updateProductRequest struct {
	ID          string  `json:"id" validate:"required,uuid"`
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Capital     float64 `json:"capital" validate:"gte=0"`
	Profit      float64 `json:"profit" validate:"gte=0"`
	Stock       int     `json:"stock"`
	Discount    float64 `json:"discount" validate:"gte=0"`
}

type deleteProductRequest struct {
	ID string `json:"id" validate:"required,uuid"`
}

type addStockRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

// List returns the public catalogue.
func (h *ProductHandler) List(c echo.Context) error {
	products, err := h.productUC.List(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, products, "")
}

// Create adds a product to the catalogue.
func (h *ProductHandler) Create(c echo.Context) error {
	var input createProductRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	product, err := h.productUC.Create(c.Request().Context(), usecase.CreateProductInput{
		Name:        input.Name,
		Description: input.Description,
		Capital:     input.Capital,
		Profit:      input.Profit,
		Stock:       input.Stock,
		Discount:    input.Discount,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, product, "Product created successfully")
}

// Update fully replaces a product's fields.
func (h *ProductHandler) Update(c echo.Context) error {
	var input updateProductRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	id, err := uuid.Parse(input.ID)
	if err != nil {
		return domainerrors.ErrValidationFailed.WrapMessage("invalid product id")
	}

	product, err := h.productUC.Update(c.Request().Context(), usecase.UpdateProductInput{
		ID:          id,
		Name:        input.Name,
		Description: input.Description,
		Capital:     input.Capital,
		Profit:      input.Profit,
		Stock:       input.Stock,
		Discount:    input.Discount,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, product, "Product updated successfully")
}

// Delete removes a product from the catalogue.
func (h *ProductHandler) Delete(c echo.Context) error {
	var input deleteProductRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	id, err := uuid.Parse(input.ID)
	if err != nil {
		return domainerrors.ErrValidationFailed.WrapMessage("invalid product id")
	}

	if err := h.productUC.Delete(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}

// AddStock manually increases a product's stock and records the movement in
// the ledger.
func (h *ProductHandler) AddStock(c echo.Context) error {
	var input addStockRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid stock input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	productID, err := uuid.Parse(input.ProductID)
	if err != nil {
		return domainerrors.ErrValidationFailed.WrapMessage("invalid product id")
	}

	output, err := h.inventoryUC.AddStock(c.Request().Context(), usecase.AddStockInput{
		ProductID: productID,
		Quantity:  input.Quantity,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"product": output.Product,
		"entry":   output.Entry,
	}, "Stock added successfully")
}

// StockHistory returns the inventory ledger, newest first.
func (h *ProductHandler) StockHistory(c echo.Context) error {
	entries, err := h.inventoryUC.History(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, entries, "")
}
