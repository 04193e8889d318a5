package handler

import (
	"log/slog"
	"net/http"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/delivery/http/response"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// OrderHandler holds dependencies for order handlers.
type OrderHandler struct {
	orderUC usecase.OrderUsecase
	logger  *slog.Logger
}

// NewOrderHandler is the constructor for OrderHandler, injected by Fx.
func NewOrderHandler(orderUC usecase.OrderUsecase, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{
		orderUC: orderUC,
		logger:  logger,
	}
}

type orderLineRequest struct {
	ProductID string  `json:"product_id" validate:"required,uuid"`
	Name      string  `json:"name" validate:"required"`
	Cost      float64 `json:"cost" validate:"gte=0"`
	Quantity  int     `json:"quantity" validate:"required,gt=0"`
}

type createOrderRequest struct {
	CustomerName string             `json:"customer_name"`
	Lines        []orderLineRequest `json:"lines" validate:"required,min=1,dive"`
	TotalCost    float64            `json:"total_cost" validate:"gte=0"`
	Status       string             `json:"status"`
}

type updateOrderStatusRequest struct {
	OrderID string `json:"order_id" validate:"required,uuid"`
	Status  string `json:"status" validate:"required"`
}

// ListAll returns every order in the store.
func (h *OrderHandler) ListAll(c echo.Context) error {
	orders, err := h.orderUC.ListAll(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, orders, "")
}

// ListMine returns the orders placed by the calling principal.
func (h *OrderHandler) ListMine(c echo.Context) error {
	identity := deliverycontext.GetIdentity(c)

	orders, err := h.orderUC.ListByUser(c.Request().Context(), identity.ID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, orders, "")
}

// Create places a new order. Orders placed by a user are attributed to that
// user; orders placed by an admin are recorded under the customer name only.
func (h *OrderHandler) Create(c echo.Context) error {
	var input createOrderRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid order input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	lines := make([]entity.OrderLine, 0, len(input.Lines))
	for _, line := range input.Lines {
		productID, err := uuid.Parse(line.ProductID)
		if err != nil {
			return domainerrors.ErrValidationFailed.WrapMessage("invalid product id in order line")
		}

		lines = append(lines, entity.OrderLine{
			ProductID: productID,
			Name:      line.Name,
			Cost:      line.Cost,
			Quantity:  line.Quantity,
		})
	}

	createInput := usecase.CreateOrderInput{
		CustomerName: input.CustomerName,
		Lines:        lines,
		TotalCost:    input.TotalCost,
		Status:       input.Status,
	}

	identity := deliverycontext.GetIdentity(c)
	if identity.Kind == entity.PrincipalUser {
		userID := identity.ID
		createInput.UserID = &userID
		createInput.CustomerName = identity.Name
	}

	order, err := h.orderUC.Create(c.Request().Context(), createInput)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, order, "Order created successfully")
}

// UpdateStatus transitions an order to a new status. Moving to COMPLETED
// also decrements stock per line and reports each line's outcome.
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	var input updateOrderStatusRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid order status input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	orderID, err := uuid.Parse(input.OrderID)
	if err != nil {
		return domainerrors.ErrValidationFailed.WrapMessage("invalid order id")
	}

	output, err := h.orderUC.UpdateStatus(c.Request().Context(), usecase.UpdateOrderStatusInput{
		OrderID: orderID,
		Status:  input.Status,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"order": output.Order,
		"lines": output.Lines,
	}, "Order status updated successfully")
}
