package postgres

import (
	"context"
	"time"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// orderRepository implements the domain.OrderRepository interface using GORM.
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

// FindByID retrieves a single order with its line items.
func (repo *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var orderM model.OrderModel
	if err := repo.db.WithContext(ctx).Preload("Lines").Where("id = ?", id).First(&orderM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order by id")
	}

	return toOrderDomain(&orderM), nil
}

// List retrieves all orders, newest first.
func (repo *orderRepository) List(ctx context.Context) ([]*entity.Order, error) {
	var orderMs []model.OrderModel
	if err := repo.db.WithContext(ctx).Preload("Lines").Order("ordered_at DESC").Find(&orderMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	return toOrderDomains(orderMs), nil
}

// ListByUser retrieves the orders owned by one user, newest first.
func (repo *orderRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	var orderMs []model.OrderModel
	if err := repo.db.WithContext(ctx).Preload("Lines").
		Where("user_id = ?", userID).
		Order("ordered_at DESC").
		Find(&orderMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list orders by user")
	}

	return toOrderDomains(orderMs), nil
}

// Create persists a new order together with its line items.
func (repo *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	orderM := fromOrderDomain(order)

	if err := repo.db.WithContext(ctx).Create(orderM).Error; err != nil {
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required order information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create order")
	}

	order.ID = orderM.ID
	order.OrderedAt = orderM.OrderedAt

	return nil
}

// UpdateStatus sets the order status in one statement. The completion
// timestamp is written by the same UPDATE when the target status is
// COMPLETED, so a completed order can never lack its timestamp.
func (repo *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*entity.Order, error) {
	fields := map[string]any{"status": status}
	if status == entity.OrderStatusCompleted {
		fields["completed_at"] = time.Now()
	}

	result := repo.db.WithContext(ctx).Model(&model.OrderModel{}).
		Where("id = ?", id).
		Updates(fields)
	if err := result.Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to update order status")
	}
	if result.RowsAffected == 0 {
		return nil, repository.ErrOrderNotFound
	}

	return repo.FindByID(ctx, id)
}

// toOrderDomain converts a GORM OrderModel to a domain Order entity.
func toOrderDomain(data *model.OrderModel) *entity.Order {
	if data == nil {
		return nil
	}

	lines := make([]entity.OrderLine, 0, len(data.Lines))
	for _, line := range data.Lines {
		lines = append(lines, entity.OrderLine{
			ProductID: line.ProductID,
			Name:      line.Name,
			Cost:      line.Cost,
			Quantity:  line.Quantity,
		})
	}

	return &entity.Order{
		ID:           data.ID,
		UserID:       data.UserID,
		CustomerName: data.CustomerName,
		Lines:        lines,
		TotalCost:    data.TotalCost,
		Status:       data.Status,
		OrderedAt:    data.OrderedAt,
		CompletedAt:  data.CompletedAt,
	}
}

func toOrderDomains(data []model.OrderModel) []*entity.Order {
	orders := make([]*entity.Order, 0, len(data))
	for i := range data {
		orders = append(orders, toOrderDomain(&data[i]))
	}

	return orders
}

// fromOrderDomain converts a domain Order entity to a GORM OrderModel for persistence.
func fromOrderDomain(data *entity.Order) *model.OrderModel {
	if data == nil {
		return nil
	}

	lines := make([]model.OrderLineModel, 0, len(data.Lines))
	for _, line := range data.Lines {
		lines = append(lines, model.OrderLineModel{
			ProductID: line.ProductID,
			Name:      line.Name,
			Cost:      line.Cost,
			Quantity:  line.Quantity,
		})
	}

	return &model.OrderModel{
		ID:           data.ID,
		UserID:       data.UserID,
		CustomerName: data.CustomerName,
		Lines:        lines,
		TotalCost:    data.TotalCost,
		Status:       data.Status,
		CompletedAt:  data.CompletedAt,
	}
}
