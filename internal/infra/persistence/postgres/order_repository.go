package postgres

import (
	"context"

	"storybook/internal/domain/entity"
	domainerrors "storybook/internal/domain/errors"
	"storybook/internal/domain/repository"
	"storybook/internal/infra/persistence/model"

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

// Create persists a new order together with its items.
func (repo *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	orderM := fromOrderDomain(order)

	if err := repo.db.WithContext(ctx).Create(orderM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrBookNotFound
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required order information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create order")
	}

	order.ID = orderM.ID
	order.CreatedAt = orderM.CreatedAt
	order.UpdatedAt = orderM.UpdatedAt
	for i, itemM := range orderM.Items {
		order.Items[i].ID = itemM.ID
		order.Items[i].OrderID = itemM.OrderID
	}

	return nil
}

// FindOwned retrieves an order only when it is owned by userID, with its
// items and their books joined.
func (repo *orderRepository) FindOwned(ctx context.Context, id, userID uuid.UUID) (*entity.Order, error) {
	var orderM model.OrderModel
	err := repo.db.WithContext(ctx).
		Preload("Items.Book").
		Where("id = ? AND user_id = ?", id, userID).
		First(&orderM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find owned order")
	}

	return toOrderDomain(&orderM), nil
}

// ListByUser returns the user's orders newest first, items joined.
func (repo *orderRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	var orderMs []*model.OrderModel
	err := repo.db.WithContext(ctx).
		Preload("Items.Book").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orderMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	orders := make([]*entity.Order, 0, len(orderMs))
	for _, orderM := range orderMs {
		orders = append(orders, toOrderDomain(orderM))
	}

	return orders, nil
}

// Update modifies an existing order's status and payment id. Items are
// immutable after creation, so they are never resaved.
func (repo *orderRepository) Update(ctx context.Context, order *entity.Order) error {
	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ?", order.ID).
		Updates(map[string]any{
			"status":     string(order.Status),
			"payment_id": order.PaymentID,
		})

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update order")
	}
	if result.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}

	return nil
}

// ListItems returns the items of an order with their books joined.
func (repo *orderRepository) ListItems(ctx context.Context, orderID uuid.UUID) ([]*entity.OrderItem, error) {
	var itemMs []*model.OrderItemModel
	err := repo.db.WithContext(ctx).
		Preload("Book").
		Where("order_id = ?", orderID).
		Find(&itemMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list order items")
	}

	items := make([]*entity.OrderItem, 0, len(itemMs))
	for _, itemM := range itemMs {
		items = append(items, toOrderItemDomain(itemM))
	}

	return items, nil
}

// --- Mapper Functions ---

// toOrderDomain converts a GORM OrderModel to a domain Order entity.
func toOrderDomain(data *model.OrderModel) *entity.Order {
	if data == nil {
		return nil
	}

	items := make([]*entity.OrderItem, 0, len(data.Items))
	for i := range data.Items {
		items = append(items, toOrderItemDomain(&data.Items[i]))
	}

	return &entity.Order{
		ID:          data.ID,
		UserID:      data.UserID,
		TotalAmount: data.TotalAmount,
		Status:      entity.OrderStatus(data.Status),
		PaymentID:   data.PaymentID,
		Items:       items,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

// fromOrderDomain converts a domain Order entity to a GORM OrderModel.
func fromOrderDomain(data *entity.Order) *model.OrderModel {
	if data == nil {
		return nil
	}

	items := make([]model.OrderItemModel, 0, len(data.Items))
	for _, item := range data.Items {
		items = append(items, model.OrderItemModel{
			ID:               item.ID,
			OrderID:          item.OrderID,
			CustomizedBookID: item.CustomizedBookID,
			Format:           string(item.Format),
			Price:            item.Price,
			Quantity:         item.Quantity,
		})
	}

	return &model.OrderModel{
		ID:          data.ID,
		UserID:      data.UserID,
		TotalAmount: data.TotalAmount,
		Status:      string(data.Status),
		PaymentID:   data.PaymentID,
		Items:       items,
		CreatedAt:   data.CreatedAt,
	}
}

// toOrderItemDomain converts a GORM OrderItemModel to a domain OrderItem entity.
func toOrderItemDomain(data *model.OrderItemModel) *entity.OrderItem {
	if data == nil {
		return nil
	}

	return &entity.OrderItem{
		ID:               data.ID,
		OrderID:          data.OrderID,
		CustomizedBookID: data.CustomizedBookID,
		Format:           entity.BookFormat(data.Format),
		Price:            data.Price,
		Quantity:         data.Quantity,
		Book:             toBookDomain(data.Book),
		CreatedAt:        data.CreatedAt,
		UpdatedAt:        data.UpdatedAt,
	}
}
