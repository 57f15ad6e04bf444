package gorm

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "github.com/zaikabox/v1/pkg/errors"

	"github.com/zaikabox/v1/internal/domain/order"
	"github.com/zaikabox/v1/internal/ports/outbound"
)

// OrderRepository implements outbound.OrderRepository using GORM.
type OrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository.
func NewOrderRepository(db *gorm.DB) outbound.OrderRepository {
	return &OrderRepository{db: db}
}

// SaveOrder inserts a freshly placed order.
func (r *OrderRepository) SaveOrder(ctx context.Context, o *order.Order) error {
	model, err := OrderToModel(o)
	if err != nil {
		return err
	}

	if result := r.db.WithContext(ctx).Create(model); result.Error != nil {
		return apperrors.NewDatabaseError("create order", result.Error)
	}
	return nil
}

// UpdateOrder persists a lifecycle change.
func (r *OrderRepository) UpdateOrder(ctx context.Context, o *order.Order) error {
	model, err := OrderToModel(o)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Save(model)
	if result.Error != nil {
		return apperrors.NewDatabaseError("update order", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewOrderNotFoundError(o.ID.String())
	}
	return nil
}

// FindOrder loads one order by ID.
func (r *OrderRepository) FindOrder(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	var model OrderModel

	result := r.db.WithContext(ctx).First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewOrderNotFoundError(id.String())
		}
		return nil, apperrors.NewDatabaseError("find order", result.Error)
	}

	return ModelToOrder(&model)
}

// ListOrdersByUsername returns an account's orders, newest first.
func (r *OrderRepository) ListOrdersByUsername(ctx context.Context, username string) ([]*order.Order, error) {
	var models []OrderModel

	result := r.db.WithContext(ctx).
		Where("username = ?", username).
		Order("placed_at DESC").
		Find(&models)
	if result.Error != nil {
		return nil, apperrors.NewDatabaseError("list orders", result.Error)
	}

	orders := make([]*order.Order, 0, len(models))
	for i := range models {
		o, err := ModelToOrder(&models[i])
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

// SaveCart upserts the cart row for one account.
func (r *OrderRepository) SaveCart(ctx context.Context, username string, items []order.CartItem) error {
	serialized, err := marshalField(items)
	if err != nil {
		return err
	}

	model := CartModel{
		Username:  username,
		Items:     serialized,
		UpdatedAt: time.Now(),
	}

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "username"}},
		UpdateAll: true,
	}).Create(&model)
	if result.Error != nil {
		return apperrors.NewDatabaseError("save cart", result.Error)
	}
	return nil
}

// LoadCart returns the persisted cart, or an empty cart when none exists.
func (r *OrderRepository) LoadCart(ctx context.Context, username string) ([]order.CartItem, error) {
	var model CartModel

	result := r.db.WithContext(ctx).First(&model, "username = ?", username)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.NewDatabaseError("load cart", result.Error)
	}

	var items []order.CartItem
	if err := unmarshalField(model.Items, &items); err != nil {
		return nil, err
	}
	return items, nil
}
