package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"bakery-shop/internal/model"
)

type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	FindByID(ctx context.Context, id int64) (*model.Order, error)
	// ListByUser returns the user's orders newest first; orders created at
	// the same instant keep their insertion order.
	ListByUser(ctx context.Context, userID int64) ([]model.Order, error)
	ListAll(ctx context.Context) ([]model.Order, error)
	// MarkDelivered transitions the order to delivered and stamps the
	// delivery time. Calling it again is a no-op: the first timestamp wins.
	MarkDelivered(ctx context.Context, id int64, deliveredAt time.Time) error
}

type orderRepoImpl struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepoImpl{
		db: db,
	}
}

func (r *orderRepoImpl) Create(ctx context.Context, order *model.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *orderRepoImpl) FindByID(ctx context.Context, id int64) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&order).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *orderRepoImpl) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id ASC").
		Find(&orders).Error

	if err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *orderRepoImpl) ListAll(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id ASC").
		Find(&orders).Error

	if err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *orderRepoImpl) MarkDelivered(ctx context.Context, id int64, deliveredAt time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order model.Order
		err := tx.Where("id = ?", id).First(&order).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		if err != nil {
			return err
		}

		if order.Status == model.OrderStatusDelivered {
			return nil
		}

		return tx.Model(&model.Order{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{
				"status":       model.OrderStatusDelivered,
				"delivered_at": deliveredAt,
			}).Error
	})
}
