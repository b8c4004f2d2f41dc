package repository

import (
	"context"

	"shop/internal/domain/model"
)

type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	ListByUserID(ctx context.Context, userID int64, limit int) ([]model.Order, error)
	Create(ctx context.Context, order model.Order) (model.Order, error)
}
