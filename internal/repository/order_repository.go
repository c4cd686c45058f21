package repository

import (
	"context"

	"app/internal/domain/model"
)

type OrderRepository interface {
	Create(ctx context.Context, order model.Order) (int64, error)
	//見つからなければErrNotFound。
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	//新しい順。
	ListByUserID(ctx context.Context, userID int64) ([]model.Order, error)
	//管理者用の全件一覧（新しい順）。
	ListAll(ctx context.Context) ([]model.Order, error)
	//見つからなければErrNotFound。
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
}
