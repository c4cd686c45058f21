package repository

import (
	"context"

	"app/internal/domain/model"
)

type CartItemRepository interface {
	ListByCartID(ctx context.Context, cartID int64) ([]model.CartItem, error)
	//見つからなければErrNotFound。
	FindByCartAndMenuItem(ctx context.Context, cartID int64, menuItemID int64) (model.CartItem, error)
	Create(ctx context.Context, item *model.CartItem) error
	//数量を上書き。見つからなければErrNotFound。
	UpdateQuantity(ctx context.Context, cartItemID int64, quantity int64) error
	//見つからなければErrNotFound。
	DeleteByCartAndMenuItem(ctx context.Context, cartID int64, menuItemID int64) error
	CountByCartID(ctx context.Context, cartID int64) (int64, error)
}
