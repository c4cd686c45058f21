package repository

import (
	"context"

	"app/internal/domain/model"
)

type MenuItemRepository interface {
	List(ctx context.Context) ([]model.MenuItem, error)
	ListByCategory(ctx context.Context, category string) ([]model.MenuItem, error)
	//見つからなければErrNotFound。
	FindByID(ctx context.Context, menuItemID int64) (model.MenuItem, error)
	//注文の一括解決用。存在しないIDは単に結果に含まれない。
	FindByIDs(ctx context.Context, menuItemIDs []int64) ([]model.MenuItem, error)
	//過去の注文の表示用。削除済み（soft delete）も含めて引く。
	FindByIDsIncludingDeleted(ctx context.Context, menuItemIDs []int64) ([]model.MenuItem, error)
	Create(ctx context.Context, item model.MenuItem) (model.MenuItem, error)
	Update(ctx context.Context, item model.MenuItem) error
	//soft delete。見つからなければErrNotFound。
	Delete(ctx context.Context, menuItemID int64) error
}
