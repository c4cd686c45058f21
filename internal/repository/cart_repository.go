package repository

import (
	"context"

	"app/internal/domain/model"
)

type CartRepository interface {
	//見つからなければErrNotFound。
	FindByUserID(ctx context.Context, userID int64) (model.Cart, error)
	//無ければ作る（初回追加で遅延作成）。
	GetOrCreateByUserID(ctx context.Context, userID int64) (model.Cart, error)
	//カート本体と明細を削除。見つからなければErrNotFound。
	DeleteByID(ctx context.Context, cartID int64) error
	//ユーザーのカートを丸ごと削除。無ければno-op（冪等）。
	DeleteByUserID(ctx context.Context, userID int64) error
}
