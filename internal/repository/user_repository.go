package repository

import (
	"context"

	"app/internal/domain/model"
)

// ユーザーの保存・取得を約束。
// PasswordHashはmodel側のjson:"-"でレスポンスに出ない。
// 照合に使うのはログイン時のFindByEmailだけ。
type UserRepository interface {
	//新規ユーザー作成。email重複はErrDuplicateEmail。
	Create(ctx context.Context, user *model.User) error
	//IDからユーザーを1件取得する。いなければ(nil, nil)。
	FindByID(ctx context.Context, userID int64) (*model.User, error)
	//メールからユーザーを1件取得する。いなければ(nil, nil)。
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}
