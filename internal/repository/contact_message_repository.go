package repository

import (
	"context"

	"app/internal/domain/model"
)

type ContactMessageRepository interface {
	Create(ctx context.Context, msg *model.ContactMessage) error
	//新しい順。
	List(ctx context.Context) ([]model.ContactMessage, error)
	//見つからなければErrNotFound。
	FindByID(ctx context.Context, messageID int64) (model.ContactMessage, error)
	//既読にする。見つからなければErrNotFound。
	MarkRead(ctx context.Context, messageID int64) (model.ContactMessage, error)
	//見つからなければErrNotFound。
	DeleteByID(ctx context.Context, messageID int64) error
}
