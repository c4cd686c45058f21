package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type contactMessageGormRepository struct {
	db *gorm.DB
}

// DI
func NewContactMessageGormRepository(db *gorm.DB) repo.ContactMessageRepository {
	return &contactMessageGormRepository{db: db}
}

func (r *contactMessageGormRepository) Create(ctx context.Context, msg *model.ContactMessage) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

// 新しい順
func (r *contactMessageGormRepository) List(ctx context.Context) ([]model.ContactMessage, error) {
	var msgs []model.ContactMessage

	if err := r.db.WithContext(ctx).
		Order("created_at desc").
		Find(&msgs).Error; err != nil {
		return []model.ContactMessage{}, err
	}
	return msgs, nil
}

func (r *contactMessageGormRepository) FindByID(ctx context.Context, messageID int64) (model.ContactMessage, error) {
	var msg model.ContactMessage

	err := r.db.WithContext(ctx).
		Where("id = ?", messageID).
		First(&msg).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.ContactMessage{}, repo.ErrNotFound
	}
	if err != nil {
		return model.ContactMessage{}, err
	}
	return msg, nil
}

func (r *contactMessageGormRepository) MarkRead(ctx context.Context, messageID int64) (model.ContactMessage, error) {
	res := r.db.WithContext(ctx).
		Model(&model.ContactMessage{}).
		Where("id = ?", messageID).
		Update("is_read", true)

	if res.Error != nil {
		return model.ContactMessage{}, res.Error
	}
	if res.RowsAffected == 0 {
		return model.ContactMessage{}, repo.ErrNotFound
	}

	return r.FindByID(ctx, messageID)
}

func (r *contactMessageGormRepository) DeleteByID(ctx context.Context, messageID int64) error {
	res := r.db.WithContext(ctx).
		Where("id = ?", messageID).
		Delete(&model.ContactMessage{})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
