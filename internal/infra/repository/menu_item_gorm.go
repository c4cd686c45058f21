package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type menuItemGormRepository struct {
	db *gorm.DB
}

// DI
func NewMenuItemGormRepository(db *gorm.DB) repo.MenuItemRepository {
	return &menuItemGormRepository{db: db}
}

func (r *menuItemGormRepository) List(ctx context.Context) ([]model.MenuItem, error) {
	var items []model.MenuItem

	if err := r.db.WithContext(ctx).
		Order("id asc").
		Find(&items).Error; err != nil {
		return []model.MenuItem{}, err
	}
	return items, nil
}

func (r *menuItemGormRepository) ListByCategory(ctx context.Context, category string) ([]model.MenuItem, error) {
	var items []model.MenuItem

	if err := r.db.WithContext(ctx).
		Where("category = ?", category).
		Order("id asc").
		Find(&items).Error; err != nil {
		return []model.MenuItem{}, err
	}
	return items, nil
}

func (r *menuItemGormRepository) FindByID(ctx context.Context, menuItemID int64) (model.MenuItem, error) {
	var item model.MenuItem

	err := r.db.WithContext(ctx).
		Where("id = ?", menuItemID).
		First(&item).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.MenuItem{}, repo.ErrNotFound
	}
	if err != nil {
		return model.MenuItem{}, err
	}
	return item, nil
}

// 注文用の一括取得。1クエリで引く（明細ごとに引かない）。
func (r *menuItemGormRepository) FindByIDs(ctx context.Context, menuItemIDs []int64) ([]model.MenuItem, error) {
	if len(menuItemIDs) == 0 {
		return []model.MenuItem{}, nil
	}

	var items []model.MenuItem
	if err := r.db.WithContext(ctx).
		Where("id IN ?", menuItemIDs).
		Find(&items).Error; err != nil {
		return []model.MenuItem{}, err
	}
	return items, nil
}

// 過去の注文の表示用。soft delete済みも含める。
func (r *menuItemGormRepository) FindByIDsIncludingDeleted(ctx context.Context, menuItemIDs []int64) ([]model.MenuItem, error) {
	if len(menuItemIDs) == 0 {
		return []model.MenuItem{}, nil
	}

	var items []model.MenuItem
	if err := r.db.WithContext(ctx).
		Unscoped().
		Where("id IN ?", menuItemIDs).
		Find(&items).Error; err != nil {
		return []model.MenuItem{}, err
	}
	return items, nil
}

func (r *menuItemGormRepository) Create(ctx context.Context, item model.MenuItem) (model.MenuItem, error) {
	if err := r.db.WithContext(ctx).Create(&item).Error; err != nil {
		return model.MenuItem{}, err
	}
	return item, nil
}

func (r *menuItemGormRepository) Update(ctx context.Context, item model.MenuItem) error {
	res := r.db.WithContext(ctx).
		Model(&model.MenuItem{}).
		Where("id = ?", item.ID).
		Updates(map[string]interface{}{
			"name":        item.Name,
			"description": item.Description,
			"price":       item.Price,
			"category":    item.Category,
			"image_url":   item.ImageURL,
			"is_featured": item.IsFeatured,
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *menuItemGormRepository) Delete(ctx context.Context, menuItemID int64) error {
	res := r.db.WithContext(ctx).
		Where("id = ?", menuItemID).
		Delete(&model.MenuItem{})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
