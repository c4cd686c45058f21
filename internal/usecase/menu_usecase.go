package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type MenuUsecase struct {
	menuRepo  repo.MenuItemRepository
	auditRepo repo.AuditLogRepository
	log       *slog.Logger
}

// DI
func NewMenuUsecase(
	menuRepo repo.MenuItemRepository,
	auditRepo repo.AuditLogRepository,
	log *slog.Logger,
) *MenuUsecase {
	return &MenuUsecase{
		menuRepo:  menuRepo,
		auditRepo: auditRepo,
		log:       log,
	}
}

// POST /api/menu の入力DTO
type MenuItemInput struct {
	Name        string
	Description string
	Price       float64
	Category    string
	ImageURL    string
	IsFeatured  bool
}

// PATCH /api/menu/:id の入力DTO。nilのフィールドは変更しない。
type MenuItemUpdateInput struct {
	Name        *string
	Description *string
	Price       *float64
	Category    *string
	ImageURL    *string
	IsFeatured  *bool
}

func (u *MenuUsecase) List(ctx context.Context) ([]model.MenuItem, error) {
	items, err := u.menuRepo.List(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "Server Error")
	}
	return items, nil
}

func (u *MenuUsecase) ListByCategory(ctx context.Context, category string) ([]model.MenuItem, error) {
	items, err := u.menuRepo.ListByCategory(ctx, strings.ToLower(category))
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "Server Error")
	}
	return items, nil
}

func (u *MenuUsecase) Get(ctx context.Context, menuItemID int64) (model.MenuItem, error) {
	item, err := u.menuRepo.FindByID(ctx, menuItemID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.MenuItem{}, NewHTTPError(http.StatusNotFound, "Menu item not found")
	}
	if err != nil {
		return model.MenuItem{}, NewHTTPError(http.StatusInternalServerError, "Server Error")
	}
	return item, nil
}

func (u *MenuUsecase) Create(ctx context.Context, actorID int64, in MenuItemInput) (model.MenuItem, error) {
	if err := validateMenuInput(in); err != nil {
		return model.MenuItem{}, err
	}

	item := model.MenuItem{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price,
		Category:    strings.ToLower(strings.TrimSpace(in.Category)),
		ImageURL:    in.ImageURL,
		IsFeatured:  in.IsFeatured,
	}

	created, err := u.menuRepo.Create(ctx, item)
	if err != nil {
		return model.MenuItem{}, NewHTTPError(http.StatusInternalServerError, "Server Error")
	}

	u.writeAudit(ctx, actorID, model.AuditActionCreateMenuItem, created.ID, nil, &created)
	return created, nil
}

func (u *MenuUsecase) Update(ctx context.Context, actorID int64, menuItemID int64, in MenuItemUpdateInput) (model.MenuItem, error) {
	before, err := u.menuRepo.FindByID(ctx, menuItemID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.MenuItem{}, NewHTTPError(http.StatusNotFound, "Menu item not found")
	}
	if err != nil {
		return model.MenuItem{}, NewHTTPError(http.StatusInternalServerError, "Server Error")
	}

	item := before
	if in.Name != nil {
		item.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		item.Description = *in.Description
	}
	if in.Price != nil {
		item.Price = *in.Price
	}
	if in.Category != nil {
		item.Category = strings.ToLower(strings.TrimSpace(*in.Category))
	}
	if in.ImageURL != nil {
		item.ImageURL = *in.ImageURL
	}
	if in.IsFeatured != nil {
		item.IsFeatured = *in.IsFeatured
	}

	if item.Name == "" || item.Category == "" || item.Price < 0 {
		return model.MenuItem{}, NewHTTPError(http.StatusBadRequest, "Invalid input")
	}

	if err := u.menuRepo.Update(ctx, item); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.MenuItem{}, NewHTTPError(http.StatusNotFound, "Menu item not found")
		}
		return model.MenuItem{}, NewHTTPError(http.StatusInternalServerError, "Server Error")
	}

	u.writeAudit(ctx, actorID, model.AuditActionUpdateMenuItem, item.ID, &before, &item)
	return item, nil
}

func (u *MenuUsecase) Delete(ctx context.Context, actorID int64, menuItemID int64) error {
	before, err := u.menuRepo.FindByID(ctx, menuItemID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "Menu item not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "Server Error")
	}

	if err := u.menuRepo.Delete(ctx, menuItemID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "Menu item not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "Server Error")
	}

	u.writeAudit(ctx, actorID, model.AuditActionDeleteMenuItem, menuItemID, &before, nil)
	return nil
}

func validateMenuInput(in MenuItemInput) error {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Category) == "" {
		return NewHTTPError(http.StatusBadRequest, "Invalid input")
	}
	if in.Description == "" || in.ImageURL == "" {
		return NewHTTPError(http.StatusBadRequest, "Invalid input")
	}
	if in.Price < 0 {
		return NewHTTPError(http.StatusBadRequest, "Price cannot be negative")
	}
	return nil
}

// 監査ログはbest-effort。失敗しても操作自体は成功扱いでログだけ残す。
func (u *MenuUsecase) writeAudit(ctx context.Context, actorID int64, action model.AuditAction, resourceID int64, before *model.MenuItem, after *model.MenuItem) {
	entry := model.AuditLog{
		ActorUserID:  actorID,
		Action:       action,
		ResourceType: model.AuditResourceMenuItem,
		ResourceID:   resourceID,
		CreatedAt:    time.Now(),
	}
	if before != nil {
		if b, err := json.Marshal(before); err == nil {
			entry.BeforeJSON = string(b)
		}
	}
	if after != nil {
		if a, err := json.Marshal(after); err == nil {
			entry.AfterJSON = string(a)
		}
	}

	if err := u.auditRepo.Create(ctx, entry); err != nil {
		u.log.Warn("audit log write failed", "action", string(action), "resource_id", resourceID, "error", err)
	}
}
