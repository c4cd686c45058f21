package usecase

import (
	"context"
	"errors"
	"net/http"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// CartUsecase は /api/cart の業務ロジックです。
type CartUsecase struct {
	cartRepo     repo.CartRepository
	cartItemRepo repo.CartItemRepository
	menuRepo     repo.MenuItemRepository
}

func NewCartUsecase(
	cartRepo repo.CartRepository,
	cartItemRepo repo.CartItemRepository,
	menuRepo repo.MenuItemRepository,
) *CartUsecase {
	return &CartUsecase{
		cartRepo:     cartRepo,
		cartItemRepo: cartItemRepo,
		menuRepo:     menuRepo,
	}
}

// カート明細の返却用。priceは現在のメニュー価格（カートはスナップショットしない）。
type CartItemResponse struct {
	MenuItemID int64   `json:"menu_item_id"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	ImageURL   string  `json:"image_url"`
	Quantity   int64   `json:"quantity"`
}

type CartResponse struct {
	Items []CartItemResponse `json:"items"`
	Total float64            `json:"total"`
}

// Get はカート取得。カートが無ければ(nil, nil)を返す（空カートは作らない）。
func (u *CartUsecase) Get(ctx context.Context, userID int64) (*CartResponse, error) {
	if userID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "Please log in to access this resource")
	}

	cart, err := u.cartRepo.FindByUserID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "Server Error")
	}

	return u.buildCartResponse(ctx, cart.ID)
}

// Add はカートに追加（同一商品は数量加算、上書きしない）。
// カートが無ければこの1行で作る。
func (u *CartUsecase) Add(ctx context.Context, userID int64, menuItemID int64, quantity int64) (*CartResponse, error) {
	if userID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "Please log in to access this resource")
	}
	if menuItemID <= 0 || quantity < 1 {
		return nil, NewHTTPError(http.StatusBadRequest, "Invalid input")
	}

	//メニュー存在チェック
	if _, err := u.menuRepo.FindByID(ctx, menuItemID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, NewHTTPError(http.StatusNotFound, "Menu item not found")
		}
		return nil, NewHTTPError(http.StatusInternalServerError, "Server Error")
	}

	//カート取得（無ければ遅延作成）
	cart, err := u.cartRepo.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "Server Error")
	}

	//既に同じ商品の行があれば数量を足す
	existing, err := u.cartItemRepo.FindByCartAndMenuItem(ctx, cart.ID, menuItemID)
	switch {
	case err == nil:
		if err := u.cartItemRepo.UpdateQuantity(ctx, existing.ID, existing.Quantity+quantity); err != nil {
			return nil, NewHTTPError(http.StatusInternalServerError, "Server Error")
		}
	case errors.Is(err, repo.ErrNotFound):
		item := &model.CartItem{
			CartID:     cart.ID,
			MenuItemID: menuItemID,
			Quantity:   quantity,
		}
		if err := u.cartItemRepo.Create(ctx, item); err != nil {
			return nil, NewHTTPError(http.StatusInternalServerError, "Server Error")
		}
	default:
		return nil, NewHTTPError(http.StatusInternalServerError, "Server Error")
	}

	return u.buildCartResponse(ctx, cart.ID)
}

// SetQuantity は数量を上書き（加算ではない）。
func (u *CartUsecase) SetQuantity(ctx context.Context, userID int64, menuItemID int64, quantity int64) (*CartResponse, error) {
	if userID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "Please log in to access this resource")
	}
	if menuItemID <= 0 || quantity < 1 {
		return nil, NewHTTPError(http.StatusBadRequest, "Invalid input")
	}

	cart, err := u.cartRepo.FindByUserID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, NewHTTPError(http.StatusNotFound, "Cart not found")
	}
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "Server Error")
	}

	item, err := u.cartItemRepo.FindByCartAndMenuItem(ctx, cart.ID, menuItemID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, NewHTTPError(http.StatusNotFound, "Item not in cart")
	}
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "Server Error")
	}

	if err := u.cartItemRepo.UpdateQuantity(ctx, item.ID, quantity); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, NewHTTPError(http.StatusNotFound, "Item not in cart")
		}
		return nil, NewHTTPError(http.StatusInternalServerError, "Server Error")
	}

	return u.buildCartResponse(ctx, cart.ID)
}

// Remove は明細を1行削除。最後の1行を消したらカート本体ごと削除して(nil, nil)を返す。
func (u *CartUsecase) Remove(ctx context.Context, userID int64, menuItemID int64) (*CartResponse, error) {
	if userID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "Please log in to access this resource")
	}
	if menuItemID <= 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "Invalid input")
	}

	cart, err := u.cartRepo.FindByUserID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		//カート無しでの削除は空結果扱い
		return nil, nil
	}
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "Server Error")
	}

	if err := u.cartItemRepo.DeleteByCartAndMenuItem(ctx, cart.ID, menuItemID); err != nil {
		if !errors.Is(err, repo.ErrNotFound) {
			return nil, NewHTTPError(http.StatusInternalServerError, "Server Error")
		}
		//行が無くても続行（冪等）
	}

	count, err := u.cartItemRepo.CountByCartID(ctx, cart.ID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "Server Error")
	}
	if count == 0 {
		//空になったらカート行そのものを消す（空カートは残さない）
		if err := u.cartRepo.DeleteByID(ctx, cart.ID); err != nil && !errors.Is(err, repo.ErrNotFound) {
			return nil, NewHTTPError(http.StatusInternalServerError, "Server Error")
		}
		return nil, nil
	}

	return u.buildCartResponse(ctx, cart.ID)
}

// Clear はカートを丸ごと削除。無ければno-op（エラーにしない）。
func (u *CartUsecase) Clear(ctx context.Context, userID int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "Please log in to access this resource")
	}

	if err := u.cartRepo.DeleteByUserID(ctx, userID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "Server Error")
	}
	return nil
}

// cartIDの明細をまとめてCartResponseを作る。メニューは1クエリで解決する。
func (u *CartUsecase) buildCartResponse(ctx context.Context, cartID int64) (*CartResponse, error) {
	items, err := u.cartItemRepo.ListByCartID(ctx, cartID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "Server Error")
	}

	ids := make([]int64, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.MenuItemID)
	}

	menuItems, err := u.menuRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "Server Error")
	}

	byID := make(map[int64]model.MenuItem, len(menuItems))
	for _, mi := range menuItems {
		byID[mi.ID] = mi
	}

	respItems := make([]CartItemResponse, 0, len(items))
	var total float64

	for _, it := range items {
		mi, ok := byID[it.MenuItemID]
		if !ok {
			//追加後にメニューが消された行は表示から落とす
			continue
		}

		respItems = append(respItems, CartItemResponse{
			MenuItemID: it.MenuItemID,
			Name:       mi.Name,
			Price:      mi.Price,
			ImageURL:   mi.ImageURL,
			Quantity:   it.Quantity,
		})

		total += mi.Price * float64(it.Quantity)
	}

	return &CartResponse{Items: respItems, Total: total}, nil
}
