package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// Repository mocks (Cart向け：衝突回避)
// =====================

type CartRepoMock struct{ mock.Mock }

func (m *CartRepoMock) FindByUserID(ctx context.Context, userID int64) (model.Cart, error) {
	args := m.Called(ctx, userID)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

func (m *CartRepoMock) GetOrCreateByUserID(ctx context.Context, userID int64) (model.Cart, error) {
	args := m.Called(ctx, userID)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

func (m *CartRepoMock) DeleteByID(ctx context.Context, cartID int64) error {
	args := m.Called(ctx, cartID)
	return args.Error(0)
}

func (m *CartRepoMock) DeleteByUserID(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type CartItemRepoMock struct{ mock.Mock }

func (m *CartItemRepoMock) ListByCartID(ctx context.Context, cartID int64) ([]model.CartItem, error) {
	args := m.Called(ctx, cartID)
	items, _ := args.Get(0).([]model.CartItem)
	return items, args.Error(1)
}

func (m *CartItemRepoMock) FindByCartAndMenuItem(ctx context.Context, cartID int64, menuItemID int64) (model.CartItem, error) {
	args := m.Called(ctx, cartID, menuItemID)
	it, _ := args.Get(0).(model.CartItem)
	return it, args.Error(1)
}

func (m *CartItemRepoMock) Create(ctx context.Context, item *model.CartItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *CartItemRepoMock) UpdateQuantity(ctx context.Context, cartItemID int64, quantity int64) error {
	args := m.Called(ctx, cartItemID, quantity)
	return args.Error(0)
}

func (m *CartItemRepoMock) DeleteByCartAndMenuItem(ctx context.Context, cartID int64, menuItemID int64) error {
	args := m.Called(ctx, cartID, menuItemID)
	return args.Error(0)
}

func (m *CartItemRepoMock) CountByCartID(ctx context.Context, cartID int64) (int64, error) {
	args := m.Called(ctx, cartID)
	return args.Get(0).(int64), args.Error(1)
}

type CartMenuRepoMock struct{ mock.Mock }

func (m *CartMenuRepoMock) List(ctx context.Context) ([]model.MenuItem, error) {
	panic("not used in CartUsecase tests")
}

func (m *CartMenuRepoMock) ListByCategory(ctx context.Context, category string) ([]model.MenuItem, error) {
	panic("not used in CartUsecase tests")
}

func (m *CartMenuRepoMock) FindByID(ctx context.Context, menuItemID int64) (model.MenuItem, error) {
	args := m.Called(ctx, menuItemID)
	mi, _ := args.Get(0).(model.MenuItem)
	return mi, args.Error(1)
}

func (m *CartMenuRepoMock) FindByIDs(ctx context.Context, menuItemIDs []int64) ([]model.MenuItem, error) {
	args := m.Called(ctx, menuItemIDs)
	items, _ := args.Get(0).([]model.MenuItem)
	return items, args.Error(1)
}

func (m *CartMenuRepoMock) FindByIDsIncludingDeleted(ctx context.Context, menuItemIDs []int64) ([]model.MenuItem, error) {
	panic("not used in CartUsecase tests")
}

func (m *CartMenuRepoMock) Create(ctx context.Context, item model.MenuItem) (model.MenuItem, error) {
	panic("not used in CartUsecase tests")
}

func (m *CartMenuRepoMock) Update(ctx context.Context, item model.MenuItem) error {
	panic("not used in CartUsecase tests")
}

func (m *CartMenuRepoMock) Delete(ctx context.Context, menuItemID int64) error {
	panic("not used in CartUsecase tests")
}

// =====================
// Helper: error contains（HTTPErrorの実装詳細に依存しない）
// =====================

func assertErrContains(t *testing.T, err error, wantSubstr string) {
	t.Helper()
	if assert.Error(t, err) {
		assert.True(t, strings.Contains(err.Error(), wantSubstr), "err=%q want contains %q", err.Error(), wantSubstr)
	}
}

func assertHTTPStatus(t *testing.T, err error, wantStatus int) {
	t.Helper()
	if assert.Error(t, err) {
		he, ok := usecase.AsHTTPError(err)
		if assert.True(t, ok, "err=%q is not HTTPError", err.Error()) {
			assert.Equal(t, wantStatus, he.Status)
		}
	}
}

// =====================
// Add tests
// =====================

func TestCartUsecase_Add_NewLine(t *testing.T) {
	ctx := context.Background()

	carts := new(CartRepoMock)
	items := new(CartItemRepoMock)
	menus := new(CartMenuRepoMock)

	menus.On("FindByID", mock.Anything, int64(7)).Return(model.MenuItem{ID: 7, Name: "Ramen", Price: 10.0}, nil)
	carts.On("GetOrCreateByUserID", mock.Anything, int64(1)).Return(model.Cart{ID: 100, UserID: 1}, nil)
	items.On("FindByCartAndMenuItem", mock.Anything, int64(100), int64(7)).Return(model.CartItem{}, repo.ErrNotFound)
	items.On("Create", mock.Anything, mock.MatchedBy(func(it *model.CartItem) bool {
		return it.CartID == 100 && it.MenuItemID == 7 && it.Quantity == 2
	})).Return(nil)
	items.On("ListByCartID", mock.Anything, int64(100)).Return([]model.CartItem{
		{ID: 1, CartID: 100, MenuItemID: 7, Quantity: 2},
	}, nil)
	menus.On("FindByIDs", mock.Anything, []int64{7}).Return([]model.MenuItem{
		{ID: 7, Name: "Ramen", Price: 10.0},
	}, nil)

	uc := usecase.NewCartUsecase(carts, items, menus)

	out, err := uc.Add(ctx, 1, 7, 2)
	assert.NoError(t, err)
	if assert.NotNil(t, out) {
		assert.Equal(t, 1, len(out.Items))
		assert.Equal(t, float64(20), out.Total)
	}

	carts.AssertExpectations(t)
	items.AssertExpectations(t)
	menus.AssertExpectations(t)
}

func TestCartUsecase_Add_ExistingLine_MergesQuantity(t *testing.T) {
	ctx := context.Background()

	carts := new(CartRepoMock)
	items := new(CartItemRepoMock)
	menus := new(CartMenuRepoMock)

	menus.On("FindByID", mock.Anything, int64(7)).Return(model.MenuItem{ID: 7, Name: "Ramen", Price: 10.0}, nil)
	carts.On("GetOrCreateByUserID", mock.Anything, int64(1)).Return(model.Cart{ID: 100, UserID: 1}, nil)
	items.On("FindByCartAndMenuItem", mock.Anything, int64(100), int64(7)).Return(model.CartItem{
		ID: 55, CartID: 100, MenuItemID: 7, Quantity: 2,
	}, nil)

	//2個入りの行に3個追加 → 上書きでなく5個に加算される
	items.On("UpdateQuantity", mock.Anything, int64(55), int64(5)).Return(nil)
	items.On("ListByCartID", mock.Anything, int64(100)).Return([]model.CartItem{
		{ID: 55, CartID: 100, MenuItemID: 7, Quantity: 5},
	}, nil)
	menus.On("FindByIDs", mock.Anything, []int64{7}).Return([]model.MenuItem{
		{ID: 7, Name: "Ramen", Price: 10.0},
	}, nil)

	uc := usecase.NewCartUsecase(carts, items, menus)

	out, err := uc.Add(ctx, 1, 7, 3)
	assert.NoError(t, err)
	if assert.NotNil(t, out) {
		assert.Equal(t, 1, len(out.Items))
		assert.Equal(t, int64(5), out.Items[0].Quantity)
		assert.Equal(t, float64(50), out.Total)
	}

	items.AssertExpectations(t)
}

func TestCartUsecase_Add_UnknownMenuItem(t *testing.T) {
	carts := new(CartRepoMock)
	items := new(CartItemRepoMock)
	menus := new(CartMenuRepoMock)

	menus.On("FindByID", mock.Anything, int64(999)).Return(model.MenuItem{}, repo.ErrNotFound)

	uc := usecase.NewCartUsecase(carts, items, menus)

	out, err := uc.Add(context.Background(), 1, 999, 1)
	assert.Nil(t, out)
	assertHTTPStatus(t, err, http.StatusNotFound)
	assertErrContains(t, err, "Menu item not found")
}

func TestCartUsecase_Add_InvalidQuantity(t *testing.T) {
	uc := usecase.NewCartUsecase(new(CartRepoMock), new(CartItemRepoMock), new(CartMenuRepoMock))

	out, err := uc.Add(context.Background(), 1, 7, 0)
	assert.Nil(t, out)
	assertHTTPStatus(t, err, http.StatusBadRequest)
}

// =====================
// Get tests
// =====================

func TestCartUsecase_Get_NoCart_ReturnsNil(t *testing.T) {
	carts := new(CartRepoMock)
	carts.On("FindByUserID", mock.Anything, int64(1)).Return(model.Cart{}, repo.ErrNotFound)

	uc := usecase.NewCartUsecase(carts, new(CartItemRepoMock), new(CartMenuRepoMock))

	out, err := uc.Get(context.Background(), 1)
	assert.NoError(t, err)
	assert.Nil(t, out)
}

func TestCartUsecase_Get_SkipsDeletedMenuItems(t *testing.T) {
	carts := new(CartRepoMock)
	items := new(CartItemRepoMock)
	menus := new(CartMenuRepoMock)

	carts.On("FindByUserID", mock.Anything, int64(1)).Return(model.Cart{ID: 100, UserID: 1}, nil)
	items.On("ListByCartID", mock.Anything, int64(100)).Return([]model.CartItem{
		{ID: 1, CartID: 100, MenuItemID: 7, Quantity: 1},
		{ID: 2, CartID: 100, MenuItemID: 8, Quantity: 1},
	}, nil)

	//ID=8は削除済みで解決されない → 表示から落ちる
	menus.On("FindByIDs", mock.Anything, []int64{7, 8}).Return([]model.MenuItem{
		{ID: 7, Name: "Ramen", Price: 10.0},
	}, nil)

	uc := usecase.NewCartUsecase(carts, items, menus)

	out, err := uc.Get(context.Background(), 1)
	assert.NoError(t, err)
	if assert.NotNil(t, out) {
		assert.Equal(t, 1, len(out.Items))
		assert.Equal(t, int64(7), out.Items[0].MenuItemID)
		assert.Equal(t, float64(10), out.Total)
	}
}

// =====================
// SetQuantity tests
// =====================

func TestCartUsecase_SetQuantity_Overwrites(t *testing.T) {
	carts := new(CartRepoMock)
	items := new(CartItemRepoMock)
	menus := new(CartMenuRepoMock)

	carts.On("FindByUserID", mock.Anything, int64(1)).Return(model.Cart{ID: 100, UserID: 1}, nil)
	items.On("FindByCartAndMenuItem", mock.Anything, int64(100), int64(7)).Return(model.CartItem{
		ID: 55, CartID: 100, MenuItemID: 7, Quantity: 2,
	}, nil)

	//加算ではなく3で上書き
	items.On("UpdateQuantity", mock.Anything, int64(55), int64(3)).Return(nil)
	items.On("ListByCartID", mock.Anything, int64(100)).Return([]model.CartItem{
		{ID: 55, CartID: 100, MenuItemID: 7, Quantity: 3},
	}, nil)
	menus.On("FindByIDs", mock.Anything, []int64{7}).Return([]model.MenuItem{
		{ID: 7, Name: "Ramen", Price: 10.0},
	}, nil)

	uc := usecase.NewCartUsecase(carts, items, menus)

	out, err := uc.SetQuantity(context.Background(), 1, 7, 3)
	assert.NoError(t, err)
	if assert.NotNil(t, out) {
		assert.Equal(t, int64(3), out.Items[0].Quantity)
	}

	items.AssertExpectations(t)
}

func TestCartUsecase_SetQuantity_NoCart(t *testing.T) {
	carts := new(CartRepoMock)
	carts.On("FindByUserID", mock.Anything, int64(1)).Return(model.Cart{}, repo.ErrNotFound)

	uc := usecase.NewCartUsecase(carts, new(CartItemRepoMock), new(CartMenuRepoMock))

	_, err := uc.SetQuantity(context.Background(), 1, 7, 3)
	assertHTTPStatus(t, err, http.StatusNotFound)
	assertErrContains(t, err, "Cart not found")
}

func TestCartUsecase_SetQuantity_ItemNotInCart(t *testing.T) {
	carts := new(CartRepoMock)
	items := new(CartItemRepoMock)

	carts.On("FindByUserID", mock.Anything, int64(1)).Return(model.Cart{ID: 100, UserID: 1}, nil)
	items.On("FindByCartAndMenuItem", mock.Anything, int64(100), int64(7)).Return(model.CartItem{}, repo.ErrNotFound)

	uc := usecase.NewCartUsecase(carts, items, new(CartMenuRepoMock))

	_, err := uc.SetQuantity(context.Background(), 1, 7, 3)
	assertHTTPStatus(t, err, http.StatusNotFound)
	assertErrContains(t, err, "Item not in cart")
}

// =====================
// Remove tests
// =====================

func TestCartUsecase_Remove_LastLine_DeletesCart(t *testing.T) {
	carts := new(CartRepoMock)
	items := new(CartItemRepoMock)

	carts.On("FindByUserID", mock.Anything, int64(1)).Return(model.Cart{ID: 100, UserID: 1}, nil)
	items.On("DeleteByCartAndMenuItem", mock.Anything, int64(100), int64(7)).Return(nil)
	items.On("CountByCartID", mock.Anything, int64(100)).Return(int64(0), nil)

	//空になったらカート本体も消える
	carts.On("DeleteByID", mock.Anything, int64(100)).Return(nil)

	uc := usecase.NewCartUsecase(carts, items, new(CartMenuRepoMock))

	out, err := uc.Remove(context.Background(), 1, 7)
	assert.NoError(t, err)
	assert.Nil(t, out)

	carts.AssertExpectations(t)
	items.AssertExpectations(t)
}

func TestCartUsecase_Remove_RemainingLines_KeepsCart(t *testing.T) {
	carts := new(CartRepoMock)
	items := new(CartItemRepoMock)
	menus := new(CartMenuRepoMock)

	carts.On("FindByUserID", mock.Anything, int64(1)).Return(model.Cart{ID: 100, UserID: 1}, nil)
	items.On("DeleteByCartAndMenuItem", mock.Anything, int64(100), int64(7)).Return(nil)
	items.On("CountByCartID", mock.Anything, int64(100)).Return(int64(1), nil)
	items.On("ListByCartID", mock.Anything, int64(100)).Return([]model.CartItem{
		{ID: 2, CartID: 100, MenuItemID: 8, Quantity: 1},
	}, nil)
	menus.On("FindByIDs", mock.Anything, []int64{8}).Return([]model.MenuItem{
		{ID: 8, Name: "Gyoza", Price: 5.0},
	}, nil)

	uc := usecase.NewCartUsecase(carts, items, menus)

	out, err := uc.Remove(context.Background(), 1, 7)
	assert.NoError(t, err)
	if assert.NotNil(t, out) {
		assert.Equal(t, 1, len(out.Items))
	}

	//カート本体のDeleteByIDは呼ばれない
	carts.AssertNotCalled(t, "DeleteByID", mock.Anything, mock.Anything)
}

func TestCartUsecase_Remove_NoCart_IsNoop(t *testing.T) {
	carts := new(CartRepoMock)
	carts.On("FindByUserID", mock.Anything, int64(1)).Return(model.Cart{}, repo.ErrNotFound)

	uc := usecase.NewCartUsecase(carts, new(CartItemRepoMock), new(CartMenuRepoMock))

	out, err := uc.Remove(context.Background(), 1, 7)
	assert.NoError(t, err)
	assert.Nil(t, out)
}

// =====================
// Clear tests
// =====================

func TestCartUsecase_Clear_Idempotent(t *testing.T) {
	carts := new(CartRepoMock)
	carts.On("DeleteByUserID", mock.Anything, int64(1)).Return(nil)

	uc := usecase.NewCartUsecase(carts, new(CartItemRepoMock), new(CartMenuRepoMock))

	assert.NoError(t, uc.Clear(context.Background(), 1))
	assert.NoError(t, uc.Clear(context.Background(), 1))

	carts.AssertNumberOfCalls(t, "DeleteByUserID", 2)
}

func TestCartUsecase_Clear_SomethingElseFails(t *testing.T) {
	carts := new(CartRepoMock)
	carts.On("DeleteByUserID", mock.Anything, int64(1)).Return(errors.New("db down"))

	uc := usecase.NewCartUsecase(carts, new(CartItemRepoMock), new(CartMenuRepoMock))

	err := uc.Clear(context.Background(), 1)
	assertHTTPStatus(t, err, http.StatusInternalServerError)
}
