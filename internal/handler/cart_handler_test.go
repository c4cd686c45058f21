package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"app/internal/domain/model"
	"app/internal/handler"
	repo "app/internal/repository"
	"app/internal/token"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// Repository mocks (CartHandler専用：名前衝突回避)
// =====================

type CartHandlerCartRepoMock struct{ mock.Mock }

func (m *CartHandlerCartRepoMock) FindByUserID(ctx context.Context, userID int64) (model.Cart, error) {
	args := m.Called(ctx, userID)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

func (m *CartHandlerCartRepoMock) GetOrCreateByUserID(ctx context.Context, userID int64) (model.Cart, error) {
	args := m.Called(ctx, userID)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

func (m *CartHandlerCartRepoMock) DeleteByID(ctx context.Context, cartID int64) error {
	args := m.Called(ctx, cartID)
	return args.Error(0)
}

func (m *CartHandlerCartRepoMock) DeleteByUserID(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type CartHandlerCartItemRepoMock struct{ mock.Mock }

func (m *CartHandlerCartItemRepoMock) ListByCartID(ctx context.Context, cartID int64) ([]model.CartItem, error) {
	args := m.Called(ctx, cartID)
	items, _ := args.Get(0).([]model.CartItem)
	return items, args.Error(1)
}

func (m *CartHandlerCartItemRepoMock) FindByCartAndMenuItem(ctx context.Context, cartID int64, menuItemID int64) (model.CartItem, error) {
	args := m.Called(ctx, cartID, menuItemID)
	it, _ := args.Get(0).(model.CartItem)
	return it, args.Error(1)
}

func (m *CartHandlerCartItemRepoMock) Create(ctx context.Context, item *model.CartItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *CartHandlerCartItemRepoMock) UpdateQuantity(ctx context.Context, cartItemID int64, quantity int64) error {
	args := m.Called(ctx, cartItemID, quantity)
	return args.Error(0)
}

func (m *CartHandlerCartItemRepoMock) DeleteByCartAndMenuItem(ctx context.Context, cartID int64, menuItemID int64) error {
	args := m.Called(ctx, cartID, menuItemID)
	return args.Error(0)
}

func (m *CartHandlerCartItemRepoMock) CountByCartID(ctx context.Context, cartID int64) (int64, error) {
	args := m.Called(ctx, cartID)
	return args.Get(0).(int64), args.Error(1)
}

type CartHandlerMenuRepoMock struct{ mock.Mock }

func (m *CartHandlerMenuRepoMock) List(ctx context.Context) ([]model.MenuItem, error) {
	panic("not used in CartHandler tests")
}

func (m *CartHandlerMenuRepoMock) ListByCategory(ctx context.Context, category string) ([]model.MenuItem, error) {
	panic("not used in CartHandler tests")
}

func (m *CartHandlerMenuRepoMock) FindByID(ctx context.Context, menuItemID int64) (model.MenuItem, error) {
	args := m.Called(ctx, menuItemID)
	mi, _ := args.Get(0).(model.MenuItem)
	return mi, args.Error(1)
}

func (m *CartHandlerMenuRepoMock) FindByIDs(ctx context.Context, menuItemIDs []int64) ([]model.MenuItem, error) {
	args := m.Called(ctx, menuItemIDs)
	items, _ := args.Get(0).([]model.MenuItem)
	return items, args.Error(1)
}

func (m *CartHandlerMenuRepoMock) FindByIDsIncludingDeleted(ctx context.Context, menuItemIDs []int64) ([]model.MenuItem, error) {
	panic("not used in CartHandler tests")
}

func (m *CartHandlerMenuRepoMock) Create(ctx context.Context, item model.MenuItem) (model.MenuItem, error) {
	panic("not used in CartHandler tests")
}

func (m *CartHandlerMenuRepoMock) Update(ctx context.Context, item model.MenuItem) error {
	panic("not used in CartHandler tests")
}

func (m *CartHandlerMenuRepoMock) Delete(ctx context.Context, menuItemID int64) error {
	panic("not used in CartHandler tests")
}

// =====================
// helper
// =====================

type cartServerMocks struct {
	carts *CartHandlerCartRepoMock
	items *CartHandlerCartItemRepoMock
	menus *CartHandlerMenuRepoMock
}

func newCartServer(t *testing.T) (*echo.Echo, string, cartServerMocks) {
	t.Helper()

	codec := token.NewCodec("test_secret", time.Hour)
	raw, err := codec.Issue(1, time.Now())
	assert.NoError(t, err)

	users := new(HandlerUserRepoMock)
	users.On("FindByID", mock.Anything, int64(1)).Return(&model.User{ID: 1, Role: model.RoleCustomer}, nil)

	mocks := cartServerMocks{
		carts: new(CartHandlerCartRepoMock),
		items: new(CartHandlerCartItemRepoMock),
		menus: new(CartHandlerMenuRepoMock),
	}

	uc := usecase.NewCartUsecase(mocks.carts, mocks.items, mocks.menus)
	h := handler.NewCartHandler(uc)

	e := echo.New()
	h.RegisterRoutes(e, codec, users)
	return e, raw, mocks
}

// =====================
// add tests
// =====================

func TestCartHandler_Add_ZeroQuantityRejected(t *testing.T) {
	e, raw, mocks := newCartServer(t)

	//明示的に0を送ると1に補正されず400で落ちる
	body := `{"menu_item_id":7,"quantity":0}`
	req := httptest.NewRequest(http.MethodPost, "/api/cart/add", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set("Authorization", "Bearer "+raw)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid input")

	//行は1件も作られない
	mocks.items.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	mocks.items.AssertNotCalled(t, "UpdateQuantity", mock.Anything, mock.Anything, mock.Anything)
	mocks.carts.AssertNotCalled(t, "GetOrCreateByUserID", mock.Anything, mock.Anything)
}

func TestCartHandler_Add_OmittedQuantityRejected(t *testing.T) {
	e, raw, mocks := newCartServer(t)

	body := `{"menu_item_id":7}`
	req := httptest.NewRequest(http.MethodPost, "/api/cart/add", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set("Authorization", "Bearer "+raw)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	mocks.items.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCartHandler_Add_NegativeQuantityRejected(t *testing.T) {
	e, raw, mocks := newCartServer(t)

	body := `{"menu_item_id":7,"quantity":-2}`
	req := httptest.NewRequest(http.MethodPost, "/api/cart/add", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set("Authorization", "Bearer "+raw)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	mocks.items.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCartHandler_Add_ValidQuantityPersists(t *testing.T) {
	e, raw, mocks := newCartServer(t)

	mocks.menus.On("FindByID", mock.Anything, int64(7)).Return(model.MenuItem{ID: 7, Name: "Ramen", Price: 10.0}, nil)
	mocks.carts.On("GetOrCreateByUserID", mock.Anything, int64(1)).Return(model.Cart{ID: 100, UserID: 1}, nil)
	mocks.items.On("FindByCartAndMenuItem", mock.Anything, int64(100), int64(7)).Return(model.CartItem{}, repo.ErrNotFound)
	mocks.items.On("Create", mock.Anything, mock.MatchedBy(func(it *model.CartItem) bool {
		return it.Quantity == 2
	})).Return(nil)
	mocks.items.On("ListByCartID", mock.Anything, int64(100)).Return([]model.CartItem{
		{ID: 1, CartID: 100, MenuItemID: 7, Quantity: 2},
	}, nil)
	mocks.menus.On("FindByIDs", mock.Anything, []int64{7}).Return([]model.MenuItem{
		{ID: 7, Name: "Ramen", Price: 10.0},
	}, nil)

	body := `{"menu_item_id":7,"quantity":2}`
	req := httptest.NewRequest(http.MethodPost, "/api/cart/add", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set("Authorization", "Bearer "+raw)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total":20`)

	mocks.items.AssertExpectations(t)
}

func TestCartHandler_Add_WithoutTokenUnauthorized(t *testing.T) {
	e, _, _ := newCartServer(t)

	body := `{"menu_item_id":7,"quantity":1}`
	req := httptest.NewRequest(http.MethodPost, "/api/cart/add", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
