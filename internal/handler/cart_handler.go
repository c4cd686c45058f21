package handler

import (
	"net/http"
	"strconv"

	"app/internal/middleware"
	"app/internal/repository"
	"app/internal/token"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /api/cart のHTTP。全エンドポイントがログイン必須。
// カートが存在しないときは cart:null を返す。
type CartHandler struct {
	uc *usecase.CartUsecase
}

func NewCartHandler(uc *usecase.CartUsecase) *CartHandler {
	return &CartHandler{uc: uc}
}

type CartAddRequest struct {
	MenuItemID int64 `json:"menu_item_id"`
	Quantity   int64 `json:"quantity"`
}

type CartQuantityRequest struct {
	Quantity int64 `json:"quantity"`
}

func (h *CartHandler) RegisterRoutes(e *echo.Echo, codec *token.Codec, userRepo repository.UserRepository) {
	g := e.Group("/api/cart", middleware.Protect(codec, userRepo))

	g.GET("", h.get)
	g.POST("/add", h.add)
	g.PUT("/update/:id", h.update)
	g.DELETE("/remove/:id", h.remove)
	g.DELETE("/clear", h.clear)
}

func (h *CartHandler) get(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "Please log in to access this resource")
	}

	cart, err := h.uc.Get(c.Request().Context(), user.ID)
	if err != nil {
		return writeError(c, err)
	}
	return respondCart(c, http.StatusOK, cart)
}

func (h *CartHandler) add(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "Please log in to access this resource")
	}

	var req CartAddRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid input")
	}

	//数量の検証はusecase側（1未満は400）
	cart, err := h.uc.Add(c.Request().Context(), user.ID, req.MenuItemID, req.Quantity)
	if err != nil {
		return writeError(c, err)
	}
	return respondCart(c, http.StatusOK, cart)
}

func (h *CartHandler) update(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "Please log in to access this resource")
	}

	menuItemID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "Invalid id")
	}

	var req CartQuantityRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid input")
	}

	cart, err := h.uc.SetQuantity(c.Request().Context(), user.ID, menuItemID, req.Quantity)
	if err != nil {
		return writeError(c, err)
	}
	return respondCart(c, http.StatusOK, cart)
}

func (h *CartHandler) remove(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "Please log in to access this resource")
	}

	menuItemID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "Invalid id")
	}

	cart, err := h.uc.Remove(c.Request().Context(), user.ID, menuItemID)
	if err != nil {
		return writeError(c, err)
	}
	return respondCart(c, http.StatusOK, cart)
}

func (h *CartHandler) clear(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "Please log in to access this resource")
	}

	if err := h.uc.Clear(c.Request().Context(), user.ID); err != nil {
		return writeError(c, err)
	}
	return respondCart(c, http.StatusOK, nil)
}

// cart:null をそのままJSONに出したいので専用ヘルパ。
func respondCart(c echo.Context, status int, cart *usecase.CartResponse) error {
	return c.JSON(status, echo.Map{
		"success": true,
		"cart":    cart,
	})
}
