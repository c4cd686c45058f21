package handler

import (
	"net/http"
	"strconv"

	"app/internal/domain/model"
	"app/internal/middleware"
	"app/internal/repository"
	"app/internal/token"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /api/orders のHTTP。一覧・ステータス変更はadminのみ。
type OrderHandler struct {
	uc *usecase.OrderUsecase
}

func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

type OrderLineRequest struct {
	MenuItemID int64 `json:"menu_item_id"`
	Quantity   int64 `json:"quantity"`
}

type PlaceOrderRequest struct {
	Items           []OrderLineRequest `json:"items"`
	DeliveryAddress string             `json:"delivery_address"`
	Phone           string             `json:"phone"`
	PaymentMethod   string             `json:"payment_method"`
}

type OrderStatusRequest struct {
	Status string `json:"status"`
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo, codec *token.Codec, userRepo repository.UserRepository) {
	g := e.Group("/api/orders", middleware.Protect(codec, userRepo))

	g.POST("", h.place)
	g.GET("/my-orders", h.listMine)
	g.GET("/:id", h.detail)

	g.GET("", h.listAll, middleware.RestrictTo(model.RoleAdmin))
	g.PATCH("/:id/status", h.updateStatus, middleware.RestrictTo(model.RoleAdmin))
}

func (h *OrderHandler) place(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "Please log in to access this resource")
	}

	var req PlaceOrderRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid input")
	}

	in := usecase.PlaceOrderInput{
		DeliveryAddress: req.DeliveryAddress,
		Phone:           req.Phone,
		PaymentMethod:   req.PaymentMethod,
	}
	for _, line := range req.Items {
		in.Items = append(in.Items, usecase.OrderLineInput{
			MenuItemID: line.MenuItemID,
			Quantity:   line.Quantity,
		})
	}

	order, err := h.uc.Place(c.Request().Context(), user.ID, in)
	if err != nil {
		return writeError(c, err)
	}
	return respondData(c, http.StatusCreated, order)
}

func (h *OrderHandler) listMine(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "Please log in to access this resource")
	}

	orders, err := h.uc.ListMine(c.Request().Context(), user.ID)
	if err != nil {
		return writeError(c, err)
	}
	return respondList(c, http.StatusOK, len(orders), orders)
}

func (h *OrderHandler) detail(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "Please log in to access this resource")
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "Invalid id")
	}

	order, err := h.uc.Get(c.Request().Context(), user, id)
	if err != nil {
		return writeError(c, err)
	}
	return respondData(c, http.StatusOK, order)
}

func (h *OrderHandler) listAll(c echo.Context) error {
	orders, err := h.uc.ListAll(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return respondList(c, http.StatusOK, len(orders), orders)
}

func (h *OrderHandler) updateStatus(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "Please log in to access this resource")
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "Invalid id")
	}

	var req OrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid input")
	}

	order, err := h.uc.UpdateStatus(c.Request().Context(), user.ID, id, req.Status)
	if err != nil {
		return writeError(c, err)
	}
	return respondData(c, http.StatusOK, order)
}
