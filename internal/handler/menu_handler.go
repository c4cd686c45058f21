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

// /api/menu のHTTP。閲覧は公開、変更はadminのみ。
type MenuHandler struct {
	uc *usecase.MenuUsecase
}

// DI
func NewMenuHandler(uc *usecase.MenuUsecase) *MenuHandler {
	return &MenuHandler{uc: uc}
}

type MenuItemRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	ImageURL    string  `json:"image_url"`
	IsFeatured  bool    `json:"is_featured"`
}

type MenuItemUpdateRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Category    *string  `json:"category"`
	ImageURL    *string  `json:"image_url"`
	IsFeatured  *bool    `json:"is_featured"`
}

func (h *MenuHandler) RegisterRoutes(e *echo.Echo, codec *token.Codec, userRepo repository.UserRepository) {
	g := e.Group("/api/menu")

	//公開
	g.GET("", h.list)
	g.GET("/category/:category", h.listByCategory)
	g.GET("/:id", h.detail)

	//admin
	adminOnly := []echo.MiddlewareFunc{
		middleware.Protect(codec, userRepo),
		middleware.RestrictTo(model.RoleAdmin),
	}
	g.POST("", h.create, adminOnly...)
	g.PATCH("/:id", h.update, adminOnly...)
	g.DELETE("/:id", h.delete, adminOnly...)
}

func (h *MenuHandler) list(c echo.Context) error {
	items, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return respondList(c, http.StatusOK, len(items), items)
}

func (h *MenuHandler) listByCategory(c echo.Context) error {
	items, err := h.uc.ListByCategory(c.Request().Context(), c.Param("category"))
	if err != nil {
		return writeError(c, err)
	}
	return respondList(c, http.StatusOK, len(items), items)
}

func (h *MenuHandler) detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "Invalid id")
	}

	item, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return respondData(c, http.StatusOK, item)
}

func (h *MenuHandler) create(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "Please log in to access this resource")
	}

	var req MenuItemRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid input")
	}

	item, err := h.uc.Create(c.Request().Context(), user.ID, usecase.MenuItemInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		IsFeatured:  req.IsFeatured,
	})
	if err != nil {
		return writeError(c, err)
	}
	return respondData(c, http.StatusCreated, item)
}

func (h *MenuHandler) update(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "Please log in to access this resource")
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "Invalid id")
	}

	var req MenuItemUpdateRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid input")
	}

	item, err := h.uc.Update(c.Request().Context(), user.ID, id, usecase.MenuItemUpdateInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		IsFeatured:  req.IsFeatured,
	})
	if err != nil {
		return writeError(c, err)
	}
	return respondData(c, http.StatusOK, item)
}

func (h *MenuHandler) delete(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "Please log in to access this resource")
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "Invalid id")
	}

	if err := h.uc.Delete(c.Request().Context(), user.ID, id); err != nil {
		return writeError(c, err)
	}
	return respondData(c, http.StatusOK, nil)
}
