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

// /api/contact のHTTP。投稿は公開、閲覧・管理はadminのみ。
type ContactHandler struct {
	uc *usecase.ContactUsecase
}

func NewContactHandler(uc *usecase.ContactUsecase) *ContactHandler {
	return &ContactHandler{uc: uc}
}

type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (h *ContactHandler) RegisterRoutes(e *echo.Echo, codec *token.Codec, userRepo repository.UserRepository) {
	g := e.Group("/api/contact")

	g.POST("", h.create)

	adminOnly := []echo.MiddlewareFunc{
		middleware.Protect(codec, userRepo),
		middleware.RestrictTo(model.RoleAdmin),
	}
	g.GET("", h.list, adminOnly...)
	g.GET("/:id", h.detail, adminOnly...)
	g.PATCH("/:id", h.markRead, adminOnly...)
	g.DELETE("/:id", h.delete, adminOnly...)
}

func (h *ContactHandler) create(c echo.Context) error {
	var req ContactRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid input")
	}

	msg, err := h.uc.Create(c.Request().Context(), usecase.ContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		return writeError(c, err)
	}
	return respondData(c, http.StatusCreated, msg)
}

func (h *ContactHandler) list(c echo.Context) error {
	msgs, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return respondList(c, http.StatusOK, len(msgs), msgs)
}

func (h *ContactHandler) detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "Invalid id")
	}

	msg, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return respondData(c, http.StatusOK, msg)
}

func (h *ContactHandler) markRead(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "Invalid id")
	}

	msg, err := h.uc.MarkRead(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return respondData(c, http.StatusOK, msg)
}

func (h *ContactHandler) delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "Invalid id")
	}

	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return respondData(c, http.StatusOK, nil)
}
