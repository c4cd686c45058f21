package handler

import (
	"net/http"
	"strconv"
	"time"

	"app/internal/domain/model"
	"app/internal/middleware"
	"app/internal/repository"
	"app/internal/token"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /api/audit-logs のHTTP。adminのみ。
type AuditLogHandler struct {
	uc *usecase.AuditUsecase
}

func NewAuditLogHandler(uc *usecase.AuditUsecase) *AuditLogHandler {
	return &AuditLogHandler{uc: uc}
}

func (h *AuditLogHandler) RegisterRoutes(e *echo.Echo, codec *token.Codec, userRepo repository.UserRepository) {
	e.GET("/api/audit-logs", h.list,
		middleware.Protect(codec, userRepo),
		middleware.RestrictTo(model.RoleAdmin),
	)
}

func (h *AuditLogHandler) list(c echo.Context) error {
	in, err := parseAuditListQuery(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "Invalid input")
	}

	logs, err := h.uc.List(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return respondList(c, http.StatusOK, len(logs), logs)
}

// クエリパラメータを絞り込み条件に変換する。
// actor_id / action / resource_type / resource_id / from / to / limit / offset
func parseAuditListQuery(c echo.Context) (usecase.AuditListInput, error) {
	var in usecase.AuditListInput

	if v := c.QueryParam("actor_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return in, err
		}
		in.ActorUserID = &id
	}
	if v := c.QueryParam("action"); v != "" {
		in.Action = &v
	}
	if v := c.QueryParam("resource_type"); v != "" {
		in.ResourceType = &v
	}
	if v := c.QueryParam("resource_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return in, err
		}
		in.ResourceID = &id
	}
	if v := c.QueryParam("from"); v != "" {
		ts, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return in, err
		}
		in.CreatedFrom = &ts
	}
	if v := c.QueryParam("to"); v != "" {
		ts, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return in, err
		}
		in.CreatedTo = &ts
	}
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return in, err
		}
		in.Limit = n
	}
	if v := c.QueryParam("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return in, err
		}
		in.Offset = n
	}

	return in, nil
}
