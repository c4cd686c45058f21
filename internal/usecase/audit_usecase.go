package usecase

import (
	"context"
	"net/http"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// 一覧の既定件数と上限
const (
	auditListDefaultLimit = 50
	auditListMaxLimit     = 200
)

// 監査ログの閲覧（admin用）。
type AuditUsecase struct {
	auditRepo repo.AuditLogRepository
}

func NewAuditUsecase(auditRepo repo.AuditLogRepository) *AuditUsecase {
	return &AuditUsecase{auditRepo: auditRepo}
}

// GET /api/audit-logs の入力DTO。nilのフィールドは絞り込まない。
type AuditListInput struct {
	ActorUserID  *int64
	Action       *string
	ResourceType *string
	ResourceID   *int64
	CreatedFrom  *time.Time
	CreatedTo    *time.Time
	Limit        int
	Offset       int
}

// List は条件付きの監査ログ一覧（新しい順）。
func (u *AuditUsecase) List(ctx context.Context, in AuditListInput) ([]model.AuditLog, error) {
	filter := repo.AuditLogFilter{
		ActorUserID: in.ActorUserID,
		ResourceID:  in.ResourceID,
		CreatedFrom: in.CreatedFrom,
		CreatedTo:   in.CreatedTo,
		Limit:       in.Limit,
		Offset:      in.Offset,
	}

	if in.Action != nil {
		action := model.AuditAction(*in.Action)
		if !action.Valid() {
			return nil, NewHTTPError(http.StatusBadRequest, "Invalid action")
		}
		filter.Action = &action
	}

	if in.ResourceType != nil {
		rt := model.AuditResourceType(*in.ResourceType)
		if !rt.Valid() {
			return nil, NewHTTPError(http.StatusBadRequest, "Invalid resource type")
		}
		filter.ResourceType = &rt
	}

	if filter.Limit <= 0 {
		filter.Limit = auditListDefaultLimit
	}
	if filter.Limit > auditListMaxLimit {
		filter.Limit = auditListMaxLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	logs, err := u.auditRepo.List(ctx, filter)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "Server Error")
	}
	return logs, nil
}
