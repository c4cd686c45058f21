package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"app/internal/domain/model"
	"app/internal/infra/mail"
	repo "app/internal/repository"
)

type ContactUsecase struct {
	messages   repo.ContactMessageRepository
	mailer     mail.Sender
	log        *slog.Logger
	adminEmail string
}

func NewContactUsecase(
	messages repo.ContactMessageRepository,
	mailer mail.Sender,
	log *slog.Logger,
	adminEmail string,
) *ContactUsecase {
	return &ContactUsecase{
		messages:   messages,
		mailer:     mailer,
		log:        log,
		adminEmail: adminEmail,
	}
}

type ContactInput struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// Create はお問い合わせを保存して管理者へbest-effortでメール通知する。
func (u *ContactUsecase) Create(ctx context.Context, in ContactInput) (model.ContactMessage, error) {
	if strings.TrimSpace(in.Name) == "" ||
		strings.TrimSpace(in.Email) == "" ||
		strings.TrimSpace(in.Subject) == "" ||
		strings.TrimSpace(in.Message) == "" {
		return model.ContactMessage{}, NewHTTPError(http.StatusBadRequest, "Invalid input")
	}

	msg := &model.ContactMessage{
		Name:    in.Name,
		Email:   in.Email,
		Subject: in.Subject,
		Message: in.Message,
	}

	if err := u.messages.Create(ctx, msg); err != nil {
		return model.ContactMessage{}, NewHTTPError(http.StatusInternalServerError, "Server Error")
	}

	//通知失敗でリクエストは失敗させない
	body := fmt.Sprintf(
		"New contact message received!\n\nFrom: %s <%s>\nSubject: %s\n\nMessage:\n%s",
		in.Name, in.Email, in.Subject, in.Message,
	)
	subject := fmt.Sprintf("New Contact Message: %s", in.Subject)
	if err := u.mailer.Send(u.adminEmail, subject, body); err != nil {
		u.log.Warn("contact notification mail failed", "message_id", msg.ID, "error", err)
	}

	return *msg, nil
}

// List は全件一覧（新しい順、admin用）。
func (u *ContactUsecase) List(ctx context.Context) ([]model.ContactMessage, error) {
	msgs, err := u.messages.List(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "Server Error")
	}
	return msgs, nil
}

func (u *ContactUsecase) Get(ctx context.Context, messageID int64) (model.ContactMessage, error) {
	msg, err := u.messages.FindByID(ctx, messageID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.ContactMessage{}, NewHTTPError(http.StatusNotFound, "Message not found")
	}
	if err != nil {
		return model.ContactMessage{}, NewHTTPError(http.StatusInternalServerError, "Server Error")
	}
	return msg, nil
}

func (u *ContactUsecase) MarkRead(ctx context.Context, messageID int64) (model.ContactMessage, error) {
	msg, err := u.messages.MarkRead(ctx, messageID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.ContactMessage{}, NewHTTPError(http.StatusNotFound, "Message not found")
	}
	if err != nil {
		return model.ContactMessage{}, NewHTTPError(http.StatusInternalServerError, "Server Error")
	}
	return msg, nil
}

func (u *ContactUsecase) Delete(ctx context.Context, messageID int64) error {
	err := u.messages.DeleteByID(ctx, messageID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "Message not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "Server Error")
	}
	return nil
}
