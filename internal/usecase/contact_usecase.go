package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"velour/internal/domain/model"
	repo "velour/internal/repository"

	"go.uber.org/zap"
)

// フォーム入力の検証（validatorパッケージが実装）
type FormValidator interface {
	ValidateNewsletter(in model.NewsletterSignup) error
	ValidateContact(in model.ContactMessage) error
}

// ニュースレター登録とお問い合わせを外部サービスへ送る
type ContactUsecase struct {
	relay     repo.FormRelay
	validator FormValidator
	logger    *zap.Logger
}

// DI
func NewContactUsecase(relay repo.FormRelay, validator FormValidator, logger *zap.Logger) *ContactUsecase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContactUsecase{relay: relay, validator: validator, logger: logger}
}

type ContactInput struct {
	Name     string
	Email    string
	Subject  string
	Category string
	Message  string
}

func (u *ContactUsecase) Subscribe(ctx context.Context, email string) error {
	in := model.NewsletterSignup{Email: strings.TrimSpace(email)}
	if err := u.validator.ValidateNewsletter(in); err != nil {
		return NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return u.send(ctx, in, "Could not subscribe at this time.")
}

func (u *ContactUsecase) SendMessage(ctx context.Context, in ContactInput) error {
	email := strings.TrimSpace(in.Email)
	msg := model.ContactMessage{
		Name:     strings.TrimSpace(in.Name),
		ReplyTo:  email,
		Email:    email,
		Subject:  in.Subject,
		Category: in.Category,
		Message:  in.Message,
	}
	if err := u.validator.ValidateContact(msg); err != nil {
		return NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return u.send(ctx, msg, "Something went wrong. Please try again later.")
}

func (u *ContactUsecase) send(ctx context.Context, payload any, fallback string) error {
	err := u.relay.Send(ctx, payload)
	if err == nil {
		return nil
	}

	if errors.Is(err, repo.ErrRelayNotConfigured) {
		return NewHTTPError(http.StatusServiceUnavailable, "form relay not configured")
	}

	var re *repo.RelayError
	if errors.As(err, &re) {
		u.logger.Warn("form relay rejected", zap.Int("status", re.Status), zap.String("message", re.Message))
		if re.Message != "" {
			return NewHTTPError(http.StatusBadGateway, re.Message)
		}
		return NewHTTPError(http.StatusBadGateway, fallback)
	}

	u.logger.Error("form relay failed", zap.Error(err))
	return NewHTTPError(http.StatusBadGateway, fallback)
}
