package validator

import (
	"errors"
	"regexp"
	"strings"

	"velour/internal/domain/model"
	"velour/internal/usecase"
)

var (
	// 必須項目が空
	ErrRequired = errors.New("name, email and message are required")

	// email形式が不正
	ErrInvalidEmail = errors.New("invalid email")
)

var emailRe = regexp.MustCompile(`\S+@\S+\.\S+`)

type formValidator struct{}

// Usecaseは interface を依存注入
func NewFormValidator() usecase.FormValidator {
	return &formValidator{}
}

// ニュースレター登録の入力を検証
func (v *formValidator) ValidateNewsletter(in model.NewsletterSignup) error {
	if !IsEmailLike(strings.TrimSpace(in.Email)) {
		return ErrInvalidEmail
	}
	return nil
}

// お問い合わせの入力を検証
func (v *formValidator) ValidateContact(in model.ContactMessage) error {
	// 必須チェック
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Email) == "" || strings.TrimSpace(in.Message) == "" {
		return ErrRequired
	}

	// email形式
	if !IsEmailLike(strings.TrimSpace(in.Email)) {
		return ErrInvalidEmail
	}
	return nil
}

// 簡易メール形式をチェック
func IsEmailLike(s string) bool {
	return emailRe.MatchString(s)
}
