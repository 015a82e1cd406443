package repository

import (
	"context"
	"errors"
	"fmt"
)

// 送信先URLが未設定
var ErrRelayNotConfigured = errors.New("form relay not configured")

// 送信先が2xx以外を返した
type RelayError struct {
	Status  int
	Message string
}

func (e *RelayError) Error() string {
	return fmt.Sprintf("relay %d: %s", e.Status, e.Message)
}

// フォーム送信サービス（ニュースレター・お問い合わせ）への送信。
type FormRelay interface {
	Send(ctx context.Context, payload any) error
}
