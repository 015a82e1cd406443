package repository

import (
	"context"
	"errors"

	"velour/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// カタログ（静的データ + 管理画面の商品）の読み取りだけを約束。
type ProductRepository interface {
	List(ctx context.Context) ([]model.Product, error)
	FindByID(ctx context.Context, id string) (model.Product, error)
}

// 管理画面で登録した商品の永続化。
type AdminProductRepository interface {
	List(ctx context.Context) ([]model.Product, error)
	FindByID(ctx context.Context, id string) (model.Product, error)
	// 同じIDは置き換え、無ければ末尾に追加
	Upsert(ctx context.Context, p model.Product) error
	Delete(ctx context.Context, id string) error
}
