package repository

import (
	"context"
	"encoding/json"
	"sync"

	"velour/internal/domain/model"
	repo "velour/internal/repository"

	"github.com/go-faster/errors"
)

// DefaultAdminProductsKey は管理画面の商品一覧の保存先
const DefaultAdminProductsKey = "admin-products"

// 管理画面の商品一覧をKVに配列まるごと保存する
// 読んでから書くまでの間はmuで直列にする（別プロセスとの競合はTxManagerで防ぐ）
type AdminProductKVRepository struct {
	mu  sync.Mutex
	kv  repo.KeyValueStore
	key string
}

// DI
func NewAdminProductKVRepository(kv repo.KeyValueStore, key string) *AdminProductKVRepository {
	if key == "" {
		key = DefaultAdminProductsKey
	}
	return &AdminProductKVRepository{kv: kv, key: key}
}

// 一覧（未保存なら空）
func (r *AdminProductKVRepository) List(ctx context.Context) ([]model.Product, error) {
	raw, err := r.kv.Get(ctx, r.key)
	if errors.Is(err, repo.ErrNotFound) {
		return []model.Product{}, nil
	}
	if err != nil {
		return nil, err
	}

	var products []model.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, errors.Wrap(err, "unmarshal admin products")
	}
	if products == nil {
		products = []model.Product{}
	}
	return products, nil
}

func (r *AdminProductKVRepository) FindByID(ctx context.Context, id string) (model.Product, error) {
	products, err := r.List(ctx)
	if err != nil {
		return model.Product{}, err
	}
	for _, p := range products {
		if p.ID == id {
			return p, nil
		}
	}
	return model.Product{}, repo.ErrNotFound
}

// 同じIDは置き換え、無ければ追加
func (r *AdminProductKVRepository) Upsert(ctx context.Context, p model.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	products, err := r.List(ctx)
	if err != nil {
		return err
	}

	replaced := false
	for i := range products {
		if products[i].ID == p.ID {
			products[i] = p
			replaced = true
			break
		}
	}
	if !replaced {
		products = append(products, p)
	}
	return r.save(ctx, products)
}

func (r *AdminProductKVRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	products, err := r.List(ctx)
	if err != nil {
		return err
	}

	kept := make([]model.Product, 0, len(products))
	for _, p := range products {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(products) {
		return repo.ErrNotFound
	}
	return r.save(ctx, kept)
}

func (r *AdminProductKVRepository) save(ctx context.Context, products []model.Product) error {
	raw, err := json.Marshal(products)
	if err != nil {
		return errors.Wrap(err, "marshal admin products")
	}
	return r.kv.Set(ctx, r.key, raw)
}
