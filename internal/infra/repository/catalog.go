package repository

import (
	"context"
	_ "embed"
	"encoding/json"
	"slices"

	"velour/internal/domain/model"
	repo "velour/internal/repository"

	"github.com/go-faster/errors"
)

//go:embed seed/products.json
var seedProductsJSON []byte

// SeedProducts は埋め込みの初期カタログを返す（毎回新しいスライス）。
func SeedProducts() ([]model.Product, error) {
	var products []model.Product
	if err := json.Unmarshal(seedProductsJSON, &products); err != nil {
		return nil, errors.Wrap(err, "unmarshal seed products")
	}
	return products, nil
}

// 初期カタログ + 管理画面の商品
type CatalogRepository struct {
	seed  []model.Product
	admin repo.AdminProductRepository
}

// DI
func NewCatalogRepository(seed []model.Product, admin repo.AdminProductRepository) *CatalogRepository {
	return &CatalogRepository{seed: seed, admin: admin}
}

// 管理画面の商品は同じIDの初期商品を置き換え、無ければ末尾に追加
func (r *CatalogRepository) List(ctx context.Context) ([]model.Product, error) {
	out := make([]model.Product, len(r.seed))
	for i, p := range r.seed {
		out[i] = cloneProduct(p)
	}

	if r.admin == nil {
		return out, nil
	}
	added, err := r.admin.List(ctx)
	if err != nil {
		return nil, err
	}

	index := make(map[string]int, len(out))
	for i, p := range out {
		index[p.ID] = i
	}
	for _, p := range added {
		if i, ok := index[p.ID]; ok {
			out[i] = p
			continue
		}
		index[p.ID] = len(out)
		out = append(out, p)
	}
	return out, nil
}

func (r *CatalogRepository) FindByID(ctx context.Context, id string) (model.Product, error) {
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

// スライスとポインタも複製する（呼び出し側の書き換えで初期カタログが変わらないように）
func cloneProduct(p model.Product) model.Product {
	if p.OriginalPrice != nil {
		op := *p.OriginalPrice
		p.OriginalPrice = &op
	}
	p.Images = slices.Clone(p.Images)
	p.Benefits = slices.Clone(p.Benefits)
	p.Ingredients = slices.Clone(p.Ingredients)
	p.Shades = slices.Clone(p.Shades)
	p.Tags = slices.Clone(p.Tags)
	return p
}
