package usecase

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"strings"

	"velour/internal/domain/model"
	repo "velour/internal/repository"

	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const (
	SortFeatured  = "featured"
	SortName      = "name"
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
	SortRating    = "rating"

	CategoryAll = "all"
)

type ProductUsecase struct {
	productRepo repo.ProductRepository
}

// DI
func NewProductUsecase(productRepo repo.ProductRepository) *ProductUsecase {
	return &ProductUsecase{productRepo: productRepo}
}

// GET /productsの入力DTO
type ListProductsInput struct {
	Search   string
	Category string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	Sort     string
}

type ProductListOutput struct {
	Items []model.Product `json:"items"`
	Count int             `json:"count"`
	Total int             `json:"total"`
}

func (u *ProductUsecase) ListProducts(ctx context.Context, in ListProductsInput) (ProductListOutput, error) {
	if len(in.Search) > 100 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "search too long")
	}
	if in.MinPrice != nil && in.MinPrice.IsNegative() {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "min_price must be >= 0")
	}
	if in.MaxPrice != nil && in.MaxPrice.IsNegative() {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "max_price must be >= 0")
	}
	if in.MinPrice != nil && in.MaxPrice != nil && in.MinPrice.GreaterThan(*in.MaxPrice) {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "min_price must be <= max_price")
	}
	sortKey := in.Sort
	if sortKey == "" {
		sortKey = SortFeatured
	}
	switch sortKey {
	case SortFeatured, SortName, SortPriceLow, SortPriceHigh, SortRating:
	default:
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid sort")
	}

	all, err := u.productRepo.List(ctx)
	if err != nil {
		return ProductListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	q := strings.ToLower(strings.TrimSpace(in.Search))
	category := strings.TrimSpace(in.Category)

	items := make([]model.Product, 0, len(all))
	for _, p := range all {
		if q != "" && !matchesSearch(p, q) {
			continue
		}
		if category != "" && category != CategoryAll && p.Category != category {
			continue
		}
		if in.MinPrice != nil && p.Price.LessThan(*in.MinPrice) {
			continue
		}
		if in.MaxPrice != nil && p.Price.GreaterThan(*in.MaxPrice) {
			continue
		}
		items = append(items, p)
	}

	sortProducts(items, sortKey)

	return ProductListOutput{
		Items: items,
		Count: len(items),
		Total: len(all),
	}, nil
}

// 名前・カテゴリ・タグの部分一致（大文字小文字は無視）
func matchesSearch(p model.Product, q string) bool {
	if strings.Contains(strings.ToLower(p.Name), q) || strings.Contains(strings.ToLower(p.Category), q) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

//sort
func sortProducts(items []model.Product, key string) {
	switch key {
	case SortName:
		col := collate.New(language.English, collate.IgnoreCase)
		sort.SliceStable(items, func(i, j int) bool {
			return col.CompareString(items[i].Name, items[j].Name) < 0
		})
	case SortPriceLow:
		sort.SliceStable(items, func(i, j int) bool { return items[i].Price.LessThan(items[j].Price) })
	case SortPriceHigh:
		sort.SliceStable(items, func(i, j int) bool { return items[i].Price.GreaterThan(items[j].Price) })
	case SortRating:
		sort.SliceStable(items, func(i, j int) bool { return items[i].Rating > items[j].Rating })
	default:
		//おすすめを先頭、その中は評価順
		sort.SliceStable(items, func(i, j int) bool {
			if items[i].Featured != items[j].Featured {
				return items[i].Featured
			}
			return items[i].Rating > items[j].Rating
		})
	}
}

// 先頭は "all"、以降は登場順で重複なし
func (u *ProductUsecase) Categories(ctx context.Context) ([]string, error) {
	all, err := u.productRepo.List(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out := []string{CategoryAll}
	seen := map[string]bool{}
	for _, p := range all {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		out = append(out, p.Category)
	}
	return out, nil
}

func (u *ProductUsecase) GetProduct(ctx context.Context, id string) (model.Product, error) {
	if strings.TrimSpace(id) == "" {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	p, err := u.productRepo.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}
