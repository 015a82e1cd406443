package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"velour/internal/domain/model"
	repo "velour/internal/repository"
	"velour/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func catalog() []model.Product {
	return []model.Product{
		{ID: "a", Name: "zinc Primer", Category: "Face", Price: price("30"), Rating: 4.1, Tags: []string{"base"}},
		{ID: "b", Name: "Éclat Lipstick", Category: "Lips", Price: price("28"), Rating: 4.8, Featured: true, Tags: []string{"matte"}},
		{ID: "c", Name: "Aqua Serum", Category: "Skincare", Price: price("68"), Rating: 4.5, Tags: []string{"hydrating"}},
		{ID: "d", Name: "Blush Duo", Category: "Face", Price: price("19.5"), Rating: 4.9, Featured: true},
		{ID: "e", Name: "Brow Gel", Category: "Eyes", Price: price("28"), Rating: 4.5},
	}
}

func ids(items []model.Product) []string {
	out := make([]string, 0, len(items))
	for _, p := range items {
		out = append(out, p.ID)
	}
	return out
}

func newProductUsecase() (*usecase.ProductUsecase, *ProductRepoMock) {
	pRepo := new(ProductRepoMock)
	pRepo.On("List", mock.Anything).Return(catalog(), nil)
	return usecase.NewProductUsecase(pRepo), pRepo
}

func TestProductUsecase_ListProducts_Sorts(t *testing.T) {
	ctx := context.Background()
	uc, _ := newProductUsecase()

	cases := map[string][]string{
		"":           {"d", "b", "c", "e", "a"},
		"featured":   {"d", "b", "c", "e", "a"},
		"name":       {"c", "d", "e", "b", "a"},
		"price-low":  {"d", "b", "e", "a", "c"},
		"price-high": {"c", "a", "b", "e", "d"},
		"rating":     {"d", "b", "c", "e", "a"},
	}
	for sortKey, want := range cases {
		t.Run("sort="+sortKey, func(t *testing.T) {
			out, err := uc.ListProducts(ctx, usecase.ListProductsInput{Sort: sortKey})
			require.NoError(t, err)
			assert.Equal(t, want, ids(out.Items))
			assert.Equal(t, 5, out.Count)
			assert.Equal(t, 5, out.Total)
		})
	}
}

func TestProductUsecase_ListProducts_Filters(t *testing.T) {
	ctx := context.Background()
	uc, _ := newProductUsecase()

	//名前・カテゴリ・タグ
	out, err := uc.ListProducts(ctx, usecase.ListProductsInput{Search: "MATTE", Sort: "name"})
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, ids(out.Items))

	out, err = uc.ListProducts(ctx, usecase.ListProductsInput{Search: "face", Sort: "name"})
	require.NoError(t, err)
	assert.Equal(t, []string{"d", "a"}, ids(out.Items))
	assert.Equal(t, 2, out.Count)
	assert.Equal(t, 5, out.Total)

	out, err = uc.ListProducts(ctx, usecase.ListProductsInput{Category: "Face", Sort: "price-low"})
	require.NoError(t, err)
	assert.Equal(t, []string{"d", "a"}, ids(out.Items))

	out, err = uc.ListProducts(ctx, usecase.ListProductsInput{Category: "all"})
	require.NoError(t, err)
	assert.Len(t, out.Items, 5)

	//境界は含む
	out, err = uc.ListProducts(ctx, usecase.ListProductsInput{MinPrice: ptr(price("28")), MaxPrice: ptr(price("30")), Sort: "price-low"})
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "e", "a"}, ids(out.Items))

	out, err = uc.ListProducts(ctx, usecase.ListProductsInput{Search: "nothing-matches"})
	require.NoError(t, err)
	assert.NotNil(t, out.Items)
	assert.Empty(t, out.Items)
}

func TestProductUsecase_ListProducts_InvalidInput(t *testing.T) {
	ctx := context.Background()
	uc, _ := newProductUsecase()

	_, err := uc.ListProducts(ctx, usecase.ListProductsInput{Sort: "cheapest"})
	assertErrContains(t, err, "invalid sort")

	_, err = uc.ListProducts(ctx, usecase.ListProductsInput{MinPrice: ptr(price("-1"))})
	assertErrContains(t, err, "min_price must be >= 0")

	_, err = uc.ListProducts(ctx, usecase.ListProductsInput{MaxPrice: ptr(price("-1"))})
	assertErrContains(t, err, "max_price must be >= 0")

	_, err = uc.ListProducts(ctx, usecase.ListProductsInput{MinPrice: ptr(price("50")), MaxPrice: ptr(price("10"))})
	assertStatus(t, err, http.StatusBadRequest)
}

func TestProductUsecase_ListProducts_RepoError(t *testing.T) {
	pRepo := new(ProductRepoMock)
	pRepo.On("List", mock.Anything).Return(nil, errors.New("boom"))

	_, err := usecase.NewProductUsecase(pRepo).ListProducts(context.Background(), usecase.ListProductsInput{})
	assertStatus(t, err, http.StatusInternalServerError)
}

func TestProductUsecase_Categories(t *testing.T) {
	uc, _ := newProductUsecase()

	cats, err := uc.Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"all", "Face", "Lips", "Skincare", "Eyes"}, cats)
}

func TestProductUsecase_GetProduct(t *testing.T) {
	ctx := context.Background()
	pRepo := new(ProductRepoMock)
	pRepo.On("FindByID", mock.Anything, "b").Return(catalog()[1], nil)
	pRepo.On("FindByID", mock.Anything, "zz").Return(model.Product{}, repo.ErrNotFound)
	uc := usecase.NewProductUsecase(pRepo)

	p, err := uc.GetProduct(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, "Éclat Lipstick", p.Name)

	_, err = uc.GetProduct(ctx, "zz")
	assertStatus(t, err, http.StatusNotFound)

	_, err = uc.GetProduct(ctx, " ")
	assertStatus(t, err, http.StatusBadRequest)
}
