package handler_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type productDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Featured bool   `json:"featured"`
}

type productListDTO struct {
	Items []productDTO `json:"items"`
	Count int          `json:"count"`
	Total int          `json:"total"`
}

func TestProducts_List(t *testing.T) {
	app := newTestApp(t, "")

	rec := app.do(t, http.MethodGet, "/products", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	out := decode[productListDTO](t, rec)
	require.NotEmpty(t, out.Items)
	assert.Equal(t, out.Total, out.Count)
	assert.True(t, out.Items[0].Featured)

	rec = app.do(t, http.MethodGet, "/products?category=Lips&sort=price-low", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	out = decode[productListDTO](t, rec)
	require.NotEmpty(t, out.Items)
	for _, p := range out.Items {
		assert.Equal(t, "Lips", p.Category)
	}
	assert.Less(t, out.Count, out.Total)

	rec = app.do(t, http.MethodGet, "/products?search=mascara", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	out = decode[productListDTO](t, rec)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "3", out.Items[0].ID)
}

func TestProducts_ListInvalid(t *testing.T) {
	app := newTestApp(t, "")

	for _, q := range []string{"sort=cheap", "min_price=abc", "max_price=-1", "min_price=50&max_price=10"} {
		rec := app.do(t, http.MethodGet, "/products?"+q, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, q)
	}
}

func TestProducts_CategoriesAndDetail(t *testing.T) {
	app := newTestApp(t, "")

	rec := app.do(t, http.MethodGet, "/products/categories", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	cats := decode[[]string](t, rec)
	require.NotEmpty(t, cats)
	assert.Equal(t, "all", cats[0])

	rec = app.do(t, http.MethodGet, "/products/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Velvet Matte Lipstick", decode[productDTO](t, rec).Name)

	rec = app.do(t, http.MethodGet, "/products/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealthz(t *testing.T) {
	app := newTestApp(t, "")

	rec := app.do(t, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode[map[string]string](t, rec)["status"])
}
