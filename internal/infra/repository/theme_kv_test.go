package repository_test

import (
	"context"
	"testing"

	"velour/internal/domain/model"
	infraRepo "velour/internal/infra/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThemeKVRepository(t *testing.T) {
	ctx := context.Background()
	kv := infraRepo.NewMemoryKVStore()
	r := infraRepo.NewThemeKVRepository(kv, "")

	got, err := r.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, model.DefaultTheme, got)

	require.NoError(t, r.Set(ctx, "s1", model.ThemeDark))
	got, err = r.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, model.ThemeDark, got)

	raw, err := kv.Get(ctx, infraRepo.DefaultThemeKey+":s1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"theme":"dark"}`, string(raw))

	//他のセッションは既定値
	got, err = r.Get(ctx, "s2")
	require.NoError(t, err)
	assert.Equal(t, model.DefaultTheme, got)
}

func TestThemeKVRepository_BadDataFallsBack(t *testing.T) {
	ctx := context.Background()
	kv := infraRepo.NewMemoryKVStore()
	r := infraRepo.NewThemeKVRepository(kv, "theme")

	for _, raw := range []string{"{", `{"theme":"neon"}`, `[]`} {
		require.NoError(t, kv.Set(ctx, "theme:s1", []byte(raw)))
		got, err := r.Get(ctx, "s1")
		require.NoError(t, err)
		assert.Equal(t, model.DefaultTheme, got, raw)
	}
}
