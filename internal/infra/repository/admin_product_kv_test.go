package repository_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"velour/internal/domain/model"
	infraRepo "velour/internal/infra/repository"
	repo "velour/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminProductKVRepository(t *testing.T) {
	ctx := context.Background()
	kv := infraRepo.NewMemoryKVStore()
	r := infraRepo.NewAdminProductKVRepository(kv, "")

	list, err := r.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)

	require.NoError(t, r.Upsert(ctx, model.Product{ID: "a", Name: "A", Price: decimal.NewFromInt(1)}))
	require.NoError(t, r.Upsert(ctx, model.Product{ID: "b", Name: "B", Price: decimal.NewFromInt(2)}))
	require.NoError(t, r.Upsert(ctx, model.Product{ID: "a", Name: "A2", Price: decimal.NewFromInt(3)}))

	list, err = r.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "A2", list[0].Name)
	assert.Equal(t, "B", list[1].Name)

	//配列まるごと1つのkeyに入る
	raw, err := kv.Get(ctx, infraRepo.DefaultAdminProductsKey)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"id":"a"`)

	p, err := r.FindByID(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, "B", p.Name)

	require.NoError(t, r.Delete(ctx, "a"))
	assert.ErrorIs(t, r.Delete(ctx, "a"), repo.ErrNotFound)
	_, err = r.FindByID(ctx, "a")
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestAdminProductKVRepository_Corrupt(t *testing.T) {
	ctx := context.Background()
	kv := infraRepo.NewMemoryKVStore()
	require.NoError(t, kv.Set(ctx, "admin", []byte("not json")))

	_, err := infraRepo.NewAdminProductKVRepository(kv, "admin").List(ctx)
	assert.Error(t, err)
}

// 読み書きに時間がかかるKV
type slowKV struct {
	*infraRepo.MemoryKVStore
	delay time.Duration
}

func (s *slowKV) Get(ctx context.Context, key string) ([]byte, error) {
	time.Sleep(s.delay)
	return s.MemoryKVStore.Get(ctx, key)
}

func (s *slowKV) Set(ctx context.Context, key string, value []byte) error {
	time.Sleep(s.delay)
	return s.MemoryKVStore.Set(ctx, key, value)
}

func TestAdminProductKVRepository_ConcurrentUpserts(t *testing.T) {
	ctx := context.Background()
	r := infraRepo.NewAdminProductKVRepository(&slowKV{MemoryKVStore: infraRepo.NewMemoryKVStore(), delay: time.Millisecond}, "")

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, r.Upsert(ctx, model.Product{ID: fmt.Sprintf("p%d", i), Name: "P", Price: decimal.NewFromInt(1)}))
		}(i)
	}
	wg.Wait()

	list, err := r.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, n)
}
