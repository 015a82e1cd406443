package repository

import (
	"context"
	"sync"

	repo "velour/internal/repository"
)

// メモリ上のKV（テスト・STORAGE_DRIVER=memory用）
type MemoryKVStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// DI
func NewMemoryKVStore() *MemoryKVStore {
	return &MemoryKVStore{data: map[string][]byte{}}
}

func (s *MemoryKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[key]
	if !ok {
		return nil, repo.ErrNotFound
	}
	//呼び出し側に書き換えられないようコピー
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (s *MemoryKVStore) Set(ctx context.Context, key string, value []byte) error {
	v := make([]byte, len(value))
	copy(v, value)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = v
	return nil
}

func (s *MemoryKVStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}
