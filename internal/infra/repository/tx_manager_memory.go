package repository

import (
	"context"
	"sync"

	"velour/internal/domain/model"
	repo "velour/internal/repository"
)

type txReposMemory struct {
	adminProducts repo.AdminProductRepository
	auditLogs     *txAuditLogs
}

func (r *txReposMemory) AdminProducts() repo.AdminProductRepository { return r.adminProducts }
func (r *txReposMemory) AuditLogs() repo.AuditLogRepository         { return r.auditLogs }

// メモリ用のTx。1本ずつ実行し、書き込みはcommitまで溜めておく。
type TxManagerMemory struct {
	mu       sync.Mutex
	kv       repo.KeyValueStore
	adminKey string
	audit    repo.AuditLogRepository
}

// DI
func NewTxManagerMemory(kv repo.KeyValueStore, adminKey string, audit repo.AuditLogRepository) *TxManagerMemory {
	if adminKey == "" {
		adminKey = DefaultAdminProductsKey
	}
	return &TxManagerMemory{kv: kv, adminKey: adminKey, audit: audit}
}

func (tm *TxManagerMemory) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	kv := newTxKV(tm.kv)
	audit := &txAuditLogs{base: tm.audit}
	r := &txReposMemory{
		adminProducts: NewAdminProductKVRepository(kv, tm.adminKey),
		auditLogs:     audit,
	}
	if err := fn(r); err != nil {
		//rollback
		return err
	}

	//commit（監査ログが書けなければ商品も書かない）
	for _, l := range audit.pending {
		if err := tm.audit.Create(ctx, l); err != nil {
			return err
		}
	}
	return kv.commit(ctx)
}

// 書き込みを溜めるKV（読み取りは溜めた値を優先）
type txKV struct {
	base    repo.KeyValueStore
	writes  map[string][]byte
	deleted map[string]bool
	order   []string
}

func newTxKV(base repo.KeyValueStore) *txKV {
	return &txKV{base: base, writes: map[string][]byte{}, deleted: map[string]bool{}}
}

func (t *txKV) Get(ctx context.Context, key string) ([]byte, error) {
	if t.deleted[key] {
		return nil, repo.ErrNotFound
	}
	if v, ok := t.writes[key]; ok {
		return append([]byte(nil), v...), nil
	}
	return t.base.Get(ctx, key)
}

func (t *txKV) Set(ctx context.Context, key string, value []byte) error {
	t.touch(key)
	delete(t.deleted, key)
	t.writes[key] = append([]byte(nil), value...)
	return nil
}

func (t *txKV) Delete(ctx context.Context, key string) error {
	t.touch(key)
	delete(t.writes, key)
	t.deleted[key] = true
	return nil
}

func (t *txKV) touch(key string) {
	if _, ok := t.writes[key]; ok {
		return
	}
	if t.deleted[key] {
		return
	}
	t.order = append(t.order, key)
}

func (t *txKV) commit(ctx context.Context) error {
	for _, key := range t.order {
		if t.deleted[key] {
			if err := t.base.Delete(ctx, key); err != nil {
				return err
			}
			continue
		}
		if err := t.base.Set(ctx, key, t.writes[key]); err != nil {
			return err
		}
	}
	return nil
}

// Createはcommitまで溜める。Listは確定済みのものだけ。
type txAuditLogs struct {
	base    repo.AuditLogRepository
	pending []model.AuditLog
}

func (a *txAuditLogs) Create(ctx context.Context, log model.AuditLog) error {
	a.pending = append(a.pending, log)
	return nil
}

func (a *txAuditLogs) List(ctx context.Context, filter repo.AuditLogFilter) ([]model.AuditLog, error) {
	return a.base.List(ctx, filter)
}
