package repository

import (
	"context"

	repo "velour/internal/repository"

	"github.com/go-faster/errors"
	"gorm.io/gorm"
)

type txReposGorm struct {
	adminProducts repo.AdminProductRepository
	auditLogs     repo.AuditLogRepository
}

func (r *txReposGorm) AdminProducts() repo.AdminProductRepository { return r.adminProducts }
func (r *txReposGorm) AuditLogs() repo.AuditLogRepository         { return r.auditLogs }

type TxManagerGorm struct {
	db       *gorm.DB
	adminKey string
}

// DI
func NewTxManagerGorm(db *gorm.DB, adminKey string) *TxManagerGorm {
	if adminKey == "" {
		adminKey = DefaultAdminProductsKey
	}
	return &TxManagerGorm{db: db, adminKey: adminKey}
}

func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//商品一覧は1レコードなので、読んでから書くまでをkey単位でロック（commit/rollbackで解放）
		if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", tm.adminKey).Error; err != nil {
			return errors.Wrap(err, "lock admin products")
		}

		//repoはtxを持ったDBで作り直す
		r := &txReposGorm{
			adminProducts: NewAdminProductKVRepository(NewKVGormRepository(tx), tm.adminKey),
			auditLogs:     NewAuditLogGormRepository(tx),
		}
		return fn(r)
	})
}
