package repository

import "context"

// トランザクション内で使う約束
type TxRepos interface {
	AdminProducts() AdminProductRepository
	AuditLogs() AuditLogRepository
}

// UsecaseからTxの開始/commit/rollbackを隠す。
// fnがエラーを返したら、fn内の書き込みはすべて捨てる。
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(r TxRepos) error) error
}
