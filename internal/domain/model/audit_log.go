package model

import "time"

// 管理画面の操作
type AuditAction string

const (
	//商品を保存（作成 or 更新）した操作。
	AuditActionUpsertProduct AuditAction = "UPSERT_PRODUCT"
	//商品を削除した操作。
	AuditActionDeleteProduct AuditAction = "DELETE_PRODUCT"
)

// 何に対する操作か
type AuditResourceType string

const (
	//商品に対する操作。
	AuditResourceProduct AuditResourceType = "product"
)

// 監査ログ（管理者操作ログ）。
// 「何を」「どの対象に」「どう変えたか」を残す。
type AuditLog struct {
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`

	//操作元（セッションID）。
	Actor string `gorm:"type:varchar(64);not null;index" json:"actor"`

	Action AuditAction `gorm:"type:varchar(50);not null;index" json:"action"`

	ResourceType AuditResourceType `gorm:"type:varchar(50);not null;index" json:"resource_type"`

	//商品IDは文字列
	ResourceID string `gorm:"type:varchar(255);not null;index" json:"resource_id"`

	//JSON文字列で保存する。
	BeforeJSON string `gorm:"type:text" json:"before_json"`

	AfterJSON string `gorm:"type:text" json:"after_json"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}
