package model

import "time"

// ブラウザのlocalStorage相当。keyごとにJSONを丸ごと保存する
type KVRecord struct {
	Key       string    `gorm:"primaryKey;type:varchar(255)" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (KVRecord) TableName() string {
	return "kv_records"
}
