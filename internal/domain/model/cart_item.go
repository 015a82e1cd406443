package model

import "github.com/shopspring/decimal"

// カートの明細
// name / price / image は追加時点の値を保存（カタログを再取得しない）。
type CartItem struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Image    string          `json:"image"`
	Quantity int64           `json:"quantity"`

	//nil = バリアント無し。"" とは別物として扱う
	Variant *string `json:"variant,omitempty"`
}

// AddItemに渡す入力（quantityは持たない）
type CartCandidate struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Price   decimal.Decimal `json:"price"`
	Image   string          `json:"image"`
	Variant *string         `json:"variant,omitempty"`
}

// 同じ明細かどうか（id + variant）
func (it CartItem) SameLine(id string, variant *string) bool {
	return it.ID == id && SameVariant(it.Variant, variant)
}

// SameVariant はoptional同士の比較。nil同士だけが一致、nilと""は不一致。
func SameVariant(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// Variant用のポインタを作る
func VariantOf(v string) *string {
	return &v
}
