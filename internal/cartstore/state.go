package cartstore

import (
	"velour/internal/domain/model"

	"github.com/shopspring/decimal"
)

// State はカートの状態。Itemsは追加順。
type State struct {
	Items     []model.CartItem `json:"items"`
	IsVisible bool             `json:"isVisible"`
}

// 空のカート
func Empty() State {
	return State{Items: []model.CartItem{}}
}

// 以下は副作用なしの状態遷移。入力のItemsは書き換えない。

// AddItem は同じ(id, variant)があれば+1、無ければquantity=1で末尾に追加。
// 入力は検証しない（呼び出し側を信用する）。
func AddItem(s State, c model.CartCandidate) State {
	items := make([]model.CartItem, 0, len(s.Items)+1)
	merged := false
	for _, it := range s.Items {
		if !merged && it.SameLine(c.ID, c.Variant) {
			it.Quantity++
			merged = true
		}
		items = append(items, it)
	}
	if !merged {
		items = append(items, model.CartItem{
			ID:       c.ID,
			Name:     c.Name,
			Price:    c.Price,
			Image:    c.Image,
			Quantity: 1,
			Variant:  copyVariant(c.Variant),
		})
	}
	return State{Items: items, IsVisible: s.IsVisible}
}

// RemoveItem は一致する明細を消す。無ければそのまま。
func RemoveItem(s State, id string, variant *string) State {
	items := make([]model.CartItem, 0, len(s.Items))
	for _, it := range s.Items {
		if it.SameLine(id, variant) {
			continue
		}
		items = append(items, it)
	}
	return State{Items: items, IsVisible: s.IsVisible}
}

// UpdateQuantity は数量を上書き（差分ではない）。0以下は削除。
func UpdateQuantity(s State, id string, quantity int64, variant *string) State {
	if quantity <= 0 {
		return RemoveItem(s, id, variant)
	}

	items := make([]model.CartItem, 0, len(s.Items))
	for _, it := range s.Items {
		if it.SameLine(id, variant) {
			it.Quantity = quantity
		}
		items = append(items, it)
	}
	return State{Items: items, IsVisible: s.IsVisible}
}

func Clear(s State) State {
	return State{Items: []model.CartItem{}, IsVisible: s.IsVisible}
}

func SetVisible(s State, visible bool) State {
	items := make([]model.CartItem, len(s.Items))
	copy(items, s.Items)
	return State{Items: items, IsVisible: visible}
}

// 数量の合計
func ItemCount(s State) int64 {
	var n int64
	for _, it := range s.Items {
		n += it.Quantity
	}
	return n
}

// price * quantity の合計。丸めは表示側でやる。
func Total(s State) decimal.Decimal {
	total := decimal.Zero
	for _, it := range s.Items {
		total = total.Add(it.Price.Mul(decimal.NewFromInt(it.Quantity)))
	}
	return total
}

// 外に渡すときのコピー（variantのポインタも複製）
func (s State) clone() State {
	items := make([]model.CartItem, len(s.Items))
	for i, it := range s.Items {
		it.Variant = copyVariant(it.Variant)
		items[i] = it
	}
	return State{Items: items, IsVisible: s.IsVisible}
}

func copyVariant(v *string) *string {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
