package cartstore

import (
	"context"
	"encoding/json"

	"velour/internal/domain/model"

	"github.com/go-faster/errors"
)

// DefaultKey は保存先のkey
const DefaultKey = "VELOUR-cart-storage"

// Storage は永続化のポート。テストはメモリ、本番はDB。
// 保存データが無い場合、Getは repo.ErrNotFound を返す。
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

var errMalformed = errors.New("malformed cart record")

func encodeSnapshot(s State) ([]byte, error) {
	items := s.Items
	if items == nil {
		items = []model.CartItem{}
	}
	return json.Marshal(model.CartSnapshot{Items: items})
}

// decodeSnapshot は保存データを読み戻す。
// 明細のルール（id必須・quantity>=1・同一明細の重複なし）に反するレコードは丸ごと不正扱い。
func decodeSnapshot(raw []byte) (State, error) {
	var snap model.CartSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return State{}, errors.Wrap(err, "unmarshal cart record")
	}

	items := make([]model.CartItem, 0, len(snap.Items))
	for _, it := range snap.Items {
		if it.ID == "" || it.Quantity < 1 {
			return State{}, errMalformed
		}
		for _, seen := range items {
			if seen.SameLine(it.ID, it.Variant) {
				return State{}, errMalformed
			}
		}
		items = append(items, it)
	}
	return State{Items: items}, nil
}
