package repository

import "context"

// keyごとにJSONを丸ごと読み書きする（localStorage相当）。
// Getでkeyが無いときはErrNotFound。
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
