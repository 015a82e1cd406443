package cartstore

import (
	"context"
	"sync"

	"velour/internal/domain/model"
	repo "velour/internal/repository"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Store はカートの状態を持つコンテナ。
// 更新は「次の状態を計算 → 差し替え → 保存 → 購読者に通知」の順。
// 操作はmutexで直列化する。
type Store struct {
	mu      sync.Mutex
	state   State
	storage Storage
	key     string
	logger  *zap.Logger

	//変更から通知までを1件ずつ流す（通知順＝変更順）
	notifyMu sync.Mutex

	subMu  sync.Mutex
	subs   map[int]func(State)
	order  []int
	nextID int
}

type Option func(*Store)

// 保存先のkeyを変える
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// 表示フラグの初期値（保存はしない）
func WithVisible(visible bool) Option {
	return func(s *Store) {
		s.state.IsVisible = visible
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// New は保存データがあれば復元し、無い・壊れている場合は空のカートで始める。
// 読み込み自体の失敗（接続断など）はエラーで返す（空で上書きしないため）。
func New(ctx context.Context, storage Storage, opts ...Option) (*Store, error) {
	s := &Store{
		state:   Empty(),
		storage: storage,
		key:     DefaultKey,
		logger:  zap.NewNop(),
		subs:    map[int]func(State){},
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.restore(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) restore(ctx context.Context) error {
	if s.storage == nil {
		return nil
	}

	raw, err := s.storage.Get(ctx, s.key)
	if errors.Is(err, repo.ErrNotFound) {
		s.logger.Debug("no stored cart", zap.String("key", s.key))
		return nil
	}
	if err != nil {
		return errors.Wrapf(err, "load cart %q", s.key)
	}

	st, err := decodeSnapshot(raw)
	if err != nil {
		s.logger.Warn("stored cart unreadable, starting empty", zap.String("key", s.key), zap.Error(err))
		return nil
	}
	st.IsVisible = s.state.IsVisible
	s.state = st
	return nil
}

// Key は保存先のkey
func (s *Store) Key() string {
	return s.key
}

// AddItem は同じ(id, variant)なら+1、無ければ追加。
func (s *Store) AddItem(ctx context.Context, c model.CartCandidate) {
	s.apply(ctx, true, func(st State) State { return AddItem(st, c) })
}

func (s *Store) RemoveItem(ctx context.Context, id string, variant *string) {
	s.apply(ctx, true, func(st State) State { return RemoveItem(st, id, variant) })
}

// UpdateQuantity は数量を上書き。0以下はRemoveItemと同じ。
func (s *Store) UpdateQuantity(ctx context.Context, id string, quantity int64, variant *string) {
	s.apply(ctx, true, func(st State) State { return UpdateQuantity(st, id, quantity, variant) })
}

// ClearCart は明細を空にして保存（keyは消さない）。
func (s *Store) ClearCart(ctx context.Context) {
	s.apply(ctx, true, Clear)
}

// 表示フラグは保存しない
func (s *Store) OpenCart() {
	s.apply(context.Background(), false, func(st State) State { return SetVisible(st, true) })
}

func (s *Store) CloseCart() {
	s.apply(context.Background(), false, func(st State) State { return SetVisible(st, false) })
}

func (s *Store) ItemCount() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ItemCount(s.state)
}

func (s *Store) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Total(s.state)
}

func (s *Store) Items() []model.CartItem {
	return s.Snapshot().Items
}

func (s *Store) IsVisible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.IsVisible
}

// Snapshot は現在の状態のコピー
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Subscribe は状態が変わるたびに同期で呼ばれる関数を登録する。
// 戻り値で解除（何度呼んでもよい）。
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	s.subMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.order = append(s.order, id)
	s.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			defer s.subMu.Unlock()
			delete(s.subs, id)
			for i, v := range s.order {
				if v == id {
					s.order = append(s.order[:i], s.order[i+1:]...)
					break
				}
			}
		})
	}
}

// 購読者は変更順に1つずつ呼ばれる。購読者の中からカートを更新してはいけない（デッドロック）。
func (s *Store) apply(ctx context.Context, persist bool, next func(State) State) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	s.state = next(s.state)
	if persist {
		s.save(ctx)
	}
	snap := s.state.clone()
	s.mu.Unlock()

	s.notify(snap)
}

// 保存に失敗してもメモリ上の状態は進める（呼び出し側には返さない）
func (s *Store) save(ctx context.Context) {
	if s.storage == nil {
		return
	}

	raw, err := encodeSnapshot(s.state)
	if err != nil {
		s.logger.Warn("encode cart failed", zap.String("key", s.key), zap.Error(err))
		return
	}
	//リクエストが切れても書き込みは最後までやる
	if err := s.storage.Set(context.WithoutCancel(ctx), s.key, raw); err != nil {
		s.logger.Warn("persist cart failed", zap.String("key", s.key), zap.Error(err))
	}
}

func (s *Store) notify(snap State) {
	s.subMu.Lock()
	fns := make([]func(State), 0, len(s.order))
	for _, id := range s.order {
		fns = append(fns, s.subs[id])
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(snap.clone())
	}
}
