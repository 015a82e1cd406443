package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"

	"velour/internal/cartstore"
	"velour/internal/domain/model"
	repo "velour/internal/repository"

	lru "github.com/hashicorp/golang-lru"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	freeShippingOver = decimal.NewFromInt(75)
	shippingFee      = decimal.RequireFromString("9.99")
	taxRate          = decimal.RequireFromString("0.08")
)

// 開いた状態を覚えておくセッション数の上限（あふれたら閉じた扱い）
const visibleCacheSize = 4096

// CartUsecase はセッションごとのカートを扱う。
// カートはリクエストごとに保存先から読み直す（インスタンスにキャッシュしない）。
// カート本体（cartstore.Store）は入力をそのまま受け入れるので、チェックはここだけで行う。
type CartUsecase struct {
	storage     cartstore.Storage
	productRepo repo.ProductRepository
	keyPrefix   string
	logger      *zap.Logger

	locks   *sessionLocks
	visible *lru.Cache
}

// DI
func NewCartUsecase(
	storage cartstore.Storage,
	productRepo repo.ProductRepository,
	keyPrefix string,
	logger *zap.Logger,
) *CartUsecase {
	if keyPrefix == "" {
		keyPrefix = cartstore.DefaultKey
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	visible, err := lru.New(visibleCacheSize)
	if err != nil {
		//sizeが正なら起きない
		panic(err)
	}
	return &CartUsecase{
		storage:     storage,
		productRepo: productRepo,
		keyPrefix:   keyPrefix,
		logger:      logger,
		locks:       newSessionLocks(),
		visible:     visible,
	}
}

// 同じセッションへの読み書きを直列にする。使い終わったエントリは消す。
type sessionLocks struct {
	mu    sync.Mutex
	locks map[string]*sessionLock
}

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

func newSessionLocks() *sessionLocks {
	return &sessionLocks{locks: map[string]*sessionLock{}}
}

func (l *sessionLocks) lock(id string) (unlock func()) {
	l.mu.Lock()
	sl, ok := l.locks[id]
	if !ok {
		sl = &sessionLock{}
		l.locks[id] = sl
	}
	sl.refs++
	l.mu.Unlock()

	sl.mu.Lock()
	return func() {
		sl.mu.Unlock()

		l.mu.Lock()
		sl.refs--
		if sl.refs == 0 {
			delete(l.locks, id)
		}
		l.mu.Unlock()
	}
}

func (l *sessionLocks) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}

type CartResponse struct {
	Items     []model.CartItem `json:"items"`
	IsVisible bool             `json:"is_visible"`
	ItemCount int64            `json:"item_count"`
	Total     decimal.Decimal  `json:"total"`
}

type CartSummary struct {
	Subtotal   decimal.Decimal `json:"subtotal"`
	Shipping   decimal.Decimal `json:"shipping"`
	Tax        decimal.Decimal `json:"tax"`
	GrandTotal decimal.Decimal `json:"grand_total"`
	ItemCount  int64           `json:"item_count"`
}

type AddCartItemInput struct {
	ProductID string
	Variant   *string
}

type UpdateCartItemInput struct {
	Quantity int64
	Variant  *string
}

// withCart はセッションのカートを保存先から読み込み、fnを実行して結果を返す
func (u *CartUsecase) withCart(ctx context.Context, sessionID string, fn func(s *cartstore.Store)) (cartstore.State, error) {
	if strings.TrimSpace(sessionID) == "" {
		return cartstore.State{}, NewHTTPError(http.StatusUnauthorized, "session required")
	}

	unlock := u.locks.lock(sessionID)
	defer unlock()

	_, visible := u.visible.Get(sessionID)
	s, err := cartstore.New(ctx, u.storage,
		cartstore.WithKey(u.keyPrefix+":"+sessionID),
		cartstore.WithLogger(u.logger.With(zap.String("session", sessionID))),
		cartstore.WithVisible(visible),
	)
	if err != nil {
		u.logger.Error("load cart failed", zap.String("session", sessionID), zap.Error(err))
		return cartstore.State{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	log := u.logger
	s.Subscribe(func(st cartstore.State) {
		log.Debug("cart changed",
			zap.String("session", sessionID),
			zap.Int64("item_count", cartstore.ItemCount(st)),
			zap.String("total", cartstore.Total(st).String()),
		)
	})
	if fn != nil {
		fn(s)
	}

	st := s.Snapshot()
	if st.IsVisible {
		u.visible.Add(sessionID, true)
	} else {
		u.visible.Remove(sessionID)
	}
	return st, nil
}

func (u *CartUsecase) cartResponse(ctx context.Context, sessionID string, fn func(s *cartstore.Store)) (CartResponse, error) {
	st, err := u.withCart(ctx, sessionID, fn)
	if err != nil {
		return CartResponse{}, err
	}
	return toCartResponse(st), nil
}

func toCartResponse(st cartstore.State) CartResponse {
	items := st.Items
	if items == nil {
		items = []model.CartItem{}
	}
	return CartResponse{
		Items:     items,
		IsVisible: st.IsVisible,
		ItemCount: cartstore.ItemCount(st),
		Total:     cartstore.Total(st),
	}
}

func (u *CartUsecase) GetCart(ctx context.Context, sessionID string) (CartResponse, error) {
	return u.cartResponse(ctx, sessionID, nil)
}

// AddItem は商品をカタログから引いて、名前・価格・画像をその時点の値で入れる（数量は+1）
func (u *CartUsecase) AddItem(ctx context.Context, sessionID string, in AddCartItemInput) (CartResponse, error) {
	if strings.TrimSpace(sessionID) == "" {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "session required")
	}
	productID := strings.TrimSpace(in.ProductID)
	if productID == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "product_id required")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//色のある商品は色が必須、無い商品はvariantなし
	if len(p.Shades) > 0 {
		if in.Variant == nil || !p.HasShade(*in.Variant) {
			return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid variant")
		}
	} else if in.Variant != nil {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "product has no variants")
	}

	return u.cartResponse(ctx, sessionID, func(s *cartstore.Store) {
		s.AddItem(ctx, model.CartCandidate{
			ID:      p.ID,
			Name:    p.Name,
			Price:   p.Price,
			Image:   p.Image,
			Variant: in.Variant,
		})
	})
}

func (u *CartUsecase) RemoveItem(ctx context.Context, sessionID, productID string, variant *string) (CartResponse, error) {
	if strings.TrimSpace(sessionID) == "" {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "session required")
	}
	if strings.TrimSpace(productID) == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "product_id required")
	}

	return u.cartResponse(ctx, sessionID, func(s *cartstore.Store) {
		s.RemoveItem(ctx, productID, variant)
	})
}

// 0以下は削除
func (u *CartUsecase) UpdateQuantity(ctx context.Context, sessionID, productID string, in UpdateCartItemInput) (CartResponse, error) {
	if strings.TrimSpace(sessionID) == "" {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "session required")
	}
	if strings.TrimSpace(productID) == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "product_id required")
	}

	return u.cartResponse(ctx, sessionID, func(s *cartstore.Store) {
		s.UpdateQuantity(ctx, productID, in.Quantity, in.Variant)
	})
}

func (u *CartUsecase) ClearCart(ctx context.Context, sessionID string) (CartResponse, error) {
	return u.cartResponse(ctx, sessionID, func(s *cartstore.Store) {
		s.ClearCart(ctx)
	})
}

func (u *CartUsecase) OpenCart(ctx context.Context, sessionID string) (CartResponse, error) {
	return u.cartResponse(ctx, sessionID, func(s *cartstore.Store) {
		s.OpenCart()
	})
}

func (u *CartUsecase) CloseCart(ctx context.Context, sessionID string) (CartResponse, error) {
	return u.cartResponse(ctx, sessionID, func(s *cartstore.Store) {
		s.CloseCart()
	})
}

// Summary は送料・税を含めた金額（表示用に小数2桁へ丸める）
func (u *CartUsecase) Summary(ctx context.Context, sessionID string) (CartSummary, error) {
	st, err := u.withCart(ctx, sessionID, nil)
	if err != nil {
		return CartSummary{}, err
	}
	subtotal := cartstore.Total(st)

	shipping := decimal.Zero
	if len(st.Items) > 0 && !subtotal.GreaterThan(freeShippingOver) {
		shipping = shippingFee
	}
	tax := subtotal.Mul(taxRate)

	return CartSummary{
		Subtotal:   subtotal.Round(2),
		Shipping:   shipping.Round(2),
		Tax:        tax.Round(2),
		GrandTotal: subtotal.Add(shipping).Add(tax).Round(2),
		ItemCount:  cartstore.ItemCount(st),
	}, nil
}
