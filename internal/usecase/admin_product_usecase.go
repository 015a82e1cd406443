package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"velour/internal/domain/model"
	repo "velour/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// 管理画面の商品登録・削除と監査ログ
type AdminProductUsecase struct {
	adminRepo repo.AdminProductRepository
	auditRepo repo.AuditLogRepository
	tx        repo.TransactionManager
	logger    *zap.Logger
	now       func() time.Time
	newID     func() string
}

// DI
func NewAdminProductUsecase(
	adminRepo repo.AdminProductRepository,
	auditRepo repo.AuditLogRepository,
	tx repo.TransactionManager,
	logger *zap.Logger,
) *AdminProductUsecase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminProductUsecase{
		adminRepo: adminRepo,
		auditRepo: auditRepo,
		tx:        tx,
		logger:    logger,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

func (u *AdminProductUsecase) List(ctx context.Context) ([]model.Product, error) {
	products, err := u.adminRepo.List(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return products, nil
}

// Save は同じIDなら置き換え、無ければ追加（IDが空なら採番）
func (u *AdminProductUsecase) Save(ctx context.Context, actor string, in model.Product) (model.Product, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.TrimSpace(in.Category)
	if in.Name == "" || in.Category == "" || !in.Price.IsPositive() {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "name, category and positive price are required")
	}
	if in.OriginalPrice != nil && in.OriginalPrice.IsNegative() {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "original_price must be >= 0")
	}
	if in.Rating < 0 || in.Rating > 5 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "rating must be between 0 and 5")
	}
	if in.Reviews < 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "reviews must be >= 0")
	}

	in.ID = strings.TrimSpace(in.ID)
	if in.ID == "" {
		in.ID = u.newID()
	}
	normalizeLists(&in)

	//商品の保存と監査ログは同じTxで（どちらか失敗したら両方捨てる）
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//変更前（before）
		beforeJSON := ""
		before, err := r.AdminProducts().FindByID(ctx, in.ID)
		switch {
		case err == nil:
			beforeJSON = toJSON(before)
		case errors.Is(err, repo.ErrNotFound):
		default:
			return err
		}

		if err := r.AdminProducts().Upsert(ctx, in); err != nil {
			return err
		}

		//監査ログを作成（保存）
		return r.AuditLogs().Create(ctx, model.AuditLog{
			Actor:        actor,
			Action:       model.AuditActionUpsertProduct,
			ResourceType: model.AuditResourceProduct,
			ResourceID:   in.ID,
			BeforeJSON:   beforeJSON,
			AfterJSON:    toJSON(in),
			CreatedAt:    u.now(),
		})
	})
	if err != nil {
		u.logger.Error("save product failed", zap.String("product_id", in.ID), zap.Error(err))
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.logger.Info("product saved", zap.String("product_id", in.ID), zap.String("actor", actor))
	return in, nil
}

func (u *AdminProductUsecase) Delete(ctx context.Context, actor, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		before, err := r.AdminProducts().FindByID(ctx, id)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return err
		}

		err = r.AdminProducts().Delete(ctx, id)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return err
		}

		//監査ログを作成（削除）
		return r.AuditLogs().Create(ctx, model.AuditLog{
			Actor:        actor,
			Action:       model.AuditActionDeleteProduct,
			ResourceType: model.AuditResourceProduct,
			ResourceID:   id,
			BeforeJSON:   toJSON(before),
			CreatedAt:    u.now(),
		})
	})
	if he, ok := AsHTTPError(err); ok {
		return he
	}
	if err != nil {
		u.logger.Error("delete product failed", zap.String("product_id", id), zap.Error(err))
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.logger.Info("product deleted", zap.String("product_id", id), zap.String("actor", actor))
	return nil
}

func (u *AdminProductUsecase) ListAudit(ctx context.Context, filter repo.AuditLogFilter) ([]model.AuditLog, error) {
	if filter.Limit < 0 || filter.Offset < 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid paging")
	}
	if filter.CreatedFrom != nil && filter.CreatedTo != nil && filter.CreatedFrom.After(*filter.CreatedTo) {
		return nil, NewHTTPError(http.StatusBadRequest, "from must be <= to")
	}

	logs, err := u.auditRepo.List(ctx, filter)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return logs, nil
}

// 空文字の要素を落とす（フォームの空欄）
func normalizeLists(p *model.Product) {
	p.Images = compact(p.Images)
	p.Benefits = compact(p.Benefits)
	p.Ingredients = compact(p.Ingredients)
	p.Shades = compact(p.Shades)
	p.Tags = compact(p.Tags)
}

func compact(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func toJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}
