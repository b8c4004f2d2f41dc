package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"shop/internal/domain/model"
	"shop/internal/repository"
)

const maxSearchQueryLen = 100

// Actorは監査ログに残す管理者（空なら残さない）
type CreateCategoryInput struct {
	Name  string
	Actor string
}

type CreateProductInput struct {
	Name       string
	Price      int64
	CategoryID int64
	Actor      string
}

// 商品・カテゴリ・検索
type CatalogUsecase struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	searcher   repository.ProductSearcher
	audit      repository.AuditLogRepository
	log        *slog.Logger
}

// DI
func NewCatalogUsecase(
	products repository.ProductRepository,
	categories repository.CategoryRepository,
	searcher repository.ProductSearcher,
	audit repository.AuditLogRepository,
	log *slog.Logger,
) *CatalogUsecase {
	if log == nil {
		log = slog.Default()
	}
	return &CatalogUsecase{
		products:   products,
		categories: categories,
		searcher:   searcher,
		audit:      audit,
		log:        log,
	}
}

func (u *CatalogUsecase) ListProducts(ctx context.Context) ([]model.Product, error) {
	ps, err := u.products.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return ps, nil
}

func (u *CatalogUsecase) ListCategories(ctx context.Context) ([]model.ProductCategory, error) {
	cs, err := u.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return cs, nil
}

func (u *CatalogUsecase) GetProduct(ctx context.Context, id int64) (model.Product, error) {
	if id <= 0 {
		return model.Product{}, validationError("invalid id")
	}

	p, err := u.products.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return model.Product{}, notFound("product not found")
	}
	if err != nil {
		return model.Product{}, fmt.Errorf("find product: %w", err)
	}
	return p, nil
}

func (u *CatalogUsecase) CreateCategory(ctx context.Context, in CreateCategoryInput) (model.ProductCategory, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return model.ProductCategory{}, validationError("name is required")
	}

	c, err := u.categories.Create(ctx, model.ProductCategory{Name: name})
	if errors.Is(err, repository.ErrDuplicate) {
		return model.ProductCategory{}, conflict("category already exists")
	}
	if err != nil {
		return model.ProductCategory{}, fmt.Errorf("create category: %w", err)
	}

	u.record(ctx, in.Actor, model.AuditActionCreateCategory, model.AuditResourceCategory, c.ID, c)
	return c, nil
}

// DBに保存してから検索インデックスへ入れる
func (u *CatalogUsecase) CreateProduct(ctx context.Context, in CreateProductInput) (model.Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return model.Product{}, validationError("name is required")
	}
	if in.Price < 0 {
		return model.Product{}, validationError("price must not be negative")
	}
	if in.CategoryID <= 0 {
		return model.Product{}, validationError("invalid category_id")
	}

	if _, err := u.categories.FindByID(ctx, in.CategoryID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Product{}, notFound("category not found")
		}
		return model.Product{}, fmt.Errorf("find category: %w", err)
	}

	p, err := u.products.Create(ctx, model.Product{
		Name:       name,
		Price:      in.Price,
		CategoryID: in.CategoryID,
	})
	if err != nil {
		return model.Product{}, fmt.Errorf("create product: %w", err)
	}

	//インデックス失敗は作成を失敗にしない（reindexで直す）
	if err := u.searcher.Index(ctx, p); err != nil {
		u.log.WarnContext(ctx, "search index failed", slog.Int64("product_id", p.ID), slog.Any("err", err))
	}

	u.record(ctx, in.Actor, model.AuditActionCreateProduct, model.AuditResourceProduct, p.ID, p)
	return p, nil
}

// 商品名の部分一致（大文字小文字は区別しない）
// 前後の空白も検索語に含める
func (u *CatalogUsecase) Search(ctx context.Context, query string) ([]model.Product, error) {
	if strings.TrimSpace(query) == "" {
		return nil, validationError("query is required")
	}
	if utf8.RuneCountInString(query) > maxSearchQueryLen {
		return nil, validationError("query is too long")
	}

	ps, err := u.searcher.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	if ps == nil {
		ps = []model.Product{}
	}
	return ps, nil
}

// 検索インデックスをDBから作り直す
func (u *CatalogUsecase) Reindex(ctx context.Context) (int, error) {
	ps, err := u.products.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list products: %w", err)
	}
	if err := u.searcher.Rebuild(ctx, ps); err != nil {
		return 0, fmt.Errorf("rebuild index: %w", err)
	}
	return len(ps), nil
}

func (u *CatalogUsecase) ListAuditLogs(ctx context.Context, filter repository.AuditLogFilter) ([]model.AuditLog, error) {
	if u.audit == nil {
		return []model.AuditLog{}, nil
	}
	logs, err := u.audit.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	return logs, nil
}

// 監査ログの失敗は操作を失敗にしない
func (u *CatalogUsecase) record(
	ctx context.Context,
	actor string,
	action model.AuditAction,
	resourceType model.AuditResourceType,
	resourceID int64,
	after any,
) {
	if u.audit == nil || actor == "" {
		return
	}

	afterJSON, err := json.Marshal(after)
	if err != nil {
		u.log.WarnContext(ctx, "audit marshal failed", slog.Any("err", err))
		return
	}

	if err := u.audit.Create(ctx, model.AuditLog{
		Actor:        actor,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		AfterJSON:    string(afterJSON),
	}); err != nil {
		u.log.WarnContext(ctx, "audit log failed",
			slog.String("action", string(action)),
			slog.Int64("resource_id", resourceID),
			slog.Any("err", err),
		)
	}
}
