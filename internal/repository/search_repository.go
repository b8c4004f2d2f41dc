package repository

import (
	"context"

	"shop/internal/domain/model"
)

// 商品名検索（大文字小文字を区別しない部分一致）
type ProductSearcher interface {
	Index(ctx context.Context, p model.Product) error
	Search(ctx context.Context, query string) ([]model.Product, error)
	// 全件入れ直し
	Rebuild(ctx context.Context, products []model.Product) error
}
