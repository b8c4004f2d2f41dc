package repository

import (
	"context"

	"shop/internal/domain/model"
)

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	List(ctx context.Context) ([]model.Product, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)
	FindByIDs(ctx context.Context, ids []int64) (map[int64]model.Product, error)
	Create(ctx context.Context, p model.Product) (model.Product, error)
	// seed用（同名があれば既存を返す）
	FirstOrCreate(ctx context.Context, p model.Product) (model.Product, error)
}

type CategoryRepository interface {
	List(ctx context.Context) ([]model.ProductCategory, error)
	FindByID(ctx context.Context, id int64) (model.ProductCategory, error)
	Create(ctx context.Context, c model.ProductCategory) (model.ProductCategory, error)
	FirstOrCreate(ctx context.Context, name string) (model.ProductCategory, error)
}
