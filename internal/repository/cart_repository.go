package repository

import (
	"context"

	"shop/internal/domain/model"
)

type CartRepository interface {
	// 無ければ作成。同時アクセスでも1ユーザー1カート
	GetOrCreateByUserID(ctx context.Context, userID int64) (model.Cart, error)
	FindByUserID(ctx context.Context, userID int64) (model.Cart, error)
	// 明細だけ全削除（cart行は残す）
	Clear(ctx context.Context, cartID int64) error
}
