package repository

import (
	"context"
	"errors"

	"shop/internal/domain/model"
)

// ユーザーが見つかりませんを統一
var ErrUserNotFound = errors.New("user not found")

// 保存・取得を約束
type UserRepository interface {
	//新規ユーザー作成（username重複はErrDuplicate）
	Create(ctx context.Context, user *model.User) error
	// IDからユーザーを1件取得する。
	FindByID(ctx context.Context, userID int64) (*model.User, error)
	//usernameからユーザーを一件取得する。
	FindByUsername(ctx context.Context, username string) (*model.User, error)
}
