package repository

import (
	"context"
	"errors"
)

// セッションが無い、または期限切れ
var ErrSessionNotFound = errors.New("session not found")

// session_id → username の保存先（キャッシュの種類には依存しない）
type SessionRepository interface {
	Create(ctx context.Context, username string) (string, error)
	Resolve(ctx context.Context, sessionID string) (string, error)
	Invalidate(ctx context.Context, sessionID string) error
}
