package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	repo "shop/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "shop:session:"

// session_id → username をRedisに保存する
type RedisSessionRepository struct {
	rdb   *redis.Client
	ttl   time.Duration
	newID func() string
}

// DI
func NewRedisSessionRepository(rdb *redis.Client, ttl time.Duration) *RedisSessionRepository {
	return &RedisSessionRepository{
		rdb:   rdb,
		ttl:   ttl,
		newID: uuid.NewString,
	}
}

// Connectは接続してpingまで確認する
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("session: redis ping: %w", err)
	}
	return rdb, nil
}

func redisKey(id string) string { return keyPrefix + id }

// 新しいセッションを作る（既存セッションは消さない）
func (r *RedisSessionRepository) Create(ctx context.Context, username string) (string, error) {
	id := r.newID()

	// 万一のID衝突は上書きしない
	ok, err := r.rdb.SetNX(ctx, redisKey(id), username, r.ttl).Result()
	if err != nil {
		return "", fmt.Errorf("session: create: %w", err)
	}
	if !ok {
		return "", errors.New("session: id collision")
	}
	return id, nil
}

// 期限切れ・存在しない場合はErrSessionNotFound
func (r *RedisSessionRepository) Resolve(ctx context.Context, sessionID string) (string, error) {
	if sessionID == "" {
		return "", repo.ErrSessionNotFound
	}

	username, err := r.rdb.Get(ctx, redisKey(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", repo.ErrSessionNotFound
	}
	if err != nil {
		return "", fmt.Errorf("session: resolve: %w", err)
	}
	return username, nil
}

// 何度呼んでもよい
func (r *RedisSessionRepository) Invalidate(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := r.rdb.Del(ctx, redisKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("session: invalidate: %w", err)
	}
	return nil
}
