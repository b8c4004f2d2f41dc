package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"shop/internal/config"
	"shop/internal/infra/db"
	"shop/internal/infra/search"
	"shop/internal/logger"

	"gorm.io/gorm"
)

const serviceName = "shop-api"

// 設定とロガー
func bootConfig() (config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, err
	}

	log := logger.New(logger.Options{
		Service: serviceName,
		Env:     cfg.GoEnv,
		Level:   cfg.LogLevel,
	})
	slog.SetDefault(log)

	return cfg, log, nil
}

// DB接続
func bootDB(cfg config.Config) (*gorm.DB, func(), error) {
	gormDB, err := db.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("connect postgres: %w", err)
	}

	closeFn := func() {
		if sqlDB, err := gormDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return gormDB, closeFn, nil
}

// 検索用mongo（indexも作る）
func bootSearch(ctx context.Context, cfg config.Config) (*search.MongoProductSearch, func(), error) {
	client, err := search.Connect(ctx, cfg.MongoURI)
	if err != nil {
		return nil, nil, fmt.Errorf("connect mongo: %w", err)
	}

	closeFn := func() {
		dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(dctx)
	}

	searcher := search.NewMongoProductSearch(client.Database(cfg.MongoDB))
	if err := searcher.EnsureIndexes(ctx); err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("ensure search indexes: %w", err)
	}
	return searcher, closeFn, nil
}
