// Package dbtest はテスト用のインメモリDBを用意する。
package dbtest

import (
	"fmt"
	"testing"

	"shop/internal/infra/db"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// マイグレーション済みのsqliteインメモリDB
// 接続は1本に絞る（sqliteは書き込みが直列のため）
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", uuid.NewString())
	gormDB, err := gorm.Open(sqlite.Open(dsn), db.NewGormConfig())
	if err != nil {
		t.Fatalf("sqlite open failed: %v", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		t.Fatalf("sql.DB failed: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.Migrate(gormDB); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return gormDB
}
