package testutil

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/d60-Lab/gymsocial/internal/model"
)

// NewSQLiteDB 内存 SQLite，已建好全部表。
// 限制为单连接：:memory: 库按连接隔离，多连接会看到空库。
func NewSQLiteDB(tb testing.TB) *gorm.DB {
	tb.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		tb.Fatalf("open db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		tb.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	tb.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(model.All()...); err != nil {
		tb.Fatalf("migrate: %v", err)
	}
	return db
}

// SeedUser 写入一个最小用户：pub_id=id, anon_pub_id=~id, handle=id
func SeedUser(tb testing.TB, db *gorm.DB, id string) *model.User {
	tb.Helper()
	u := &model.User{PubID: id, AnonPubID: model.AnonPrefix + id, Handle: id, DisplayName: "name-" + id, AnonDisplayName: "anon-" + id}
	if err := db.Create(u).Error; err != nil {
		tb.Fatalf("seed user %s: %v", id, err)
	}
	return u
}
