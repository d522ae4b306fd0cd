package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	db *gorm.DB

	User    UserRepository
	Follow  FollowRepository
	Fan     FanRepository
	Block   BlockRepository
	Privacy PrivacyRepository
	Status  StatusRepository
	Notice  NoticeRepository
}

// NewRepository 基于同一个 *gorm.DB 构建全部 Repository
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:      db,
		User:    NewUserRepository(db),
		Follow:  NewFollowRepository(db),
		Fan:     NewFanRepository(db),
		Block:   NewBlockRepository(db),
		Privacy: NewPrivacyRepository(db),
		Status:  NewStatusRepository(db),
		Notice:  NewNoticeRepository(db),
	}
}

// Transaction 在事务内执行 fn，fn 拿到的 Repository 全部绑定到该事务
func (r *Repository) Transaction(ctx context.Context, fn func(tx *Repository) error) error {
	if r.db == nil {
		// 测试里手工组装的聚合没有底层连接，直接执行
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}
