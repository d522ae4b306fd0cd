package model

import "time"

// Block 屏蔽关系（Blocker 屏蔽 Blocked），任一方向存在即双方互不可见
type Block struct {
	ID        string `gorm:"primaryKey;type:varchar(36)"`
	BlockerID string `gorm:"type:varchar(64);not null;index:idx_block_pair,unique"`
	BlockedID string `gorm:"type:varchar(64);not null;index:idx_block_pair,unique;index:idx_block_blocked"`
	CreatedAt time.Time
}

func (Block) TableName() string { return "blocks" }
