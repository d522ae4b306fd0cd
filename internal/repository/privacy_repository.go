package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/d60-Lab/gymsocial/internal/model"
)

// PrivacyRepository 两套隐私策略行的读写。
// InsertIfAbsent 依赖 user_id 唯一索引，并发首读只会落地一行。
type PrivacyRepository interface {
	GetReal(ctx context.Context, userID string) (*model.PrivacySetting, error)
	InsertRealIfAbsent(ctx context.Context, row *model.PrivacySetting) error
	UpdateReal(ctx context.Context, userID string, updates map[string]any) error

	GetAnon(ctx context.Context, userID string) (*model.AnonPrivacySetting, error)
	InsertAnonIfAbsent(ctx context.Context, row *model.AnonPrivacySetting) error
	UpdateAnon(ctx context.Context, userID string, updates map[string]any) error
}

type privacyRepository struct{ db *gorm.DB }

func NewPrivacyRepository(db *gorm.DB) PrivacyRepository { return &privacyRepository{db: db} }

func (r *privacyRepository) GetReal(ctx context.Context, userID string) (*model.PrivacySetting, error) {
	var row model.PrivacySetting
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *privacyRepository) InsertRealIfAbsent(ctx context.Context, row *model.PrivacySetting) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).
		Create(row).Error
}

func (r *privacyRepository) UpdateReal(ctx context.Context, userID string, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&model.PrivacySetting{}).
		Where("user_id = ?", userID).
		Updates(updates).Error
}

func (r *privacyRepository) GetAnon(ctx context.Context, userID string) (*model.AnonPrivacySetting, error) {
	var row model.AnonPrivacySetting
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *privacyRepository) InsertAnonIfAbsent(ctx context.Context, row *model.AnonPrivacySetting) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).
		Create(row).Error
}

func (r *privacyRepository) UpdateAnon(ctx context.Context, userID string, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&model.AnonPrivacySetting{}).
		Where("user_id = ?", userID).
		Updates(updates).Error
}
