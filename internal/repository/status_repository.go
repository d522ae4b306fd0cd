package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/d60-Lab/gymsocial/internal/model"
)

type StatusRepository interface {
	Create(ctx context.Context, status *model.TrainingStatus) error
	// GetOpen 当前未结束的训练；没有时返回 gorm.ErrRecordNotFound
	GetOpen(ctx context.Context, userID string) (*model.TrainingStatus, error)
	// GetLatest 最近一条训练（含已结束）
	GetLatest(ctx context.Context, userID string) (*model.TrainingStatus, error)
	FinishOpen(ctx context.Context, userID string, at time.Time) (int64, error)
	// ListColocatedUserIDs 当前在 gymID 训练的其他用户
	ListColocatedUserIDs(ctx context.Context, gymID, excludeUserID string) ([]string, error)
	// ListOpenAtGym 在 gymID 进行中的训练，按开始时间倒序
	ListOpenAtGym(ctx context.Context, gymID, excludeUserID string) ([]*model.TrainingStatus, error)
}

type statusRepository struct{ db *gorm.DB }

func NewStatusRepository(db *gorm.DB) StatusRepository { return &statusRepository{db: db} }

func (r *statusRepository) Create(ctx context.Context, status *model.TrainingStatus) error {
	return r.db.WithContext(ctx).Create(status).Error
}

func (r *statusRepository) GetOpen(ctx context.Context, userID string) (*model.TrainingStatus, error) {
	var s model.TrainingStatus
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND finished_at IS NULL", userID).
		Order("started_at DESC").
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *statusRepository) GetLatest(ctx context.Context, userID string) (*model.TrainingStatus, error) {
	var s model.TrainingStatus
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("started_at DESC").
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *statusRepository) FinishOpen(ctx context.Context, userID string, at time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.TrainingStatus{}).
		Where("user_id = ? AND finished_at IS NULL", userID).
		Update("finished_at", at)
	return res.RowsAffected, res.Error
}

func (r *statusRepository) ListColocatedUserIDs(ctx context.Context, gymID, excludeUserID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&model.TrainingStatus{}).
		Distinct("user_id").
		Where("gym_id = ? AND finished_at IS NULL AND user_id <> ?", gymID, excludeUserID).
		Order("user_id").
		Pluck("user_id", &ids).Error
	return ids, err
}

func (r *statusRepository) ListOpenAtGym(ctx context.Context, gymID, excludeUserID string) ([]*model.TrainingStatus, error) {
	var res []*model.TrainingStatus
	err := r.db.WithContext(ctx).
		Where("gym_id = ? AND finished_at IS NULL AND user_id <> ?", gymID, excludeUserID).
		Order("started_at DESC").
		Find(&res).Error
	return res, err
}
