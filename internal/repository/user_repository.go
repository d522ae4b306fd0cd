package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/gymsocial/internal/model"
)

// UserRepository 用户主表访问。未找到时返回 gorm.ErrRecordNotFound。
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByPubID(ctx context.Context, pubID string) (*model.User, error)
	GetByHandle(ctx context.Context, handle string) (*model.User, error)
	GetByAnonPubID(ctx context.Context, anonPubID string) (*model.User, error)
	// ListByPubIDs 批量查询，不存在的 id 直接忽略
	ListByPubIDs(ctx context.Context, pubIDs []string) ([]*model.User, error)
	UpdateHandle(ctx context.Context, pubID, handle string) error
}

type userRepository struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) UserRepository { return &userRepository{db: db} }

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetByPubID(ctx context.Context, pubID string) (*model.User, error) {
	return r.first(ctx, "pub_id = ?", pubID)
}

func (r *userRepository) GetByHandle(ctx context.Context, handle string) (*model.User, error) {
	return r.first(ctx, "handle = ?", handle)
}

func (r *userRepository) GetByAnonPubID(ctx context.Context, anonPubID string) (*model.User, error) {
	return r.first(ctx, "anon_pub_id = ?", anonPubID)
}

func (r *userRepository) first(ctx context.Context, query string, arg string) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).Where(query, arg).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) ListByPubIDs(ctx context.Context, pubIDs []string) ([]*model.User, error) {
	if len(pubIDs) == 0 {
		return nil, nil
	}
	var res []*model.User
	err := r.db.WithContext(ctx).Where("pub_id IN ?", pubIDs).Find(&res).Error
	return res, err
}

func (r *userRepository) UpdateHandle(ctx context.Context, pubID, handle string) error {
	res := r.db.WithContext(ctx).Model(&model.User{}).Where("pub_id = ?", pubID).Update("handle", handle)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
