package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/d60-Lab/gymsocial/internal/model"
)

// NoticeFilter 收件箱查询条件
type NoticeFilter struct {
	OnlyUnread bool
	IgniterID  string
	Before     *time.Time
	After      *time.Time
	Limit      int
}

type NoticeRepository interface {
	// CreateWithAssignments 在同一事务内写入 Notice 与全部投递行
	CreateWithAssignments(ctx context.Context, notice *model.Notice, assignments []model.NoticeAssignment) error
	GetByPubID(ctx context.Context, pubID string) (*model.Notice, error)
	GetAssignment(ctx context.Context, noticeID uint, recipientID string) (*model.NoticeAssignment, error)
	SetRead(ctx context.Context, noticeID uint, recipientID string, isRead bool) error
	MarkRead(ctx context.Context, recipientID string, noticePubIDs []string) (int64, error)
	ListForRecipient(ctx context.Context, recipientID string, f NoticeFilter) ([]model.NoticeAssignment, error)
	CountUnread(ctx context.Context, recipientID string) (int64, error)
	CountNotices(ctx context.Context) (int64, error)
}

type noticeRepository struct{ db *gorm.DB }

func NewNoticeRepository(db *gorm.DB) NoticeRepository { return &noticeRepository{db: db} }

func (r *noticeRepository) CreateWithAssignments(ctx context.Context, notice *model.Notice, assignments []model.NoticeAssignment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Assignments").Create(notice).Error; err != nil {
			return err
		}
		for i := range assignments {
			assignments[i].NoticeID = notice.ID
		}
		return tx.CreateInBatches(&assignments, 500).Error
	})
}

func (r *noticeRepository) GetByPubID(ctx context.Context, pubID string) (*model.Notice, error) {
	var n model.Notice
	if err := r.db.WithContext(ctx).Where("pub_id = ?", pubID).First(&n).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *noticeRepository) GetAssignment(ctx context.Context, noticeID uint, recipientID string) (*model.NoticeAssignment, error) {
	var a model.NoticeAssignment
	err := r.db.WithContext(ctx).
		Where("notice_id = ? AND recipient_id = ?", noticeID, recipientID).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *noticeRepository) SetRead(ctx context.Context, noticeID uint, recipientID string, isRead bool) error {
	return r.db.WithContext(ctx).
		Model(&model.NoticeAssignment{}).
		Where("notice_id = ? AND recipient_id = ?", noticeID, recipientID).
		Update("is_read", isRead).Error
}

func (r *noticeRepository) MarkRead(ctx context.Context, recipientID string, noticePubIDs []string) (int64, error) {
	if len(noticePubIDs) == 0 {
		return 0, nil
	}
	db := r.db.WithContext(ctx)
	sub := db.Model(&model.Notice{}).Select("id").Where("pub_id IN ?", noticePubIDs)
	res := db.
		Model(&model.NoticeAssignment{}).
		Where("recipient_id = ? AND notice_id IN (?)", recipientID, sub).
		Update("is_read", true)
	return res.RowsAffected, res.Error
}

func (r *noticeRepository) ListForRecipient(ctx context.Context, recipientID string, f NoticeFilter) ([]model.NoticeAssignment, error) {
	q := r.db.WithContext(ctx).
		Model(&model.NoticeAssignment{}).
		Select("notice_assignments.*").
		Joins("JOIN notices ON notices.id = notice_assignments.notice_id").
		Where("notice_assignments.recipient_id = ?", recipientID)
	if f.OnlyUnread {
		q = q.Where("notice_assignments.is_read = ?", false)
	}
	if f.IgniterID != "" {
		q = q.Where("notices.igniter_id = ?", f.IgniterID)
	}
	if f.Before != nil {
		q = q.Where("notices.created_at < ?", *f.Before)
	}
	if f.After != nil {
		q = q.Where("notices.created_at > ?", *f.After)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	var res []model.NoticeAssignment
	err := q.Preload("Notice").
		Order("notices.created_at DESC").
		Order("notices.id DESC").
		Find(&res).Error
	return res, err
}

func (r *noticeRepository) CountUnread(ctx context.Context, recipientID string) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&model.NoticeAssignment{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Count(&cnt).Error
	return cnt, err
}

func (r *noticeRepository) CountNotices(ctx context.Context) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&model.Notice{}).Count(&cnt).Error
	return cnt, err
}
