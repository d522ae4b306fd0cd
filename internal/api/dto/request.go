package dto

import "time"

type HandleRequest struct {
	Handle string `json:"handle" binding:"required,max=64"`
}

// FollowingsPatchRequest 批量关注/取关，元素为用户记法（@handle 或 pub id，不接受匿名 ID）
type FollowingsPatchRequest struct {
	Follow   []string `json:"follow"   binding:"max=100,dive,required"`
	Unfollow []string `json:"unfollow" binding:"max=100,dive,required"`
}

type BlocksPatchRequest struct {
	Block   []string `json:"block"   binding:"max=100,dive,required"`
	Unblock []string `json:"unblock" binding:"max=100,dive,required"`
}

type StartStatusRequest struct {
	GymID *string `json:"gym_id" binding:"omitempty,max=64"`
}

// NoticeListQuery GET /notices 查询参数，时间为 RFC3339
type NoticeListQuery struct {
	OnlyUnread bool       `form:"only_unread"`
	Igniter    string     `form:"igniter"`
	Before     *time.Time `form:"before" time_format:"2006-01-02T15:04:05Z07:00"`
	After      *time.Time `form:"after"  time_format:"2006-01-02T15:04:05Z07:00"`
	Limit      int        `form:"limit"  binding:"omitempty,min=1"`
}

type NoticesPatchRequest struct {
	NoticeIDs []string `json:"notice_ids" binding:"required,min=1,max=100,dive,required"`
}

type NoticePatchRequest struct {
	IsRead *bool `json:"is_read" binding:"required"`
}
