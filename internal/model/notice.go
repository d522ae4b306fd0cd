package model

import "time"

// NoticeKind 通知类型（开放枚举，新增类型需同时注册收件人来源）
type NoticeKind string

const (
	NoticeMatchingOfflineSameGym         NoticeKind = "matching/offline/same-gym"
	NoticeMatchingOnlineRecommend        NoticeKind = "matching/online/recommend"
	NoticeSocialFollowerAdded            NoticeKind = "social/follower-added"
	NoticeSocialFollowingPosted          NoticeKind = "social/following-posted"
	NoticeSocialFollowingStartedTraining NoticeKind = "social/following-started-training"
	NoticeSocialTrainingPartnerRequest   NoticeKind = "social/training-partner-request"
	NoticePostLiked                      NoticeKind = "post/liked"
	NoticePostCommented                  NoticeKind = "post/commented"
	NoticePostMentioned                  NoticeKind = "post/mentioned"
	NoticeDMPairInviteReceived           NoticeKind = "dm/pair/invite-received"
	NoticeDMPairRequestAccepted          NoticeKind = "dm/pair/request-accepted"
	NoticeDMPairReceived                 NoticeKind = "dm/pair/received"
	NoticeDMGroupInviteReceived          NoticeKind = "dm/group/invite-received"
	NoticeDMGroupRequestAccepted         NoticeKind = "dm/group/request-accepted"
	NoticeDMGroupRequestReceived         NoticeKind = "dm/group/request-received"
	NoticeDMGroupMemberAdded             NoticeKind = "dm/group/member-added"
	NoticeDMGroupReceived                NoticeKind = "dm/group/received"
	NoticeReportResolved                 NoticeKind = "report/resolved"
	NoticeReportRejected                 NoticeKind = "report/rejected"
	NoticeSystemWarning                  NoticeKind = "system/warning"
	NoticeSystemAnnouncement             NoticeKind = "system/announcement"
	NoticeOther                          NoticeKind = "other"
)

// Notice 一次触发事件。IgniterID 为空表示系统发出。
type Notice struct {
	ID        uint       `gorm:"primaryKey"`
	PubID     string     `gorm:"type:varchar(36);uniqueIndex;not null"`
	Kind      NoticeKind `gorm:"type:varchar(64);not null"`
	IgniterID *string    `gorm:"type:varchar(64);index"`
	CreatedAt time.Time  `gorm:"index"`

	Assignments []NoticeAssignment `gorm:"foreignKey:NoticeID"`
}

func (Notice) TableName() string { return "notices" }

// NoticeAssignment 通知到单个收件人的投递行。ShouldBeAnon 在创建时定格，之后不再重算。
type NoticeAssignment struct {
	ID           uint   `gorm:"primaryKey"`
	NoticeID     uint   `gorm:"not null;index:ux_notice_recipient,unique"`
	RecipientID  string `gorm:"type:varchar(64);not null;index:ux_notice_recipient,unique;index:idx_assignment_recipient"`
	IsRead       bool   `gorm:"not null;default:false"`
	ShouldBeAnon bool   `gorm:"not null;default:false"`
	CreatedAt    time.Time

	Notice *Notice `gorm:"foreignKey:NoticeID"`
}

func (NoticeAssignment) TableName() string { return "notice_assignments" }
