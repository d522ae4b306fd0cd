package model

import "time"

// TrainingStatus 训练状态。FinishedAt 为空且 GymID 非空表示用户当前在该场馆。
type TrainingStatus struct {
	PubID      string     `gorm:"primaryKey;type:varchar(36)"                  json:"pub_id"`
	UserID     string     `gorm:"type:varchar(64);not null;index:idx_status_user" json:"user_id"`
	GymID      *string    `gorm:"type:varchar(64);index:idx_status_gym_open"   json:"gym_id,omitempty"`
	StartedAt  time.Time  `gorm:"not null"                                     json:"started_at"`
	FinishedAt *time.Time `gorm:"index:idx_status_gym_open"                    json:"finished_at,omitempty"`
	CreatedAt  time.Time  `json:"-"`
	UpdatedAt  time.Time  `json:"-"`
}

func (TrainingStatus) TableName() string { return "training_statuses" }
