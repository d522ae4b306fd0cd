package model

import "time"

// User 用户主表。PubID 与 AnonPubID 创建后不再变化，Handle 可由本人修改。
type User struct {
	PubID     string `gorm:"primaryKey;type:varchar(64)"                json:"pub_id"`
	AnonPubID string `gorm:"type:varchar(64);uniqueIndex;not null"      json:"anon_pub_id"`
	Handle    string `gorm:"type:varchar(64);uniqueIndex;not null"      json:"handle"`

	DisplayName   string     `gorm:"type:varchar(100)" json:"display_name"`
	Description   string     `gorm:"type:text"         json:"description"`
	IconKey       string     `gorm:"type:varchar(255)" json:"icon_key"`
	BirthDate     *time.Time `json:"birth_date"`
	Gender        string     `gorm:"type:varchar(20)"  json:"gender"`
	SkillLevel    string     `gorm:"type:varchar(20)"  json:"skill_level"`
	TrainingSince *time.Time `json:"training_since"`

	// 匿名人格的展示信息
	AnonDisplayName string `gorm:"type:varchar(100)" json:"anon_display_name"`
	AnonDescription string `gorm:"type:text"         json:"anon_description"`
	AnonIconKey     string `gorm:"type:varchar(255)" json:"anon_icon_key"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }

// AnonPrefix 匿名 ID 的固定前缀，与路径上的 ~ 记法一致
const AnonPrefix = "~"
