package model

import "time"

// Relship 单个字段的公开范围
type Relship string

const (
	RelshipAnyone          Relship = "anyone"
	RelshipFollowers       Relship = "followers"        // 关注了本人的用户
	RelshipFollowing       Relship = "following"        // 本人关注的用户
	RelshipFollowFollowers Relship = "follow-followers" // 互相关注
	RelshipNoOne           Relship = "no-one"
)

// Valid 是否为线上协议允许的取值
func (r Relship) Valid() bool {
	switch r {
	case RelshipAnyone, RelshipFollowers, RelshipFollowing, RelshipFollowFollowers, RelshipNoOne:
		return true
	}
	return false
}

// Variant 隐私策略的两套人格
type Variant string

const (
	VariantReal Variant = "real"
	VariantAnon Variant = "anon"
)

// PrivacySetting 真实人格的隐私策略（每个用户一行，user_id 唯一）
type PrivacySetting struct {
	ID     uint   `gorm:"primaryKey"                                              json:"-"`
	UserID string `gorm:"type:varchar(64);not null;uniqueIndex:ux_privacy_user" json:"-"`

	DisplayName       Relship `gorm:"type:varchar(20);not null;default:'anyone'"    json:"display_name"`
	Description       Relship `gorm:"type:varchar(20);not null;default:'anyone'"    json:"description"`
	Tags              Relship `gorm:"type:varchar(20);not null;default:'anyone'"    json:"tags"`
	Icon              Relship `gorm:"type:varchar(20);not null;default:'anyone'"    json:"icon"`
	BirthDate         Relship `gorm:"type:varchar(20);not null;default:'followers'" json:"birth_date"`
	Age               Relship `gorm:"type:varchar(20);not null;default:'followers'" json:"age"`
	Generation        Relship `gorm:"type:varchar(20);not null;default:'anyone'"    json:"generation"`
	Gender            Relship `gorm:"type:varchar(20);not null;default:'followers'" json:"gender"`
	RegisteredSince   Relship `gorm:"type:varchar(20);not null;default:'anyone'"    json:"registered_since"`
	TrainingSince     Relship `gorm:"type:varchar(20);not null;default:'anyone'"    json:"training_since"`
	SkillLevel        Relship `gorm:"type:varchar(20);not null;default:'anyone'"    json:"skill_level"`
	Intents           Relship `gorm:"type:varchar(20);not null;default:'anyone'"    json:"intents"`
	IntentBodyparts   Relship `gorm:"type:varchar(20);not null;default:'anyone'"    json:"intent_bodyparts"`
	BelongingGyms     Relship `gorm:"type:varchar(20);not null;default:'followers'" json:"belonging_gyms"`
	Status            Relship `gorm:"type:varchar(20);not null;default:'followers'" json:"status"`
	StatusLocation    Relship `gorm:"type:varchar(20);not null;default:'followers'" json:"status_location"`
	StatusMenus       Relship `gorm:"type:varchar(20);not null;default:'followers'" json:"status_menus"`
	StatusHistories   Relship `gorm:"type:varchar(20);not null;default:'followers'" json:"status_histories"`
	Followings        Relship `gorm:"type:varchar(20);not null;default:'followers'" json:"followings"`
	FollowingsCount   Relship `gorm:"type:varchar(20);not null;default:'anyone'"    json:"followings_count"`
	Followers         Relship `gorm:"type:varchar(20);not null;default:'followers'" json:"followers"`
	FollowersCount    Relship `gorm:"type:varchar(20);not null;default:'anyone'"    json:"followers_count"`
	Posts             Relship `gorm:"type:varchar(20);not null;default:'followers'" json:"posts"`
	PostsLocation     Relship `gorm:"type:varchar(20);not null;default:'followers'" json:"posts_location"`
	PostsCount        Relship `gorm:"type:varchar(20);not null;default:'anyone'"    json:"posts_count"`
	BelongingDMGroups Relship `gorm:"column:belonging_dm_groups;type:varchar(20);not null;default:'followers'" json:"belonging_dm_groups"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (PrivacySetting) TableName() string { return "privacy_settings" }

// AnonPrivacySetting 匿名人格的隐私策略
type AnonPrivacySetting struct {
	ID     uint   `gorm:"primaryKey"                                                   json:"-"`
	UserID string `gorm:"type:varchar(64);not null;uniqueIndex:ux_anon_privacy_user" json:"-"`

	CompletelyHidden bool    `gorm:"not null;default:false"                         json:"completely_hidden"`
	ViewRealProfile  Relship `gorm:"type:varchar(20);not null;default:'no-one'"    json:"view_real_profile"`
	Handle           Relship `gorm:"type:varchar(20);not null;default:'no-one'"    json:"handle"`

	DisplayName     Relship `gorm:"type:varchar(20);not null;default:'anyone'"    json:"display_name"`
	Description     Relship `gorm:"type:varchar(20);not null;default:'anyone'"    json:"description"`
	Tags            Relship `gorm:"type:varchar(20);not null;default:'anyone'"    json:"tags"`
	Icon            Relship `gorm:"type:varchar(20);not null;default:'anyone'"    json:"icon"`
	BirthDate       Relship `gorm:"type:varchar(20);not null;default:'followers'" json:"birth_date"`
	Age             Relship `gorm:"type:varchar(20);not null;default:'followers'" json:"age"`
	Generation      Relship `gorm:"type:varchar(20);not null;default:'anyone'"    json:"generation"`
	Gender          Relship `gorm:"type:varchar(20);not null;default:'followers'" json:"gender"`
	RegisteredSince Relship `gorm:"type:varchar(20);not null;default:'anyone'"    json:"registered_since"`
	TrainingSince   Relship `gorm:"type:varchar(20);not null;default:'anyone'"    json:"training_since"`
	SkillLevel      Relship `gorm:"type:varchar(20);not null;default:'anyone'"    json:"skill_level"`
	Intents         Relship `gorm:"type:varchar(20);not null;default:'anyone'"    json:"intents"`
	IntentBodyparts Relship `gorm:"type:varchar(20);not null;default:'anyone'"    json:"intent_bodyparts"`
	Status          Relship `gorm:"type:varchar(20);not null;default:'followers'" json:"status"`
	StatusLocation  Relship `gorm:"type:varchar(20);not null;default:'followers'" json:"status_location"`
	Followings      Relship `gorm:"type:varchar(20);not null;default:'followers'" json:"followings"`
	FollowingsCount Relship `gorm:"type:varchar(20);not null;default:'anyone'"    json:"followings_count"`
	Followers       Relship `gorm:"type:varchar(20);not null;default:'followers'" json:"followers"`
	FollowersCount  Relship `gorm:"type:varchar(20);not null;default:'anyone'"    json:"followers_count"`
	PostsCount      Relship `gorm:"type:varchar(20);not null;default:'anyone'"    json:"posts_count"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (AnonPrivacySetting) TableName() string { return "anon_privacy_settings" }

// NewPrivacySetting 构造全默认值的真实人格策略
func NewPrivacySetting(userID string) *PrivacySetting {
	p := &PrivacySetting{UserID: userID}
	for _, f := range RealFields {
		*p.ref(f) = DefaultRelship(VariantReal, f)
	}
	return p
}

// NewAnonPrivacySetting 构造全默认值的匿名人格策略
func NewAnonPrivacySetting(userID string) *AnonPrivacySetting {
	p := &AnonPrivacySetting{UserID: userID}
	for _, f := range AnonFields {
		*p.ref(f) = DefaultRelship(VariantAnon, f)
	}
	return p
}

// Relship 返回字段设置；该人格不覆盖的字段返回 false
func (p *PrivacySetting) Relship(f Field) (Relship, bool) {
	r := p.ref(f)
	if r == nil {
		return "", false
	}
	return *r, true
}

// Relship 同上，匿名人格
func (p *AnonPrivacySetting) Relship(f Field) (Relship, bool) {
	r := p.ref(f)
	if r == nil {
		return "", false
	}
	return *r, true
}

func (p *PrivacySetting) ref(f Field) *Relship {
	switch f {
	case FieldDisplayName:
		return &p.DisplayName
	case FieldDescription:
		return &p.Description
	case FieldTags:
		return &p.Tags
	case FieldIcon:
		return &p.Icon
	case FieldBirthDate:
		return &p.BirthDate
	case FieldAge:
		return &p.Age
	case FieldGeneration:
		return &p.Generation
	case FieldGender:
		return &p.Gender
	case FieldRegisteredSince:
		return &p.RegisteredSince
	case FieldTrainingSince:
		return &p.TrainingSince
	case FieldSkillLevel:
		return &p.SkillLevel
	case FieldIntents:
		return &p.Intents
	case FieldIntentBodyparts:
		return &p.IntentBodyparts
	case FieldBelongingGyms:
		return &p.BelongingGyms
	case FieldStatus:
		return &p.Status
	case FieldStatusLocation:
		return &p.StatusLocation
	case FieldStatusMenus:
		return &p.StatusMenus
	case FieldStatusHistories:
		return &p.StatusHistories
	case FieldFollowings:
		return &p.Followings
	case FieldFollowingsCount:
		return &p.FollowingsCount
	case FieldFollowers:
		return &p.Followers
	case FieldFollowersCount:
		return &p.FollowersCount
	case FieldPosts:
		return &p.Posts
	case FieldPostsLocation:
		return &p.PostsLocation
	case FieldPostsCount:
		return &p.PostsCount
	case FieldBelongingDMGroups:
		return &p.BelongingDMGroups
	}
	return nil
}

func (p *AnonPrivacySetting) ref(f Field) *Relship {
	switch f {
	case FieldRealProfile:
		return &p.ViewRealProfile
	case FieldHandle:
		return &p.Handle
	case FieldDisplayName:
		return &p.DisplayName
	case FieldDescription:
		return &p.Description
	case FieldTags:
		return &p.Tags
	case FieldIcon:
		return &p.Icon
	case FieldBirthDate:
		return &p.BirthDate
	case FieldAge:
		return &p.Age
	case FieldGeneration:
		return &p.Generation
	case FieldGender:
		return &p.Gender
	case FieldRegisteredSince:
		return &p.RegisteredSince
	case FieldTrainingSince:
		return &p.TrainingSince
	case FieldSkillLevel:
		return &p.SkillLevel
	case FieldIntents:
		return &p.Intents
	case FieldIntentBodyparts:
		return &p.IntentBodyparts
	case FieldStatus:
		return &p.Status
	case FieldStatusLocation:
		return &p.StatusLocation
	case FieldFollowings:
		return &p.Followings
	case FieldFollowingsCount:
		return &p.FollowingsCount
	case FieldFollowers:
		return &p.Followers
	case FieldFollowersCount:
		return &p.FollowersCount
	case FieldPostsCount:
		return &p.PostsCount
	}
	return nil
}
