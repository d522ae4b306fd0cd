package model

// Field 可单独设置公开范围的资料项。取值即数据库列名与线上 JSON 键名。
type Field string

const (
	FieldDisplayName       Field = "display_name"
	FieldDescription       Field = "description"
	FieldTags              Field = "tags"
	FieldIcon              Field = "icon"
	FieldBirthDate         Field = "birth_date"
	FieldAge               Field = "age"
	FieldGeneration        Field = "generation"
	FieldGender            Field = "gender"
	FieldRegisteredSince   Field = "registered_since"
	FieldTrainingSince     Field = "training_since"
	FieldSkillLevel        Field = "skill_level"
	FieldIntents           Field = "intents"
	FieldIntentBodyparts   Field = "intent_bodyparts"
	FieldBelongingGyms     Field = "belonging_gyms"
	FieldStatus            Field = "status"
	FieldStatusLocation    Field = "status_location"
	FieldStatusMenus       Field = "status_menus"
	FieldStatusHistories   Field = "status_histories"
	FieldFollowings        Field = "followings"
	FieldFollowingsCount   Field = "followings_count"
	FieldFollowers         Field = "followers"
	FieldFollowersCount    Field = "followers_count"
	FieldPosts             Field = "posts"
	FieldPostsLocation     Field = "posts_location"
	FieldPostsCount        Field = "posts_count"
	FieldBelongingDMGroups Field = "belonging_dm_groups"

	// 仅匿名人格
	FieldHandle       Field = "handle"
	FieldRealProfile  Field = "view_real_profile"
	FieldAnonIdentity Field = "anon_pub_id" // 匿名身份本身，completely_hidden 也不隐藏
)

// RealFields 真实人格覆盖的字段
var RealFields = []Field{
	FieldDisplayName, FieldDescription, FieldTags, FieldIcon, FieldBirthDate, FieldAge,
	FieldGeneration, FieldGender, FieldRegisteredSince, FieldTrainingSince, FieldSkillLevel,
	FieldIntents, FieldIntentBodyparts, FieldBelongingGyms, FieldStatus, FieldStatusLocation,
	FieldStatusMenus, FieldStatusHistories, FieldFollowings, FieldFollowingsCount, FieldFollowers,
	FieldFollowersCount, FieldPosts, FieldPostsLocation, FieldPostsCount, FieldBelongingDMGroups,
}

// AnonFields 匿名人格覆盖的字段（不含 completely_hidden 开关与身份字段）
var AnonFields = []Field{
	FieldRealProfile, FieldHandle,
	FieldDisplayName, FieldDescription, FieldTags, FieldIcon, FieldBirthDate, FieldAge,
	FieldGeneration, FieldGender, FieldRegisteredSince, FieldTrainingSince, FieldSkillLevel,
	FieldIntents, FieldIntentBodyparts, FieldStatus, FieldStatusLocation, FieldFollowings,
	FieldFollowingsCount, FieldFollowers, FieldFollowersCount, FieldPostsCount,
}

var (
	realFieldSet = toSet(RealFields)
	anonFieldSet = toSet(AnonFields)
)

func toSet(fs []Field) map[Field]struct{} {
	m := make(map[Field]struct{}, len(fs))
	for _, f := range fs {
		m[f] = struct{}{}
	}
	return m
}

// Covers 该人格是否有这个字段的设置
func (v Variant) Covers(f Field) bool {
	switch v {
	case VariantReal:
		_, ok := realFieldSet[f]
		return ok
	case VariantAnon:
		_, ok := anonFieldSet[f]
		return ok
	}
	return false
}

// Fields 该人格覆盖的全部字段
func (v Variant) Fields() []Field {
	if v == VariantAnon {
		return AnonFields
	}
	return RealFields
}

// PertainsToRealProfile 匿名人格下会暴露真实身份的字段，需先通过 view_real_profile
func (f Field) PertainsToRealProfile() bool {
	return f == FieldRealProfile || f == FieldHandle
}

// sensitiveFields 默认仅对粉丝公开
var sensitiveFields = toSet([]Field{
	FieldBirthDate, FieldAge, FieldGender, FieldBelongingGyms, FieldStatus, FieldStatusLocation,
	FieldStatusMenus, FieldStatusHistories, FieldFollowings, FieldFollowers, FieldPosts,
	FieldPostsLocation, FieldBelongingDMGroups,
})

// DefaultRelship 从未设置过的字段的默认公开范围。
// 低敏感字段 anyone，高敏感字段 followers；匿名人格下能关联真实身份的字段 no-one。
func DefaultRelship(v Variant, f Field) Relship {
	if v == VariantAnon && f.PertainsToRealProfile() {
		return RelshipNoOne
	}
	if _, ok := sensitiveFields[f]; ok {
		return RelshipFollowers
	}
	return RelshipAnyone
}
