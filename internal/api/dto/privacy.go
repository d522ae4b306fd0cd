package dto

import (
	"github.com/d60-Lab/gymsocial/internal/model"
	"github.com/d60-Lab/gymsocial/internal/service"
)

// PrivacyPatchRequest 真实人格策略的部分更新，未给出的字段不变
type PrivacyPatchRequest struct {
	DisplayName       *model.Relship `json:"display_name"        binding:"omitempty,relship"`
	Description       *model.Relship `json:"description"         binding:"omitempty,relship"`
	Tags              *model.Relship `json:"tags"                binding:"omitempty,relship"`
	Icon              *model.Relship `json:"icon"                binding:"omitempty,relship"`
	BirthDate         *model.Relship `json:"birth_date"          binding:"omitempty,relship"`
	Age               *model.Relship `json:"age"                 binding:"omitempty,relship"`
	Generation        *model.Relship `json:"generation"          binding:"omitempty,relship"`
	Gender            *model.Relship `json:"gender"              binding:"omitempty,relship"`
	RegisteredSince   *model.Relship `json:"registered_since"    binding:"omitempty,relship"`
	TrainingSince     *model.Relship `json:"training_since"      binding:"omitempty,relship"`
	SkillLevel        *model.Relship `json:"skill_level"         binding:"omitempty,relship"`
	Intents           *model.Relship `json:"intents"             binding:"omitempty,relship"`
	IntentBodyparts   *model.Relship `json:"intent_bodyparts"    binding:"omitempty,relship"`
	BelongingGyms     *model.Relship `json:"belonging_gyms"      binding:"omitempty,relship"`
	Status            *model.Relship `json:"status"              binding:"omitempty,relship"`
	StatusLocation    *model.Relship `json:"status_location"     binding:"omitempty,relship"`
	StatusMenus       *model.Relship `json:"status_menus"        binding:"omitempty,relship"`
	StatusHistories   *model.Relship `json:"status_histories"    binding:"omitempty,relship"`
	Followings        *model.Relship `json:"followings"          binding:"omitempty,relship"`
	FollowingsCount   *model.Relship `json:"followings_count"    binding:"omitempty,relship"`
	Followers         *model.Relship `json:"followers"           binding:"omitempty,relship"`
	FollowersCount    *model.Relship `json:"followers_count"     binding:"omitempty,relship"`
	Posts             *model.Relship `json:"posts"               binding:"omitempty,relship"`
	PostsLocation     *model.Relship `json:"posts_location"      binding:"omitempty,relship"`
	PostsCount        *model.Relship `json:"posts_count"         binding:"omitempty,relship"`
	BelongingDMGroups *model.Relship `json:"belonging_dm_groups" binding:"omitempty,relship"`
}

func (r *PrivacyPatchRequest) ToPatch() service.PolicyPatch {
	p := patchBuilder{}
	p.add(model.FieldDisplayName, r.DisplayName)
	p.add(model.FieldDescription, r.Description)
	p.add(model.FieldTags, r.Tags)
	p.add(model.FieldIcon, r.Icon)
	p.add(model.FieldBirthDate, r.BirthDate)
	p.add(model.FieldAge, r.Age)
	p.add(model.FieldGeneration, r.Generation)
	p.add(model.FieldGender, r.Gender)
	p.add(model.FieldRegisteredSince, r.RegisteredSince)
	p.add(model.FieldTrainingSince, r.TrainingSince)
	p.add(model.FieldSkillLevel, r.SkillLevel)
	p.add(model.FieldIntents, r.Intents)
	p.add(model.FieldIntentBodyparts, r.IntentBodyparts)
	p.add(model.FieldBelongingGyms, r.BelongingGyms)
	p.add(model.FieldStatus, r.Status)
	p.add(model.FieldStatusLocation, r.StatusLocation)
	p.add(model.FieldStatusMenus, r.StatusMenus)
	p.add(model.FieldStatusHistories, r.StatusHistories)
	p.add(model.FieldFollowings, r.Followings)
	p.add(model.FieldFollowingsCount, r.FollowingsCount)
	p.add(model.FieldFollowers, r.Followers)
	p.add(model.FieldFollowersCount, r.FollowersCount)
	p.add(model.FieldPosts, r.Posts)
	p.add(model.FieldPostsLocation, r.PostsLocation)
	p.add(model.FieldPostsCount, r.PostsCount)
	p.add(model.FieldBelongingDMGroups, r.BelongingDMGroups)
	return service.PolicyPatch{Fields: p}
}

// AnonPrivacyPatchRequest 匿名人格策略的部分更新
type AnonPrivacyPatchRequest struct {
	CompletelyHidden *bool          `json:"completely_hidden"`
	ViewRealProfile  *model.Relship `json:"view_real_profile" binding:"omitempty,relship"`
	Handle           *model.Relship `json:"handle"            binding:"omitempty,relship"`
	DisplayName      *model.Relship `json:"display_name"      binding:"omitempty,relship"`
	Description      *model.Relship `json:"description"       binding:"omitempty,relship"`
	Tags             *model.Relship `json:"tags"              binding:"omitempty,relship"`
	Icon             *model.Relship `json:"icon"              binding:"omitempty,relship"`
	BirthDate        *model.Relship `json:"birth_date"        binding:"omitempty,relship"`
	Age              *model.Relship `json:"age"               binding:"omitempty,relship"`
	Generation       *model.Relship `json:"generation"        binding:"omitempty,relship"`
	Gender           *model.Relship `json:"gender"            binding:"omitempty,relship"`
	RegisteredSince  *model.Relship `json:"registered_since"  binding:"omitempty,relship"`
	TrainingSince    *model.Relship `json:"training_since"    binding:"omitempty,relship"`
	SkillLevel       *model.Relship `json:"skill_level"       binding:"omitempty,relship"`
	Intents          *model.Relship `json:"intents"           binding:"omitempty,relship"`
	IntentBodyparts  *model.Relship `json:"intent_bodyparts"  binding:"omitempty,relship"`
	Status           *model.Relship `json:"status"            binding:"omitempty,relship"`
	StatusLocation   *model.Relship `json:"status_location"   binding:"omitempty,relship"`
	Followings       *model.Relship `json:"followings"        binding:"omitempty,relship"`
	FollowingsCount  *model.Relship `json:"followings_count"  binding:"omitempty,relship"`
	Followers        *model.Relship `json:"followers"         binding:"omitempty,relship"`
	FollowersCount   *model.Relship `json:"followers_count"   binding:"omitempty,relship"`
	PostsCount       *model.Relship `json:"posts_count"       binding:"omitempty,relship"`
}

func (r *AnonPrivacyPatchRequest) ToPatch() service.PolicyPatch {
	p := patchBuilder{}
	p.add(model.FieldRealProfile, r.ViewRealProfile)
	p.add(model.FieldHandle, r.Handle)
	p.add(model.FieldDisplayName, r.DisplayName)
	p.add(model.FieldDescription, r.Description)
	p.add(model.FieldTags, r.Tags)
	p.add(model.FieldIcon, r.Icon)
	p.add(model.FieldBirthDate, r.BirthDate)
	p.add(model.FieldAge, r.Age)
	p.add(model.FieldGeneration, r.Generation)
	p.add(model.FieldGender, r.Gender)
	p.add(model.FieldRegisteredSince, r.RegisteredSince)
	p.add(model.FieldTrainingSince, r.TrainingSince)
	p.add(model.FieldSkillLevel, r.SkillLevel)
	p.add(model.FieldIntents, r.Intents)
	p.add(model.FieldIntentBodyparts, r.IntentBodyparts)
	p.add(model.FieldStatus, r.Status)
	p.add(model.FieldStatusLocation, r.StatusLocation)
	p.add(model.FieldFollowings, r.Followings)
	p.add(model.FieldFollowingsCount, r.FollowingsCount)
	p.add(model.FieldFollowers, r.Followers)
	p.add(model.FieldFollowersCount, r.FollowersCount)
	p.add(model.FieldPostsCount, r.PostsCount)
	return service.PolicyPatch{Fields: p, CompletelyHidden: r.CompletelyHidden}
}

type patchBuilder map[model.Field]model.Relship

func (p patchBuilder) add(f model.Field, r *model.Relship) {
	if r != nil {
		p[f] = *r
	}
}
