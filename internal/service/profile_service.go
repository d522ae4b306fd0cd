package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/d60-Lab/gymsocial/internal/model"
	"github.com/d60-Lab/gymsocial/internal/repository"
	"github.com/d60-Lab/gymsocial/pkg/apperr"
)

// ProfileView 经可见性裁剪后的资料，不可见字段为空并省略
type ProfileView struct {
	PubID           string     `json:"pub_id,omitempty"`
	AnonPubID       string     `json:"anon_pub_id,omitempty"`
	Handle          string     `json:"handle,omitempty"`
	DisplayName     *string    `json:"display_name,omitempty"`
	Description     *string    `json:"description,omitempty"`
	IconKey         *string    `json:"icon_key,omitempty"`
	BirthDate       *time.Time `json:"birth_date,omitempty"`
	Age             *int       `json:"age,omitempty"`
	Generation      *int       `json:"generation,omitempty"`
	Gender          *string    `json:"gender,omitempty"`
	RegisteredSince *time.Time `json:"registered_since,omitempty"`
	TrainingSince   *time.Time `json:"training_since,omitempty"`
	SkillLevel      *string    `json:"skill_level,omitempty"`
	FollowingsCount *int64     `json:"followings_count,omitempty"`
	FollowersCount  *int64     `json:"followers_count,omitempty"`

	Status *StatusView `json:"status,omitempty"`
}

// StatusView 当前训练状态；场馆受 status_location 单独控制
type StatusView struct {
	StartedAt time.Time `json:"started_at"`
	GymID     *string   `json:"gym_id,omitempty"`
}

type ProfileService struct {
	repo      *repository.Repository
	resolver  *IdentityResolver
	evaluator *Evaluator
	now       func() time.Time
}

func NewProfileService(repo *repository.Repository, resolver *IdentityResolver, evaluator *Evaluator) *ProfileService {
	return &ProfileService{repo: repo, resolver: resolver, evaluator: evaluator, now: time.Now}
}

// Get 按寻址方式选择人格：通过匿名 ID 指定时只展示匿名人格
func (s *ProfileService) Get(ctx context.Context, spec *IdentitySpecifier, viewer Viewer) (*ProfileView, error) {
	u, err := s.resolver.MustExist(ctx, spec)
	if err != nil {
		return nil, err
	}
	variant := model.VariantReal
	if spec.SpecByAnon {
		variant = model.VariantAnon
	}
	fields := variant.Fields()
	if variant == model.VariantAnon {
		fields = append(append([]model.Field{}, fields...), model.FieldAnonIdentity)
	}
	vis, err := s.evaluator.Visible(ctx, u.PubID, viewer, variant, fields...)
	if err != nil {
		return nil, err
	}

	view := &ProfileView{}
	if variant == model.VariantAnon {
		if vis[model.FieldAnonIdentity] {
			view.AnonPubID = u.AnonPubID
		}
		if vis[model.FieldRealProfile] {
			view.PubID = u.PubID
		}
		if vis[model.FieldHandle] {
			view.Handle = u.Handle
		}
		setIf(vis[model.FieldDisplayName], &view.DisplayName, u.AnonDisplayName)
		setIf(vis[model.FieldDescription], &view.Description, u.AnonDescription)
		setIf(vis[model.FieldIcon], &view.IconKey, u.AnonIconKey)
	} else {
		view.PubID = u.PubID
		view.Handle = u.Handle
		setIf(vis[model.FieldDisplayName], &view.DisplayName, u.DisplayName)
		setIf(vis[model.FieldDescription], &view.Description, u.Description)
		setIf(vis[model.FieldIcon], &view.IconKey, u.IconKey)
	}

	if vis[model.FieldBirthDate] {
		view.BirthDate = u.BirthDate
	}
	if u.BirthDate != nil {
		age := ageAt(*u.BirthDate, s.now())
		if vis[model.FieldAge] {
			view.Age = &age
		}
		if vis[model.FieldGeneration] {
			gen := age / 10 * 10
			view.Generation = &gen
		}
	}
	setIf(vis[model.FieldGender], &view.Gender, u.Gender)
	setIf(vis[model.FieldSkillLevel], &view.SkillLevel, u.SkillLevel)
	if vis[model.FieldRegisteredSince] {
		t := u.CreatedAt
		view.RegisteredSince = &t
	}
	if vis[model.FieldTrainingSince] {
		view.TrainingSince = u.TrainingSince
	}

	if vis[model.FieldFollowingsCount] {
		n, err := s.repo.Follow.CountFollowings(ctx, u.PubID)
		if err != nil {
			return nil, apperr.Fatal(err, "count followings of %s", u.PubID)
		}
		view.FollowingsCount = &n
	}
	if vis[model.FieldFollowersCount] {
		n, err := s.repo.Fan.CountFans(ctx, u.PubID)
		if err != nil {
			return nil, apperr.Fatal(err, "count followers of %s", u.PubID)
		}
		view.FollowersCount = &n
	}
	if vis[model.FieldStatus] {
		st, err := s.repo.Status.GetOpen(ctx, u.PubID)
		switch {
		case err == nil:
			view.Status = &StatusView{StartedAt: st.StartedAt}
			if vis[model.FieldStatusLocation] {
				view.Status.GymID = st.GymID
			}
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return nil, apperr.Fatal(err, "load status of %s", u.PubID)
		}
	}
	return view, nil
}

// UpdateHandle 修改 handle，存储时去掉前导 @
func (s *ProfileService) UpdateHandle(ctx context.Context, pubID, handle string) error {
	handle = strings.TrimPrefix(strings.TrimSpace(handle), "@")
	if handle == "" {
		return apperr.BadRequest("User", "handle is empty")
	}
	if strings.HasPrefix(handle, model.AnonPrefix) || handle == TokenSelf {
		return apperr.BadRequest("User", "handle "+handle+" is reserved")
	}
	err := s.repo.User.UpdateHandle(ctx, pubID, handle)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperr.BadRequest("User", "handle "+handle+" is taken")
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.NotFound("User", pubID)
	}
	return apperr.Fatal(err, "update handle of %s", pubID)
}

func setIf(ok bool, dst **string, v string) {
	if ok && v != "" {
		*dst = &v
	}
}

func ageAt(birth, now time.Time) int {
	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	return age
}
