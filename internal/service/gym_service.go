package service

import (
	"context"
	"time"

	"github.com/d60-Lab/gymsocial/internal/model"
	"github.com/d60-Lab/gymsocial/internal/repository"
	"github.com/d60-Lab/gymsocial/pkg/apperr"
)

// 场馆训练中用户的展示锚点
const (
	AnchorHandle = "handle"
	AnchorAnonID = "anon_id"
)

// TrainingUser 场馆里的一位训练中用户。匿名分区不带任何真实身份信息。
type TrainingUser struct {
	UserPubID   string       `json:"user_pub_id,omitempty"`
	StatusPubID string       `json:"status_pub_id,omitempty"`
	StartedAt   time.Time    `json:"started_at"`
	AnchorType  string       `json:"anchor_type"`
	AnchorValue string       `json:"anchor_value"`
	Profile     *ProfileView `json:"profile"`
}

type TrainingUserSection struct {
	Count int            `json:"count"`
	Users []TrainingUser `json:"users,omitempty"`
}

type GymTrainingUsers struct {
	GymID      string `json:"gym_pub_id"`
	TotalCount int    `json:"total_count"`
	Sections   struct {
		Public    TrainingUserSection `json:"public"`
		Anonymous TrainingUserSection `json:"anonymous"`
		Hidden    TrainingUserSection `json:"hidden"`
	} `json:"sections"`
}

// GymService 场馆维度的查询
type GymService struct {
	repo      *repository.Repository
	evaluator *Evaluator
	profiles  *ProfileService
}

func NewGymService(repo *repository.Repository, evaluator *Evaluator, profiles *ProfileService) *GymService {
	return &GymService{repo: repo, evaluator: evaluator, profiles: profiles}
}

// TrainingUsers 当前在场馆训练的其他用户，按查看方分为实名、匿名、隐藏三组。
// 真实人格的 status_location 可见则实名展示；否则匿名人格的 status_location 可见则匿名展示；都不可见只计数。
func (s *GymService) TrainingUsers(ctx context.Context, gymID string, viewer Viewer) (*GymTrainingUsers, error) {
	statuses, err := s.repo.Status.ListOpenAtGym(ctx, gymID, viewer.PubID)
	if err != nil {
		return nil, apperr.Fatal(err, "list training users of gym %s", gymID)
	}
	ids := make([]string, 0, len(statuses))
	for _, st := range statuses {
		ids = append(ids, st.UserID)
	}
	users, err := s.repo.User.ListByPubIDs(ctx, ids)
	if err != nil {
		return nil, apperr.Fatal(err, "load training users of gym %s", gymID)
	}
	byID := make(map[string]*model.User, len(users))
	for _, u := range users {
		byID[u.PubID] = u
	}

	res := &GymTrainingUsers{GymID: gymID}
	seen := make(map[string]struct{}, len(statuses))
	for _, st := range statuses {
		u, ok := byID[st.UserID]
		if !ok {
			continue
		}
		if _, dup := seen[u.PubID]; dup {
			continue
		}
		seen[u.PubID] = struct{}{}
		res.TotalCount++

		showReal, err := s.evaluator.CanView(ctx, u.PubID, viewer, model.FieldStatusLocation, model.VariantReal)
		if err != nil {
			return nil, err
		}
		if showReal {
			spec := &IdentitySpecifier{PubID: u.PubID, VerifyOK: true}
			profile, err := s.profiles.Get(ctx, spec, viewer)
			if err != nil {
				return nil, err
			}
			res.Sections.Public.Users = append(res.Sections.Public.Users, TrainingUser{
				UserPubID:   u.PubID,
				StatusPubID: st.PubID,
				StartedAt:   st.StartedAt,
				AnchorType:  AnchorHandle,
				AnchorValue: u.Handle,
				Profile:     profile,
			})
			continue
		}

		showAnon, err := s.evaluator.CanView(ctx, u.PubID, viewer, model.FieldStatusLocation, model.VariantAnon)
		if err != nil {
			return nil, err
		}
		if showAnon {
			spec := &IdentitySpecifier{PubID: u.PubID, AnonPubID: u.AnonPubID, VerifyOK: true, SpecByAnon: true}
			profile, err := s.profiles.Get(ctx, spec, viewer)
			if err != nil {
				return nil, err
			}
			res.Sections.Anonymous.Users = append(res.Sections.Anonymous.Users, TrainingUser{
				StartedAt:   st.StartedAt,
				AnchorType:  AnchorAnonID,
				AnchorValue: u.AnonPubID,
				Profile:     profile,
			})
			continue
		}
		res.Sections.Hidden.Count++
	}
	res.Sections.Public.Count = len(res.Sections.Public.Users)
	res.Sections.Anonymous.Count = len(res.Sections.Anonymous.Users)
	return res, nil
}
