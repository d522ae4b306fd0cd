package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/d60-Lab/gymsocial/internal/model"
	"github.com/d60-Lab/gymsocial/internal/repository"
)

// PlanContext 扇出时的附加上下文
type PlanContext struct {
	// Targets 显式收件人（搭子请求、私信、审核结果等）
	Targets []string
	// GymID 地点类事件的场馆；为空时取触发者当前训练所在场馆
	GymID string
}

// RecipientSource 一种收件人来源
type RecipientSource interface {
	Name() string
	Recipients(ctx context.Context, igniter *string, pc PlanContext) ([]string, error)
}

// FollowersOfIgniter 关注了触发者的所有用户
type FollowersOfIgniter struct {
	Graph RelationshipGraph
}

func (FollowersOfIgniter) Name() string { return "followers" }

func (s FollowersOfIgniter) Recipients(ctx context.Context, igniter *string, _ PlanContext) ([]string, error) {
	if igniter == nil {
		return nil, nil
	}
	return s.Graph.FollowerIDs(ctx, *igniter)
}

// ColocatedUsers 当前与触发者在同一场馆训练的其他用户
type ColocatedUsers struct {
	Status repository.StatusRepository
}

func (ColocatedUsers) Name() string { return "colocated" }

func (s ColocatedUsers) Recipients(ctx context.Context, igniter *string, pc PlanContext) ([]string, error) {
	if igniter == nil {
		return nil, nil
	}
	gymID := pc.GymID
	if gymID == "" {
		open, err := s.Status.GetOpen(ctx, *igniter)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		if open.GymID == nil {
			return nil, nil
		}
		gymID = *open.GymID
	}
	return s.Status.ListColocatedUserIDs(ctx, gymID, *igniter)
}

// ExplicitTargets 直接取 PlanContext.Targets
type ExplicitTargets struct{}

func (ExplicitTargets) Name() string { return "explicit" }

func (ExplicitTargets) Recipients(_ context.Context, _ *string, pc PlanContext) ([]string, error) {
	return pc.Targets, nil
}

// RecipientRegistry 通知类型到收件人来源的映射。先精确匹配，再按前缀（如 "dm/"）匹配。
type RecipientRegistry struct {
	exact  map[model.NoticeKind][]RecipientSource
	prefix map[string][]RecipientSource
}

func NewRecipientRegistry() *RecipientRegistry {
	return &RecipientRegistry{
		exact:  make(map[model.NoticeKind][]RecipientSource),
		prefix: make(map[string][]RecipientSource),
	}
}

func (r *RecipientRegistry) Register(kind model.NoticeKind, sources ...RecipientSource) {
	r.exact[kind] = sources
}

// RegisterPrefix prefix 需以 "/" 结尾
func (r *RecipientRegistry) RegisterPrefix(prefix string, sources ...RecipientSource) {
	r.prefix[prefix] = sources
}

func (r *RecipientRegistry) Lookup(kind model.NoticeKind) ([]RecipientSource, bool) {
	if s, ok := r.exact[kind]; ok {
		return s, true
	}
	k := string(kind)
	best := ""
	for p := range r.prefix {
		if strings.HasPrefix(k, p) && len(p) > len(best) {
			best = p
		}
	}
	if best == "" {
		return nil, false
	}
	return r.prefix[best], true
}

// DefaultRecipientRegistry 内置通知类型的收件人来源
func DefaultRecipientRegistry(graph RelationshipGraph, status repository.StatusRepository) *RecipientRegistry {
	followers := FollowersOfIgniter{Graph: graph}
	colocated := ColocatedUsers{Status: status}
	explicit := ExplicitTargets{}

	r := NewRecipientRegistry()
	r.Register(model.NoticeSocialFollowerAdded, explicit)
	r.Register(model.NoticeSocialFollowingPosted, followers)
	r.Register(model.NoticeSocialFollowingStartedTraining, followers, colocated)
	r.Register(model.NoticeMatchingOfflineSameGym, colocated)
	r.Register(model.NoticeMatchingOnlineRecommend, explicit)
	r.Register(model.NoticeSocialTrainingPartnerRequest, explicit)
	r.Register(model.NoticeOther, explicit)
	for _, p := range []string{"post/", "dm/", "report/", "system/"} {
		r.RegisterPrefix(p, explicit)
	}
	return r
}
