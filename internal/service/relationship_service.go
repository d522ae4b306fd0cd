package service

import (
	"context"

	"github.com/d60-Lab/gymsocial/internal/model"
	"github.com/d60-Lab/gymsocial/internal/repository"
	"github.com/d60-Lab/gymsocial/pkg/apperr"
)

var (
	ErrFollowSelf  = apperr.BadRequest("Follow", "cannot follow self")
	ErrBlockSelf   = apperr.BadRequest("Block", "cannot block self")
	ErrPartnerSelf = apperr.BadRequest("PartnerRequest", "cannot send a partner request to self")
)

// RelationshipGraph 关注/屏蔽关系的统一查询入口，可见性判定与通知扇出共用
type RelationshipGraph interface {
	// IsFollowing from 关注了 to
	IsFollowing(ctx context.Context, from, to string) (bool, error)
	IsBlocked(ctx context.Context, blocker, blocked string) (bool, error)
	// IsBlockedEither 任一方向存在屏蔽
	IsBlockedEither(ctx context.Context, a, b string) (bool, error)
	// FollowerIDs 关注了 userID 的全部用户
	FollowerIDs(ctx context.Context, userID string) ([]string, error)
	// BlockedAmong candidates 中与 userID 任一方向存在屏蔽的用户
	BlockedAmong(ctx context.Context, userID string, candidates []string) ([]string, error)
}

type relationshipGraph struct {
	follows repository.FollowRepository
	fans    repository.FanRepository
	blocks  repository.BlockRepository
}

func NewRelationshipGraph(repo *repository.Repository) RelationshipGraph {
	return &relationshipGraph{follows: repo.Follow, fans: repo.Fan, blocks: repo.Block}
}

func (g *relationshipGraph) IsFollowing(ctx context.Context, from, to string) (bool, error) {
	return g.follows.Exists(ctx, from, to)
}

func (g *relationshipGraph) IsBlocked(ctx context.Context, blocker, blocked string) (bool, error) {
	return g.blocks.Exists(ctx, blocker, blocked)
}

func (g *relationshipGraph) IsBlockedEither(ctx context.Context, a, b string) (bool, error) {
	return g.blocks.ExistsEither(ctx, a, b)
}

// FollowerIDs 读粉丝冗余表，按 user_id 索引直接取
func (g *relationshipGraph) FollowerIDs(ctx context.Context, userID string) ([]string, error) {
	return g.fans.ListAllFanIDs(ctx, userID)
}

func (g *relationshipGraph) BlockedAmong(ctx context.Context, userID string, candidates []string) ([]string, error) {
	return g.blocks.BlockedAmong(ctx, userID, candidates)
}

// RelationshipService 关系链服务
type RelationshipService interface {
	// Follow 返回新建关注触发的通知 id；已关注时为空
	Follow(ctx context.Context, fromUserID, toUserID string) (string, error)
	Unfollow(ctx context.Context, fromUserID, toUserID string) error
	Block(ctx context.Context, blockerID, blockedID string) error
	Unblock(ctx context.Context, blockerID, blockedID string) error
	ListFollowing(ctx context.Context, userID string, page, pageSize int) ([]string, error)
	ListFans(ctx context.Context, userID string, page, pageSize int) ([]string, error)
	ListBlocked(ctx context.Context, userID string) ([]string, error)
	// RequestPartner 发送训练搭子请求，任一方向屏蔽时 Forbidden
	RequestPartner(ctx context.Context, fromUserID, toUserID string) (string, error)
}

type relationshipService struct {
	repo    *repository.Repository
	graph   RelationshipGraph
	planner *Planner
}

func NewRelationshipService(repo *repository.Repository, graph RelationshipGraph, planner *Planner) RelationshipService {
	return &relationshipService{repo: repo, graph: graph, planner: planner}
}

// Follow 关注与粉丝冗余在同一事务内写入
func (s *relationshipService) Follow(ctx context.Context, fromUserID, toUserID string) (string, error) {
	if fromUserID == toUserID {
		return "", ErrFollowSelf
	}
	if err := s.rejectBlocked(ctx, fromUserID, toUserID, "Follow"); err != nil {
		return "", err
	}

	created := false
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		ok, err := tx.Follow.Create(ctx, fromUserID, toUserID)
		if err != nil || !ok {
			return err
		}
		created = true
		return tx.Fan.Create(ctx, toUserID, fromUserID)
	})
	if err != nil {
		return "", apperr.Fatal(err, "follow %s -> %s", fromUserID, toUserID)
	}
	if !created || s.planner == nil {
		return "", nil
	}
	return s.planner.Dispatch(ctx, &fromUserID, model.NoticeSocialFollowerAdded, PlanContext{Targets: []string{toUserID}})
}

func (s *relationshipService) Unfollow(ctx context.Context, fromUserID, toUserID string) error {
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.Follow.Delete(ctx, fromUserID, toUserID); err != nil {
			return err
		}
		return tx.Fan.Delete(ctx, toUserID, fromUserID)
	})
	if err != nil {
		return apperr.Fatal(err, "unfollow %s -> %s", fromUserID, toUserID)
	}
	return nil
}

// Block 屏蔽同时解除双方的关注
func (s *relationshipService) Block(ctx context.Context, blockerID, blockedID string) error {
	if blockerID == blockedID {
		return ErrBlockSelf
	}
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.Block.Create(ctx, blockerID, blockedID); err != nil {
			return err
		}
		for _, pair := range [][2]string{{blockerID, blockedID}, {blockedID, blockerID}} {
			if err := tx.Follow.Delete(ctx, pair[0], pair[1]); err != nil {
				return err
			}
			if err := tx.Fan.Delete(ctx, pair[1], pair[0]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return apperr.Fatal(err, "block %s -> %s", blockerID, blockedID)
	}
	return nil
}

func (s *relationshipService) Unblock(ctx context.Context, blockerID, blockedID string) error {
	if err := s.repo.Block.Delete(ctx, blockerID, blockedID); err != nil {
		return apperr.Fatal(err, "unblock %s -> %s", blockerID, blockedID)
	}
	return nil
}

func (s *relationshipService) ListFollowing(ctx context.Context, userID string, page, pageSize int) ([]string, error) {
	offset, limit := pageWindow(page, pageSize)
	items, err := s.repo.Follow.ListFollowings(ctx, userID, offset, limit)
	if err != nil {
		return nil, apperr.Fatal(err, "list followings of %s", userID)
	}
	res := make([]string, len(items))
	for i, it := range items {
		res[i] = it.FolloweeID
	}
	return res, nil
}

func (s *relationshipService) ListFans(ctx context.Context, userID string, page, pageSize int) ([]string, error) {
	offset, limit := pageWindow(page, pageSize)
	items, err := s.repo.Fan.ListFans(ctx, userID, offset, limit)
	if err != nil {
		return nil, apperr.Fatal(err, "list fans of %s", userID)
	}
	res := make([]string, len(items))
	for i, it := range items {
		res[i] = it.FanID
	}
	return res, nil
}

func (s *relationshipService) ListBlocked(ctx context.Context, userID string) ([]string, error) {
	ids, err := s.repo.Block.ListBlocked(ctx, userID)
	if err != nil {
		return nil, apperr.Fatal(err, "list blocked of %s", userID)
	}
	return ids, nil
}

func (s *relationshipService) RequestPartner(ctx context.Context, fromUserID, toUserID string) (string, error) {
	if fromUserID == toUserID {
		return "", ErrPartnerSelf
	}
	if err := s.rejectBlocked(ctx, fromUserID, toUserID, "PartnerRequest"); err != nil {
		return "", err
	}
	if s.planner == nil {
		return "", nil
	}
	return s.planner.Dispatch(ctx, &fromUserID, model.NoticeSocialTrainingPartnerRequest, PlanContext{Targets: []string{toUserID}})
}

func (s *relationshipService) rejectBlocked(ctx context.Context, a, b, resource string) error {
	blocked, err := s.graph.IsBlockedEither(ctx, a, b)
	if err != nil {
		return apperr.Fatal(err, "check block %s <-> %s", a, b)
	}
	if blocked {
		return apperr.Forbidden(resource, "blocked")
	}
	return nil
}

func pageWindow(page, pageSize int) (offset, limit int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return (page - 1) * pageSize, pageSize
}
