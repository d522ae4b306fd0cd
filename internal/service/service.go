package service

import (
	"github.com/d60-Lab/gymsocial/config"
	"github.com/d60-Lab/gymsocial/internal/cache"
	"github.com/d60-Lab/gymsocial/internal/repository"
)

// Services 聚合全部业务服务，供 handler 使用
type Services struct {
	Identity      *IdentityResolver
	Policies      *PolicyStore
	Evaluator     *Evaluator
	Graph         RelationshipGraph
	Planner       *Planner
	Notices       *NoticeService
	Relationships RelationshipService
	Profiles      *ProfileService
	Status        *StatusService
	Gyms          *GymService
}

func NewServices(repo *repository.Repository, policyCache *cache.PolicyCache, cfg *config.Config) *Services {
	var noticeCfg *config.NoticeConfig
	if cfg != nil {
		noticeCfg = &cfg.Notice
	}

	graph := NewRelationshipGraph(repo)
	identity := NewIdentityResolver(repo.User)
	policies := NewPolicyStore(repo.Privacy, policyCache)
	evaluator := NewEvaluator(policies, graph)
	planner := NewPlanner(DefaultRecipientRegistry(graph, repo.Status), graph, evaluator, repo)
	profiles := NewProfileService(repo, identity, evaluator)

	return &Services{
		Identity:      identity,
		Policies:      policies,
		Evaluator:     evaluator,
		Graph:         graph,
		Planner:       planner,
		Notices:       NewNoticeService(repo, noticeCfg),
		Relationships: NewRelationshipService(repo, graph, planner),
		Profiles:      profiles,
		Status:        NewStatusService(repo, planner, identity, evaluator),
		Gyms:          NewGymService(repo, evaluator, profiles),
	}
}
