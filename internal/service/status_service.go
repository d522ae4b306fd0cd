package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/d60-Lab/gymsocial/internal/model"
	"github.com/d60-Lab/gymsocial/internal/repository"
	"github.com/d60-Lab/gymsocial/pkg/apperr"
)

// StatusService 训练状态。开始训练会通知粉丝与同场馆用户。
type StatusService struct {
	repo      *repository.Repository
	planner   *Planner
	resolver  *IdentityResolver
	evaluator *Evaluator
	now       func() time.Time
}

func NewStatusService(repo *repository.Repository, planner *Planner, resolver *IdentityResolver, evaluator *Evaluator) *StatusService {
	return &StatusService{repo: repo, planner: planner, resolver: resolver, evaluator: evaluator, now: time.Now}
}

// CurrentStatus 最近一次训练。匿名寻址时不返回记录 id。
type CurrentStatus struct {
	PubID      string     `json:"history_pub_id,omitempty"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at"`
	GymID      *string    `json:"gym_id,omitempty"`
}

// Current 查看方能看到的最近一次训练；status 不可见或从未训练时返回 nil
func (s *StatusService) Current(ctx context.Context, spec *IdentitySpecifier, viewer Viewer) (*CurrentStatus, error) {
	u, err := s.resolver.MustExist(ctx, spec)
	if err != nil {
		return nil, err
	}
	variant := model.VariantReal
	if spec.SpecByAnon {
		variant = model.VariantAnon
	}
	vis, err := s.evaluator.Visible(ctx, u.PubID, viewer, variant, model.FieldStatus, model.FieldStatusLocation)
	if err != nil {
		return nil, err
	}
	if !vis[model.FieldStatus] {
		return nil, nil
	}

	st, err := s.repo.Status.GetLatest(ctx, u.PubID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Fatal(err, "load latest status of %s", u.PubID)
	}
	cur := &CurrentStatus{StartedAt: st.StartedAt, FinishedAt: st.FinishedAt}
	if variant == model.VariantReal {
		cur.PubID = st.PubID
	}
	if vis[model.FieldStatusLocation] {
		cur.GymID = st.GymID
	}
	return cur, nil
}

// Start 结束上一条未结束的训练后开始新的一条，返回状态与通知 id
func (s *StatusService) Start(ctx context.Context, userID string, gymID *string) (*model.TrainingStatus, string, error) {
	now := s.now()
	st := &model.TrainingStatus{PubID: uuid.New().String(), UserID: userID, GymID: gymID, StartedAt: now}
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if _, err := tx.Status.FinishOpen(ctx, userID, now); err != nil {
			return err
		}
		return tx.Status.Create(ctx, st)
	})
	if err != nil {
		return nil, "", apperr.Fatal(err, "start training of %s", userID)
	}

	pc := PlanContext{}
	if gymID != nil {
		pc.GymID = *gymID
	}
	noticeID, err := s.planner.Dispatch(ctx, &userID, model.NoticeSocialFollowingStartedTraining, pc)
	if err != nil {
		return st, "", err
	}
	return st, noticeID, nil
}

// Finish 没有进行中的训练时 NotFound
func (s *StatusService) Finish(ctx context.Context, userID string) error {
	n, err := s.repo.Status.FinishOpen(ctx, userID, s.now())
	if err != nil {
		return apperr.Fatal(err, "finish training of %s", userID)
	}
	if n == 0 {
		return apperr.NotFound("TrainingStatus", "no training in progress")
	}
	return nil
}
