package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/d60-Lab/gymsocial/config"
	"github.com/d60-Lab/gymsocial/internal/model"
	"github.com/d60-Lab/gymsocial/internal/repository"
	"github.com/d60-Lab/gymsocial/pkg/apperr"
	"github.com/d60-Lab/gymsocial/pkg/logger"
)

var ErrUnknownNoticeKind = apperr.BadRequest("Notice", "unknown notice kind")

// PlannedRecipient 一个收件人及其定格的匿名标记
type PlannedRecipient struct {
	RecipientID  string
	ShouldBeAnon bool
}

// Planner 通知扇出：收集收件人、去重、冻结匿名标记、落库
type Planner struct {
	registry  *RecipientRegistry
	graph     RelationshipGraph
	evaluator *Evaluator
	repo      *repository.Repository
	tracer    trace.Tracer
}

func NewPlanner(registry *RecipientRegistry, graph RelationshipGraph, evaluator *Evaluator, repo *repository.Repository) *Planner {
	return &Planner{
		registry:  registry,
		graph:     graph,
		evaluator: evaluator,
		repo:      repo,
		tracer:    otel.Tracer("gymsocial/notice"),
	}
}

// Plan 各来源独立取数后拼接去重（保留首次出现顺序），剔除触发者本人、
// 与触发者存在屏蔽的用户以及不存在的用户，再逐个判定是否应匿名展示触发者。
func (p *Planner) Plan(ctx context.Context, igniter *string, kind model.NoticeKind, pc PlanContext) ([]PlannedRecipient, error) {
	ctx, span := p.tracer.Start(ctx, "notice.Plan", trace.WithAttributes(attribute.String("kind", string(kind))))
	defer span.End()

	sources, ok := p.registry.Lookup(kind)
	if !ok {
		return nil, ErrUnknownNoticeKind
	}

	var candidates []string
	for _, src := range sources {
		ids, err := src.Recipients(ctx, igniter, pc)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, src.Name())
			return nil, apperr.Fatal(err, "collect %s recipients for %s", src.Name(), kind)
		}
		candidates = append(candidates, ids...)
	}

	seen := make(map[string]struct{}, len(candidates))
	recipients := make([]string, 0, len(candidates))
	for _, id := range candidates {
		if id == "" || (igniter != nil && id == *igniter) {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		recipients = append(recipients, id)
	}

	recipients, err := p.dropMissing(ctx, recipients)
	if err != nil {
		return nil, err
	}
	if igniter != nil && len(recipients) > 0 {
		blocked, err := p.graph.BlockedAmong(ctx, *igniter, recipients)
		if err != nil {
			return nil, apperr.Fatal(err, "filter blocked recipients of %s", *igniter)
		}
		recipients = without(recipients, blocked)
	}
	span.SetAttributes(attribute.Int("recipients", len(recipients)))

	plan := make([]PlannedRecipient, len(recipients))
	if igniter == nil {
		for i, id := range recipients {
			plan[i] = PlannedRecipient{RecipientID: id}
		}
		return plan, nil
	}
	canSeeReal, err := p.evaluator.CanViewMany(ctx, *igniter, recipients, model.FieldRealProfile, model.VariantAnon)
	if err != nil {
		return nil, err
	}
	for i, id := range recipients {
		plan[i] = PlannedRecipient{RecipientID: id, ShouldBeAnon: !canSeeReal[id]}
	}
	return plan, nil
}

// Commit 空计划不建通知，返回 ""；否则一条 Notice 与全部投递行同事务写入
func (p *Planner) Commit(ctx context.Context, igniter *string, kind model.NoticeKind, plan []PlannedRecipient) (string, error) {
	if len(plan) == 0 {
		return "", nil
	}
	ctx, span := p.tracer.Start(ctx, "notice.Commit", trace.WithAttributes(
		attribute.String("kind", string(kind)),
		attribute.Int("recipients", len(plan)),
	))
	defer span.End()

	notice := &model.Notice{PubID: uuid.New().String(), Kind: kind, IgniterID: igniter}
	assignments := make([]model.NoticeAssignment, len(plan))
	for i, r := range plan {
		assignments[i] = model.NoticeAssignment{RecipientID: r.RecipientID, ShouldBeAnon: r.ShouldBeAnon}
	}
	if err := p.repo.Notice.CreateWithAssignments(ctx, notice, assignments); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "commit")
		return "", apperr.Fatal(err, "commit notice %s", kind)
	}
	logger.Debug("notice committed",
		zap.String("notice_id", notice.PubID),
		zap.String("kind", string(kind)),
		zap.Int("recipients", len(plan)),
	)
	return notice.PubID, nil
}

// Dispatch Plan + Commit
func (p *Planner) Dispatch(ctx context.Context, igniter *string, kind model.NoticeKind, pc PlanContext) (string, error) {
	plan, err := p.Plan(ctx, igniter, kind, pc)
	if err != nil {
		return "", err
	}
	return p.Commit(ctx, igniter, kind, plan)
}

func (p *Planner) dropMissing(ctx context.Context, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return ids, nil
	}
	users, err := p.repo.User.ListByPubIDs(ctx, ids)
	if err != nil {
		return nil, apperr.Fatal(err, "load recipients")
	}
	exists := make(map[string]struct{}, len(users))
	for _, u := range users {
		exists[u.PubID] = struct{}{}
	}
	res := ids[:0]
	for _, id := range ids {
		if _, ok := exists[id]; ok {
			res = append(res, id)
		}
	}
	return res, nil
}

func without(ids, drop []string) []string {
	if len(drop) == 0 {
		return ids
	}
	skip := make(map[string]struct{}, len(drop))
	for _, d := range drop {
		skip[d] = struct{}{}
	}
	res := ids[:0]
	for _, id := range ids {
		if _, ok := skip[id]; !ok {
			res = append(res, id)
		}
	}
	return res
}

// NoticeQuery 收件箱查询参数
type NoticeQuery struct {
	OnlyUnread bool
	IgniterID  string
	Before     *time.Time
	After      *time.Time
	Limit      int
}

// IgniterView 触发者的展示信息。匿名时只给匿名身份。
type IgniterView struct {
	PubID       string `json:"pub_id,omitempty"`
	AnonPubID   string `json:"anon_pub_id,omitempty"`
	Handle      string `json:"handle,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
	Description string `json:"description,omitempty"`
	SkillLevel  string `json:"skill_level,omitempty"`
}

type NoticeItem struct {
	PubID      string           `json:"pub_id"`
	IsRead     bool             `json:"is_read"`
	NotifiedAt time.Time        `json:"notified_at"`
	Kind       model.NoticeKind `json:"kind"`
	Igniter    *IgniterView     `json:"igniter_user,omitempty"`
}

// NoticeService 收件箱读取与已读状态
type NoticeService struct {
	repo         *repository.Repository
	defaultLimit int
	maxLimit     int
}

func NewNoticeService(repo *repository.Repository, cfg *config.NoticeConfig) *NoticeService {
	s := &NoticeService{repo: repo, defaultLimit: 20, maxLimit: 100}
	if cfg != nil {
		if cfg.DefaultLimit > 0 {
			s.defaultLimit = cfg.DefaultLimit
		}
		if cfg.MaxLimit > 0 {
			s.maxLimit = cfg.MaxLimit
		}
	}
	return s
}

func (s *NoticeService) List(ctx context.Context, recipientID string, q NoticeQuery) ([]NoticeItem, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = s.defaultLimit
	}
	if limit > s.maxLimit {
		limit = s.maxLimit
	}
	rows, err := s.repo.Notice.ListForRecipient(ctx, recipientID, repository.NoticeFilter{
		OnlyUnread: q.OnlyUnread,
		IgniterID:  q.IgniterID,
		Before:     q.Before,
		After:      q.After,
		Limit:      limit,
	})
	if err != nil {
		return nil, apperr.Fatal(err, "list notices of %s", recipientID)
	}

	var igniterIDs []string
	for _, a := range rows {
		if a.Notice != nil && a.Notice.IgniterID != nil {
			igniterIDs = append(igniterIDs, *a.Notice.IgniterID)
		}
	}
	users, err := s.repo.User.ListByPubIDs(ctx, igniterIDs)
	if err != nil {
		return nil, apperr.Fatal(err, "load notice igniters")
	}
	byID := make(map[string]*model.User, len(users))
	for _, u := range users {
		byID[u.PubID] = u
	}

	items := make([]NoticeItem, 0, len(rows))
	for _, a := range rows {
		if a.Notice == nil {
			continue
		}
		item := NoticeItem{PubID: a.Notice.PubID, IsRead: a.IsRead, NotifiedAt: a.Notice.CreatedAt, Kind: a.Notice.Kind}
		if a.Notice.IgniterID != nil {
			if u, ok := byID[*a.Notice.IgniterID]; ok {
				item.Igniter = igniterView(u, a.ShouldBeAnon)
			}
		}
		items = append(items, item)
	}
	return items, nil
}

func igniterView(u *model.User, anon bool) *IgniterView {
	if anon {
		return &IgniterView{AnonPubID: u.AnonPubID, DisplayName: u.AnonDisplayName, Description: u.AnonDescription}
	}
	return &IgniterView{
		PubID:       u.PubID,
		Handle:      u.Handle,
		DisplayName: u.DisplayName,
		Description: u.Description,
		SkillLevel:  u.SkillLevel,
	}
}

func (s *NoticeService) CountUnread(ctx context.Context, recipientID string) (int64, error) {
	n, err := s.repo.Notice.CountUnread(ctx, recipientID)
	if err != nil {
		return 0, apperr.Fatal(err, "count unread notices of %s", recipientID)
	}
	return n, nil
}

// SetRead 幂等；通知或投递行不存在时 NotFound
func (s *NoticeService) SetRead(ctx context.Context, recipientID, noticePubID string, isRead bool) error {
	n, err := s.repo.Notice.GetByPubID(ctx, noticePubID)
	if err != nil {
		return noticeLookupErr(err, noticePubID)
	}
	if _, err := s.repo.Notice.GetAssignment(ctx, n.ID, recipientID); err != nil {
		return noticeLookupErr(err, noticePubID)
	}
	if err := s.repo.Notice.SetRead(ctx, n.ID, recipientID, isRead); err != nil {
		return apperr.Fatal(err, "set read of notice %s", noticePubID)
	}
	return nil
}

// MarkRead 批量标记已读，不属于该收件人的 id 忽略
func (s *NoticeService) MarkRead(ctx context.Context, recipientID string, noticePubIDs []string) (int64, error) {
	n, err := s.repo.Notice.MarkRead(ctx, recipientID, noticePubIDs)
	if err != nil {
		return 0, apperr.Fatal(err, "mark notices read for %s", recipientID)
	}
	return n, nil
}

func noticeLookupErr(err error, pubID string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("Notice", pubID)
	}
	return apperr.Fatal(err, "lookup notice %s", pubID)
}
