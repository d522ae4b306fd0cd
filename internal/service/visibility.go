package service

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/d60-Lab/gymsocial/internal/model"
	"github.com/d60-Lab/gymsocial/pkg/apperr"
)

// Viewer 查看方。PubID 为空表示未登录，只能满足 anyone。
type Viewer struct {
	PubID string
}

func (v Viewer) Authenticated() bool { return v.PubID != "" }

// ViewerOf 由调用方构造查看方，nil 即未登录
func ViewerOf(c *Caller) Viewer {
	if c == nil {
		return Viewer{}
	}
	return Viewer{PubID: c.PubID}
}

// Evaluator 按字段、按查看方判定主体资料是否可见。
// 不可见是正常的 false，不是错误；调用方决定隐藏存在还是省略字段。
type Evaluator struct {
	policies *PolicyStore
	graph    RelationshipGraph
	tracer   trace.Tracer
}

func NewEvaluator(policies *PolicyStore, graph RelationshipGraph) *Evaluator {
	return &Evaluator{policies: policies, graph: graph, tracer: otel.Tracer("gymsocial/visibility")}
}

// CanView 单字段判定
func (e *Evaluator) CanView(ctx context.Context, subject string, viewer Viewer, field model.Field, variant model.Variant) (bool, error) {
	res, err := e.Visible(ctx, subject, viewer, variant, field)
	if err != nil {
		return false, err
	}
	return res[field], nil
}

// Visible 批量判定，策略与关系只加载一次
func (e *Evaluator) Visible(ctx context.Context, subject string, viewer Viewer, variant model.Variant, fields ...model.Field) (map[model.Field]bool, error) {
	ctx, span := e.tracer.Start(ctx, "visibility.Visible", trace.WithAttributes(
		attribute.String("subject", subject),
		attribute.String("variant", string(variant)),
		attribute.Bool("viewer.authenticated", viewer.Authenticated()),
		attribute.Int("fields", len(fields)),
	))
	defer span.End()

	res := make(map[model.Field]bool, len(fields))
	if viewer.Authenticated() && viewer.PubID == subject {
		for _, f := range fields {
			res[f] = true
		}
		return res, nil
	}

	pol, err := e.policy(ctx, subject, variant)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "load policy")
		return nil, err
	}
	rel, err := e.edges(ctx, subject, viewer)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "load edges")
		return nil, err
	}
	for _, f := range fields {
		res[f] = pol.decide(f, rel)
	}
	return res, nil
}

// CanViewMany 同一主体、同一字段，对一批查看方判定
func (e *Evaluator) CanViewMany(ctx context.Context, subject string, viewers []string, field model.Field, variant model.Variant) (map[string]bool, error) {
	ctx, span := e.tracer.Start(ctx, "visibility.CanViewMany", trace.WithAttributes(
		attribute.String("subject", subject),
		attribute.String("variant", string(variant)),
		attribute.String("field", string(field)),
		attribute.Int("viewers", len(viewers)),
	))
	defer span.End()

	res := make(map[string]bool, len(viewers))
	if len(viewers) == 0 {
		return res, nil
	}
	pol, err := e.policy(ctx, subject, variant)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "load policy")
		return nil, err
	}
	for _, v := range viewers {
		viewer := Viewer{PubID: v}
		if viewer.Authenticated() && v == subject {
			res[v] = true
			continue
		}
		rel, err := e.edges(ctx, subject, viewer)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		res[v] = pol.decide(field, rel)
	}
	return res, nil
}

// edges 查看方与主体之间的关系快照
type edges struct {
	blocked        bool
	viewerFollows  bool // 查看方关注了主体
	subjectFollows bool // 主体关注了查看方
}

func (e *Evaluator) edges(ctx context.Context, subject string, viewer Viewer) (edges, error) {
	if !viewer.Authenticated() {
		return edges{}, nil
	}
	blocked, err := e.graph.IsBlockedEither(ctx, viewer.PubID, subject)
	if err != nil {
		return edges{}, apperr.Fatal(err, "check block %s <-> %s", viewer.PubID, subject)
	}
	if blocked {
		return edges{blocked: true}, nil
	}
	var rel edges
	if rel.viewerFollows, err = e.graph.IsFollowing(ctx, viewer.PubID, subject); err != nil {
		return edges{}, apperr.Fatal(err, "check follow %s -> %s", viewer.PubID, subject)
	}
	if rel.subjectFollows, err = e.graph.IsFollowing(ctx, subject, viewer.PubID); err != nil {
		return edges{}, apperr.Fatal(err, "check follow %s -> %s", subject, viewer.PubID)
	}
	return rel, nil
}

func (e *Evaluator) policy(ctx context.Context, subject string, variant model.Variant) (policy, error) {
	switch variant {
	case model.VariantReal:
		p, err := e.policies.Real(ctx, subject)
		if err != nil {
			return policy{}, err
		}
		return policy{variant: variant, src: p}, nil
	case model.VariantAnon:
		p, err := e.policies.Anon(ctx, subject)
		if err != nil {
			return policy{}, err
		}
		return policy{variant: variant, src: p, hidden: p.CompletelyHidden}, nil
	}
	return policy{}, apperr.BadRequest("PrivacySetting", "unknown variant "+string(variant))
}

type relshipSource interface {
	Relship(f model.Field) (model.Relship, bool)
}

type policy struct {
	variant model.Variant
	src     relshipSource
	hidden  bool
}

func (p policy) decide(f model.Field, rel edges) bool {
	if p.variant == model.VariantAnon && f == model.FieldAnonIdentity {
		return true
	}
	if rel.blocked || p.hidden {
		return false
	}
	if p.variant == model.VariantAnon && f.PertainsToRealProfile() && f != model.FieldRealProfile {
		if !p.allows(model.FieldRealProfile, rel) {
			return false
		}
	}
	return p.allows(f, rel)
}

func (p policy) allows(f model.Field, rel edges) bool {
	r, ok := p.src.Relship(f)
	if !ok {
		return false
	}
	switch r {
	case model.RelshipAnyone:
		return true
	case model.RelshipFollowers:
		return rel.viewerFollows
	case model.RelshipFollowing:
		return rel.subjectFollows
	case model.RelshipFollowFollowers:
		return rel.viewerFollows && rel.subjectFollows
	}
	return false
}
