package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/d60-Lab/gymsocial/internal/cache"
	"github.com/d60-Lab/gymsocial/internal/model"
	"github.com/d60-Lab/gymsocial/internal/repository"
	"github.com/d60-Lab/gymsocial/pkg/apperr"
	"github.com/d60-Lab/gymsocial/pkg/logger"
)

// PolicyPatch 字段级部分更新，未出现的字段保持不变
type PolicyPatch struct {
	Fields           map[model.Field]model.Relship
	CompletelyHidden *bool // 仅匿名人格
}

func (p PolicyPatch) empty() bool {
	return len(p.Fields) == 0 && p.CompletelyHidden == nil
}

// PolicyStore 隐私策略行的读取与自愈。
// 缺行时 INSERT ... ON CONFLICT DO NOTHING 写入默认行再重读，依赖 user_id 唯一索引保证只有一行。
type PolicyStore struct {
	repo  repository.PrivacyRepository
	cache *cache.PolicyCache
}

func NewPolicyStore(repo repository.PrivacyRepository, c *cache.PolicyCache) *PolicyStore {
	return &PolicyStore{repo: repo, cache: c}
}

func (s *PolicyStore) Real(ctx context.Context, userID string) (*model.PrivacySetting, error) {
	if p, ok := s.cache.GetReal(ctx, userID); ok {
		return p, nil
	}
	p, err := heal(ctx, userID, s.repo.GetReal, func(ctx context.Context) error {
		return s.repo.InsertRealIfAbsent(ctx, model.NewPrivacySetting(userID))
	})
	if err != nil {
		return nil, err
	}
	s.cache.SetReal(ctx, p)
	return p, nil
}

func (s *PolicyStore) Anon(ctx context.Context, userID string) (*model.AnonPrivacySetting, error) {
	if p, ok := s.cache.GetAnon(ctx, userID); ok {
		return p, nil
	}
	p, err := heal(ctx, userID, s.repo.GetAnon, func(ctx context.Context) error {
		return s.repo.InsertAnonIfAbsent(ctx, model.NewAnonPrivacySetting(userID))
	})
	if err != nil {
		return nil, err
	}
	s.cache.SetAnon(ctx, p)
	return p, nil
}

// heal 先读；缺行则插入默认行后重读。插入撞唯一键或重读为空时重试一次。
func heal[T any](
	ctx context.Context,
	userID string,
	get func(context.Context, string) (*T, error),
	insertDefault func(context.Context) error,
) (*T, error) {
	row, err := get(ctx, userID)
	if err == nil {
		return row, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Fatal(err, "load privacy policy of %s", userID)
	}

	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if err := insertDefault(ctx); err != nil {
			if !errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, apperr.Fatal(err, "insert default privacy policy of %s", userID)
			}
			lastErr = err
			logger.Warn("privacy policy insert raced", zap.String("user_id", userID), zap.Int("attempt", attempt))
		}
		row, err := get(ctx, userID)
		if err == nil {
			return row, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Fatal(err, "reselect privacy policy of %s", userID)
		}
		lastErr = err
	}
	return nil, apperr.Fatal(lastErr, "privacy policy of %s missing after heal", userID)
}

// PatchReal 修改真实人格策略，返回修改后的完整策略
func (s *PolicyStore) PatchReal(ctx context.Context, userID string, patch PolicyPatch) (*model.PrivacySetting, error) {
	if patch.CompletelyHidden != nil {
		return nil, apperr.BadRequest("PrivacySetting", "completely_hidden is only available for the anonymous profile")
	}
	updates, err := patchColumns(model.VariantReal, patch)
	if err != nil {
		return nil, err
	}
	if _, err := s.Real(ctx, userID); err != nil {
		return nil, err
	}
	if len(updates) > 0 {
		if err := s.repo.UpdateReal(ctx, userID, updates); err != nil {
			return nil, apperr.Fatal(err, "update privacy policy of %s", userID)
		}
		s.cache.Invalidate(ctx, model.VariantReal, userID)
	}
	return s.Real(ctx, userID)
}

// PatchAnon 修改匿名人格策略
func (s *PolicyStore) PatchAnon(ctx context.Context, userID string, patch PolicyPatch) (*model.AnonPrivacySetting, error) {
	updates, err := patchColumns(model.VariantAnon, patch)
	if err != nil {
		return nil, err
	}
	if patch.CompletelyHidden != nil {
		updates["completely_hidden"] = *patch.CompletelyHidden
	}
	if _, err := s.Anon(ctx, userID); err != nil {
		return nil, err
	}
	if len(updates) > 0 {
		if err := s.repo.UpdateAnon(ctx, userID, updates); err != nil {
			return nil, apperr.Fatal(err, "update anon privacy policy of %s", userID)
		}
		s.cache.Invalidate(ctx, model.VariantAnon, userID)
	}
	return s.Anon(ctx, userID)
}

func patchColumns(v model.Variant, patch PolicyPatch) (map[string]any, error) {
	updates := make(map[string]any, len(patch.Fields)+1)
	if patch.empty() {
		return updates, nil
	}
	for f, r := range patch.Fields {
		if !v.Covers(f) {
			return nil, apperr.BadRequest("PrivacySetting", "unknown field "+string(f))
		}
		if !r.Valid() {
			return nil, apperr.BadRequest("PrivacySetting", "invalid relship "+string(r)+" for "+string(f))
		}
		updates[string(f)] = string(r)
	}
	return updates, nil
}
