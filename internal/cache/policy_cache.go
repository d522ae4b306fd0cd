package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/d60-Lab/gymsocial/internal/model"
	"github.com/d60-Lab/gymsocial/pkg/logger"
)

// PolicyCache 隐私策略的读缓存。client 为 nil 时所有操作都是空操作；
// Redis 出错只记日志，调用方回源数据库。
type PolicyCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewPolicyCache(client *redis.Client, ttl time.Duration) *PolicyCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &PolicyCache{client: client, ttl: ttl}
}

func key(variant model.Variant, userID string) string {
	return fmt.Sprintf("privacy:%s:%s", variant, userID)
}

func (c *PolicyCache) enabled() bool { return c != nil && c.client != nil }

// GetReal 命中返回 true
func (c *PolicyCache) GetReal(ctx context.Context, userID string) (*model.PrivacySetting, bool) {
	var p model.PrivacySetting
	if !c.get(ctx, model.VariantReal, userID, &p) {
		return nil, false
	}
	p.UserID = userID
	return &p, true
}

func (c *PolicyCache) GetAnon(ctx context.Context, userID string) (*model.AnonPrivacySetting, bool) {
	var p model.AnonPrivacySetting
	if !c.get(ctx, model.VariantAnon, userID, &p) {
		return nil, false
	}
	p.UserID = userID
	return &p, true
}

func (c *PolicyCache) SetReal(ctx context.Context, p *model.PrivacySetting) {
	c.set(ctx, model.VariantReal, p.UserID, p)
}

func (c *PolicyCache) SetAnon(ctx context.Context, p *model.AnonPrivacySetting) {
	c.set(ctx, model.VariantAnon, p.UserID, p)
}

// Invalidate 策略修改后删除缓存
func (c *PolicyCache) Invalidate(ctx context.Context, variant model.Variant, userID string) {
	if !c.enabled() {
		return
	}
	if err := c.client.Del(ctx, key(variant, userID)).Err(); err != nil {
		logger.Warn("privacy cache invalidate failed", zap.String("user_id", userID), zap.String("variant", string(variant)), zap.Error(err))
	}
}

func (c *PolicyCache) get(ctx context.Context, variant model.Variant, userID string, dst any) bool {
	if !c.enabled() {
		return false
	}
	data, err := c.client.Get(ctx, key(variant, userID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Warn("privacy cache get failed", zap.String("user_id", userID), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		logger.Warn("privacy cache payload corrupt", zap.String("user_id", userID), zap.Error(err))
		return false
	}
	return true
}

func (c *PolicyCache) set(ctx context.Context, variant model.Variant, userID string, v any) {
	if !c.enabled() {
		return
	}
	payload, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key(variant, userID), payload, c.ttl).Err(); err != nil {
		logger.Warn("privacy cache set failed", zap.String("user_id", userID), zap.Error(err))
	}
}
