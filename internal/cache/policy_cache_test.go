package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/gymsocial/internal/model"
)

func newTestCache(t *testing.T) (*PolicyCache, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewPolicyCache(client, time.Minute), mr
}

func TestPolicyCache_RoundTripAndInvalidate(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	p := model.NewPrivacySetting("u1")
	p.Posts = model.RelshipNoOne
	c.SetReal(ctx, p)
	assert.True(t, mr.Exists("privacy:real:u1"))

	got, ok := c.GetReal(ctx, "u1")
	require.True(t, ok)
	assert.Equal(t, "u1", got.UserID)
	assert.Equal(t, model.RelshipNoOne, got.Posts)

	_, ok = c.GetAnon(ctx, "u1")
	assert.False(t, ok)

	c.Invalidate(ctx, model.VariantReal, "u1")
	_, ok = c.GetReal(ctx, "u1")
	assert.False(t, ok)
}

func TestPolicyCache_Expires(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	c.SetAnon(ctx, model.NewAnonPrivacySetting("u1"))
	mr.FastForward(2 * time.Minute)
	_, ok := c.GetAnon(ctx, "u1")
	assert.False(t, ok)
}

func TestPolicyCache_RedisDownIsMiss(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	c.SetReal(ctx, model.NewPrivacySetting("u1"))
	mr.Close()
	_, ok := c.GetReal(ctx, "u1")
	assert.False(t, ok)
}

func TestPolicyCache_NilIsNoop(t *testing.T) {
	var c *PolicyCache
	ctx := context.Background()
	c.SetReal(ctx, model.NewPrivacySetting("u1"))
	_, ok := c.GetReal(ctx, "u1")
	assert.False(t, ok)
	c.Invalidate(ctx, model.VariantReal, "u1")

	_, ok = NewPolicyCache(nil, 0).GetAnon(ctx, "u1")
	assert.False(t, ok)
}
