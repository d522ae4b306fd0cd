package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/gymsocial/pkg/apperr"
)

func TestFollow_WritesFanAndNotifiesOnce(t *testing.T) {
	f := newFixture(t, "a", "b")
	ctx := context.Background()

	id, err := f.svc.Relationships.Follow(ctx, "a", "b")
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	id, err = f.svc.Relationships.Follow(ctx, "a", "b")
	require.NoError(t, err)
	assert.Empty(t, id, "repeat follow must not notify")

	fans, err := f.svc.Relationships.ListFans(ctx, "b", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, fans)
	following, err := f.svc.Relationships.ListFollowing(ctx, "a", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, following)

	n, err := f.svc.Notices.CountUnread(ctx, "b")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	_, err = f.svc.Relationships.Follow(ctx, "a", "a")
	assert.ErrorIs(t, err, apperr.ErrBadRequest)
}

func TestUnfollow_RemovesBothEdges(t *testing.T) {
	f := newFixture(t, "a", "b")
	ctx := context.Background()
	_, err := f.svc.Relationships.Follow(ctx, "a", "b")
	require.NoError(t, err)

	require.NoError(t, f.svc.Relationships.Unfollow(ctx, "a", "b"))
	ok, err := f.svc.Graph.IsFollowing(ctx, "a", "b")
	require.NoError(t, err)
	assert.False(t, ok)
	fans, err := f.svc.Graph.FollowerIDs(ctx, "b")
	require.NoError(t, err)
	assert.Empty(t, fans)
}

func TestBlock_SeversFollowsAndRejectsFollow(t *testing.T) {
	f := newFixture(t, "a", "b")
	ctx := context.Background()
	_, err := f.svc.Relationships.Follow(ctx, "a", "b")
	require.NoError(t, err)
	_, err = f.svc.Relationships.Follow(ctx, "b", "a")
	require.NoError(t, err)

	require.NoError(t, f.svc.Relationships.Block(ctx, "a", "b"))
	for _, pair := range [][2]string{{"a", "b"}, {"b", "a"}} {
		ok, err := f.svc.Graph.IsFollowing(ctx, pair[0], pair[1])
		require.NoError(t, err)
		assert.False(t, ok)
	}

	_, err = f.svc.Relationships.Follow(ctx, "b", "a")
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	blocked, err := f.svc.Relationships.ListBlocked(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, blocked)

	assert.ErrorIs(t, f.svc.Relationships.Block(ctx, "a", "a"), apperr.ErrBadRequest)
}

func TestRequestPartner(t *testing.T) {
	f := newFixture(t, "a", "b", "c")
	ctx := context.Background()

	id, err := f.svc.Relationships.RequestPartner(ctx, "a", "b")
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	require.NoError(t, f.svc.Relationships.Block(ctx, "c", "a"))
	_, err = f.svc.Relationships.RequestPartner(ctx, "a", "c")
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	_, err = f.svc.Relationships.RequestPartner(ctx, "a", "a")
	assert.ErrorIs(t, err, apperr.ErrBadRequest)
}

func TestFollow_ConcurrentSamePairNotifiesOnce(t *testing.T) {
	f := newFixture(t, "a", "b")
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make([]error, 8)
	ids := make([]string, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ids[i], errs[i] = f.svc.Relationships.Follow(ctx, "a", "b")
		}(i)
	}
	wg.Wait()

	created := 0
	for i := range errs {
		require.NoError(t, errs[i])
		if ids[i] != "" {
			created++
		}
	}
	assert.Equal(t, 1, created)

	n, err := f.svc.Notices.CountUnread(ctx, "b")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}
