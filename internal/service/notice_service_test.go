package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/gymsocial/internal/model"
	"github.com/d60-Lab/gymsocial/pkg/apperr"
)

func recipientIDs(plan []PlannedRecipient) []string {
	ids := make([]string, len(plan))
	for i, p := range plan {
		ids[i] = p.RecipientID
	}
	return ids
}

func TestPlan_FollowersAndColocatedDeduped(t *testing.T) {
	f := newFixture(t, "ig", "A", "B", "C")
	ctx := context.Background()
	gym := "gym-1"

	for _, u := range []string{"A", "B"} {
		_, err := f.svc.Relationships.Follow(ctx, u, "ig")
		require.NoError(t, err)
	}
	for _, u := range []string{"B", "C"} {
		_, _, err := f.svc.Status.Start(ctx, u, &gym)
		require.NoError(t, err)
	}

	plan, err := f.svc.Planner.Plan(ctx, strPtr("ig"), model.NoticeSocialFollowingStartedTraining, PlanContext{GymID: gym})
	require.NoError(t, err)
	assert.Len(t, plan, 3)
	assert.ElementsMatch(t, []string{"A", "B", "C"}, recipientIDs(plan))
}

func TestPlan_DropsIgniterBlockedAndMissing(t *testing.T) {
	f := newFixture(t, "ig", "A", "B")
	ctx := context.Background()
	require.NoError(t, f.svc.Relationships.Block(ctx, "B", "ig"))

	plan, err := f.svc.Planner.Plan(ctx, strPtr("ig"), model.NoticePostLiked, PlanContext{Targets: []string{"ig", "A", "B", "ghost", "A"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, recipientIDs(plan))
}

func TestPlan_UnknownKind(t *testing.T) {
	f := newFixture(t, "ig")
	_, err := f.svc.Planner.Plan(context.Background(), strPtr("ig"), "made/up", PlanContext{})
	assert.ErrorIs(t, err, ErrUnknownNoticeKind)
	assert.ErrorIs(t, err, apperr.ErrBadRequest)
}

func TestPlan_ShouldBeAnonFollowsRealProfileGate(t *testing.T) {
	f := newFixture(t, "ig", "fan", "stranger")
	ctx := context.Background()
	_, err := f.svc.Relationships.Follow(ctx, "fan", "ig")
	require.NoError(t, err)
	_, err = f.svc.Policies.PatchAnon(ctx, "ig", PolicyPatch{Fields: map[model.Field]model.Relship{
		model.FieldRealProfile: model.RelshipFollowers,
	}})
	require.NoError(t, err)

	plan, err := f.svc.Planner.Plan(ctx, strPtr("ig"), model.NoticePostMentioned, PlanContext{Targets: []string{"fan", "stranger"}})
	require.NoError(t, err)
	require.Len(t, plan, 2)
	assert.Equal(t, PlannedRecipient{RecipientID: "fan", ShouldBeAnon: false}, plan[0])
	assert.Equal(t, PlannedRecipient{RecipientID: "stranger", ShouldBeAnon: true}, plan[1])

	sys, err := f.svc.Planner.Plan(ctx, nil, model.NoticeSystemAnnouncement, PlanContext{Targets: []string{"stranger"}})
	require.NoError(t, err)
	assert.Equal(t, []PlannedRecipient{{RecipientID: "stranger"}}, sys)
}

func TestCommit_EmptyPlanCreatesNoNotice(t *testing.T) {
	f := newFixture(t, "ig")
	ctx := context.Background()

	id, err := f.svc.Planner.Commit(ctx, strPtr("ig"), model.NoticeSocialFollowingPosted, nil)
	require.NoError(t, err)
	assert.Empty(t, id)

	id, err = f.svc.Planner.Dispatch(ctx, strPtr("ig"), model.NoticeSocialFollowingPosted, PlanContext{})
	require.NoError(t, err)
	assert.Empty(t, id)

	n, err := f.repo.Notice.CountNotices(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestShouldBeAnon_FrozenAfterPolicyChange(t *testing.T) {
	f := newFixture(t, "ig", "r")
	ctx := context.Background()

	id, err := f.svc.Planner.Dispatch(ctx, strPtr("ig"), model.NoticePostLiked, PlanContext{Targets: []string{"r"}})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	_, err = f.svc.Policies.PatchAnon(ctx, "ig", PolicyPatch{Fields: map[model.Field]model.Relship{
		model.FieldRealProfile: model.RelshipAnyone,
	}})
	require.NoError(t, err)

	items, err := f.svc.Notices.List(ctx, "r", NoticeQuery{})
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.NotNil(t, items[0].Igniter)
	assert.Equal(t, "~ig", items[0].Igniter.AnonPubID)
	assert.Empty(t, items[0].Igniter.PubID)
	assert.Empty(t, items[0].Igniter.Handle)
}

func TestSetRead_FlipSequence(t *testing.T) {
	f := newFixture(t, "ig", "r")
	ctx := context.Background()
	id, err := f.svc.Planner.Dispatch(ctx, strPtr("ig"), model.NoticeSocialTrainingPartnerRequest, PlanContext{Targets: []string{"r"}})
	require.NoError(t, err)

	for _, v := range []bool{true, false, true, false, false} {
		require.NoError(t, f.svc.Notices.SetRead(ctx, "r", id, v))
	}
	items, err := f.svc.Notices.List(ctx, "r", NoticeQuery{})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.False(t, items[0].IsRead)

	assert.ErrorIs(t, f.svc.Notices.SetRead(ctx, "r", "missing", true), apperr.ErrNotFound)
	assert.ErrorIs(t, f.svc.Notices.SetRead(ctx, "ig", id, true), apperr.ErrNotFound)
}

func TestNoticeService_ListCountAndMarkRead(t *testing.T) {
	f := newFixture(t, "ig", "r")
	ctx := context.Background()

	var ids []string
	for i := 0; i < 3; i++ {
		id, err := f.svc.Planner.Dispatch(ctx, strPtr("ig"), model.NoticePostCommented, PlanContext{Targets: []string{"r"}})
		require.NoError(t, err)
		ids = append(ids, id)
	}
	n, err := f.svc.Notices.CountUnread(ctx, "r")
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	affected, err := f.svc.Notices.MarkRead(ctx, "r", ids[:2])
	require.NoError(t, err)
	assert.EqualValues(t, 2, affected)

	unread, err := f.svc.Notices.List(ctx, "r", NoticeQuery{OnlyUnread: true})
	require.NoError(t, err)
	require.Len(t, unread, 1)
	assert.Equal(t, ids[2], unread[0].PubID)

	limited, err := f.svc.Notices.List(ctx, "r", NoticeQuery{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	byIgniter, err := f.svc.Notices.List(ctx, "r", NoticeQuery{IgniterID: "someone-else"})
	require.NoError(t, err)
	assert.Empty(t, byIgniter)
}
