package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/gymsocial/internal/model"
)

func TestTrainingUsers_Sections(t *testing.T) {
	f := newFixture(t, "viewer", "friend", "masked", "stranger", "elsewhere")
	ctx := context.Background()
	gym, other := "gym-1", "gym-2"

	_, err := f.svc.Relationships.Follow(ctx, "viewer", "friend")
	require.NoError(t, err)
	_, err = f.svc.Policies.PatchAnon(ctx, "masked", PolicyPatch{Fields: map[model.Field]model.Relship{
		model.FieldStatusLocation: model.RelshipAnyone,
	}})
	require.NoError(t, err)

	for _, u := range []string{"viewer", "friend", "masked", "stranger"} {
		_, _, err := f.svc.Status.Start(ctx, u, &gym)
		require.NoError(t, err)
	}
	_, _, err = f.svc.Status.Start(ctx, "elsewhere", &other)
	require.NoError(t, err)

	res, err := f.svc.Gyms.TrainingUsers(ctx, gym, Viewer{PubID: "viewer"})
	require.NoError(t, err)
	assert.Equal(t, 3, res.TotalCount)

	require.Equal(t, 1, res.Sections.Public.Count)
	pub := res.Sections.Public.Users[0]
	assert.Equal(t, "friend", pub.UserPubID)
	assert.Equal(t, AnchorHandle, pub.AnchorType)
	assert.NotEmpty(t, pub.StatusPubID)
	require.NotNil(t, pub.Profile)
	assert.Equal(t, "friend", pub.Profile.PubID)

	require.Equal(t, 1, res.Sections.Anonymous.Count)
	anon := res.Sections.Anonymous.Users[0]
	assert.Empty(t, anon.UserPubID)
	assert.Empty(t, anon.StatusPubID)
	assert.Equal(t, AnchorAnonID, anon.AnchorType)
	assert.Equal(t, "~masked", anon.AnchorValue)
	require.NotNil(t, anon.Profile)
	assert.Empty(t, anon.Profile.PubID)
	assert.Empty(t, anon.Profile.Handle)
	require.NotNil(t, anon.Profile.DisplayName)
	assert.Equal(t, "anon-masked", *anon.Profile.DisplayName)

	assert.Equal(t, 1, res.Sections.Hidden.Count)
	assert.Empty(t, res.Sections.Hidden.Users)
}

func TestTrainingUsers_BlockHidesFromBothSections(t *testing.T) {
	f := newFixture(t, "viewer", "masked")
	ctx := context.Background()
	gym := "gym-1"

	_, err := f.svc.Policies.PatchAnon(ctx, "masked", PolicyPatch{Fields: map[model.Field]model.Relship{
		model.FieldStatusLocation: model.RelshipAnyone,
	}})
	require.NoError(t, err)
	_, _, err = f.svc.Status.Start(ctx, "masked", &gym)
	require.NoError(t, err)
	require.NoError(t, f.svc.Relationships.Block(ctx, "masked", "viewer"))

	res, err := f.svc.Gyms.TrainingUsers(ctx, gym, Viewer{PubID: "viewer"})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Sections.Anonymous.Count)
	assert.Equal(t, 1, res.Sections.Hidden.Count)
}

func TestStatus_CurrentFollowsPrivacy(t *testing.T) {
	f := newFixture(t, "a", "fan", "stranger")
	ctx := context.Background()
	gym := "gym-1"
	_, err := f.svc.Relationships.Follow(ctx, "fan", "a")
	require.NoError(t, err)

	byPub := &IdentitySpecifier{PubID: "a"}
	cur, err := f.svc.Status.Current(ctx, byPub, Viewer{PubID: "fan"})
	require.NoError(t, err)
	assert.Nil(t, cur, "never trained")

	st, _, err := f.svc.Status.Start(ctx, "a", &gym)
	require.NoError(t, err)

	cur, err = f.svc.Status.Current(ctx, byPub, Viewer{PubID: "stranger"})
	require.NoError(t, err)
	assert.Nil(t, cur)

	cur, err = f.svc.Status.Current(ctx, byPub, Viewer{PubID: "fan"})
	require.NoError(t, err)
	require.NotNil(t, cur)
	assert.Equal(t, st.PubID, cur.PubID)
	require.NotNil(t, cur.GymID)
	assert.Equal(t, gym, *cur.GymID)
	assert.Nil(t, cur.FinishedAt)

	anon := &IdentitySpecifier{PubID: "a", AnonPubID: "~a", VerifyOK: true, SpecByAnon: true}
	cur, err = f.svc.Status.Current(ctx, anon, Viewer{PubID: "fan"})
	require.NoError(t, err)
	require.NotNil(t, cur)
	assert.Empty(t, cur.PubID)

	_, err = f.svc.Policies.PatchReal(ctx, "a", PolicyPatch{Fields: map[model.Field]model.Relship{
		model.FieldStatusLocation: model.RelshipNoOne,
	}})
	require.NoError(t, err)
	require.NoError(t, f.svc.Status.Finish(ctx, "a"))

	cur, err = f.svc.Status.Current(ctx, byPub, Viewer{PubID: "fan"})
	require.NoError(t, err)
	require.NotNil(t, cur)
	assert.Nil(t, cur.GymID)
	assert.NotNil(t, cur.FinishedAt)
}
