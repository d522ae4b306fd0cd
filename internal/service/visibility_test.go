package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/gymsocial/internal/model"
)

func patchReal(t *testing.T, f *fixture, user string, fields map[model.Field]model.Relship) {
	t.Helper()
	_, err := f.svc.Policies.PatchReal(context.Background(), user, PolicyPatch{Fields: fields})
	require.NoError(t, err)
}

func TestCanView_SelfAlwaysPasses(t *testing.T) {
	f := newFixture(t, "s")
	ctx := context.Background()
	all := map[model.Field]model.Relship{}
	for _, fld := range model.RealFields {
		all[fld] = model.RelshipNoOne
	}
	patchReal(t, f, "s", all)

	for _, fld := range model.RealFields {
		ok, err := f.svc.Evaluator.CanView(ctx, "s", Viewer{PubID: "s"}, fld, model.VariantReal)
		require.NoError(t, err)
		assert.True(t, ok, fld)
	}
	ok, err := f.svc.Evaluator.CanView(ctx, "s", Viewer{PubID: "s"}, model.FieldHandle, model.VariantAnon)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCanView_NoOneHidesFromEveryone(t *testing.T) {
	f := newFixture(t, "s", "v")
	ctx := context.Background()
	patchReal(t, f, "s", map[model.Field]model.Relship{model.FieldDescription: model.RelshipNoOne})
	_, err := f.svc.Relationships.Follow(ctx, "v", "s")
	require.NoError(t, err)
	_, err = f.svc.Relationships.Follow(ctx, "s", "v")
	require.NoError(t, err)

	for _, viewer := range []Viewer{{}, {PubID: "v"}, {PubID: "stranger"}} {
		ok, err := f.svc.Evaluator.CanView(ctx, "s", viewer, model.FieldDescription, model.VariantReal)
		require.NoError(t, err)
		assert.False(t, ok, viewer.PubID)
	}
}

func TestCanView_AnyoneShowsToAnonymousViewer(t *testing.T) {
	f := newFixture(t, "s")
	ok, err := f.svc.Evaluator.CanView(context.Background(), "s", Viewer{}, model.FieldDisplayName, model.VariantReal)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCanView_Relships(t *testing.T) {
	f := newFixture(t, "s", "fan", "followed", "mutual", "nobody")
	ctx := context.Background()
	patchReal(t, f, "s", map[model.Field]model.Relship{
		model.FieldTags:       model.RelshipFollowers,
		model.FieldIntents:    model.RelshipFollowing,
		model.FieldSkillLevel: model.RelshipFollowFollowers,
	})
	for _, e := range [][2]string{{"fan", "s"}, {"s", "followed"}, {"mutual", "s"}, {"s", "mutual"}} {
		_, err := f.svc.Relationships.Follow(ctx, e[0], e[1])
		require.NoError(t, err)
	}

	cases := []struct {
		viewer string
		field  model.Field
		want   bool
	}{
		{"fan", model.FieldTags, true},
		{"followed", model.FieldTags, false},
		{"fan", model.FieldIntents, false},
		{"followed", model.FieldIntents, true},
		{"fan", model.FieldSkillLevel, false},
		{"followed", model.FieldSkillLevel, false},
		{"mutual", model.FieldSkillLevel, true},
		{"nobody", model.FieldTags, false},
		{"", model.FieldTags, false},
	}
	for _, c := range cases {
		ok, err := f.svc.Evaluator.CanView(ctx, "s", Viewer{PubID: c.viewer}, c.field, model.VariantReal)
		require.NoError(t, err)
		assert.Equal(t, c.want, ok, "%s/%s", c.viewer, c.field)
	}
}

func TestCanView_BlockOverridesAnyone(t *testing.T) {
	f := newFixture(t, "s", "v")
	ctx := context.Background()
	require.NoError(t, f.svc.Relationships.Block(ctx, "v", "s"))

	ok, err := f.svc.Evaluator.CanView(ctx, "s", Viewer{PubID: "v"}, model.FieldDisplayName, model.VariantReal)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, f.svc.Relationships.Unblock(ctx, "v", "s"))
	ok, err = f.svc.Evaluator.CanView(ctx, "s", Viewer{PubID: "v"}, model.FieldDisplayName, model.VariantReal)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCanView_CompletelyHidden(t *testing.T) {
	f := newFixture(t, "s", "v")
	ctx := context.Background()
	hidden := true
	_, err := f.svc.Policies.PatchAnon(ctx, "s", PolicyPatch{CompletelyHidden: &hidden})
	require.NoError(t, err)

	res, err := f.svc.Evaluator.Visible(ctx, "s", Viewer{PubID: "v"}, model.VariantAnon,
		append(append([]model.Field{}, model.AnonFields...), model.FieldAnonIdentity)...)
	require.NoError(t, err)
	for fld, ok := range res {
		if fld == model.FieldAnonIdentity {
			assert.True(t, ok)
			continue
		}
		assert.False(t, ok, fld)
	}
}

func TestCanView_HandleNeedsRealProfileGate(t *testing.T) {
	f := newFixture(t, "s", "v")
	ctx := context.Background()
	_, err := f.svc.Policies.PatchAnon(ctx, "s", PolicyPatch{Fields: map[model.Field]model.Relship{
		model.FieldHandle: model.RelshipAnyone,
	}})
	require.NoError(t, err)

	ok, err := f.svc.Evaluator.CanView(ctx, "s", Viewer{PubID: "v"}, model.FieldHandle, model.VariantAnon)
	require.NoError(t, err)
	assert.False(t, ok, "view_real_profile defaults to no-one")

	_, err = f.svc.Policies.PatchAnon(ctx, "s", PolicyPatch{Fields: map[model.Field]model.Relship{
		model.FieldRealProfile: model.RelshipAnyone,
	}})
	require.NoError(t, err)
	ok, err = f.svc.Evaluator.CanView(ctx, "s", Viewer{PubID: "v"}, model.FieldHandle, model.VariantAnon)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCanView_UncoveredFieldIsHidden(t *testing.T) {
	f := newFixture(t, "s")
	ok, err := f.svc.Evaluator.CanView(context.Background(), "s", Viewer{}, model.FieldPosts, model.VariantAnon)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPolicyStore_ConcurrentFirstReadsCreateOneRow(t *testing.T) {
	f := newFixture(t, "s")
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.Policies.Real(ctx, "s")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}

	var cnt int64
	require.NoError(t, f.db.Model(&model.PrivacySetting{}).Where("user_id = ?", "s").Count(&cnt).Error)
	assert.EqualValues(t, 1, cnt)

	p, err := f.svc.Policies.Real(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, model.RelshipFollowers, p.BirthDate)
}

func TestPolicyStore_PatchRejectsUnknownFieldAndValue(t *testing.T) {
	f := newFixture(t, "s")
	ctx := context.Background()

	_, err := f.svc.Policies.PatchAnon(ctx, "s", PolicyPatch{Fields: map[model.Field]model.Relship{model.FieldPosts: model.RelshipAnyone}})
	assert.Error(t, err)
	_, err = f.svc.Policies.PatchReal(ctx, "s", PolicyPatch{Fields: map[model.Field]model.Relship{model.FieldTags: "public"}})
	assert.Error(t, err)
	hidden := true
	_, err = f.svc.Policies.PatchReal(ctx, "s", PolicyPatch{CompletelyHidden: &hidden})
	assert.Error(t, err)

	p, err := f.svc.Policies.PatchReal(ctx, "s", PolicyPatch{})
	require.NoError(t, err)
	assert.Equal(t, model.RelshipAnyone, p.Tags)
}
