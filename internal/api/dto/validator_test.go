package dto

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/gymsocial/internal/model"
)

func rel(s string) *model.Relship {
	r := model.Relship(s)
	return &r
}

func TestRelshipValidation(t *testing.T) {
	require.NoError(t, RegisterValidators())

	ok := &PrivacyPatchRequest{Posts: rel("no-one"), Tags: rel("follow-followers")}
	assert.NoError(t, binding.Validator.ValidateStruct(ok))

	bad := &PrivacyPatchRequest{Posts: rel("public")}
	assert.Error(t, binding.Validator.ValidateStruct(bad))

	anonBad := &AnonPrivacyPatchRequest{ViewRealProfile: rel("everyone")}
	assert.Error(t, binding.Validator.ValidateStruct(anonBad))
}

func TestToPatch(t *testing.T) {
	hidden := true
	p := (&AnonPrivacyPatchRequest{CompletelyHidden: &hidden, Handle: rel("followers")}).ToPatch()
	assert.Equal(t, map[model.Field]model.Relship{model.FieldHandle: model.RelshipFollowers}, map[model.Field]model.Relship(p.Fields))
	require.NotNil(t, p.CompletelyHidden)
	assert.True(t, *p.CompletelyHidden)

	empty := (&PrivacyPatchRequest{}).ToPatch()
	assert.Empty(t, empty.Fields)
}
