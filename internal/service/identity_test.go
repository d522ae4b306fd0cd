package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/d60-Lab/gymsocial/internal/model"
	"github.com/d60-Lab/gymsocial/pkg/apperr"
)

// mockUserRepository 手写桩，按字段配置返回值
type mockUserRepository struct {
	byHandle map[string]*model.User
	byAnon   map[string]*model.User
	err      error
}

func (m *mockUserRepository) Create(context.Context, *model.User) error { return nil }
func (m *mockUserRepository) GetByPubID(_ context.Context, id string) (*model.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, u := range m.byHandle {
		if u.PubID == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}
func (m *mockUserRepository) GetByHandle(_ context.Context, h string) (*model.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	if u, ok := m.byHandle[h]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (m *mockUserRepository) GetByAnonPubID(_ context.Context, id string) (*model.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	if u, ok := m.byAnon[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (m *mockUserRepository) ListByPubIDs(context.Context, []string) ([]*model.User, error) {
	return nil, nil
}
func (m *mockUserRepository) UpdateHandle(context.Context, string, string) error { return nil }

func newMockUsers() *mockUserRepository {
	alice := &model.User{PubID: "p-alice", AnonPubID: "~a-alice", Handle: "alice"}
	return &mockUserRepository{
		byHandle: map[string]*model.User{"alice": alice},
		byAnon:   map[string]*model.User{"~a-alice": alice},
	}
}

func TestResolve_Me(t *testing.T) {
	r := NewIdentityResolver(newMockUsers())
	ctx := context.Background()

	_, err := r.Resolve(ctx, "me", nil)
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)

	spec, err := r.Resolve(ctx, "me", &Caller{PubID: "p-alice"})
	require.NoError(t, err)
	assert.Equal(t, "p-alice", spec.PubID)
	assert.True(t, spec.VerifyOK)
	assert.False(t, spec.SpecByAnon)
	require.NotNil(t, spec.IsSelf)
	assert.True(t, *spec.IsSelf)
}

func TestResolve_Handle(t *testing.T) {
	r := NewIdentityResolver(newMockUsers())
	ctx := context.Background()

	spec, err := r.Resolve(ctx, "@alice", nil)
	require.NoError(t, err)
	assert.Equal(t, "p-alice", spec.PubID)
	assert.True(t, spec.VerifyOK)
	assert.Nil(t, spec.IsSelf)

	_, err = r.Resolve(ctx, "@ghost_handle_that_does_not_exist", nil)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestResolve_Anon(t *testing.T) {
	r := NewIdentityResolver(newMockUsers())
	ctx := context.Background()

	spec, err := r.Resolve(ctx, "~a-alice", nil)
	require.NoError(t, err)
	assert.Equal(t, "p-alice", spec.PubID)
	assert.Equal(t, "~a-alice", spec.AnonPubID)
	assert.True(t, spec.SpecByAnon)
	assert.ErrorIs(t, RejectIfSpecifiedByAnon(spec), apperr.ErrForbidden)

	_, err = r.Resolve(ctx, "~nonexistent_anon_id", nil)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestResolve_PassthroughIsUnverified(t *testing.T) {
	r := NewIdentityResolver(newMockUsers())
	ctx := context.Background()

	spec, err := r.Resolve(ctx, "p-unknown", nil)
	require.NoError(t, err)
	assert.Equal(t, "p-unknown", spec.PubID)
	assert.False(t, spec.VerifyOK)
	assert.NoError(t, RejectIfSpecifiedByAnon(spec))

	_, err = r.MustExist(ctx, spec)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = r.Resolve(ctx, "", nil)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestResolve_StoreFailureIsFatal(t *testing.T) {
	users := newMockUsers()
	users.err = errors.New("connection reset")
	r := NewIdentityResolver(users)

	_, err := r.Resolve(context.Background(), "@alice", nil)
	assert.ErrorIs(t, err, apperr.ErrFatal)
}
