package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/d60-Lab/gymsocial/internal/cache"
	"github.com/d60-Lab/gymsocial/internal/model"
	"github.com/d60-Lab/gymsocial/pkg/apperr"
)

// stubPrivacyRepository 按顺序返回预设的 Get 结果，记录插入次数
type stubPrivacyRepository struct {
	getErrs   []error
	insertErr error
	gets      int
	inserts   int
}

func (m *stubPrivacyRepository) next() error {
	i := m.gets
	m.gets++
	if i < len(m.getErrs) {
		return m.getErrs[i]
	}
	return nil
}

func (m *stubPrivacyRepository) GetReal(_ context.Context, userID string) (*model.PrivacySetting, error) {
	if err := m.next(); err != nil {
		return nil, err
	}
	return model.NewPrivacySetting(userID), nil
}
func (m *stubPrivacyRepository) InsertRealIfAbsent(_ context.Context, _ *model.PrivacySetting) error {
	m.inserts++
	return m.insertErr
}
func (m *stubPrivacyRepository) UpdateReal(_ context.Context, _ string, _ map[string]any) error {
	return nil
}
func (m *stubPrivacyRepository) GetAnon(_ context.Context, userID string) (*model.AnonPrivacySetting, error) {
	if err := m.next(); err != nil {
		return nil, err
	}
	return model.NewAnonPrivacySetting(userID), nil
}
func (m *stubPrivacyRepository) InsertAnonIfAbsent(_ context.Context, _ *model.AnonPrivacySetting) error {
	m.inserts++
	return m.insertErr
}
func (m *stubPrivacyRepository) UpdateAnon(_ context.Context, _ string, _ map[string]any) error {
	return nil
}

func TestPolicyStore_Heal(t *testing.T) {
	notFound := gorm.ErrRecordNotFound
	connReset := errors.New("connection reset")

	cases := []struct {
		name        string
		getErrs     []error
		insertErr   error
		wantFatal   bool
		wantInserts int
	}{
		{name: "existing row", getErrs: nil, wantInserts: 0},
		{name: "missing then healed", getErrs: []error{notFound}, wantInserts: 1},
		{name: "insert raced with duplicate key", getErrs: []error{notFound}, insertErr: gorm.ErrDuplicatedKey, wantInserts: 1},
		{name: "reselect empty once then found", getErrs: []error{notFound, notFound}, wantInserts: 2},
		{name: "reselect empty twice", getErrs: []error{notFound, notFound, notFound}, wantFatal: true, wantInserts: 2},
		{name: "duplicate key and still empty", getErrs: []error{notFound, notFound, notFound}, insertErr: gorm.ErrDuplicatedKey, wantFatal: true, wantInserts: 2},
		{name: "load fails", getErrs: []error{connReset}, wantFatal: true, wantInserts: 0},
		{name: "insert fails", getErrs: []error{notFound}, insertErr: connReset, wantFatal: true, wantInserts: 1},
		{name: "reselect fails", getErrs: []error{notFound, connReset}, wantFatal: true, wantInserts: 1},
	}

	for _, tc := range cases {
		for _, variant := range []model.Variant{model.VariantReal, model.VariantAnon} {
			t.Run(tc.name+"/"+string(variant), func(t *testing.T) {
				repo := &stubPrivacyRepository{getErrs: tc.getErrs, insertErr: tc.insertErr}
				store := NewPolicyStore(repo, cache.NewPolicyCache(nil, 0))

				var err error
				if variant == model.VariantReal {
					var p *model.PrivacySetting
					p, err = store.Real(context.Background(), "u1")
					if err == nil {
						assert.Equal(t, "u1", p.UserID)
					}
				} else {
					var p *model.AnonPrivacySetting
					p, err = store.Anon(context.Background(), "u1")
					if err == nil {
						assert.Equal(t, "u1", p.UserID)
					}
				}

				if tc.wantFatal {
					require.Error(t, err)
					assert.ErrorIs(t, err, apperr.ErrFatal)
				} else {
					require.NoError(t, err)
				}
				assert.Equal(t, tc.wantInserts, repo.inserts)
			})
		}
	}
}
