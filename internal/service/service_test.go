package service

import (
	"testing"

	"gorm.io/gorm"

	"github.com/d60-Lab/gymsocial/internal/cache"
	"github.com/d60-Lab/gymsocial/internal/repository"
	"github.com/d60-Lab/gymsocial/internal/testutil"
)

type fixture struct {
	db   *gorm.DB
	repo *repository.Repository
	svc  *Services
}

func newFixture(t *testing.T, users ...string) *fixture {
	t.Helper()
	db := testutil.NewSQLiteDB(t)
	for _, u := range users {
		testutil.SeedUser(t, db, u)
	}
	repo := repository.NewRepository(db)
	return &fixture{db: db, repo: repo, svc: NewServices(repo, cache.NewPolicyCache(nil, 0), nil)}
}

func strPtr(s string) *string { return &s }
