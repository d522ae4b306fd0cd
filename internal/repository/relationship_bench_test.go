package repository

import (
	"context"
	"fmt"
	"math/rand"
	"testing"

	"github.com/d60-Lab/gymsocial/internal/testutil"
)

func BenchmarkFollowWrite_And_FanRedundancy(b *testing.B) {
	db := testutil.NewSQLiteDB(b)
	repo := NewRepository(db)
	ctx := context.Background()

	ids := make([]string, 1000)
	for i := range ids {
		ids[i] = fmt.Sprintf("u%04d", i)
		testutil.SeedUser(b, db, ids[i])
	}

	rng := rand.New(rand.NewSource(1))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		from := ids[rng.Intn(len(ids))]
		to := ids[rng.Intn(len(ids))]
		if from == to {
			continue
		}
		_ = repo.Transaction(ctx, func(tx *Repository) error {
			if _, err := tx.Follow.Create(ctx, from, to); err != nil {
				return err
			}
			return tx.Fan.Create(ctx, to, from)
		})
	}
}

func BenchmarkQueryFansAndFollowing(b *testing.B) {
	db := testutil.NewSQLiteDB(b)
	repo := NewRepository(db)
	ctx := context.Background()

	// u0 有 N 个粉丝，同时关注这 N 个用户
	const N = 5000
	testutil.SeedUser(b, db, "u0")
	for i := 1; i <= N; i++ {
		uid := fmt.Sprintf("u%v", i)
		testutil.SeedUser(b, db, uid)
		_, _ = repo.Follow.Create(ctx, uid, "u0")
		_ = repo.Fan.Create(ctx, "u0", uid)
		_, _ = repo.Follow.Create(ctx, "u0", uid)
		_ = repo.Fan.Create(ctx, uid, "u0")
	}

	b.ResetTimer()
	b.Run("ListFans", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _ = repo.Fan.ListFans(ctx, "u0", 0, 50)
		}
	})

	b.Run("ListAllFanIDs", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _ = repo.Fan.ListAllFanIDs(ctx, "u0")
		}
	})

	b.Run("ListFollowing", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _ = repo.Follow.ListFollowings(ctx, "u0", 0, 50)
		}
	})
}
