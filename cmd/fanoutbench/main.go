package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm/clause"

	"github.com/d60-Lab/gymsocial/config"
	"github.com/d60-Lab/gymsocial/internal/model"
	"github.com/d60-Lab/gymsocial/internal/repository"
	"github.com/d60-Lab/gymsocial/internal/service"
	"github.com/d60-Lab/gymsocial/pkg/database"
)

// 压测"开始训练"通知的收件人规划与落库：粉丝 + 同场馆用户
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	db, err := database.InitDB(cfg)
	if err != nil {
		panic(err)
	}

	FOLLOWERS := envInt("FOLLOWERS", 1000)
	COLOCATED := envInt("COLOCATED", 200)
	REPEAT := envInt("REPEAT", 50)
	const igniter, gym = "bench-igniter", "bench-gym"

	// 幂等造数：重复运行不会报唯一键冲突
	users := []model.User{{PubID: igniter, AnonPubID: model.AnonPrefix + igniter, Handle: igniter}}
	var follows []model.Follow
	var fans []model.Fan
	for i := 0; i < FOLLOWERS; i++ {
		id := fmt.Sprintf("bench-f-%05d", i)
		users = append(users, model.User{PubID: id, AnonPubID: model.AnonPrefix + id, Handle: id})
		follows = append(follows, model.Follow{ID: uuid.New().String(), FollowerID: id, FolloweeID: igniter})
		fans = append(fans, model.Fan{ID: uuid.New().String(), UserID: igniter, FanID: id})
	}
	var statuses []model.TrainingStatus
	now := time.Now()
	for i := 0; i < COLOCATED; i++ {
		id := fmt.Sprintf("bench-c-%05d", i)
		users = append(users, model.User{PubID: id, AnonPubID: model.AnonPrefix + id, Handle: id})
		g := gym
		statuses = append(statuses, model.TrainingStatus{PubID: uuid.New().String(), UserID: id, GymID: &g, StartedAt: now})
	}
	for _, rows := range []any{&users, &follows, &fans} {
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).CreateInBatches(rows, 500).Error; err != nil {
			panic(err)
		}
	}
	// 只保留本轮的进行中状态
	db.Model(&model.TrainingStatus{}).Where("gym_id = ? AND finished_at IS NULL", gym).Update("finished_at", now)
	if len(statuses) > 0 {
		if err := db.CreateInBatches(&statuses, 500).Error; err != nil {
			panic(err)
		}
	}

	repo := repository.NewRepository(db)
	svc := service.NewServices(repo, nil, cfg)
	ctx := context.Background()
	igniterID := igniter
	pc := service.PlanContext{GymID: gym}

	var recipients int
	plan := func(ctx context.Context) time.Duration {
		st := time.Now()
		res, err := svc.Planner.Plan(ctx, &igniterID, model.NoticeSocialFollowingStartedTraining, pc)
		if err != nil {
			panic(err)
		}
		recipients = len(res)
		return time.Since(st)
	}
	dispatch := func(ctx context.Context) time.Duration {
		st := time.Now()
		if _, err := svc.Planner.Dispatch(ctx, &igniterID, model.NoticeSocialFollowingStartedTraining, pc); err != nil {
			panic(err)
		}
		return time.Since(st)
	}

	plans := make([]time.Duration, 0, REPEAT)
	dispatches := make([]time.Duration, 0, REPEAT)
	for i := 0; i < REPEAT; i++ {
		plans = append(plans, plan(ctx))
	}
	for i := 0; i < REPEAT; i++ {
		dispatches = append(dispatches, dispatch(ctx))
	}

	var sum1, sum2 time.Duration
	for _, d := range plans {
		sum1 += d
	}
	for _, d := range dispatches {
		sum2 += d
	}
	fmt.Printf("FOLLOWERS=%d COLOCATED=%d REPEAT=%d recipients=%d\n", FOLLOWERS, COLOCATED, REPEAT, recipients)
	fmt.Printf("Plan only: avg=%v p95=%v p99=%v\n", sum1/time.Duration(len(plans)), pct(plans, 0.95), pct(plans, 0.99))
	fmt.Printf("Plan+commit: avg=%v p95=%v p99=%v\n", sum2/time.Duration(len(dispatches)), pct(dispatches, 0.95), pct(dispatches, 0.99))
}

func envInt(name string, def int) int {
	if s := os.Getenv(name); s != "" {
		if v, e := strconv.Atoi(s); e == nil && v > 0 {
			return v
		}
	}
	return def
}

func pct(vs []time.Duration, p float64) time.Duration {
	xs := append([]time.Duration(nil), vs...)
	sort.Slice(xs, func(i, j int) bool { return xs[i] < xs[j] })
	k := int(float64(len(xs)) * p)
	if k < 0 {
		k = 0
	}
	if k >= len(xs) {
		k = len(xs) - 1
	}
	return xs[k]
}
