package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"study_buddy_backend/internal/model"
	"study_buddy_backend/internal/repository"
	"study_buddy_backend/internal/util"
	"study_buddy_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// InsightServerErrorMessage answers insight requests that fail for reasons
// other than a missing user or goal.
const InsightServerErrorMessage = "You're doing great! Keep up the excellent work with your studies."

// InsightCache stores one generated insight per user per day.
type InsightCache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// RedisInsightCache keeps insights in redis.
type RedisInsightCache struct {
	client *redis.Client
}

func NewRedisInsightCache(client *redis.Client) *RedisInsightCache {
	return &RedisInsightCache{client: client}
}

func (c *RedisInsightCache) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (c *RedisInsightCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

// InsightSource writes motivational text for a progress snapshot. The bool
// is false when the text is a fixed fallback.
type InsightSource interface {
	GenerateInsight(ctx context.Context, progress model.ProgressSnapshot) (string, bool)
}

type InsightService struct {
	users    repository.UserStore
	goals    repository.GoalStore
	tasks    repository.TaskStore
	insights InsightSource
	cache    InsightCache
	ttl      time.Duration
	now      func() time.Time
}

// NewInsightService builds the service; cache may be nil.
func NewInsightService(stores repository.Stores, insights InsightSource, cache InsightCache, ttl time.Duration) *InsightService {
	return &InsightService{
		users:    stores.Users,
		goals:    stores.Goals,
		tasks:    stores.Tasks,
		insights: insights,
		cache:    cache,
		ttl:      ttl,
		now:      time.Now,
	}
}

func insightKey(userID uint, day time.Time) string {
	return fmt.Sprintf("insight:%d:%s", userID, day.Format(util.DateFormat))
}

// GetInsight returns ErrActiveGoalNotFound both when the user is unknown
// and when they have no active goal.
func (s *InsightService) GetInsight(ctx context.Context, userID uint) (string, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return "", err
	}
	var goal *model.StudyGoal
	if user != nil {
		goal, err = s.goals.FindActiveByUser(ctx, userID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return "", err
		}
	}
	if user == nil || goal == nil {
		return "", util.ErrActiveGoalNotFound
	}

	now := s.now()
	key := insightKey(userID, now)
	if s.cache != nil {
		if cached, ok, err := s.cache.Get(ctx, key); err != nil {
			logger.Log.Warn("Insight cache read failed", zap.Error(err))
		} else if ok {
			return cached, nil
		}
	}

	tasks, err := s.tasks.FindByGoal(ctx, goal.ID)
	if err != nil {
		return "", err
	}
	snap := model.ProgressSnapshot{
		CurrentStreak:  user.Streak,
		CompletedTasks: model.CountCompleted(tasks),
		TotalTasks:     len(tasks),
		GoalTitle:      goal.Title,
		DaysIntoGoal:   int(now.Sub(goal.CreatedAt) / (24 * time.Hour)),
	}

	text, generated := s.insights.GenerateInsight(ctx, snap)
	if generated && s.cache != nil {
		if err := s.cache.Set(ctx, key, text, s.ttl); err != nil {
			logger.Log.Warn("Insight cache write failed", zap.Error(err))
		}
	}
	return text, nil
}
