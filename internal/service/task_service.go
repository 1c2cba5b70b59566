package service

import (
	"context"
	"errors"
	"time"

	"study_buddy_backend/internal/model"
	"study_buddy_backend/internal/repository"
	"study_buddy_backend/internal/util"
	"study_buddy_backend/pkg/logger"

	"go.uber.org/zap"
)

type TaskService struct {
	users        repository.UserStore
	goals        repository.GoalStore
	tasks        repository.TaskStore
	achievements *AchievementService
	now          func() time.Time
}

func NewTaskService(stores repository.Stores, achievements *AchievementService) *TaskService {
	return &TaskService{
		users:        stores.Users,
		goals:        stores.Goals,
		tasks:        stores.Tasks,
		achievements: achievements,
		now:          time.Now,
	}
}

// dayBounds returns local midnight of t's day and the following midnight.
func dayBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}

// SetTaskCompletion flips a task's completion flag. Completing credits the
// owner with the task's XP every time and then evaluates achievement rules;
// un-completing never takes XP away. The goal's cached progress is refreshed
// on every call.
func (s *TaskService) SetTaskCompletion(ctx context.Context, taskID uint, completed bool) (*model.StudyTask, error) {
	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, util.ErrTaskNotFound
		}
		return nil, err
	}

	now := s.now()
	task.SetCompleted(completed, now)
	if err := s.tasks.UpdateCompletion(ctx, task); err != nil {
		return nil, err
	}

	goal, err := s.goals.FindByID(ctx, task.GoalID)
	if errors.Is(err, repository.ErrNotFound) {
		return task, nil
	}
	if err != nil {
		return nil, err
	}

	if err := s.refreshProgress(ctx, goal.ID); err != nil {
		return nil, err
	}

	if !completed {
		return task, nil
	}

	if err := s.users.AddXP(ctx, goal.UserID, task.XPReward); err != nil {
		return nil, err
	}

	snap, err := s.snapshot(ctx, goal.UserID, now)
	if err != nil {
		return nil, err
	}
	unlocked, err := s.achievements.Evaluate(ctx, snap)
	if err != nil {
		return nil, err
	}
	for _, a := range unlocked {
		logger.Log.Info("Achievement unlocked",
			zap.Uint("user_id", a.UserID),
			zap.String("title", a.Title))
	}
	return task, nil
}

func (s *TaskService) refreshProgress(ctx context.Context, goalID uint) error {
	tasks, err := s.tasks.FindByGoal(ctx, goalID)
	if err != nil {
		return err
	}
	progress := model.CompletionPercentage(model.CountCompleted(tasks), len(tasks))
	return s.goals.UpdateProgress(ctx, goalID, progress)
}

func (s *TaskService) snapshot(ctx context.Context, userID uint, now time.Time) (StatsSnapshot, error) {
	snap := StatsSnapshot{UserID: userID}

	from, to := dayBounds(now)
	today, err := s.tasks.FindScheduledBetween(ctx, userID, from, to)
	if err != nil {
		return snap, err
	}
	snap.DailyCompletedCount = model.CountCompleted(today)

	total, err := s.tasks.CountCompletedByUser(ctx, userID)
	if err != nil {
		return snap, err
	}
	snap.TotalCompletedTasks = int(total)

	goals, err := s.goals.CountCompletedByUser(ctx, userID)
	if err != nil {
		return snap, err
	}
	snap.CompletedGoals = int(goals)

	user, err := s.users.FindByID(ctx, userID)
	if err == nil {
		snap.TotalXP = user.TotalXP
		snap.Streak = user.Streak
	} else if !errors.Is(err, repository.ErrNotFound) {
		return snap, err
	}
	return snap, nil
}
