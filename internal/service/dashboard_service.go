package service

import (
	"context"
	"errors"
	"time"

	"study_buddy_backend/internal/model"
	"study_buddy_backend/internal/repository"
	"study_buddy_backend/internal/util"

	"golang.org/x/sync/errgroup"
)

// minutesPerCompletedTask is the study time credited per task done today.
const minutesPerCompletedTask = 45

type DashboardService struct {
	stores repository.Stores
	now    func() time.Time
}

func NewDashboardService(stores repository.Stores) *DashboardService {
	return &DashboardService{stores: stores, now: time.Now}
}

// GetDashboard gathers everything the home screen shows in one call. The
// reads after the user lookup run concurrently.
func (s *DashboardService) GetDashboard(ctx context.Context, userID uint) (*model.DashboardView, error) {
	user, err := s.stores.Users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}

	view := &model.DashboardView{User: *user}
	from, to := dayBounds(s.now())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		goal, err := s.stores.Goals.FindActiveByUser(gctx, userID)
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		tasks, err := s.stores.Tasks.FindByGoal(gctx, goal.ID)
		if err != nil {
			return err
		}
		progress := model.NewGoalProgress(*goal, tasks)
		view.ActiveGoal = &progress
		return nil
	})
	g.Go(func() error {
		tasks, err := s.stores.Tasks.FindScheduledBetween(gctx, userID, from, to)
		view.TodayTasks = tasks
		return err
	})
	g.Go(func() error {
		recent, err := s.stores.Achievements.FindByUser(gctx, userID, 3)
		view.RecentAchievements = recent
		return err
	})
	g.Go(func() error {
		reminders, err := s.stores.Reminders.FindByUser(gctx, userID)
		view.Reminders = reminders
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if view.TodayTasks == nil {
		view.TodayTasks = []model.StudyTask{}
	}
	if view.RecentAchievements == nil {
		view.RecentAchievements = []model.Achievement{}
	}
	if view.Reminders == nil {
		view.Reminders = []model.StudyReminder{}
	}

	completedToday := model.CountCompleted(view.TodayTasks)
	view.Stats = model.DashboardStats{
		Streak:          user.Streak,
		TotalXP:         user.TotalXP,
		CompletedTasks:  completedToday,
		TotalDailyTasks: len(view.TodayTasks),
		StudyTimeToday:  util.RoundTo(float64(completedToday*minutesPerCompletedTask)/60, 1),
	}
	return view, nil
}
