package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"study_buddy_backend/internal/model"
	"study_buddy_backend/internal/util"
)

func TestGetDashboard(t *testing.T) {
	stores := newStores()
	user := createUser(t, stores, 500)
	now := time.Now()
	goal, tasks := seedGoalWithTasks(t, stores, user.ID, 4, 50, now)
	seedGoalWithTasks(t, stores, user.ID, 2, 50, now.AddDate(0, 0, -3))
	ctx := context.Background()

	svc := newTaskService(stores)
	for _, task := range tasks[:3] {
		if _, err := svc.SetTaskCompletion(ctx, task.ID, true); err != nil {
			t.Fatalf("complete: %v", err)
		}
	}
	for i := 0; i < 4; i++ {
		a := &model.Achievement{UserID: user.ID, Type: model.AchievementXP, Title: "a", Description: "d", Icon: "i", UnlockedAt: now.Add(time.Duration(i) * time.Minute)}
		if err := stores.Achievements.Create(ctx, a); err != nil {
			t.Fatalf("achievement: %v", err)
		}
	}
	if err := stores.Reminders.Create(ctx, &model.StudyReminder{UserID: user.ID, Title: "Daily", Type: model.ReminderDaily, IsActive: true}); err != nil {
		t.Fatalf("reminder: %v", err)
	}

	view, err := NewDashboardService(stores).GetDashboard(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetDashboard: %v", err)
	}
	if view.ActiveGoal == nil || view.ActiveGoal.ID != goal.ID {
		t.Fatalf("unexpected active goal: %+v", view.ActiveGoal)
	}
	if view.ActiveGoal.CompletedTasks != 3 || view.ActiveGoal.TotalTasks != 4 || view.ActiveGoal.CompletionPercentage != 75 {
		t.Fatalf("unexpected goal progress: %+v", view.ActiveGoal)
	}
	if len(view.TodayTasks) != 4 {
		t.Fatalf("expected 4 tasks today, got %d", len(view.TodayTasks))
	}
	for i, task := range view.TodayTasks {
		if task.OrderIndex != i {
			t.Fatalf("today's tasks not ordered: %+v", view.TodayTasks)
		}
	}
	if len(view.RecentAchievements) != 3 {
		t.Fatalf("expected 3 recent achievements, got %d", len(view.RecentAchievements))
	}
	if len(view.Reminders) != 1 {
		t.Fatalf("expected 1 reminder, got %d", len(view.Reminders))
	}
	want := model.DashboardStats{Streak: 3, TotalXP: 650, CompletedTasks: 3, TotalDailyTasks: 4, StudyTimeToday: 2.3}
	if view.Stats != want {
		t.Fatalf("stats=%+v want %+v", view.Stats, want)
	}
}

func TestGetDashboard_NoActiveGoal(t *testing.T) {
	stores := newStores()
	user := createUser(t, stores, 0)

	view, err := NewDashboardService(stores).GetDashboard(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("GetDashboard: %v", err)
	}
	if view.ActiveGoal != nil || len(view.TodayTasks) != 0 || view.TodayTasks == nil {
		t.Fatalf("unexpected view: %+v", view)
	}
	if view.Stats.StudyTimeToday != 0 {
		t.Fatalf("expected no study time, got %v", view.Stats.StudyTimeToday)
	}
}

func TestGetDashboard_UnknownUser(t *testing.T) {
	_, err := NewDashboardService(newStores()).GetDashboard(context.Background(), 5)
	if !errors.Is(err, util.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
