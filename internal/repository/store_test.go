package repository_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"study_buddy_backend/internal/model"
	"study_buddy_backend/internal/repository"
	"study_buddy_backend/internal/repository/memory"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newSQLiteStores(t *testing.T) repository.Stores {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormlogger.Discard})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&model.User{}, &model.StudyGoal{}, &model.StudyTask{}, &model.Achievement{}, &model.StudyReminder{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	sqlDB, _ := db.DB()
	t.Cleanup(func() { sqlDB.Close() })
	return repository.NewGormStores(db)
}

// eachStore runs fn against the gorm and the in-memory implementation.
func eachStore(t *testing.T, fn func(t *testing.T, s repository.Stores)) {
	t.Run("gorm", func(t *testing.T) { fn(t, newSQLiteStores(t)) })
	t.Run("memory", func(t *testing.T) { fn(t, memory.NewStore().Stores()) })
}

func seedUserGoal(t *testing.T, s repository.Stores, status model.GoalStatus) (*model.User, *model.StudyGoal) {
	t.Helper()
	ctx := context.Background()
	user := &model.User{Username: fmt.Sprintf("u%d", time.Now().UnixNano()), Password: "x", DisplayName: "U"}
	if err := s.Users.Create(ctx, user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	goal := &model.StudyGoal{UserID: user.ID, Title: "Go", Timeline: "1 month", DailyStudyTime: "1 hour", Pace: "moderate", Status: status}
	if err := s.Goals.Create(ctx, goal); err != nil {
		t.Fatalf("create goal: %v", err)
	}
	return user, goal
}

func TestUsers_AddXPAccumulates(t *testing.T) {
	eachStore(t, func(t *testing.T, s repository.Stores) {
		ctx := context.Background()
		user := &model.User{Username: "jane", Password: "x", DisplayName: "Jane", TotalXP: 10}
		if err := s.Users.Create(ctx, user); err != nil {
			t.Fatalf("create: %v", err)
		}
		for i := 0; i < 3; i++ {
			if err := s.Users.AddXP(ctx, user.ID, 50); err != nil {
				t.Fatalf("add xp: %v", err)
			}
		}
		got, err := s.Users.FindByID(ctx, user.ID)
		if err != nil {
			t.Fatalf("find: %v", err)
		}
		if got.TotalXP != 160 {
			t.Fatalf("expected 160 xp, got %d", got.TotalXP)
		}
		byName, err := s.Users.FindByUsername(ctx, "jane")
		if err != nil || byName.ID != user.ID {
			t.Fatalf("find by username: %v %+v", err, byName)
		}
	})
}

func TestUsers_MissingIsErrNotFound(t *testing.T) {
	eachStore(t, func(t *testing.T, s repository.Stores) {
		_, err := s.Users.FindByID(context.Background(), 999)
		if !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
		_, err = s.Tasks.FindByID(context.Background(), 999)
		if !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound for task, got %v", err)
		}
	})
}

func TestGoals_FindActivePicksLowestID(t *testing.T) {
	eachStore(t, func(t *testing.T, s repository.Stores) {
		ctx := context.Background()
		user, paused := seedUserGoal(t, s, model.GoalPaused)
		first := &model.StudyGoal{UserID: user.ID, Title: "A", Timeline: "1 week", DailyStudyTime: "1 hour", Pace: "relaxed", Status: model.GoalActive}
		second := &model.StudyGoal{UserID: user.ID, Title: "B", Timeline: "1 week", DailyStudyTime: "1 hour", Pace: "relaxed", Status: model.GoalActive}
		for _, g := range []*model.StudyGoal{first, second} {
			if err := s.Goals.Create(ctx, g); err != nil {
				t.Fatalf("create: %v", err)
			}
		}
		active, err := s.Goals.FindActiveByUser(ctx, user.ID)
		if err != nil {
			t.Fatalf("find active: %v", err)
		}
		if active.ID != first.ID || active.ID == paused.ID {
			t.Fatalf("expected goal %d, got %d", first.ID, active.ID)
		}
		if _, err := s.Goals.FindActiveByUser(ctx, user.ID+100); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestGoals_CompleteSetsCompletedAtOnce(t *testing.T) {
	eachStore(t, func(t *testing.T, s repository.Stores) {
		ctx := context.Background()
		_, goal := seedUserGoal(t, s, model.GoalActive)
		first := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
		if err := s.Goals.Complete(ctx, goal.ID, first); err != nil {
			t.Fatalf("complete: %v", err)
		}
		if err := s.Goals.Complete(ctx, goal.ID, first.Add(time.Hour)); err != nil {
			t.Fatalf("complete again: %v", err)
		}
		got, _ := s.Goals.FindByID(ctx, goal.ID)
		if got.Status != model.GoalCompleted || got.Progress != 100 {
			t.Fatalf("unexpected goal state: %s %d", got.Status, got.Progress)
		}
		if got.CompletedAt == nil || !got.CompletedAt.Equal(first) {
			t.Fatalf("expected completedAt %v, got %v", first, got.CompletedAt)
		}
		if err := s.Goals.Complete(ctx, 999, first); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestTasks_BatchOrderAndSchedule(t *testing.T) {
	eachStore(t, func(t *testing.T, s repository.Stores) {
		ctx := context.Background()
		user, goal := seedUserGoal(t, s, model.GoalActive)
		today := time.Date(2024, 5, 10, 9, 0, 0, 0, time.Local)
		yesterday := today.AddDate(0, 0, -1)
		tasks := []model.StudyTask{
			{GoalID: goal.ID, Title: "c", Type: model.TaskQuiz, EstimatedMinutes: 30, XPReward: 50, OrderIndex: 2, ScheduledFor: &today},
			{GoalID: goal.ID, Title: "a", Type: model.TaskVideo, EstimatedMinutes: 30, XPReward: 50, OrderIndex: 0, ScheduledFor: &today},
			{GoalID: goal.ID, Title: "b", Type: model.TaskReading, EstimatedMinutes: 30, XPReward: 50, OrderIndex: 1, ScheduledFor: &yesterday},
		}
		if err := s.Tasks.CreateBatch(ctx, tasks); err != nil {
			t.Fatalf("create batch: %v", err)
		}
		for _, task := range tasks {
			if task.ID == 0 {
				t.Fatalf("expected ids to be assigned")
			}
		}

		list, _ := s.Tasks.FindByGoal(ctx, goal.ID)
		if len(list) != 3 || list[0].Title != "a" || list[2].Title != "c" {
			t.Fatalf("unexpected order: %+v", list)
		}

		midnight := time.Date(2024, 5, 10, 0, 0, 0, 0, time.Local)
		day, err := s.Tasks.FindScheduledBetween(ctx, user.ID, midnight, midnight.AddDate(0, 0, 1))
		if err != nil {
			t.Fatalf("scheduled: %v", err)
		}
		if len(day) != 2 || day[0].Title != "a" || day[1].Title != "c" {
			t.Fatalf("unexpected day tasks: %+v", day)
		}
		other, _ := s.Tasks.FindScheduledBetween(ctx, user.ID+50, midnight, midnight.AddDate(0, 0, 1))
		if len(other) != 0 {
			t.Fatalf("expected no tasks for another user, got %d", len(other))
		}
	})
}

func TestTasks_UpdateCompletionAndCount(t *testing.T) {
	eachStore(t, func(t *testing.T, s repository.Stores) {
		ctx := context.Background()
		user, goal := seedUserGoal(t, s, model.GoalActive)
		tasks := []model.StudyTask{
			{GoalID: goal.ID, Title: "a", Type: model.TaskVideo, EstimatedMinutes: 30, XPReward: 50, OrderIndex: 0},
			{GoalID: goal.ID, Title: "b", Type: model.TaskVideo, EstimatedMinutes: 30, XPReward: 50, OrderIndex: 1},
		}
		if err := s.Tasks.CreateBatch(ctx, tasks); err != nil {
			t.Fatalf("create batch: %v", err)
		}
		task := tasks[0]
		task.SetCompleted(true, time.Now())
		if err := s.Tasks.UpdateCompletion(ctx, &task); err != nil {
			t.Fatalf("update: %v", err)
		}
		n, _ := s.Tasks.CountCompletedByUser(ctx, user.ID)
		if n != 1 {
			t.Fatalf("expected 1 completed, got %d", n)
		}

		task.SetCompleted(false, time.Now())
		if err := s.Tasks.UpdateCompletion(ctx, &task); err != nil {
			t.Fatalf("update: %v", err)
		}
		got, _ := s.Tasks.FindByID(ctx, task.ID)
		if got.IsCompleted || got.CompletedAt != nil {
			t.Fatalf("expected task reset, got %+v", got)
		}
	})
}

func TestAchievements_NewestFirstWithLimit(t *testing.T) {
	eachStore(t, func(t *testing.T, s repository.Stores) {
		ctx := context.Background()
		base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		for i := 0; i < 4; i++ {
			a := &model.Achievement{UserID: 1, Type: model.AchievementTasks, Title: fmt.Sprintf("a%d", i), Description: "d", Icon: "i", XPReward: 10, UnlockedAt: base.Add(time.Duration(i) * time.Hour)}
			if err := s.Achievements.Create(ctx, a); err != nil {
				t.Fatalf("create: %v", err)
			}
		}
		all, _ := s.Achievements.FindByUser(ctx, 1, 0)
		if len(all) != 4 || all[0].Title != "a3" {
			t.Fatalf("unexpected order: %+v", all)
		}
		recent, _ := s.Achievements.FindByUser(ctx, 1, 3)
		if len(recent) != 3 || recent[2].Title != "a1" {
			t.Fatalf("unexpected recent: %+v", recent)
		}
	})
}

func TestReminders_SetActiveWritesFalse(t *testing.T) {
	eachStore(t, func(t *testing.T, s repository.Stores) {
		ctx := context.Background()
		r := &model.StudyReminder{UserID: 1, Title: "Daily", Type: model.ReminderDaily, IsActive: true}
		if err := s.Reminders.Create(ctx, r); err != nil {
			t.Fatalf("create: %v", err)
		}
		if err := s.Reminders.SetActive(ctx, r.ID, false); err != nil {
			t.Fatalf("set active: %v", err)
		}
		list, _ := s.Reminders.FindByUser(ctx, 1)
		if len(list) != 1 || list[0].IsActive {
			t.Fatalf("expected inactive reminder, got %+v", list)
		}
		if err := s.Reminders.SetActive(ctx, 999, true); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}
