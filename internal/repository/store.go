package repository

import (
	"context"
	"errors"
	"time"

	"study_buddy_backend/internal/model"

	"gorm.io/gorm"
)

// ErrNotFound is returned by every store when a lookup matches nothing.
var ErrNotFound = errors.New("record not found")

type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	// AddXP increments total_xp in place so concurrent credits are not lost.
	AddXP(ctx context.Context, id uint, xp int) error
	Count(ctx context.Context) (int64, error)
}

type GoalStore interface {
	Create(ctx context.Context, goal *model.StudyGoal) error
	FindByID(ctx context.Context, id uint) (*model.StudyGoal, error)
	FindByUser(ctx context.Context, userID uint) ([]model.StudyGoal, error)
	// FindActiveByUser returns the lowest-id active goal.
	FindActiveByUser(ctx context.Context, userID uint) (*model.StudyGoal, error)
	UpdateProgress(ctx context.Context, id uint, progress int) error
	// Complete marks the goal completed; completed_at is only set the first time.
	Complete(ctx context.Context, id uint, at time.Time) error
	CountByUser(ctx context.Context, userID uint) (int64, error)
	CountCompletedByUser(ctx context.Context, userID uint) (int64, error)
}

type TaskStore interface {
	FindByID(ctx context.Context, id uint) (*model.StudyTask, error)
	FindByGoal(ctx context.Context, goalID uint) ([]model.StudyTask, error)
	// FindScheduledBetween returns tasks of all the user's goals with
	// from <= scheduled_for < to, ordered by order_index.
	FindScheduledBetween(ctx context.Context, userID uint, from, to time.Time) ([]model.StudyTask, error)
	CreateBatch(ctx context.Context, tasks []model.StudyTask) error
	UpdateCompletion(ctx context.Context, task *model.StudyTask) error
	CountCompletedByUser(ctx context.Context, userID uint) (int64, error)
}

type AchievementStore interface {
	Create(ctx context.Context, achievement *model.Achievement) error
	// FindByUser returns the user's achievements newest first; limit <= 0 means all.
	FindByUser(ctx context.Context, userID uint, limit int) ([]model.Achievement, error)
}

type ReminderStore interface {
	Create(ctx context.Context, reminder *model.StudyReminder) error
	FindByID(ctx context.Context, id uint) (*model.StudyReminder, error)
	FindByUser(ctx context.Context, userID uint) ([]model.StudyReminder, error)
	SetActive(ctx context.Context, id uint, active bool) error
}

// Stores bundles every capability the services depend on.
type Stores struct {
	Users        UserStore
	Goals        GoalStore
	Tasks        TaskStore
	Achievements AchievementStore
	Reminders    ReminderStore
}

// NewGormStores backs every store with db.
func NewGormStores(db *gorm.DB) Stores {
	return Stores{
		Users:        NewUserRepository(db),
		Goals:        NewGoalRepository(db),
		Tasks:        NewTaskRepository(db),
		Achievements: NewAchievementRepository(db),
		Reminders:    NewReminderRepository(db),
	}
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
