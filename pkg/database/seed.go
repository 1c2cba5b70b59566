package database

import (
	"context"

	"study_buddy_backend/internal/model"
	"study_buddy_backend/internal/repository"
	"study_buddy_backend/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	DemoUsername    = "johndoe"
	DemoPassword    = "password"
	DemoDisplayName = "John Doe"
)

func strPtr(s string) *string { return &s }

// SeedDemo creates the demo account and its reminders when no user exists yet.
func SeedDemo(ctx context.Context, users repository.UserStore, reminders repository.ReminderStore) error {
	count, err := users.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user := &model.User{
		Username:    DemoUsername,
		Password:    string(hash),
		DisplayName: DemoDisplayName,
		Streak:      7,
		TotalXP:     1247,
	}
	if err := users.Create(ctx, user); err != nil {
		return err
	}

	defaults := []model.StudyReminder{
		{
			Title:       "Daily Study Time",
			Description: strPtr("Time to study!"),
			Type:        model.ReminderDaily,
			Time:        strPtr("09:00"),
			Frequency:   strPtr("daily"),
			IsActive:    true,
		},
		{
			Title:       "Break Reminder",
			Description: strPtr("Take a break!"),
			Type:        model.ReminderBreak,
			Frequency:   strPtr("every_45_min"),
			IsActive:    true,
		},
		{
			Title:       "Weekly Goal Check",
			Description: strPtr("Review your weekly progress"),
			Type:        model.ReminderWeekly,
			Time:        strPtr("19:00"),
			Frequency:   strPtr("weekly"),
			IsActive:    false,
		},
	}
	for i := range defaults {
		defaults[i].UserID = user.ID
		if err := reminders.Create(ctx, &defaults[i]); err != nil {
			return err
		}
	}

	logger.Log.Info("Demo data seeded", zap.Uint("user_id", user.ID))
	return nil
}
