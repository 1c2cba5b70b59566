package service

import (
	"context"
	"errors"
	"testing"

	"study_buddy_backend/internal/model"
	"study_buddy_backend/internal/util"
)

func strp(s string) *string { return &s }

func TestCreateReminder(t *testing.T) {
	stores := newStores()
	user := createUser(t, stores, 0)
	svc := NewReminderService(stores)
	ctx := context.Background()

	r, err := svc.CreateReminder(ctx, model.CreateReminderRequest{UserID: user.ID, Title: "Study", Type: "daily", Time: strp("09:00")})
	if err != nil {
		t.Fatalf("CreateReminder: %v", err)
	}
	if !r.IsActive {
		t.Fatalf("reminders default to active")
	}

	inactive := false
	r, err = svc.CreateReminder(ctx, model.CreateReminderRequest{UserID: user.ID, Title: "Weekly", Type: "weekly", IsActive: &inactive})
	if err != nil || r.IsActive {
		t.Fatalf("expected inactive reminder, got %+v err=%v", r, err)
	}

	_, err = svc.CreateReminder(ctx, model.CreateReminderRequest{UserID: user.ID, Title: "Bad", Type: "hourly", Time: strp("9am")})
	var invalid *InvalidRequestError
	if !errors.As(err, &invalid) || len(invalid.Fields) != 2 {
		t.Fatalf("expected type and time violations, got %v", err)
	}
}

func TestSetReminderActive(t *testing.T) {
	stores := newStores()
	user := createUser(t, stores, 0)
	svc := NewReminderService(stores)
	ctx := context.Background()

	r, err := svc.CreateReminder(ctx, model.CreateReminderRequest{UserID: user.ID, Title: "Break", Type: "break"})
	if err != nil {
		t.Fatalf("CreateReminder: %v", err)
	}
	updated, err := svc.SetReminderActive(ctx, r.ID, false)
	if err != nil || updated.IsActive {
		t.Fatalf("expected inactive, got %+v err=%v", updated, err)
	}
	if _, err := svc.SetReminderActive(ctx, 999, true); !errors.Is(err, util.ErrReminderNotFound) {
		t.Fatalf("expected ErrReminderNotFound, got %v", err)
	}
}
