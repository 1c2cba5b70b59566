package service

import (
	"context"
	"errors"

	"study_buddy_backend/internal/model"
	"study_buddy_backend/internal/repository"
	"study_buddy_backend/internal/util"
)

type ReminderService struct {
	users     repository.UserStore
	reminders repository.ReminderStore
}

func NewReminderService(stores repository.Stores) *ReminderService {
	return &ReminderService{users: stores.Users, reminders: stores.Reminders}
}

// CreateReminder stores a reminder; it is active unless the request says otherwise.
func (s *ReminderService) CreateReminder(ctx context.Context, req model.CreateReminderRequest) (*model.StudyReminder, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	if _, err := s.users.FindByID(ctx, req.UserID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, invalidField("userId", "user does not exist")
		}
		return nil, err
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	reminder := &model.StudyReminder{
		UserID:      req.UserID,
		Title:       req.Title,
		Description: req.Description,
		Type:        model.ReminderType(req.Type),
		Time:        req.Time,
		Frequency:   req.Frequency,
		IsActive:    active,
	}
	if err := s.reminders.Create(ctx, reminder); err != nil {
		return nil, err
	}
	return reminder, nil
}

func (s *ReminderService) SetReminderActive(ctx context.Context, reminderID uint, active bool) (*model.StudyReminder, error) {
	if err := s.reminders.SetActive(ctx, reminderID, active); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, util.ErrReminderNotFound
		}
		return nil, err
	}
	reminder, err := s.reminders.FindByID(ctx, reminderID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, util.ErrReminderNotFound
	}
	return reminder, err
}
