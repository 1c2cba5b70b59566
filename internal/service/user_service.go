package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"study_buddy_backend/internal/model"
	"study_buddy_backend/internal/repository"
	"study_buddy_backend/internal/util"
	"study_buddy_backend/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Archiver stores export documents; StorageService satisfies it.
type Archiver interface {
	PutJSON(ctx context.Context, name string, data []byte) (string, error)
}

type UserService struct {
	stores   repository.Stores
	archiver Archiver
	now      func() time.Time
}

// NewUserService builds the service; archiver may be nil.
func NewUserService(stores repository.Stores, archiver Archiver) *UserService {
	return &UserService{stores: stores, archiver: archiver, now: time.Now}
}

func (s *UserService) CreateUser(ctx context.Context, req model.CreateUserRequest) (*model.User, error) {
	req.Username = strings.TrimSpace(req.Username)
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	if _, err := s.stores.Users.FindByUsername(ctx, req.Username); err == nil {
		return nil, util.ErrUsernameTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		Username:    req.Username,
		Password:    string(hash),
		DisplayName: strings.TrimSpace(req.DisplayName),
	}
	if err := s.stores.Users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, userID uint) (*model.User, error) {
	user, err := s.stores.Users.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, util.ErrUserNotFound
	}
	return user, err
}

// Export collects everything stored for a user. When an archiver is set the
// document is also written to exports/{userId}/{uuid}.json.
func (s *UserService) Export(ctx context.Context, userID uint) (*model.ExportDocument, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	goals, err := s.stores.Goals.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	achievements, err := s.stores.Achievements.FindByUser(ctx, userID, 0)
	if err != nil {
		return nil, err
	}
	reminders, err := s.stores.Reminders.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	doc := &model.ExportDocument{
		User:         *user,
		Goals:        goals,
		Achievements: achievements,
		Reminders:    reminders,
		ExportDate:   s.now().UTC(),
	}
	if doc.Goals == nil {
		doc.Goals = []model.StudyGoal{}
	}
	if doc.Achievements == nil {
		doc.Achievements = []model.Achievement{}
	}
	if doc.Reminders == nil {
		doc.Reminders = []model.StudyReminder{}
	}

	if s.archiver != nil {
		data, err := json.Marshal(doc)
		if err != nil {
			return nil, err
		}
		name := fmt.Sprintf("exports/%d/%s.json", userID, uuid.NewString())
		url, err := s.archiver.PutJSON(ctx, name, data)
		if err != nil {
			logger.Log.Error("Failed to archive export", zap.Uint("user_id", userID), zap.Error(err))
		} else {
			doc.ArchiveURL = url
		}
	}
	return doc, nil
}
