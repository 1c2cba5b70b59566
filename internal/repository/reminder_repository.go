package repository

import (
	"context"

	"study_buddy_backend/internal/model"

	"gorm.io/gorm"
)

type ReminderRepository struct {
	DB *gorm.DB
}

func NewReminderRepository(db *gorm.DB) *ReminderRepository {
	return &ReminderRepository{DB: db}
}

func (r *ReminderRepository) Create(ctx context.Context, reminder *model.StudyReminder) error {
	return r.DB.WithContext(ctx).Create(reminder).Error
}

func (r *ReminderRepository) FindByID(ctx context.Context, id uint) (*model.StudyReminder, error) {
	var reminder model.StudyReminder
	if err := r.DB.WithContext(ctx).First(&reminder, id).Error; err != nil {
		return nil, translate(err)
	}
	return &reminder, nil
}

func (r *ReminderRepository) FindByUser(ctx context.Context, userID uint) ([]model.StudyReminder, error) {
	var reminders []model.StudyReminder
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&reminders).Error
	return reminders, err
}

// SetActive uses a map so that false is written rather than skipped.
func (r *ReminderRepository) SetActive(ctx context.Context, id uint, active bool) error {
	var reminder model.StudyReminder
	if err := r.DB.WithContext(ctx).Select("id").First(&reminder, id).Error; err != nil {
		return translate(err)
	}
	return r.DB.WithContext(ctx).Model(&model.StudyReminder{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"is_active": active}).Error
}
