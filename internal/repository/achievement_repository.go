package repository

import (
	"context"
	"time"

	"study_buddy_backend/internal/model"

	"gorm.io/gorm"
)

type AchievementRepository struct {
	DB *gorm.DB
}

func NewAchievementRepository(db *gorm.DB) *AchievementRepository {
	return &AchievementRepository{DB: db}
}

func (r *AchievementRepository) Create(ctx context.Context, achievement *model.Achievement) error {
	if achievement.UnlockedAt.IsZero() {
		achievement.UnlockedAt = time.Now()
	}
	return r.DB.WithContext(ctx).Create(achievement).Error
}

func (r *AchievementRepository) FindByUser(ctx context.Context, userID uint, limit int) ([]model.Achievement, error) {
	var achievements []model.Achievement
	q := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("unlocked_at DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&achievements).Error
	return achievements, err
}
