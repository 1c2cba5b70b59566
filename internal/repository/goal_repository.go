package repository

import (
	"context"
	"time"

	"study_buddy_backend/internal/model"

	"gorm.io/gorm"
)

// GoalRepository handles study goal persistence.
type GoalRepository struct {
	DB *gorm.DB
}

func NewGoalRepository(db *gorm.DB) *GoalRepository {
	return &GoalRepository{DB: db}
}

func (r *GoalRepository) Create(ctx context.Context, goal *model.StudyGoal) error {
	if goal.CreatedAt.IsZero() {
		goal.CreatedAt = time.Now()
	}
	return r.DB.WithContext(ctx).Create(goal).Error
}

func (r *GoalRepository) FindByID(ctx context.Context, id uint) (*model.StudyGoal, error) {
	var goal model.StudyGoal
	if err := r.DB.WithContext(ctx).First(&goal, id).Error; err != nil {
		return nil, translate(err)
	}
	return &goal, nil
}

func (r *GoalRepository) FindByUser(ctx context.Context, userID uint) ([]model.StudyGoal, error) {
	var goals []model.StudyGoal
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&goals).Error
	return goals, err
}

func (r *GoalRepository) FindActiveByUser(ctx context.Context, userID uint) (*model.StudyGoal, error) {
	var goal model.StudyGoal
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, model.GoalActive).
		Order("id").
		First(&goal).Error
	if err != nil {
		return nil, translate(err)
	}
	return &goal, nil
}

func (r *GoalRepository) UpdateProgress(ctx context.Context, id uint, progress int) error {
	return r.DB.WithContext(ctx).Model(&model.StudyGoal{}).
		Where("id = ?", id).
		Update("progress", progress).Error
}

func (r *GoalRepository) Complete(ctx context.Context, id uint, at time.Time) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var goal model.StudyGoal
		if err := tx.First(&goal, id).Error; err != nil {
			return translate(err)
		}
		updates := map[string]interface{}{
			"status":   model.GoalCompleted,
			"progress": 100,
		}
		if goal.CompletedAt == nil {
			updates["completed_at"] = at
		}
		return tx.Model(&model.StudyGoal{}).Where("id = ?", id).Updates(updates).Error
	})
}

func (r *GoalRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.StudyGoal{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *GoalRepository) CountCompletedByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.StudyGoal{}).
		Where("user_id = ? AND status = ?", userID, model.GoalCompleted).
		Count(&count).Error
	return count, err
}
