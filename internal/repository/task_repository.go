package repository

import (
	"context"
	"time"

	"study_buddy_backend/internal/model"

	"gorm.io/gorm"
)

type TaskRepository struct {
	DB *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{DB: db}
}

func (r *TaskRepository) FindByID(ctx context.Context, id uint) (*model.StudyTask, error) {
	var task model.StudyTask
	if err := r.DB.WithContext(ctx).First(&task, id).Error; err != nil {
		return nil, translate(err)
	}
	return &task, nil
}

func (r *TaskRepository) FindByGoal(ctx context.Context, goalID uint) ([]model.StudyTask, error) {
	var tasks []model.StudyTask
	err := r.DB.WithContext(ctx).
		Where("goal_id = ?", goalID).
		Order("order_index").
		Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepository) FindScheduledBetween(ctx context.Context, userID uint, from, to time.Time) ([]model.StudyTask, error) {
	var tasks []model.StudyTask
	err := r.DB.WithContext(ctx).
		Joins("JOIN study_goals ON study_goals.id = study_tasks.goal_id").
		Where("study_goals.user_id = ?", userID).
		Where("study_tasks.scheduled_for >= ? AND study_tasks.scheduled_for < ?", from, to).
		Order("study_tasks.order_index, study_tasks.id").
		Find(&tasks).Error
	return tasks, err
}

// CreateBatch inserts every task in a single statement.
func (r *TaskRepository) CreateBatch(ctx context.Context, tasks []model.StudyTask) error {
	if len(tasks) == 0 {
		return nil
	}
	return r.DB.WithContext(ctx).Create(&tasks).Error
}

func (r *TaskRepository) UpdateCompletion(ctx context.Context, task *model.StudyTask) error {
	return r.DB.WithContext(ctx).Model(&model.StudyTask{}).
		Where("id = ?", task.ID).
		Updates(map[string]interface{}{
			"is_completed": task.IsCompleted,
			"completed_at": task.CompletedAt,
		}).Error
}

func (r *TaskRepository) CountCompletedByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.StudyTask{}).
		Joins("JOIN study_goals ON study_goals.id = study_tasks.goal_id").
		Where("study_goals.user_id = ? AND study_tasks.is_completed = ?", userID, true).
		Count(&count).Error
	return count, err
}
