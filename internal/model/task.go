package model

import (
	"math"
	"time"
)

type TaskType string

const (
	TaskVideo    TaskType = "video"
	TaskReading  TaskType = "reading"
	TaskQuiz     TaskType = "quiz"
	TaskPractice TaskType = "practice"
	TaskProject  TaskType = "project"
)

// TaskTypes lists every activity type in prompt order.
var TaskTypes = []TaskType{TaskVideo, TaskReading, TaskQuiz, TaskPractice, TaskProject}

func (t TaskType) Valid() bool {
	for _, known := range TaskTypes {
		if t == known {
			return true
		}
	}
	return false
}

// StudyTask is one unit of work inside a goal. OrderIndex is unique per goal.
// swagger:model StudyTask
type StudyTask struct {
	BaseModel
	GoalID           uint       `gorm:"not null;uniqueIndex:idx_goal_order" json:"goalId"`
	Title            string     `gorm:"size:255;not null" json:"title"`
	Description      *string    `gorm:"type:text" json:"description"`
	Type             TaskType   `gorm:"size:20;not null" json:"type"`
	EstimatedMinutes int        `gorm:"not null" json:"estimatedMinutes"`
	XPReward         int        `gorm:"column:xp_reward;not null" json:"xpReward"`
	IsCompleted      bool       `gorm:"not null;default:false" json:"isCompleted"`
	ScheduledFor     *time.Time `gorm:"index" json:"scheduledFor"`
	CompletedAt      *time.Time `json:"completedAt"`
	OrderIndex       int        `gorm:"not null;uniqueIndex:idx_goal_order" json:"orderIndex"`
}

func (StudyTask) TableName() string {
	return "study_tasks"
}

// SetCompleted keeps CompletedAt in step with IsCompleted.
func (t *StudyTask) SetCompleted(completed bool, now time.Time) {
	t.IsCompleted = completed
	if completed {
		t.CompletedAt = &now
	} else {
		t.CompletedAt = nil
	}
}

func CountCompleted(tasks []StudyTask) int {
	n := 0
	for _, t := range tasks {
		if t.IsCompleted {
			n++
		}
	}
	return n
}

// CompletionPercentage is round(100*completed/total), 0 for an empty goal.
func CompletionPercentage(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}
