package model

import (
	"time"

	"gorm.io/datatypes"
)

type GoalStatus string

const (
	GoalActive    GoalStatus = "active"
	GoalPaused    GoalStatus = "paused"
	GoalCompleted GoalStatus = "completed"
	GoalArchived  GoalStatus = "archived"
)

// Valid reports whether s is one of the known goal states.
func (s GoalStatus) Valid() bool {
	switch s {
	case GoalActive, GoalPaused, GoalCompleted, GoalArchived:
		return true
	}
	return false
}

// StudyGoal is a learning objective owned by one user. Progress is a cached
// value; the authoritative figure is CompletionPercentage over the goal's tasks.
// swagger:model StudyGoal
type StudyGoal struct {
	BaseModel
	UserID         uint       `gorm:"index;not null" json:"userId"`
	Title          string     `gorm:"size:255;not null" json:"title"`
	Description    *string    `gorm:"type:text" json:"description"`
	Timeline       string     `gorm:"size:50;not null" json:"timeline"`
	DailyStudyTime string     `gorm:"size:50;not null" json:"dailyStudyTime"`
	Pace           string     `gorm:"size:20;not null" json:"pace"`
	Status         GoalStatus `gorm:"size:20;not null;default:'active';index" json:"status"`
	Progress       int        `gorm:"not null;default:0" json:"progress"`

	// Plan summary returned by the generator when the goal was created.
	TotalEstimatedHours float64        `gorm:"default:0" json:"totalEstimatedHours"`
	DifficultyLevel     string         `gorm:"size:50" json:"difficultyLevel"`
	LearningPath        datatypes.JSON `json:"learningPath" swaggertype:"array,string"`

	CreatedAt   time.Time  `gorm:"not null" json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt"`
}

func (StudyGoal) TableName() string {
	return "study_goals"
}

// GoalProgress is a goal decorated with its task completion figures.
type GoalProgress struct {
	StudyGoal
	CompletedTasks       int `json:"completedTasks"`
	TotalTasks           int `json:"totalTasks"`
	CompletionPercentage int `json:"completionPercentage"`
}

// NewGoalProgress counts completed tasks and derives the percentage.
func NewGoalProgress(goal StudyGoal, tasks []StudyTask) GoalProgress {
	completed := CountCompleted(tasks)
	return GoalProgress{
		StudyGoal:            goal,
		CompletedTasks:       completed,
		TotalTasks:           len(tasks),
		CompletionPercentage: CompletionPercentage(completed, len(tasks)),
	}
}
