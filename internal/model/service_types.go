package model

import "time"

// CreateUserRequest registers a learner account.
type CreateUserRequest struct {
	Username    string `json:"username" validate:"required,notblank,min=3,max=100"`
	Password    string `json:"password" validate:"required,min=6,max=72"`
	DisplayName string `json:"displayName" validate:"required,notblank,max=100"`
}

// CreateReminderRequest stores a reminder for a user.
type CreateReminderRequest struct {
	UserID      uint    `json:"userId" validate:"required"`
	Title       string  `json:"title" validate:"required,notblank,max=100"`
	Description *string `json:"description" validate:"omitempty,max=255"`
	Type        string  `json:"type" validate:"required,oneof=daily break weekly"`
	Time        *string `json:"time" validate:"omitempty,datetime=15:04"`
	Frequency   *string `json:"frequency" validate:"omitempty,max=30"`
	IsActive    *bool   `json:"isActive"`
}

type ReminderActiveRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

type TaskCompletionRequest struct {
	IsCompleted *bool `json:"isCompleted" binding:"required"`
}

type GoalStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// AIInsights is the plan summary echoed back when a goal is created.
type AIInsights = PlanSummary

// GoalWithPlan is the result of creating a goal from a generated plan.
type GoalWithPlan struct {
	Goal       StudyGoal   `json:"goal"`
	Tasks      []StudyTask `json:"tasks"`
	AIInsights AIInsights  `json:"aiInsights"`
}

// DashboardStats are the headline numbers on the dashboard.
type DashboardStats struct {
	Streak          int     `json:"streak"`
	TotalXP         int     `json:"totalXp"`
	CompletedTasks  int     `json:"completedTasks"`
	TotalDailyTasks int     `json:"totalDailyTasks"`
	StudyTimeToday  float64 `json:"studyTimeToday"`
}

type DashboardView struct {
	User               User            `json:"user"`
	ActiveGoal         *GoalProgress   `json:"goalProgress"`
	TodayTasks         []StudyTask     `json:"todaysTasks"`
	RecentAchievements []Achievement   `json:"recentAchievements"`
	Reminders          []StudyReminder `json:"reminders"`
	Stats              DashboardStats  `json:"stats"`
}

// ProgressSnapshot feeds the motivational insight prompt.
type ProgressSnapshot struct {
	CurrentStreak  int
	CompletedTasks int
	TotalTasks     int
	GoalTitle      string
	DaysIntoGoal   int
}

type InsightView struct {
	Insight string `json:"insight"`
}

type ExportDocument struct {
	User         User            `json:"user"`
	Goals        []StudyGoal     `json:"goals"`
	Achievements []Achievement   `json:"achievements"`
	Reminders    []StudyReminder `json:"reminders"`
	ExportDate   time.Time       `json:"exportDate"`
	ArchiveURL   string          `json:"archiveUrl,omitempty"`
}

// CatalogueEntry is one achievement the user can work towards.
type CatalogueEntry struct {
	Type        AchievementType `json:"type"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Icon        string          `json:"icon"`
	XPReward    int             `json:"xpReward"`
	Target      int             `json:"target"`
	Progress    int             `json:"progress"`
	Unlocked    bool            `json:"unlocked"`
}
