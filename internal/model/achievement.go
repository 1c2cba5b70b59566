package model

import "time"

type AchievementType string

const (
	AchievementStreak AchievementType = "streak"
	AchievementXP     AchievementType = "xp"
	AchievementTasks  AchievementType = "tasks"
	AchievementGoals  AchievementType = "goals"
)

// Achievement is an append-only unlock record.
// swagger:model Achievement
type Achievement struct {
	BaseModel
	UserID      uint            `gorm:"index;not null" json:"userId"`
	Type        AchievementType `gorm:"size:20;not null" json:"type"`
	Title       string          `gorm:"size:100;not null" json:"title"`
	Description string          `gorm:"size:255;not null" json:"description"`
	Icon        string          `gorm:"size:100;not null" json:"icon"`
	XPReward    int             `gorm:"column:xp_reward;not null" json:"xpReward"`
	UnlockedAt  time.Time       `gorm:"not null;index" json:"unlockedAt"`
}

func (Achievement) TableName() string {
	return "achievements"
}
