package model

type ReminderType string

const (
	ReminderDaily  ReminderType = "daily"
	ReminderBreak  ReminderType = "break"
	ReminderWeekly ReminderType = "weekly"
)

// StudyReminder is stored configuration only; nothing schedules it.
// swagger:model StudyReminder
type StudyReminder struct {
	BaseModel
	UserID      uint         `gorm:"index;not null" json:"userId"`
	Title       string       `gorm:"size:100;not null" json:"title"`
	Description *string      `gorm:"size:255" json:"description"`
	Type        ReminderType `gorm:"size:20;not null" json:"type"`
	Time        *string      `gorm:"size:10" json:"time"`
	Frequency   *string      `gorm:"size:30" json:"frequency"`
	IsActive    bool         `gorm:"not null" json:"isActive"`
}

func (StudyReminder) TableName() string {
	return "study_reminders"
}

func (t ReminderType) Valid() bool {
	switch t {
	case ReminderDaily, ReminderBreak, ReminderWeekly:
		return true
	}
	return false
}
