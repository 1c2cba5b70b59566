package model

import "time"

// swagger:model User
type User struct {
	BaseModel
	Username    string    `gorm:"size:100;uniqueIndex;not null" json:"username"`
	Password    string    `gorm:"size:100;not null" json:"-"`
	DisplayName string    `gorm:"size:100;not null" json:"displayName"`
	Streak      int       `gorm:"not null;default:0" json:"streak"`
	TotalXP     int       `gorm:"column:total_xp;not null;default:0" json:"totalXp"`
	CreatedAt   time.Time `gorm:"not null" json:"createdAt"`
}

func (User) TableName() string {
	return "users"
}
