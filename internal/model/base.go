package model

// BaseModel carries the auto-increment primary key shared by every table.
// swagger:model
type BaseModel struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`
}
