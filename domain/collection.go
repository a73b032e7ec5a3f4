package domain

import "time"

// ScenicCollection is a user's bookmark of a scenic spot.
type ScenicCollection struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"column:user_id;not null" json:"user_id"`
	ScenicID  uint64    `gorm:"column:scenic_id;not null" json:"scenic_id"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (ScenicCollection) TableName() string {
	return "scenic_collections"
}
