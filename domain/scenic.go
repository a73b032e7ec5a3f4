package domain

import (
	"time"
)

// CREATE TABLE public.scenic_spots (
//     id              BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     name            TEXT NOT NULL,
//     category_id     BIGINT,
//     location        TEXT,
//     description     TEXT,
//     image_url       TEXT,
//     price           NUMERIC,
//     opening_hours   TEXT,
//     created_at      TIMESTAMPTZ DEFAULT NOW()
// );

type ScenicSpot struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string    `gorm:"column:name;type:text;not null" json:"name"`
	CategoryID   uint64    `gorm:"column:category_id;default:0" json:"category_id"`
	Location     string    `gorm:"column:location;type:text" json:"location"`
	Description  string    `gorm:"column:description;type:text" json:"description"`
	ImageUrl     string    `gorm:"column:image_url;type:text" json:"image_url"`
	Price        float64   `gorm:"column:price;type:numeric" json:"price"`
	OpeningHours string    `gorm:"column:opening_hours;type:text" json:"opening_hours"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`

	// filled from comments, not persisted
	Rating       float64 `gorm:"-" json:"rating"`
	CommentCount int     `gorm:"-" json:"comment_count"`
}

func (ScenicSpot) TableName() string {
	return "scenic_spots"
}

type ScenicCategory struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"column:name;type:text;not null" json:"name"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (ScenicCategory) TableName() string {
	return "scenic_categories"
}
