package domain

import "time"

// Accommodation is a hotel or guesthouse near a scenic spot. PriceRange is a
// display string like "200-500"; StarLevel is the hotel class, not a review
// average.
type Accommodation struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string    `gorm:"column:name;type:text;not null" json:"name"`
	Type         string    `gorm:"column:type;type:text" json:"type"`
	Address      string    `gorm:"column:address;type:text" json:"address"`
	ScenicID     uint64    `gorm:"column:scenic_id;default:0" json:"scenic_id"`
	Description  string    `gorm:"column:description;type:text" json:"description"`
	ContactPhone string    `gorm:"column:contact_phone;type:text" json:"contact_phone"`
	PriceRange   string    `gorm:"column:price_range;type:text" json:"price_range"`
	StarLevel    float64   `gorm:"column:star_level;default:0" json:"star_level"`
	ImageUrl     string    `gorm:"column:image_url;type:text" json:"image_url"`
	Features     string    `gorm:"column:features;type:text" json:"features"`
	Distance     string    `gorm:"column:distance;type:text" json:"distance"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	// filled from the scenic spot, not persisted
	ScenicName string `gorm:"-" json:"scenic_name"`
}

func (Accommodation) TableName() string {
	return "accommodations"
}
