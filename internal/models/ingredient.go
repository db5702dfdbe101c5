package models

import "time"

type Ingredient struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Quantity  string    `gorm:"type:varchar(50);not null" json:"quantity"`
	Unit      string    `gorm:"type:varchar(20)" json:"unit,omitempty"`
	Notes     string    `gorm:"type:text" json:"notes,omitempty"`
	Order     int       `gorm:"column:sort_order;not null;default:0" json:"order"`
	CreatedAt time.Time `json:"created_at"`

	RecipeID uint `gorm:"not null;index" json:"recipe_id"`
}
