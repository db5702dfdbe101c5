package models

import (
	"time"

	"github.com/google/uuid"
)

type Rating struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Score     int       `gorm:"not null" json:"score"`
	Comment   string    `gorm:"type:text" json:"comment,omitempty"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// One rating per (user, recipe). The composite unique index is the
	// authority; application pre-checks alone are not race-safe.
	UserID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_recipe_rating" json:"user_id"`
	RecipeID uint      `gorm:"not null;uniqueIndex:idx_user_recipe_rating;index" json:"recipe_id"`
}
