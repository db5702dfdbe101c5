package models

import (
	"time"

	"github.com/google/uuid"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

type Recipe struct {
	ID           uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Title        string     `gorm:"type:varchar(200);not null;index" json:"title"`
	Slug         string     `gorm:"type:varchar(200);uniqueIndex;not null" json:"slug"`
	Description  string     `gorm:"type:text" json:"description,omitempty"`
	Instructions string     `gorm:"type:text;not null" json:"instructions"`
	PrepTime     *int       `json:"prep_time,omitempty"`
	CookTime     *int       `json:"cook_time,omitempty"`
	Servings     *int       `json:"servings,omitempty"`
	Difficulty   Difficulty `gorm:"type:varchar(20)" json:"difficulty,omitempty"`
	Image        string     `gorm:"type:varchar(255)" json:"image,omitempty"`
	IsPublished  bool       `gorm:"not null;default:false;index" json:"is_published"`
	CreatedAt    time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	// Foreign keys. Children are loaded through repository queries,
	// not through embedded collections.
	UserID     uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	CategoryID uint      `gorm:"not null;index" json:"category_id"`
}

// TotalTime is the combined prep and cook time in minutes.
func (r *Recipe) TotalTime() int {
	total := 0
	if r.PrepTime != nil {
		total += *r.PrepTime
	}
	if r.CookTime != nil {
		total += *r.CookTime
	}
	return total
}

// ValidDifficulty reports whether d is one of the supported difficulty levels.
func ValidDifficulty(d string) bool {
	switch Difficulty(d) {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}
