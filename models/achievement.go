package models

import (
	"time"

	"gorm.io/gorm"
)

// Achievement criteria are flat columns; a zero value means the criterion is
// not part of this achievement.
type Achievement struct {
	gorm.Model
	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`
	Points      int    `json:"points"`
	IsActive    bool   `gorm:"default:true" json:"is_active"`

	ScansCount      int `json:"scans_count,omitempty"`
	ConsecutiveDays int `json:"consecutive_days,omitempty"`
	MealFeedbacks   int `json:"meal_feedbacks,omitempty"`
	UniqueDishes    int `json:"unique_dishes,omitempty"`
}

type UserAchievement struct {
	gorm.Model
	UserID        uint      `gorm:"index;not null" json:"user_id"`
	AchievementID uint      `gorm:"index;not null" json:"achievement_id"`
	EarnedAt      time.Time `json:"earned_at"`
}

// MealRating backs the meal_feedbacks achievement criterion.
type MealRating struct {
	gorm.Model
	UserID  uint   `gorm:"index" json:"user_id"`
	ScanID  string `gorm:"type:varchar(36);index" json:"scan_id"`
	Rating  int    `json:"rating"` // 1..5
	Comment string `gorm:"type:text" json:"comment,omitempty"`
}
