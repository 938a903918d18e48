package models

import (
	"time"

	"gorm.io/gorm"
)

const StreakDailyTracking = "daily_tracking"

// NutritionStreak counts consecutive qualifying days. BestCount only ever
// ratchets upward.
type NutritionStreak struct {
	gorm.Model
	UserID           uint      `gorm:"index;not null" json:"user_id"`
	StreakType       string    `gorm:"size:32;not null" json:"streak_type"`
	CurrentCount     int       `json:"current_count"`
	BestCount        int       `json:"best_count"`
	LastActivityDate time.Time `json:"last_activity_date"`
}
