package models

import "gorm.io/gorm"

const (
	GoalCalories    = "calories"
	GoalProtein     = "protein"
	GoalCarbs       = "carbs"
	GoalFat         = "fat"
	GoalWater       = "water"
	GoalMealsPerDay = "meals_per_day"
)

const (
	PeriodDaily  = "daily"
	PeriodWeekly = "weekly"
)

// Goal holds one user target. CurrentValue is either user-reported (water)
// or recomputed from scan aggregates (nutrition-backed types).
type Goal struct {
	gorm.Model
	UserID       uint    `gorm:"index;not null" json:"user_id"`
	GoalType     string  `gorm:"size:32;not null" json:"goal_type"`
	TargetValue  float64 `json:"target_value"`
	CurrentValue float64 `json:"current_value"`
	TimePeriod   string  `gorm:"size:16;default:daily" json:"time_period"`
}
