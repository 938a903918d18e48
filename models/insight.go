package models

import "time"

const (
	InsightTrend      = "trend"
	InsightDeficiency = "deficiency"
	InsightModeration = "moderation"
)

const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityCritical = "critical"
)

type NutritionInsight struct {
	ID          string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID      uint      `gorm:"index" json:"user_id"`
	InsightType string    `gorm:"size:32" json:"insight_type"`
	Title       string    `json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Severity    string    `gorm:"size:16" json:"severity"`
	IsRead      bool      `json:"is_read"`
	CreatedAt   time.Time `json:"created_at"`
	ExpiresAt   time.Time `json:"expires_at"`
}
