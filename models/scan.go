package models

import "time"

// ConfidenceTier is the coarse bucket derived from the classifier's
// continuous score.
type ConfidenceTier string

const (
	TierHigh   ConfidenceTier = "high"
	TierMedium ConfidenceTier = "medium"
	TierLow    ConfidenceTier = "low"
)

// PortionPreset is the coarse multiplier the user picks on the scan screen.
// The set is closed; a new preset needs an explicit multiplier mapping in
// services.
type PortionPreset string

const (
	PortionHalf   PortionPreset = "half"
	PortionNormal PortionPreset = "normal"
	PortionLarge  PortionPreset = "large"
)

// One saved meal photo event with its resolved dish, portion and scaled
// nutrition snapshot. Immutable after creation except for Notes.
// EstimatedGrams already includes the portion multiplier.
type Scan struct {
	ID              string         `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID          uint           `gorm:"index;not null" json:"user_id"`
	MenuItemID      string         `gorm:"type:varchar(64);index" json:"menu_item_id"`
	Confidence      ConfidenceTier `gorm:"size:16" json:"confidence"`
	PortionPreset   PortionPreset  `gorm:"size:16" json:"portion_preset"`
	EstimatedGrams  float64        `json:"estimated_grams"`
	ScaledCalories  float64        `json:"scaled_calories"`
	ScaledProtein   float64        `json:"scaled_protein"`
	ScaledCarbs     float64        `json:"scaled_carbs"`
	ScaledFat       float64        `json:"scaled_fat"`
	CanteenLocation string         `gorm:"index" json:"canteen_location"`
	PhotoURL        string         `json:"photo_url,omitempty"`
	Notes           string         `gorm:"type:text" json:"notes,omitempty"`
	Alternatives    CandidateList  `gorm:"type:jsonb" json:"alternatives,omitempty"`
	ScanTimestamp   time.Time      `gorm:"index" json:"scan_timestamp"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}
