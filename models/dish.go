package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// A dish on a day's canteen menu. The per-100g values are the reference
// nutrition data every scan is scaled from.
type MenuItem struct {
	ID              string    `gorm:"type:varchar(64);primaryKey" json:"id"`
	Name            string    `gorm:"not null" json:"name"`
	Category        string    `json:"category"`
	CanteenLocation string    `gorm:"index" json:"canteen_location"`
	MenuDate        time.Time `gorm:"index" json:"menu_date"`
	CaloriesPer100g float64   `json:"calories_per_100g"`
	ProteinPer100g  float64   `json:"protein_per_100g"`
	CarbsPer100g    float64   `json:"carbs_per_100g"`
	FatPer100g      float64   `json:"fat_per_100g"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// NutrientProfile is the per-100g snapshot carried around by detection
// candidates, detached from the catalog row.
type NutrientProfile struct {
	CaloriesPer100g float64 `json:"calories_per_100g"`
	ProteinPer100g  float64 `json:"protein_per_100g"`
	CarbsPer100g    float64 `json:"carbs_per_100g"`
	FatPer100g      float64 `json:"fat_per_100g"`
}

func (m *MenuItem) Profile() NutrientProfile {
	return NutrientProfile{
		CaloriesPer100g: m.CaloriesPer100g,
		ProteinPer100g:  m.ProteinPer100g,
		CarbsPer100g:    m.CarbsPer100g,
		FatPer100g:      m.FatPer100g,
	}
}

// DishCandidate is one entry of the ranked list the upstream classifier
// returns for a photo.
type DishCandidate struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Category         string          `json:"category"`
	NutrientsPer100g NutrientProfile `json:"nutrients_per_100g"`
	ConfidenceScore  float64         `json:"confidence_score"`
}

// Valid reports whether the candidate carries the required identity fields.
func (c DishCandidate) Valid() bool {
	return c.ID != "" && c.Name != ""
}

// CandidateList is stored on a scan as a JSON blob. Reading back tolerates
// junk: entries that don't decode into a valid candidate are dropped rather
// than surfaced to callers.
type CandidateList []DishCandidate

func (l CandidateList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return nil, nil
	}
	return json.Marshal(l)
}

func (l *CandidateList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.New("candidate list: unsupported column type")
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		// not even an array; treat as empty rather than poisoning the scan row
		*l = nil
		return nil
	}

	out := make(CandidateList, 0, len(entries))
	for _, e := range entries {
		var c DishCandidate
		if err := json.Unmarshal(e, &c); err != nil {
			continue
		}
		if !c.Valid() {
			continue
		}
		out = append(out, c)
	}
	*l = out
	return nil
}
