package services

import (
	"errors"
	"math"

	"github.com/durveshgosavi-netizen/cblens/models"
)

// Input-contract failures for the nutrition core. These are raised at the
// point of misuse and never downgraded to defaults: an unknown portion preset
// must not silently become "normal".
var (
	ErrInvalidPortion   = errors.New("unknown portion preset")
	ErrMissingCandidate = errors.New("no dish candidate selected")
	ErrInvalidWindow    = errors.New("window start must be before window end")
	ErrInvalidGoal      = errors.New("goal target must be positive")
)

// Atwater factors, kcal per gram.
const (
	kcalPerGramProtein = 4.0
	kcalPerGramCarb    = 4.0
	kcalPerGramFat     = 9.0
)

var portionMultipliers = map[models.PortionPreset]float64{
	models.PortionHalf:   0.5,
	models.PortionNormal: 1.0,
	models.PortionLarge:  1.5,
}

// PortionMultiplier resolves a preset to its weight multiplier.
func PortionMultiplier(preset models.PortionPreset) (float64, error) {
	m, ok := portionMultipliers[preset]
	if !ok {
		return 0, ErrInvalidPortion
	}
	return m, nil
}

type ScaledNutrition struct {
	EffectiveGrams float64 `json:"effective_grams"`
	Calories       float64 `json:"calories"`
	Protein        float64 `json:"protein"`
	Carbs          float64 `json:"carbs"`
	Fat            float64 `json:"fat"`
}

// ScaleNutrition converts a per-100g profile into absolute amounts for an
// estimated plate weight and portion preset. Pure. An all-zero profile is a
// valid unknown dish and scales to zeros; callers render "0", not "unknown".
func ScaleNutrition(profile models.NutrientProfile, estimatedGrams float64, preset models.PortionPreset) (ScaledNutrition, error) {
	mult, err := PortionMultiplier(preset)
	if err != nil {
		return ScaledNutrition{}, err
	}
	if estimatedGrams <= 0 {
		return ScaledNutrition{}, errors.New("estimated grams must be positive")
	}

	effective := estimatedGrams * mult
	ratio := effective / 100.0
	return ScaledNutrition{
		EffectiveGrams: roundHalfUp(effective),
		Calories:       roundHalfUp(profile.CaloriesPer100g * ratio),
		Protein:        roundHalfUp(profile.ProteinPer100g * ratio),
		Carbs:          roundHalfUp(profile.CarbsPer100g * ratio),
		Fat:            roundHalfUp(profile.FatPer100g * ratio),
	}, nil
}

// TierFromScore buckets a detection score s in [0,1]. Lower bounds are
// exclusive: exactly 0.8 is medium and exactly 0.6 is low.
func TierFromScore(score float64) models.ConfidenceTier {
	switch {
	case score > 0.8:
		return models.TierHigh
	case score > 0.6:
		return models.TierMedium
	default:
		return models.TierLow
	}
}

// tierWeight is the 3/2/1 scale the analytics summary averages over.
func tierWeight(tier models.ConfidenceTier) float64 {
	switch tier {
	case models.TierHigh:
		return 3
	case models.TierMedium:
		return 2
	default:
		return 1
	}
}

type MacroSplit struct {
	ProteinCalories float64 `json:"protein_calories"`
	CarbCalories    float64 `json:"carb_calories"`
	FatCalories     float64 `json:"fat_calories"`
	ProteinPct      float64 `json:"protein_pct"`
	CarbPct         float64 `json:"carb_pct"`
	FatPct          float64 `json:"fat_pct"`
}

// MacroDistribution splits gram totals into calorie shares. When there are no
// macro calories at all, every percentage is 0 rather than NaN.
func MacroDistribution(proteinGrams, carbGrams, fatGrams float64) MacroSplit {
	s := MacroSplit{
		ProteinCalories: proteinGrams * kcalPerGramProtein,
		CarbCalories:    carbGrams * kcalPerGramCarb,
		FatCalories:     fatGrams * kcalPerGramFat,
	}
	total := s.ProteinCalories + s.CarbCalories + s.FatCalories
	if total <= 0 {
		return s
	}
	s.ProteinPct = roundHalfUp(s.ProteinCalories / total * 100)
	s.CarbPct = roundHalfUp(s.CarbCalories / total * 100)
	s.FatPct = roundHalfUp(s.FatCalories / total * 100)
	return s
}

// roundHalfUp is the persistence rounding convention: .5 always rounds up.
func roundHalfUp(v float64) float64 { return math.Floor(v + 0.5) }

func round2(v float64) float64 { return math.Round(v*100) / 100 }
