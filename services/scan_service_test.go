package services_test

import (
	"errors"
	"testing"
	"time"

	"github.com/durveshgosavi-netizen/cblens/models"
	"github.com/durveshgosavi-netizen/cblens/services"
)

func TestBuildScanRecord(t *testing.T) {
	candidate := &models.DishCandidate{
		ID:               "dish-1",
		Name:             "Chicken Rice",
		Category:         "Main",
		NutrientsPer100g: chickenRice,
		ConfidenceScore:  0.9,
	}
	at := time.Date(2026, 3, 2, 12, 30, 0, 0, time.UTC)

	scan, err := services.BuildScanRecord(7, candidate, models.PortionLarge, 300,
		"North Hall", "extra sauce", models.CandidateList{*candidate}, at)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if scan.ID == "" {
		t.Fatal("scan must get an id")
	}
	if scan.UserID != 7 || scan.MenuItemID != "dish-1" {
		t.Fatalf("identity fields: got %+v", scan)
	}
	// stored grams reflect the portion multiplier
	if scan.EstimatedGrams != 450 {
		t.Fatalf("estimated grams: got %v, want 450", scan.EstimatedGrams)
	}
	if scan.ScaledCalories != 900 || scan.ScaledProtein != 90 {
		t.Fatalf("scaled values: got %+v", scan)
	}
	if scan.Confidence != models.TierHigh {
		t.Fatalf("confidence tier: got %v", scan.Confidence)
	}
	if !scan.ScanTimestamp.Equal(at) {
		t.Fatalf("timestamp: got %v, want %v", scan.ScanTimestamp, at)
	}
}

func TestBuildScanRecord_MissingCandidate(t *testing.T) {
	at := time.Now()

	_, err := services.BuildScanRecord(7, nil, models.PortionNormal, 300, "", "", nil, at)
	if !errors.Is(err, services.ErrMissingCandidate) {
		t.Fatalf("nil candidate: expected ErrMissingCandidate, got %v", err)
	}

	incomplete := &models.DishCandidate{Name: "No ID"}
	_, err = services.BuildScanRecord(7, incomplete, models.PortionNormal, 300, "", "", nil, at)
	if !errors.Is(err, services.ErrMissingCandidate) {
		t.Fatalf("invalid candidate: expected ErrMissingCandidate, got %v", err)
	}
}

func TestBuildScanRecord_BadPortion(t *testing.T) {
	candidate := &models.DishCandidate{ID: "dish-1", Name: "Chicken Rice", NutrientsPer100g: chickenRice}

	_, err := services.BuildScanRecord(7, candidate, models.PortionPreset("tiny"), 300, "", "", nil, time.Now())
	if !errors.Is(err, services.ErrInvalidPortion) {
		t.Fatalf("expected ErrInvalidPortion, got %v", err)
	}
}
