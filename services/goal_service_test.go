package services_test

import (
	"errors"
	"testing"

	"github.com/durveshgosavi-netizen/cblens/models"
	"github.com/durveshgosavi-netizen/cblens/services"
)

func TestEvaluateGoal(t *testing.T) {
	goal := models.Goal{GoalType: models.GoalCalories, TargetValue: 2000}

	tests := []struct {
		name        string
		current     float64
		raw         float64
		display     float64
		isCompleted bool
	}{
		{"under target", 1500, 75, 75, false},
		{"exactly at target", 2000, 100, 100, true},
		{"over target clamps display", 2500, 125, 100, true},
		{"nothing logged", 0, 0, 0, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p, err := services.EvaluateGoal(goal, tc.current)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p.RawProgressPercent != tc.raw {
				t.Fatalf("raw: got %v, want %v", p.RawProgressPercent, tc.raw)
			}
			if p.DisplayProgressPercent != tc.display {
				t.Fatalf("display: got %v, want %v", p.DisplayProgressPercent, tc.display)
			}
			if p.IsCompleted != tc.isCompleted {
				t.Fatalf("completed: got %v, want %v", p.IsCompleted, tc.isCompleted)
			}
		})
	}
}

func TestEvaluateGoal_InvalidTarget(t *testing.T) {
	for _, target := range []float64{0, -100} {
		_, err := services.EvaluateGoal(models.Goal{TargetValue: target}, 500)
		if !errors.Is(err, services.ErrInvalidGoal) {
			t.Fatalf("target %v: expected ErrInvalidGoal, got %v", target, err)
		}
	}
}
