package services_test

import (
	"strings"
	"testing"
	"time"

	"github.com/durveshgosavi-netizen/cblens/models"
	"github.com/durveshgosavi-netizen/cblens/services"
)

func trackedDay(calories, protein float64, meals int) services.Bucket {
	return services.Bucket{TotalCalories: calories, TotalProtein: protein, MealCount: meals}
}

func findInsight(list []services.Insight, title string) *services.Insight {
	for i := range list {
		if list[i].Title == title {
			return &list[i]
		}
	}
	return nil
}

func TestGenerateInsights_NoTrackedDays(t *testing.T) {
	buckets := []services.Bucket{{}, {}, {}}
	if got := services.GenerateInsights(buckets, services.DefaultInsightThresholds()); got != nil {
		t.Fatalf("expected no insights, got %+v", got)
	}
}

func TestGenerateInsights_LowProtein(t *testing.T) {
	buckets := []services.Bucket{
		trackedDay(2000, 60, 3),
		trackedDay(1900, 70, 2),
	}
	out := services.GenerateInsights(buckets, services.DefaultInsightThresholds())

	in := findInsight(out, "Low Protein Intake")
	if in == nil {
		t.Fatalf("expected low protein insight, got %+v", out)
	}
	if in.Severity != models.SeverityWarning || in.Type != models.InsightDeficiency {
		t.Fatalf("wrong classification: %+v", in)
	}
	if !strings.Contains(in.Description, "65g") {
		t.Fatalf("description should carry the average: %s", in.Description)
	}
}

func TestGenerateInsights_CalorieRules(t *testing.T) {
	low := []services.Bucket{trackedDay(1200, 120, 2)}
	out := services.GenerateInsights(low, services.DefaultInsightThresholds())
	if findInsight(out, "Low Calorie Intake") == nil {
		t.Fatalf("expected low calorie insight, got %+v", out)
	}
	if findInsight(out, "High Calorie Intake") != nil {
		t.Fatalf("low intake must not also flag high")
	}

	high := []services.Bucket{trackedDay(2800, 120, 3)}
	out = services.GenerateInsights(high, services.DefaultInsightThresholds())
	if findInsight(out, "High Calorie Intake") == nil {
		t.Fatalf("expected high calorie insight, got %+v", out)
	}
}

func TestGenerateInsights_AveragesSkipUntrackedDays(t *testing.T) {
	// two tracked days at healthy values; five empty days must not drag the
	// averages into deficiency territory
	buckets := []services.Bucket{
		trackedDay(2000, 120, 3),
		{}, {}, {}, {}, {},
		trackedDay(2100, 110, 3),
	}
	out := services.GenerateInsights(buckets, services.DefaultInsightThresholds())
	if findInsight(out, "Low Protein Intake") != nil || findInsight(out, "Low Calorie Intake") != nil {
		t.Fatalf("untracked days skewed the averages: %+v", out)
	}
}

func TestGenerateInsights_Consistency(t *testing.T) {
	buckets := make([]services.Bucket, 0, 5)
	for i := 0; i < 5; i++ {
		buckets = append(buckets, trackedDay(2000, 120, 2))
	}
	out := services.GenerateInsights(buckets, services.DefaultInsightThresholds())

	in := findInsight(out, "Great Tracking Consistency!")
	if in == nil {
		t.Fatalf("expected consistency insight at 5 tracked days, got %+v", out)
	}
	if in.Severity != models.SeverityInfo || in.Type != models.InsightTrend {
		t.Fatalf("wrong classification: %+v", in)
	}

	out = services.GenerateInsights(buckets[:4], services.DefaultInsightThresholds())
	if findInsight(out, "Great Tracking Consistency!") != nil {
		t.Fatalf("4 tracked days must not trigger consistency")
	}
}

func TestPredictTrends(t *testing.T) {
	if got := services.PredictTrends([]services.Bucket{trackedDay(2000, 100, 2), trackedDay(1900, 90, 2)}); got != nil {
		t.Fatalf("2 tracked days should not predict, got %+v", got)
	}

	buckets := []services.Bucket{
		trackedDay(2000, 120, 3),
		{}, // untracked day is skipped, not averaged as zero
		trackedDay(1900, 110, 2),
		trackedDay(2100, 130, 3),
	}
	p := services.PredictTrends(buckets)
	if p == nil {
		t.Fatal("expected a prediction")
	}
	if p.WeeklyCalories != 14000 {
		t.Fatalf("weekly calories: got %d, want 14000", p.WeeklyCalories)
	}
	if p.WeeklyProtein != 840 {
		t.Fatalf("weekly protein: got %d, want 840", p.WeeklyProtein)
	}
	if p.Trend != "stable" {
		t.Fatalf("trend: got %s, want stable", p.Trend)
	}
	if len(p.Recommendations) != 0 {
		t.Fatalf("healthy averages should carry no recommendations: %+v", p.Recommendations)
	}
}

func TestPredictTrends_Labels(t *testing.T) {
	high := []services.Bucket{trackedDay(2400, 120, 3), trackedDay(2300, 120, 3), trackedDay(2500, 120, 3)}
	if p := services.PredictTrends(high); p.Trend != "increasing" {
		t.Fatalf("got %s, want increasing", p.Trend)
	}

	low := []services.Bucket{trackedDay(1400, 80, 2), trackedDay(1300, 70, 2), trackedDay(1500, 90, 2)}
	p := services.PredictTrends(low)
	if p.Trend != "decreasing" {
		t.Fatalf("got %s, want decreasing", p.Trend)
	}
	// low calories and low protein each contribute a recommendation
	if len(p.Recommendations) != 2 {
		t.Fatalf("expected 2 recommendations, got %+v", p.Recommendations)
	}
}

func TestUpdateStreak(t *testing.T) {
	d := func(day int) time.Time {
		return time.Date(2026, 3, day, 12, 0, 0, 0, time.UTC)
	}

	// first ever activity
	s := services.UpdateStreak(models.NutritionStreak{}, d(2))
	if s.CurrentCount != 1 || s.BestCount != 1 {
		t.Fatalf("first activity: got %+v", s)
	}

	// same day again is a no-op
	s = services.UpdateStreak(s, d(2))
	if s.CurrentCount != 1 {
		t.Fatalf("same-day repeat changed the count: %+v", s)
	}

	// consecutive days extend
	s = services.UpdateStreak(s, d(3))
	s = services.UpdateStreak(s, d(4))
	if s.CurrentCount != 3 || s.BestCount != 3 {
		t.Fatalf("consecutive days: got %+v", s)
	}

	// stale date is ignored
	s = services.UpdateStreak(s, d(1))
	if s.CurrentCount != 3 {
		t.Fatalf("stale date changed the count: %+v", s)
	}

	// a gap resets the current count but best survives
	s = services.UpdateStreak(s, d(10))
	if s.CurrentCount != 1 {
		t.Fatalf("gap should reset to 1: %+v", s)
	}
	if s.BestCount != 3 {
		t.Fatalf("best count must not decrease: %+v", s)
	}
}
