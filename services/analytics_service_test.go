package services_test

import (
	"errors"
	"testing"
	"time"

	"github.com/durveshgosavi-netizen/cblens/models"
	"github.com/durveshgosavi-netizen/cblens/services"
)

var utcOpts = services.AggregatorOptions{Location: time.UTC}

func mkScan(ts time.Time, calories, protein, carbs, fat float64) models.Scan {
	return models.Scan{
		ScanTimestamp:  ts,
		ScaledCalories: calories,
		ScaledProtein:  protein,
		ScaledCarbs:    carbs,
		ScaledFat:      fat,
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAggregateBuckets_DailyZeroFill(t *testing.T) {
	from := day(2026, 3, 2)
	to := from.AddDate(0, 0, 7)

	buckets, err := services.AggregateBuckets(nil, services.GranularityDaily, from, to, utcOpts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(buckets) != 7 {
		t.Fatalf("expected 7 buckets, got %d", len(buckets))
	}
	for i, b := range buckets {
		wantLabel := from.AddDate(0, 0, i).Format("2006-01-02")
		if b.PeriodLabel != wantLabel {
			t.Fatalf("bucket %d label: got %s, want %s", i, b.PeriodLabel, wantLabel)
		}
		if b.MealCount != 0 || b.TotalCalories != 0 {
			t.Fatalf("bucket %d should be empty, got %+v", i, b)
		}
	}
}

func TestAggregateBuckets_SumInvariant(t *testing.T) {
	from := day(2026, 3, 2)
	to := from.AddDate(0, 0, 3)

	records := []models.Scan{
		mkScan(from.Add(8*time.Hour), 400, 30, 40, 10),
		mkScan(from.Add(13*time.Hour), 600, 40, 70, 20),
		mkScan(from.AddDate(0, 0, 1).Add(12*time.Hour), 550, 35, 60, 15),
		mkScan(from.AddDate(0, 0, -1), 999, 99, 99, 99),  // before the window
		mkScan(to.Add(time.Hour), 888, 88, 88, 88),       // after the window
		mkScan(to, 777, 77, 77, 77),                      // exactly at end, excluded
	}

	buckets, err := services.AggregateBuckets(records, services.GranularityDaily, from, to, utcOpts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(buckets) != 3 {
		t.Fatalf("expected 3 buckets, got %d", len(buckets))
	}

	var cals float64
	var meals int
	for _, b := range buckets {
		cals += b.TotalCalories
		meals += b.MealCount
	}
	if cals != 1550 {
		t.Fatalf("total calories: got %v, want 1550", cals)
	}
	if meals != 3 {
		t.Fatalf("meal count: got %d, want 3", meals)
	}
	if buckets[0].MealCount != 2 || buckets[1].MealCount != 1 || buckets[2].MealCount != 0 {
		t.Fatalf("per-day counts wrong: %+v", buckets)
	}
}

func TestAggregateBuckets_OrderIndependence(t *testing.T) {
	from := day(2026, 3, 2)
	to := from.AddDate(0, 0, 2)

	a := mkScan(from.Add(9*time.Hour), 300, 20, 30, 10)
	b := mkScan(from.Add(18*time.Hour), 500, 30, 50, 15)
	c := mkScan(from.AddDate(0, 0, 1).Add(12*time.Hour), 450, 25, 45, 12)

	first, err := services.AggregateBuckets([]models.Scan{a, b, c}, services.GranularityDaily, from, to, utcOpts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := services.AggregateBuckets([]models.Scan{c, b, a}, services.GranularityDaily, from, to, utcOpts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("bucket %d differs across input orders: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestAggregateBuckets_InvalidWindow(t *testing.T) {
	from := day(2026, 3, 2)
	for _, to := range []time.Time{from, from.AddDate(0, 0, -1)} {
		_, err := services.AggregateBuckets(nil, services.GranularityDaily, from, to, utcOpts)
		if !errors.Is(err, services.ErrInvalidWindow) {
			t.Fatalf("expected ErrInvalidWindow, got %v", err)
		}
	}
}

func TestAggregateBuckets_WeeklyAlignment(t *testing.T) {
	// 2026-03-04 is a Wednesday; with Sunday-start weeks its bucket begins
	// 2026-03-01.
	from := day(2026, 3, 4)
	to := from.AddDate(0, 0, 1)

	buckets, err := services.AggregateBuckets(
		[]models.Scan{mkScan(from.Add(12*time.Hour), 500, 30, 50, 15)},
		services.GranularityWeekly, from, to, utcOpts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(buckets) != 1 {
		t.Fatalf("expected 1 bucket, got %d", len(buckets))
	}
	if buckets[0].PeriodLabel != "2026-03-01" {
		t.Fatalf("week label: got %s, want 2026-03-01", buckets[0].PeriodLabel)
	}
	if buckets[0].MealCount != 1 {
		t.Fatalf("meal count: got %d, want 1", buckets[0].MealCount)
	}
}

func TestAggregateBuckets_MonthlyLabels(t *testing.T) {
	from := day(2026, 1, 15)
	to := day(2026, 3, 15)

	buckets, err := services.AggregateBuckets(nil, services.GranularityMonthly, from, to, utcOpts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"2026-01", "2026-02", "2026-03"}
	if len(buckets) != len(want) {
		t.Fatalf("expected %d buckets, got %d", len(want), len(buckets))
	}
	for i, b := range buckets {
		if b.PeriodLabel != want[i] {
			t.Fatalf("bucket %d label: got %s, want %s", i, b.PeriodLabel, want[i])
		}
	}
}

func TestBucket_AvgCaloriesPerMeal(t *testing.T) {
	b := services.Bucket{TotalCalories: 1500, MealCount: 3}
	if got := b.AvgCaloriesPerMeal(); got != 500 {
		t.Fatalf("got %v, want 500", got)
	}
	empty := services.Bucket{}
	if got := empty.AvgCaloriesPerMeal(); got != 0 {
		t.Fatalf("empty bucket: got %v, want 0", got)
	}
}

func TestSummarizeScans_Empty(t *testing.T) {
	from := day(2026, 3, 2)
	to := from.AddDate(0, 0, 7)

	out, err := services.SummarizeScans(nil, from, to, utcOpts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.TotalScans != 0 || out.AvgConfidence != 0 {
		t.Fatalf("empty summary: got %+v", out)
	}
	if len(out.ScansPerDay) != 7 {
		t.Fatalf("expected 7 daily counts, got %d", len(out.ScansPerDay))
	}
	if len(out.TopDishes) != 0 || len(out.LocationBreakdown) != 0 {
		t.Fatalf("expected empty breakdowns, got %+v", out)
	}
	if len(out.ConfidenceDistribution) != 3 {
		t.Fatalf("expected 3 confidence slices, got %d", len(out.ConfidenceDistribution))
	}
}

func TestSummarizeScans(t *testing.T) {
	from := day(2026, 3, 2)
	to := from.AddDate(0, 0, 2)

	alts := models.CandidateList{
		{ID: "dish-1", Name: "Chicken Rice", Category: "Main", ConfidenceScore: 0.9},
	}
	s1 := mkScan(from.Add(9*time.Hour), 400, 30, 40, 10)
	s1.MenuItemID = "dish-1"
	s1.Confidence = models.TierHigh
	s1.EstimatedGrams = 300
	s1.CanteenLocation = "North Hall"
	s1.Alternatives = alts

	s2 := mkScan(from.Add(13*time.Hour), 600, 40, 70, 20)
	s2.MenuItemID = "dish-1"
	s2.Confidence = models.TierMedium
	s2.EstimatedGrams = 340
	s2.CanteenLocation = "North Hall"
	s2.Alternatives = alts

	s3 := mkScan(from.AddDate(0, 0, 1).Add(12*time.Hour), 500, 35, 55, 15)
	s3.Confidence = models.TierLow
	s3.EstimatedGrams = 260
	s3.CanteenLocation = "South Hall"

	out, err := services.SummarizeScans([]models.Scan{s1, s2, s3}, from, to, utcOpts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.TotalScans != 3 {
		t.Fatalf("total scans: got %d", out.TotalScans)
	}
	// (3+2+1)/3 * 33.33 = 66.66
	if out.AvgConfidence != 66.66 {
		t.Fatalf("avg confidence: got %v, want 66.66", out.AvgConfidence)
	}
	if out.AvgPortionSize != 300 {
		t.Fatalf("avg portion: got %v, want 300", out.AvgPortionSize)
	}
	if out.TotalCalories != 1500 {
		t.Fatalf("total calories: got %v, want 1500", out.TotalCalories)
	}

	if len(out.TopDishes) != 2 {
		t.Fatalf("expected 2 dishes, got %+v", out.TopDishes)
	}
	if out.TopDishes[0].Name != "Chicken Rice" || out.TopDishes[0].Count != 2 {
		t.Fatalf("top dish: got %+v", out.TopDishes[0])
	}
	if out.TopDishes[1].Name != "Unknown Dish" {
		t.Fatalf("fallback dish name: got %+v", out.TopDishes[1])
	}

	for _, slice := range out.ConfidenceDistribution {
		if slice.Count != 1 {
			t.Fatalf("confidence slice %s: got count %d, want 1", slice.Confidence, slice.Count)
		}
		if slice.Percentage != 33 {
			t.Fatalf("confidence slice %s: got pct %d, want 33", slice.Confidence, slice.Percentage)
		}
	}

	if out.LocationBreakdown[0].Location != "North Hall" || out.LocationBreakdown[0].Count != 2 {
		t.Fatalf("location breakdown: got %+v", out.LocationBreakdown)
	}
}

func TestAvgDailyCalories(t *testing.T) {
	buckets := []services.Bucket{
		{TotalCalories: 1800},
		{TotalCalories: 2200},
		{}, // untracked day still counts toward the average
	}
	got := services.AvgDailyCalories(buckets)
	if got != 1333.33 {
		t.Fatalf("got %v, want 1333.33", got)
	}
	if services.AvgDailyCalories(nil) != 0 {
		t.Fatalf("nil buckets should average to 0")
	}
}
