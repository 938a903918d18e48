package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/durveshgosavi-netizen/cblens/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InsightThresholds are the rule cutoffs the generator evaluates daily
// buckets against.
type InsightThresholds struct {
	LowProtein      float64 // g/day
	LowCalories     float64 // kcal/day
	HighCalories    float64 // kcal/day
	ConsistencyDays int
}

func DefaultInsightThresholds() InsightThresholds {
	return InsightThresholds{
		LowProtein:      100,
		LowCalories:     1500,
		HighCalories:    2500,
		ConsistencyDays: 5,
	}
}

// Insight is the value object before persistence.
type Insight struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
}

// GenerateInsights runs the threshold rules over a window of daily buckets.
// Averages are taken over tracked days only (buckets with at least one meal);
// a window with no tracked days produces no insights at all.
func GenerateInsights(recent []Bucket, th InsightThresholds) []Insight {
	trackedDays := 0
	mealCount := 0
	var calSum, proteinSum float64
	for _, b := range recent {
		if b.MealCount == 0 {
			continue
		}
		trackedDays++
		mealCount += b.MealCount
		calSum += b.TotalCalories
		proteinSum += b.TotalProtein
	}
	if trackedDays == 0 {
		return nil
	}

	avgCalories := calSum / float64(trackedDays)
	avgProtein := proteinSum / float64(trackedDays)

	var out []Insight
	if avgProtein < th.LowProtein {
		out = append(out, Insight{
			Type:  models.InsightDeficiency,
			Title: "Low Protein Intake",
			Description: fmt.Sprintf(
				"Your average protein intake is %.0fg per day. Consider adding more protein-rich foods.",
				avgProtein),
			Severity: models.SeverityWarning,
		})
	}
	if avgCalories < th.LowCalories {
		out = append(out, Insight{
			Type:  models.InsightDeficiency,
			Title: "Low Calorie Intake",
			Description: fmt.Sprintf(
				"Your average daily calories (%.0f) might be too low. Ensure you're meeting your energy needs.",
				avgCalories),
			Severity: models.SeverityWarning,
		})
	}
	if avgCalories > th.HighCalories {
		out = append(out, Insight{
			Type:  models.InsightModeration,
			Title: "High Calorie Intake",
			Description: fmt.Sprintf(
				"Your average daily calories (%.0f) are running high. Monitor portion sizes to maintain a balanced intake.",
				avgCalories),
			Severity: models.SeverityWarning,
		})
	}
	if trackedDays >= th.ConsistencyDays {
		out = append(out, Insight{
			Type:  models.InsightTrend,
			Title: "Great Tracking Consistency!",
			Description: fmt.Sprintf(
				"You've tracked %d meals across %d days. Keep up the excellent habit!",
				mealCount, trackedDays),
			Severity: models.SeverityInfo,
		})
	}
	return out
}

// UpdateStreak applies one qualifying activity day to a streak counter:
// next-day activity continues the streak, a gap resets it to 1, and a repeat
// call for the same day is a no-op so concurrent saves can't double count.
// BestCount never decreases. Stale (before-last) dates are ignored.
func UpdateStreak(counter models.NutritionStreak, activityDate time.Time) models.NutritionStreak {
	day := truncateToDay(activityDate)
	last := truncateToDay(counter.LastActivityDate)

	switch {
	case counter.LastActivityDate.IsZero():
		counter.CurrentCount = 1
	case day.Equal(last):
		// already counted this day
	case day.Before(last):
		return counter
	case day.Equal(last.AddDate(0, 0, 1)):
		counter.CurrentCount++
	default:
		counter.CurrentCount = 1
	}

	if counter.CurrentCount > counter.BestCount {
		counter.BestCount = counter.CurrentCount
	}
	counter.LastActivityDate = day
	return counter
}

// TrendPrediction projects the current week from recent tracked days.
type TrendPrediction struct {
	WeeklyCalories  int      `json:"weekly_calories"`
	WeeklyProtein   int      `json:"weekly_protein"`
	Trend           string   `json:"trend"` // increasing | decreasing | stable
	Recommendations []string `json:"recommendations"`
}

// PredictTrends extrapolates weekly totals from the last 7 tracked days.
// Fewer than 3 tracked days is not enough signal and yields nil.
func PredictTrends(recent []Bucket) *TrendPrediction {
	var tracked []Bucket
	for _, b := range recent {
		if b.MealCount > 0 {
			tracked = append(tracked, b)
		}
	}
	if len(tracked) < 3 {
		return nil
	}
	if len(tracked) > 7 {
		tracked = tracked[len(tracked)-7:]
	}

	var calSum, proteinSum float64
	for _, b := range tracked {
		calSum += b.TotalCalories
		proteinSum += b.TotalProtein
	}
	avgCalories := calSum / float64(len(tracked))
	avgProtein := proteinSum / float64(len(tracked))

	trend := "stable"
	if avgCalories > 2200 {
		trend = "increasing"
	} else if avgCalories < 1800 {
		trend = "decreasing"
	}

	p := &TrendPrediction{
		WeeklyCalories:  int(roundHalfUp(avgCalories * 7)),
		WeeklyProtein:   int(roundHalfUp(avgProtein * 7)),
		Trend:           trend,
		Recommendations: []string{},
	}
	if avgProtein < 100 {
		p.Recommendations = append(p.Recommendations,
			"Consider adding more protein-rich foods to your meals")
	}
	if avgCalories < 1500 {
		p.Recommendations = append(p.Recommendations,
			"Your calorie intake seems low - ensure you're meeting your energy needs")
	}
	if avgCalories > 2500 {
		p.Recommendations = append(p.Recommendations,
			"Monitor portion sizes to maintain a balanced calorie intake")
	}
	return p
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ---------- Persistence ----------

type InsightService struct {
	db        *gorm.DB
	analytics *AnalyticsService
}

func NewInsightService(db *gorm.DB, analytics *AnalyticsService) *InsightService {
	return &InsightService{db: db, analytics: analytics}
}

// RecordDailyActivity ratchets the user's daily tracking streak for a scan
// saved at the given time.
func (s *InsightService) RecordDailyActivity(userID uint, at time.Time) (*models.NutritionStreak, error) {
	var streak models.NutritionStreak
	err := s.db.
		Where("user_id = ? AND streak_type = ?", userID, models.StreakDailyTracking).
		First(&streak).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		streak = models.NutritionStreak{UserID: userID, StreakType: models.StreakDailyTracking}
	}

	streak = UpdateStreak(streak, at)
	if err := s.db.Save(&streak).Error; err != nil {
		return nil, err
	}
	return &streak, nil
}

func (s *InsightService) GetStreak(userID uint, streakType string) (*models.NutritionStreak, error) {
	var streak models.NutritionStreak
	err := s.db.
		Where("user_id = ? AND streak_type = ?", userID, streakType).
		First(&streak).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.NutritionStreak{UserID: userID, StreakType: streakType}, nil
	}
	if err != nil {
		return nil, err
	}
	return &streak, nil
}

// Refresh regenerates insights from the last 7 tracked days and persists the
// new batch with a one-week expiry.
func (s *InsightService) Refresh(userID uint, opts AggregatorOptions) ([]models.NutritionInsight, error) {
	buckets, err := s.analytics.Trends(userID, 7, GranularityDaily, opts)
	if err != nil {
		return nil, err
	}

	generated := GenerateInsights(buckets, DefaultInsightThresholds())
	now := time.Now()
	saved := make([]models.NutritionInsight, 0, len(generated))
	for _, in := range generated {
		row := models.NutritionInsight{
			ID:          uuid.NewString(),
			UserID:      userID,
			InsightType: in.Type,
			Title:       in.Title,
			Description: in.Description,
			Severity:    in.Severity,
			CreatedAt:   now,
			ExpiresAt:   now.AddDate(0, 0, 7),
		}
		if err := s.db.Create(&row).Error; err != nil {
			return nil, err
		}
		EmitInsightCreated(userID, &row)
		saved = append(saved, row)
	}
	return saved, nil
}

// Predictions projects the week ahead from the last 30 days of scans.
func (s *InsightService) Predictions(userID uint, opts AggregatorOptions) (*TrendPrediction, error) {
	buckets, err := s.analytics.Trends(userID, 30, GranularityDaily, opts)
	if err != nil {
		return nil, err
	}
	return PredictTrends(buckets), nil
}

func (s *InsightService) List(userID uint, limit int) ([]models.NutritionInsight, error) {
	if limit <= 0 {
		limit = 10
	}
	var rows []models.NutritionInsight
	err := s.db.
		Where("user_id = ? AND expires_at > ?", userID, time.Now()).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (s *InsightService) MarkRead(userID uint, insightID string) error {
	return s.db.Model(&models.NutritionInsight{}).
		Where("id = ? AND user_id = ?", insightID, userID).
		Update("is_read", true).Error
}
