package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/durveshgosavi-netizen/cblens/models"
	"github.com/durveshgosavi-netizen/cblens/utils"

	"gorm.io/gorm"
)

// ExportReport is the JSON object downstream reporting consumes. Field names
// are part of the contract; don't rename them.
type ExportReport struct {
	ReportDate             string            `json:"reportDate"`
	DateRange              string            `json:"dateRange"`
	Summary                ReportSummary     `json:"summary"`
	TopDishes              []DishCount       `json:"topDishes"`
	ConfidenceDistribution []ConfidenceSlice `json:"confidenceDistribution"`
	LocationBreakdown      []LocationCount   `json:"locationBreakdown"`
	DailyScans             []DailyCount      `json:"dailyScans"`
}

type ReportSummary struct {
	TotalScans          int     `json:"totalScans"`
	AverageConfidence   string  `json:"averageConfidence"`  // "72.5%"
	AveragePortionSize  string  `json:"averagePortionSize"` // "320g"
	TotalCalories       float64 `json:"totalCalories"`
	CalorieGoalProgress string  `json:"calorieGoalProgress"` // "84%", "-" when no goal set
}

type ReportService struct {
	db        *gorm.DB
	analytics *AnalyticsService
}

func NewReportService(db *gorm.DB, analytics *AnalyticsService) *ReportService {
	return &ReportService{db: db, analytics: analytics}
}

// BuildReport assembles the export object for the trailing `days` window.
func (s *ReportService) BuildReport(userID uint, days int, opts AggregatorOptions) (*ExportReport, error) {
	summary, err := s.analytics.Summary(userID, days, opts)
	if err != nil {
		return nil, err
	}

	goalProgress := "-"
	var goal models.Goal
	err = s.db.
		Where("user_id = ? AND goal_type = ?", userID, models.GoalCalories).
		Order("updated_at DESC").
		First(&goal).Error
	if err == nil {
		p, evalErr := EvaluateGoal(goal, goal.CurrentValue)
		if evalErr == nil {
			goalProgress = fmt.Sprintf("%.0f%%", p.DisplayProgressPercent)
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return &ExportReport{
		ReportDate: time.Now().Format("2006-01-02 15:04:05"),
		DateRange:  fmt.Sprintf("Last %d days", days),
		Summary: ReportSummary{
			TotalScans:          summary.TotalScans,
			AverageConfidence:   fmt.Sprintf("%.1f%%", summary.AvgConfidence),
			AveragePortionSize:  fmt.Sprintf("%.0fg", summary.AvgPortionSize),
			TotalCalories:       summary.TotalCalories,
			CalorieGoalProgress: goalProgress,
		},
		TopDishes:              summary.TopDishes,
		ConfidenceDistribution: summary.ConfidenceDistribution,
		LocationBreakdown:      summary.LocationBreakdown,
		DailyScans:             summary.ScansPerDay,
	}, nil
}

// EmailReport renders the export and mails it to the user's address.
func (s *ReportService) EmailReport(userID uint, days int, opts AggregatorOptions) error {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return err
	}

	report, err := s.BuildReport(userID, days, opts)
	if err != nil {
		return err
	}
	raw, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	return utils.SendReportEmail(user.Email, report.DateRange, string(raw))
}
