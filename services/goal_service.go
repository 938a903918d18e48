package services

import (
	"errors"
	"math"
	"time"

	"github.com/durveshgosavi-netizen/cblens/models"

	"gorm.io/gorm"
)

var goalTypes = map[string]bool{
	models.GoalCalories:    true,
	models.GoalProtein:     true,
	models.GoalCarbs:       true,
	models.GoalFat:         true,
	models.GoalWater:       true,
	models.GoalMealsPerDay: true,
}

type GoalProgress struct {
	RawProgressPercent     float64 `json:"raw_progress_percent"`
	DisplayProgressPercent float64 `json:"display_progress_percent"`
	IsCompleted            bool    `json:"is_completed"`
}

// EvaluateGoal compares a current value against the goal's target. The raw
// ratio is preserved for the completed determination; only the display value
// is clamped for progress bars.
func EvaluateGoal(goal models.Goal, currentValue float64) (GoalProgress, error) {
	if goal.TargetValue <= 0 {
		return GoalProgress{}, ErrInvalidGoal
	}
	raw := round2(currentValue / goal.TargetValue * 100)
	return GoalProgress{
		RawProgressPercent:     raw,
		DisplayProgressPercent: math.Min(raw, 100),
		IsCompleted:            raw >= 100,
	}, nil
}

type GoalService struct {
	db *gorm.DB
}

func NewGoalService(db *gorm.DB) *GoalService {
	return &GoalService{db: db}
}

func (s *GoalService) CreateGoal(userID uint, goalType string, target float64, period string) (*models.Goal, error) {
	if !goalTypes[goalType] {
		return nil, errors.New("unknown goal type")
	}
	if target <= 0 {
		return nil, ErrInvalidGoal
	}
	if period != models.PeriodWeekly {
		period = models.PeriodDaily
	}

	goal := &models.Goal{UserID: userID, GoalType: goalType, TargetValue: target, TimePeriod: period}
	if err := s.db.Create(goal).Error; err != nil {
		return nil, err
	}
	return goal, nil
}

type GoalWithProgress struct {
	models.Goal
	Progress GoalProgress `json:"progress"`
}

func (s *GoalService) ListGoals(userID uint) ([]GoalWithProgress, error) {
	var goals []models.Goal
	if err := s.db.Where("user_id = ?", userID).Order("created_at ASC").Find(&goals).Error; err != nil {
		return nil, err
	}

	out := make([]GoalWithProgress, 0, len(goals))
	for _, g := range goals {
		p, err := EvaluateGoal(g, g.CurrentValue)
		if err != nil {
			return nil, err
		}
		out = append(out, GoalWithProgress{Goal: g, Progress: p})
	}
	return out, nil
}

// UpdateProgress records a manual progress value (water, meals logged by
// hand).
func (s *GoalService) UpdateProgress(userID, goalID uint, value float64) (*GoalWithProgress, error) {
	var goal models.Goal
	if err := s.db.Where("id = ? AND user_id = ?", goalID, userID).First(&goal).Error; err != nil {
		return nil, err
	}
	goal.CurrentValue = value
	if err := s.db.Save(&goal).Error; err != nil {
		return nil, err
	}
	p, err := EvaluateGoal(goal, goal.CurrentValue)
	if err != nil {
		return nil, err
	}
	return &GoalWithProgress{Goal: goal, Progress: p}, nil
}

// currentFromBuckets derives a goal's current value from aggregated scans.
func currentFromBuckets(goalType string, buckets []Bucket) (float64, bool) {
	var cals, protein, carbs, fat float64
	meals := 0
	for _, b := range buckets {
		cals += b.TotalCalories
		protein += b.TotalProtein
		carbs += b.TotalCarbs
		fat += b.TotalFat
		meals += b.MealCount
	}
	switch goalType {
	case models.GoalCalories:
		return cals, true
	case models.GoalProtein:
		return protein, true
	case models.GoalCarbs:
		return carbs, true
	case models.GoalFat:
		return fat, true
	case models.GoalMealsPerDay:
		return float64(meals), true
	default:
		return 0, false // water stays user-reported
	}
}

// SyncFromScans recomputes every nutrition-backed goal's current value from
// the user's scans over the goal's own period (today, or the current week).
func (s *GoalService) SyncFromScans(userID uint, opts AggregatorOptions) error {
	var goals []models.Goal
	if err := s.db.Where("user_id = ?", userID).Find(&goals).Error; err != nil {
		return err
	}
	if len(goals) == 0 {
		return nil
	}

	loc := opts.location()
	now := time.Now().In(loc)
	today := dayStart(now, loc)

	fetch := func(from, to time.Time) ([]Bucket, error) {
		var scans []models.Scan
		if err := s.db.
			Where("user_id = ? AND scan_timestamp >= ? AND scan_timestamp < ?", userID, from, to).
			Find(&scans).Error; err != nil {
			return nil, err
		}
		return AggregateBuckets(scans, GranularityDaily, from, to, opts)
	}

	var daily, weekly []Bucket
	for _, g := range goals {
		var (
			buckets []Bucket
			err     error
		)
		if g.TimePeriod == models.PeriodWeekly {
			if weekly == nil {
				back := (int(today.Weekday()) - int(opts.WeekStart) + 7) % 7
				weekStart := today.AddDate(0, 0, -back)
				weekly, err = fetch(weekStart, weekStart.AddDate(0, 0, 7))
			}
			buckets = weekly
		} else {
			if daily == nil {
				daily, err = fetch(today, today.AddDate(0, 0, 1))
			}
			buckets = daily
		}
		if err != nil {
			return err
		}

		current, ok := currentFromBuckets(g.GoalType, buckets)
		if !ok {
			continue
		}
		if err := s.db.Model(&models.Goal{}).
			Where("id = ?", g.ID).
			Update("current_value", current).Error; err != nil {
			return err
		}
	}
	return nil
}
