package services

import (
	"errors"
	"time"

	"github.com/durveshgosavi-netizen/cblens/logger"
	"github.com/durveshgosavi-netizen/cblens/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type AchievementService struct {
	db *gorm.DB
}

func NewAchievementService(db *gorm.DB) *AchievementService {
	return &AchievementService{db: db}
}

type achievementStats struct {
	scanCount     int64
	uniqueDishes  int64
	ratingCount   int64
	currentStreak int
}

func (s *AchievementService) loadStats(userID uint) (achievementStats, error) {
	var st achievementStats

	if err := s.db.Model(&models.Scan{}).
		Where("user_id = ?", userID).
		Count(&st.scanCount).Error; err != nil {
		return st, err
	}
	if err := s.db.Model(&models.Scan{}).
		Where("user_id = ?", userID).
		Distinct("menu_item_id").
		Count(&st.uniqueDishes).Error; err != nil {
		return st, err
	}
	if err := s.db.Model(&models.MealRating{}).
		Where("user_id = ?", userID).
		Count(&st.ratingCount).Error; err != nil {
		return st, err
	}

	var streak models.NutritionStreak
	err := s.db.
		Where("user_id = ? AND streak_type = ?", userID, models.StreakDailyTracking).
		First(&streak).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return st, err
	}
	st.currentStreak = streak.CurrentCount

	return st, nil
}

// meetsCriteria: any one satisfied criterion awards the achievement, same as
// the upstream rules.
func meetsCriteria(a models.Achievement, st achievementStats) bool {
	if a.ScansCount > 0 && st.scanCount >= int64(a.ScansCount) {
		return true
	}
	if a.ConsecutiveDays > 0 && st.currentStreak >= a.ConsecutiveDays {
		return true
	}
	if a.MealFeedbacks > 0 && st.ratingCount >= int64(a.MealFeedbacks) {
		return true
	}
	if a.UniqueDishes > 0 && st.uniqueDishes >= int64(a.UniqueDishes) {
		return true
	}
	return false
}

// CheckAndAward evaluates every active achievement the user hasn't earned
// yet and awards the ones whose criteria are now met.
func (s *AchievementService) CheckAndAward(userID uint) ([]models.Achievement, error) {
	var earned []models.UserAchievement
	if err := s.db.Where("user_id = ?", userID).Find(&earned).Error; err != nil {
		return nil, err
	}
	earnedIDs := make(map[uint]bool, len(earned))
	for _, ua := range earned {
		earnedIDs[ua.AchievementID] = true
	}

	var all []models.Achievement
	if err := s.db.Where("is_active = ?", true).Find(&all).Error; err != nil {
		return nil, err
	}

	st, err := s.loadStats(userID)
	if err != nil {
		return nil, err
	}

	var awarded []models.Achievement
	for _, a := range all {
		if earnedIDs[a.ID] || !meetsCriteria(a, st) {
			continue
		}
		ua := models.UserAchievement{UserID: userID, AchievementID: a.ID, EarnedAt: time.Now()}
		if err := s.db.Create(&ua).Error; err != nil {
			return nil, err
		}
		logger.Info("achievement awarded",
			zap.Uint("user_id", userID), zap.String("achievement", a.Name))
		awarded = append(awarded, a)
	}
	return awarded, nil
}

type AchievementStatus struct {
	models.Achievement
	Earned   bool       `json:"earned"`
	EarnedAt *time.Time `json:"earned_at,omitempty"`
}

func (s *AchievementService) ListForUser(userID uint) ([]AchievementStatus, int, error) {
	var all []models.Achievement
	if err := s.db.Where("is_active = ?", true).Order("points ASC").Find(&all).Error; err != nil {
		return nil, 0, err
	}

	var earned []models.UserAchievement
	if err := s.db.Where("user_id = ?", userID).Find(&earned).Error; err != nil {
		return nil, 0, err
	}
	earnedAt := make(map[uint]time.Time, len(earned))
	for _, ua := range earned {
		earnedAt[ua.AchievementID] = ua.EarnedAt
	}

	points := 0
	out := make([]AchievementStatus, 0, len(all))
	for _, a := range all {
		st := AchievementStatus{Achievement: a}
		if at, ok := earnedAt[a.ID]; ok {
			st.Earned = true
			at := at
			st.EarnedAt = &at
			points += a.Points
		}
		out = append(out, st)
	}
	return out, points, nil
}

// RateMeal stores meal feedback, which feeds the meal_feedbacks criterion.
func (s *AchievementService) RateMeal(userID uint, scanID string, rating int, comment string) (*models.MealRating, error) {
	if rating < 1 || rating > 5 {
		return nil, errors.New("rating must be between 1 and 5")
	}
	row := &models.MealRating{UserID: userID, ScanID: scanID, Rating: rating, Comment: comment}
	if err := s.db.Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}
