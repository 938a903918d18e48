package services

import (
	"time"

	"github.com/durveshgosavi-netizen/cblens/logger"
	"github.com/durveshgosavi-netizen/cblens/models"
	"github.com/durveshgosavi-netizen/cblens/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ScanService struct {
	db *gorm.DB
}

func NewScanService(db *gorm.DB) *ScanService {
	return &ScanService{db: db}
}

// BuildScanRecord assembles the scan value object from a selected detection
// candidate. No persistence happens here; SaveScan does that.
//
// The stored EstimatedGrams reflects the post-multiplier weight so that what
// the user sees in history matches what was scaled.
func BuildScanRecord(
	userID uint,
	candidate *models.DishCandidate,
	preset models.PortionPreset,
	estimatedGrams float64,
	location, notes string,
	alternatives models.CandidateList,
	at time.Time,
) (*models.Scan, error) {
	if candidate == nil || !candidate.Valid() {
		return nil, ErrMissingCandidate
	}

	scaled, err := ScaleNutrition(candidate.NutrientsPer100g, estimatedGrams, preset)
	if err != nil {
		return nil, err
	}

	return &models.Scan{
		ID:              uuid.NewString(),
		UserID:          userID,
		MenuItemID:      candidate.ID,
		Confidence:      TierFromScore(candidate.ConfidenceScore),
		PortionPreset:   preset,
		EstimatedGrams:  scaled.EffectiveGrams,
		ScaledCalories:  scaled.Calories,
		ScaledProtein:   scaled.Protein,
		ScaledCarbs:     scaled.Carbs,
		ScaledFat:       scaled.Fat,
		CanteenLocation: location,
		Notes:           notes,
		Alternatives:    alternatives,
		ScanTimestamp:   at,
	}, nil
}

// SaveScan persists a built record, uploading the photo first if one was
// captured. A failed photo upload is logged and skipped; the scan itself
// still saves, matching the capture-first UX.
func (s *ScanService) SaveScan(scan *models.Scan, photoBase64 string) error {
	if photoBase64 != "" {
		key, err := utils.UploadScanPhoto(photoBase64, scan.UserID)
		if err != nil {
			logger.Warn("scan photo upload failed", zap.String("scan_id", scan.ID), zap.Error(err))
		} else {
			scan.PhotoURL = key
		}
	}

	if err := s.db.Create(scan).Error; err != nil {
		return err
	}
	EmitScanSaved(scan.UserID, scan)
	return nil
}

type ScanFilter struct {
	From     *time.Time
	To       *time.Time
	Location string
}

func (s *ScanService) ListScans(userID uint, f ScanFilter) ([]models.Scan, error) {
	q := s.db.Where("user_id = ?", userID).Order("scan_timestamp DESC")
	if f.From != nil && f.To != nil {
		q = q.Where("scan_timestamp >= ? AND scan_timestamp < ?", *f.From, *f.To)
	}
	if f.Location != "" {
		q = q.Where("canteen_location = ?", f.Location)
	}

	var scans []models.Scan
	err := q.Find(&scans).Error
	return scans, err
}

func (s *ScanService) GetScan(userID uint, scanID string) (*models.Scan, error) {
	var scan models.Scan
	err := s.db.
		Where("id = ? AND user_id = ?", scanID, userID).
		First(&scan).Error
	if err != nil {
		return nil, err // could be ErrRecordNotFound
	}
	return &scan, nil
}

// UpdateNotes is the only mutation a saved scan allows.
func (s *ScanService) UpdateNotes(userID uint, scanID, notes string) (*models.Scan, error) {
	scan, err := s.GetScan(userID, scanID)
	if err != nil {
		return nil, err
	}
	scan.Notes = notes
	if err := s.db.Model(scan).Update("notes", notes).Error; err != nil {
		return nil, err
	}
	return scan, nil
}

func (s *ScanService) ListScansInWindow(userID uint, from, to time.Time) ([]models.Scan, error) {
	var scans []models.Scan
	err := s.db.
		Where("user_id = ? AND scan_timestamp >= ? AND scan_timestamp < ?", userID, from, to).
		Order("scan_timestamp ASC").
		Find(&scans).Error
	return scans, err
}
