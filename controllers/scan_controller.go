package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/durveshgosavi-netizen/cblens/logger"
	"github.com/durveshgosavi-netizen/cblens/models"
	"github.com/durveshgosavi-netizen/cblens/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ScanController struct {
	Scans        *services.ScanService
	Insights     *services.InsightService
	Goals        *services.GoalService
	Achievements *services.AchievementService
}

func NewScanController(
	scans *services.ScanService,
	insights *services.InsightService,
	goals *services.GoalService,
	achievements *services.AchievementService,
) *ScanController {
	return &ScanController{Scans: scans, Insights: insights, Goals: goals, Achievements: achievements}
}

type CreateScanInput struct {
	MenuItemID     string                 `json:"menu_item_id"`
	Candidates     []models.DishCandidate `json:"candidates" binding:"required"`
	PortionPreset  string                 `json:"portion_preset" binding:"required"`
	EstimatedGrams float64                `json:"estimated_grams" binding:"required"`
	Location       string                 `json:"location"`
	Notes          string                 `json:"notes"`
	Photo          string                 `json:"photo"` // base64 or data URI, optional
	ScannedAt      *time.Time             `json:"scanned_at"`
}

func (sc *ScanController) CreateScan(c *gin.Context) {
	uid := c.GetUint("userID")

	var input CreateScanInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// the selected candidate, or the top-ranked one when nothing was picked
	var chosen *models.DishCandidate
	for i := range input.Candidates {
		if input.Candidates[i].ID == input.MenuItemID {
			chosen = &input.Candidates[i]
			break
		}
	}
	if chosen == nil && len(input.Candidates) > 0 {
		chosen = &input.Candidates[0]
	}

	at := time.Now()
	if input.ScannedAt != nil {
		at = *input.ScannedAt
	}

	scan, err := services.BuildScanRecord(
		uid,
		chosen,
		models.PortionPreset(input.PortionPreset),
		input.EstimatedGrams,
		input.Location,
		input.Notes,
		models.CandidateList(input.Candidates),
		at,
	)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := sc.Scans.SaveScan(scan, input.Photo); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// Post-save bookkeeping. Failures here shouldn't fail the save; the scan
	// is already durable.
	opts := services.AggregatorOptions{}
	if _, err := sc.Insights.RecordDailyActivity(uid, at); err != nil {
		logger.Warn("streak update failed", zap.Uint("user_id", uid), zap.Error(err))
	}
	if err := sc.Goals.SyncFromScans(uid, opts); err != nil {
		logger.Warn("goal sync failed", zap.Uint("user_id", uid), zap.Error(err))
	}
	if _, err := sc.Insights.Refresh(uid, opts); err != nil {
		logger.Warn("insight refresh failed", zap.Uint("user_id", uid), zap.Error(err))
	}
	awarded, err := sc.Achievements.CheckAndAward(uid)
	if err != nil {
		logger.Warn("achievement check failed", zap.Uint("user_id", uid), zap.Error(err))
	}

	c.JSON(http.StatusCreated, gin.H{
		"scan":             scan,
		"new_achievements": awarded,
	})
}

func (sc *ScanController) ListScans(c *gin.Context) {
	uid := c.GetUint("userID")

	var f services.ScanFilter
	f.Location = c.Query("location")
	if v := c.Query("from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from date"})
			return
		}
		f.From = &t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to date"})
			return
		}
		end := t.AddDate(0, 0, 1)
		f.To = &end
	}

	scans, err := sc.Scans.ListScans(uid, f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, scans)
}

func (sc *ScanController) GetScan(c *gin.Context) {
	uid := c.GetUint("userID")

	scan, err := sc.Scans.GetScan(uid, c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "scan not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, scan)
}

func (sc *ScanController) UpdateNotes(c *gin.Context) {
	uid := c.GetUint("userID")

	var input struct {
		Notes string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	scan, err := sc.Scans.UpdateNotes(uid, c.Param("id"), input.Notes)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "scan not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, scan)
}
