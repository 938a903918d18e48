package controllers

import (
	"net/http"

	"github.com/durveshgosavi-netizen/cblens/services"

	"github.com/gin-gonic/gin"
)

type AchievementController struct {
	Svc *services.AchievementService
}

func NewAchievementController(svc *services.AchievementService) *AchievementController {
	return &AchievementController{Svc: svc}
}

func (ac *AchievementController) ListAchievements(c *gin.Context) {
	uid := c.GetUint("userID")

	list, points, err := ac.Svc.ListForUser(uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"achievements": list,
		"total_points": points,
	})
}

type RateMealInput struct {
	ScanID  string `json:"scan_id" binding:"required"`
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment"`
}

func (ac *AchievementController) RateMeal(c *gin.Context) {
	uid := c.GetUint("userID")

	var input RateMealInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rating, err := ac.Svc.RateMeal(uid, input.ScanID, input.Rating, input.Comment)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// feedback can tip a feedback-count achievement over the line
	awarded, err := ac.Svc.CheckAndAward(uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"rating":           rating,
		"new_achievements": awarded,
	})
}
