package controllers

import (
	"net/http"
	"strconv"

	"github.com/durveshgosavi-netizen/cblens/models"
	"github.com/durveshgosavi-netizen/cblens/services"

	"github.com/gin-gonic/gin"
)

type InsightController struct {
	Svc *services.InsightService
}

func NewInsightController(svc *services.InsightService) *InsightController {
	return &InsightController{Svc: svc}
}

func (ic *InsightController) ListInsights(c *gin.Context) {
	uid := c.GetUint("userID")

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	rows, err := ic.Svc.List(uid, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (ic *InsightController) RefreshInsights(c *gin.Context) {
	uid := c.GetUint("userID")

	rows, err := ic.Svc.Refresh(uid, services.AggregatorOptions{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (ic *InsightController) GetPredictions(c *gin.Context) {
	uid := c.GetUint("userID")

	p, err := ic.Svc.Predictions(uid, services.AggregatorOptions{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if p == nil {
		c.JSON(http.StatusOK, gin.H{"message": "not enough tracked days for predictions"})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (ic *InsightController) MarkRead(c *gin.Context) {
	uid := c.GetUint("userID")

	if err := ic.Svc.MarkRead(uid, c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "marked read"})
}

func (ic *InsightController) GetStreak(c *gin.Context) {
	uid := c.GetUint("userID")

	streak, err := ic.Svc.GetStreak(uid, models.StreakDailyTracking)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, streak)
}
