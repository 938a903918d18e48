package controllers

import (
	"net/http"
	"strconv"

	"github.com/durveshgosavi-netizen/cblens/services"

	"github.com/gin-gonic/gin"
)

type AnalyticsController struct {
	Svc     *services.AnalyticsService
	Reports *services.ReportService
}

func NewAnalyticsController(svc *services.AnalyticsService, reports *services.ReportService) *AnalyticsController {
	return &AnalyticsController{Svc: svc, Reports: reports}
}

func daysParam(c *gin.Context) (int, bool) {
	days, err := strconv.Atoi(c.DefaultQuery("days", "7"))
	if err != nil || days <= 0 || days > 365 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "days must be between 1 and 365"})
		return 0, false
	}
	return days, true
}

func (h *AnalyticsController) GetSummary(c *gin.Context) {
	uid := c.GetUint("userID")
	days, ok := daysParam(c)
	if !ok {
		return
	}

	out, err := h.Svc.Summary(uid, days, services.AggregatorOptions{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *AnalyticsController) GetTrends(c *gin.Context) {
	uid := c.GetUint("userID")
	days, ok := daysParam(c)
	if !ok {
		return
	}

	g := services.Granularity(c.DefaultQuery("granularity", "daily"))
	switch g {
	case services.GranularityDaily, services.GranularityWeekly, services.GranularityMonthly:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "granularity must be daily, weekly or monthly"})
		return
	}

	buckets, err := h.Svc.Trends(uid, days, g, services.AggregatorOptions{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"granularity":        g,
		"buckets":            buckets,
		"avg_daily_calories": services.AvgDailyCalories(buckets),
	})
}

func (h *AnalyticsController) ExportReport(c *gin.Context) {
	uid := c.GetUint("userID")
	days, ok := daysParam(c)
	if !ok {
		return
	}

	report, err := h.Reports.BuildReport(uid, days, services.AggregatorOptions{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *AnalyticsController) EmailReport(c *gin.Context) {
	uid := c.GetUint("userID")
	days, ok := daysParam(c)
	if !ok {
		return
	}

	if err := h.Reports.EmailReport(uid, days, services.AggregatorOptions{}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "report sent"})
}
