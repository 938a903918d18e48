package controllers

import (
	"net/http"
	"time"

	"github.com/durveshgosavi-netizen/cblens/services"

	"github.com/gin-gonic/gin"
)

type DetectionController struct {
	Svc *services.DetectionService
}

func NewDetectionController(svc *services.DetectionService) *DetectionController {
	return &DetectionController{Svc: svc}
}

type DetectInput struct {
	Photo    string `json:"photo" binding:"required"` // data URI
	Location string `json:"location" binding:"required"`
	Date     string `json:"date"` // yyyy-mm-dd, defaults to today
}

func (dc *DetectionController) DetectDishes(c *gin.Context) {
	var input DetectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	day := time.Now()
	if input.Date != "" {
		t, err := time.ParseInLocation("2006-01-02", input.Date, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
			return
		}
		day = t
	}

	candidates, err := dc.Svc.DetectDishes(input.Photo, input.Location, day)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"candidates": candidates})
}
