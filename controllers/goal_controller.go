package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/durveshgosavi-netizen/cblens/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type GoalController struct {
	Svc *services.GoalService
}

func NewGoalController(svc *services.GoalService) *GoalController {
	return &GoalController{Svc: svc}
}

type CreateGoalInput struct {
	GoalType    string  `json:"goal_type" binding:"required"`
	TargetValue float64 `json:"target_value" binding:"required"`
	TimePeriod  string  `json:"time_period"`
}

func (gc *GoalController) CreateGoal(c *gin.Context) {
	uid := c.GetUint("userID")

	var input CreateGoalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	goal, err := gc.Svc.CreateGoal(uid, input.GoalType, input.TargetValue, input.TimePeriod)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, goal)
}

func (gc *GoalController) ListGoals(c *gin.Context) {
	uid := c.GetUint("userID")

	// current values refresh from scans before evaluation so progress is
	// never stale
	if err := gc.Svc.SyncFromScans(uid, services.AggregatorOptions{}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	goals, err := gc.Svc.ListGoals(uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, goals)
}

func (gc *GoalController) UpdateProgress(c *gin.Context) {
	uid := c.GetUint("userID")

	goalID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid goal id"})
		return
	}

	var input struct {
		CurrentValue float64 `json:"current_value"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	goal, err := gc.Svc.UpdateProgress(uid, uint(goalID), input.CurrentValue)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "goal not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, goal)
}
