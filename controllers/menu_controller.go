package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/durveshgosavi-netizen/cblens/models"
	"github.com/durveshgosavi-netizen/cblens/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type MenuController struct {
	Svc *services.MenuService
}

func NewMenuController(svc *services.MenuService) *MenuController {
	return &MenuController{Svc: svc}
}

func (mc *MenuController) ListMenu(c *gin.Context) {
	day := time.Now()
	if v := c.Query("date"); v != "" {
		t, err := time.ParseInLocation("2006-01-02", v, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
			return
		}
		day = t
	}

	items, err := mc.Svc.ListMenu(c.Query("location"), day)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, items)
}

func (mc *MenuController) UploadMenu(c *gin.Context) {
	var input struct {
		Items []models.MenuItem `json:"items" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := mc.Svc.UpsertMenu(input.Items); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "menu uploaded", "count": len(input.Items)})
}

func (mc *MenuController) GetMenuItem(c *gin.Context) {
	item, err := mc.Svc.GetMenuItem(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "menu item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, item)
}
