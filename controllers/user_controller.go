package controllers

import (
	"net/http"

	"github.com/durveshgosavi-netizen/cblens/config"
	"github.com/durveshgosavi-netizen/cblens/models"

	"github.com/gin-gonic/gin"
)

func GetProfile(c *gin.Context) {
	email := c.GetString("email")

	var user models.User
	if err := config.DB.First(&user, "email = ?", email).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"email":           user.Email,
		"full_name":       user.FullName,
		"default_canteen": user.DefaultCanteen,
		"dietary_prefs":   user.DietaryPrefs,
	})
}

func UpdateProfile(c *gin.Context) {
	email := c.GetString("email")

	var input struct {
		FullName       string `json:"full_name"`
		DefaultCanteen string `json:"default_canteen"`
		DietaryPrefs   string `json:"dietary_prefs"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := config.DB.First(&user, "email = ?", email).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	if input.FullName != "" {
		user.FullName = input.FullName
	}
	user.DefaultCanteen = input.DefaultCanteen
	user.DietaryPrefs = input.DietaryPrefs
	if err := config.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "profile updated"})
}
