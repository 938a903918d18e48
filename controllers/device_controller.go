package controllers

import (
	"net/http"

	"github.com/durveshgosavi-netizen/cblens/services"

	"github.com/gin-gonic/gin"
)

type DeviceController struct {
	Push *services.PushService
}

func NewDeviceController(ps *services.PushService) *DeviceController {
	return &DeviceController{Push: ps}
}

type RegisterDeviceInput struct {
	Platform string `json:"platform" binding:"required"`
	Token    string `json:"token" binding:"required"`
}

func (dc *DeviceController) Register(c *gin.Context) {
	uid := c.GetUint("userID")

	var input RegisterDeviceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dev, err := dc.Push.RegisterDevice(uid, input.Platform, input.Token)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"endpoint_arn": dev.EndpointARN})
}
