package routes

import (
	"github.com/durveshgosavi-netizen/cblens/config"
	"github.com/durveshgosavi-netizen/cblens/controllers"
	"github.com/durveshgosavi-netizen/cblens/middlewares"
	"github.com/durveshgosavi-netizen/cblens/services"

	"github.com/gin-gonic/gin"
)

func SetupRouter() (*gin.Engine, error) {
	r := gin.Default()

	db := config.DB

	menuSvc := services.NewMenuService(db)
	scanSvc := services.NewScanService(db)
	analyticsSvc := services.NewAnalyticsService(db)
	goalSvc := services.NewGoalService(db)
	insightSvc := services.NewInsightService(db, analyticsSvc)
	achievementSvc := services.NewAchievementService(db)
	reportSvc := services.NewReportService(db, analyticsSvc)

	detectionSvc, err := services.NewDetectionService(menuSvc)
	if err != nil {
		return nil, err
	}
	pushSvc, err := services.NewPushService(db)
	if err != nil {
		return nil, err
	}

	hub := services.NewRealtimeHub()
	services.InitEventDeps(hub, pushSvc)

	scanCtl := controllers.NewScanController(scanSvc, insightSvc, goalSvc, achievementSvc)
	analyticsCtl := controllers.NewAnalyticsController(analyticsSvc, reportSvc)
	goalCtl := controllers.NewGoalController(goalSvc)
	insightCtl := controllers.NewInsightController(insightSvc)
	achievementCtl := controllers.NewAchievementController(achievementSvc)
	menuCtl := controllers.NewMenuController(menuSvc)
	detectionCtl := controllers.NewDetectionController(detectionSvc)
	deviceCtl := controllers.NewDeviceController(pushSvc)
	realtimeCtl := controllers.NewRealtimeController(hub)

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
	}

	// Protected user routes
	user := r.Group("/user")
	user.Use(middlewares.AuthMiddleware())
	{
		user.GET("/profile", controllers.GetProfile)
		user.PUT("/profile", controllers.UpdateProfile)
		user.POST("/devices", deviceCtl.Register)
	}

	menu := r.Group("/menu")
	menu.Use(middlewares.AuthMiddleware())
	{
		menu.GET("", menuCtl.ListMenu)
		menu.GET("/:id", menuCtl.GetMenuItem)
		menu.POST("/upload", menuCtl.UploadMenu)
	}

	scans := r.Group("/scans")
	scans.Use(middlewares.AuthMiddleware())
	{
		scans.POST("", scanCtl.CreateScan)
		scans.GET("", scanCtl.ListScans)
		scans.GET("/:id", scanCtl.GetScan)
		scans.PATCH("/:id/notes", scanCtl.UpdateNotes)
		scans.POST("/detect", detectionCtl.DetectDishes)
	}

	analytics := r.Group("/analytics")
	analytics.Use(middlewares.AuthMiddleware())
	{
		analytics.GET("/summary", analyticsCtl.GetSummary)
		analytics.GET("/trends", analyticsCtl.GetTrends)
		analytics.GET("/export", analyticsCtl.ExportReport)
		analytics.POST("/export/email", analyticsCtl.EmailReport)
	}

	goals := r.Group("/goals")
	goals.Use(middlewares.AuthMiddleware())
	{
		goals.POST("", goalCtl.CreateGoal)
		goals.GET("", goalCtl.ListGoals)
		goals.PUT("/:id/progress", goalCtl.UpdateProgress)
	}

	insights := r.Group("/insights")
	insights.Use(middlewares.AuthMiddleware())
	{
		insights.GET("", insightCtl.ListInsights)
		insights.POST("/refresh", insightCtl.RefreshInsights)
		insights.PUT("/:id/read", insightCtl.MarkRead)
		insights.GET("/predictions", insightCtl.GetPredictions)
		insights.GET("/streak", insightCtl.GetStreak)
	}

	achievements := r.Group("/achievements")
	achievements.Use(middlewares.AuthMiddleware())
	{
		achievements.GET("", achievementCtl.ListAchievements)
		achievements.POST("/ratings", achievementCtl.RateMeal)
	}

	ws := r.Group("/ws")
	ws.Use(middlewares.AuthMiddleware())
	{
		ws.GET("/events", realtimeCtl.EventsWS)
	}

	return r, nil
}
