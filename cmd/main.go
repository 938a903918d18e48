package main

import (
	"github.com/durveshgosavi-netizen/cblens/config"
	"github.com/durveshgosavi-netizen/cblens/logger"
	"github.com/durveshgosavi-netizen/cblens/routes"
	"github.com/durveshgosavi-netizen/cblens/utils"

	"go.uber.org/zap"
)

func main() {
	logger.InitializeLogger()
	defer logger.Close()

	config.InitDB()
	utils.InitS3()

	r, err := routes.SetupRouter()
	if err != nil {
		logger.Error("router setup failed", zap.Error(err))
		return
	}
	if err := r.Run(":8080"); err != nil {
		logger.Error("server exited", zap.Error(err))
	}
}
