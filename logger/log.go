package logger

import (
	"log"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var Logger *zap.Logger

// InitializeLogger initializes the global logger.
func InitializeLogger() {
	env := os.Getenv("ENV")
	var err error
	var l *zap.Logger
	if env == "production" {
		l, err = zap.NewProduction()
	} else {
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	Logger = l
}

// Close flushes the logger buffers.
func Close() {
	if err := Logger.Sync(); err != nil {
		log.Printf("failed to flush log entries: %v", err)
	}
}

// Global logging methods to avoid `logger.Logger` repetition

func Info(msg string, args ...zapcore.Field) {
	Logger.Info(msg, args...)
}

func Warn(msg string, args ...zapcore.Field) {
	Logger.Warn(msg, args...)
}

func Error(msg string, args ...zapcore.Field) {
	Logger.Error(msg, args...)
}
