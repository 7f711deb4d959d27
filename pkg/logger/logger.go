package logger

import (
	"os"

	"go.uber.org/zap"
)

// InitLogger builds the process-wide zap logger. LOG_MODE=development switches
// to the human-readable console encoder.
func InitLogger() (*zap.Logger, error) {
	if os.Getenv("LOG_MODE") == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
