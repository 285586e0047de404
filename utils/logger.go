package utils

import "go.uber.org/zap"

// InitLogger returns the process-wide logger. Development mode gets the
// human-readable console encoder.
func InitLogger(env string) *zap.Logger {
	var logger *zap.Logger
	var err error

	if env == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		return zap.NewNop()
	}

	return logger
}
