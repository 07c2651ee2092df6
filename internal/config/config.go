// Package config provides hierarchical configuration for the application:
// defaults, an optional YAML config file, and EXPENSE_* environment
// variables, in increasing order of precedence.
package config

import (
	"os"
	"sync"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

var once sync.Once

// LoadEnv loads environment variables from a .env file if one exists in the
// working directory. Missing files are fine; real environments win anyway.
func LoadEnv(logger *logrus.Logger) {
	once.Do(func() {
		if _, err := os.Stat(".env"); os.IsNotExist(err) {
			return
		}
		if err := godotenv.Load(".env"); err != nil {
			logger.Warnf("Error loading .env file: %v", err)
			return
		}
		logger.Debug("Loaded environment variables from .env")
	})
}
