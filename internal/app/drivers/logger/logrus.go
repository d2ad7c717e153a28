package logger

import (
	"clinigate-service/internal/app/config"
	"os"

	"github.com/sirupsen/logrus"
)

// InitBootstrapLogger configures the global logrus instance used for process
// lifecycle messages before and after the zap request logger is available.
func InitBootstrapLogger(internalConfig *config.InternalConfig) {
	switch internalConfig.App.Env {
	case "production":
		logrus.SetFormatter(&logrus.JSONFormatter{})
		file, err := os.OpenFile("logrus.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err == nil {
			logrus.SetOutput(file)
		} else {
			logrus.Info("Failed to log to file, using default stderr")
		}
	default:
		logrus.SetFormatter(&logrus.TextFormatter{})
	}
}
