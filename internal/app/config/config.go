package config

import (
	"clinigate-service/internal/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		MongoDB: MongoDB{
			Port:     utils.GetEnvString("MONGODB_PORT", "27017"),
			Host:     utils.GetEnvString("MONGODB_HOST", "localhost"),
			DbName:   utils.GetEnvString("MONGODB_DB_NAME", "clinigate"),
			Username: utils.GetEnvString("MONGODB_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("MONGODB_PASSWORD", "defaultPassword"),
		},
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
		},
		RabbitMQ: RabbitMQ{
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "defaultPassword"),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                       utils.GetEnvString("APP_ENV", "development"),
			Port:                      utils.GetEnvString("APP_PORT", ":8080"),
			Version:                   utils.GetEnvString("APP_VERSION", "v1"),
			EndpointPrefix:            utils.GetEnvString("APP_ENDPOINT_PREFIX", "api"),
			MaxRequests:               utils.GetEnvInt("APP_MAX_REQUESTS", 100),
			ShutdownTimeout:           utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT", 10),
			SuperadminAPIKeyHash:      utils.GetEnvString("APP_SUPERADMIN_API_KEY_HASH", ""),
			SuperadminAPIKeyRateLimit: utils.GetEnvInt("APP_SUPERADMIN_API_KEY_RATE_LIMIT", 1000),
		},
		FHIR: FHIR{
			BaseUrl: utils.GetEnvString("FHIR_BASE_URL", "http://localhost:5555/fhir/"),
		},
		JWT: JWT{
			Secret: utils.GetEnvString("JWT_SECRET", ""),
		},
		Audit: Audit{
			DenialAlertThreshold: utils.GetEnvInt("AUDIT_DENIAL_ALERT_THRESHOLD", 10),
			DenialWindowMinutes:  utils.GetEnvInt("AUDIT_DENIAL_WINDOW_MINUTES", 15),
			AlertsPerSecond:      utils.GetEnvInt("AUDIT_ALERTS_PER_SECOND", 5),
		},
	}
}

// Validate runs struct-tag validation over the internal config. Called once
// during startup; a failure aborts the process before any listener opens.
func (c *InternalConfig) Validate() error {
	return validator.New().Struct(c)
}
