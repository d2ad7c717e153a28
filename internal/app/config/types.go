package config

import (
	"github.com/go-chi/chi/v5"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type (
	Bootstrap struct {
		Router         *chi.Mux
		MongoDB        *mongo.Client
		Redis          *redis.Client
		RabbitMQ       *amqp.Connection
		Logger         *zap.Logger
		DriverConfig   *DriverConfig
		InternalConfig *InternalConfig
	}

	InternalConfig struct {
		App   App
		FHIR  FHIR
		JWT   JWT
		Audit Audit
	}

	DriverConfig struct {
		MongoDB  MongoDB
		Redis    Redis
		RabbitMQ RabbitMQ
		Logger   Logger
	}

	App struct {
		Env                       string `validate:"required"`
		Port                      string `validate:"required"`
		Version                   string
		EndpointPrefix            string
		MaxRequests               int `validate:"gt=0"`
		ShutdownTimeout           int `validate:"gt=0"`
		SuperadminAPIKeyHash      string
		SuperadminAPIKeyRateLimit int `validate:"gt=0"`
	}

	FHIR struct {
		BaseUrl string `validate:"required,url"`
	}

	JWT struct {
		Secret string `validate:"required,min=32"`
	}

	Audit struct {
		DenialAlertThreshold int `validate:"gt=0"`
		DenialWindowMinutes  int `validate:"gt=0"`
		AlertsPerSecond      int `validate:"gt=0"`
	}

	MongoDB struct {
		Port     string
		Host     string
		DbName   string
		Username string
		Password string
	}

	Redis struct {
		Host     string
		Port     string
		Password string
	}

	RabbitMQ struct {
		Port     string
		Host     string
		Username string
		Password string
	}

	Logger struct {
		Level               string
		OutputFileName      string
		OutputErrorFileName string
	}
)
