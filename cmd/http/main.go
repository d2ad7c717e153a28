package main

import (
	"clinigate-service/internal/app/config"
	"clinigate-service/internal/app/delivery/http/middlewares"
	"clinigate-service/internal/app/delivery/http/routers"
	"clinigate-service/internal/app/drivers/database"
	"clinigate-service/internal/app/drivers/logger"
	"clinigate-service/internal/app/drivers/messaging"
	"clinigate-service/internal/app/services/core/access"
	"clinigate-service/internal/app/services/core/audit"
	"clinigate-service/internal/app/services/core/resources"
	"clinigate-service/internal/app/services/fhir_store"
	"clinigate-service/internal/app/services/shared/alertqueue"
	"clinigate-service/internal/app/services/shared/redis"
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	logger.InitBootstrapLogger(internalConfig)

	if err := internalConfig.Validate(); err != nil {
		logrus.Fatalf("Invalid configuration: %v", err)
	}

	log := logger.NewZapLogger(driverConfig, internalConfig)
	defer log.Sync()

	mongoClient := database.NewMongoDB(driverConfig)
	redisClient := database.NewRedisClient(driverConfig)
	rabbitMQConn := messaging.NewRabbitMQ(driverConfig)
	chiRouter := chi.NewRouter()

	bootstrapingTheApp(config.Bootstrap{
		Router:         chiRouter,
		MongoDB:        mongoClient,
		Redis:          redisClient,
		RabbitMQ:       rabbitMQConn,
		Logger:         log,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	})

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	logrus.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeout),
	)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logrus.Fatalf("Server forced to shutdown: %v", err)
	}

	logrus.Println("Server exiting")
}

func bootstrapingTheApp(bootstrap config.Bootstrap) {
	// Access decision engine
	matrix, err := access.NewPermissionMatrix()
	if err != nil {
		logrus.Fatalf("Invalid permission matrix: %v", err)
	}
	authenticator := access.NewJWTPrincipalAuthenticator(bootstrap.InternalConfig.JWT.Secret)
	ownership := access.NewOwnershipValidator()
	scope := access.NewQueryScopeBuilder()
	engine := access.NewAccessDecisionEngine(authenticator, matrix, ownership, scope, bootstrap.Logger)
	registry := access.NewRouteRegistry()

	// Redis
	redisRepository := redis.NewRedisRepository(bootstrap.Redis)

	// Audit trail
	alertQueue, err := alertqueue.NewService(bootstrap.RabbitMQ, bootstrap.Logger, bootstrap.InternalConfig.Audit.AlertsPerSecond)
	if err != nil {
		logrus.Fatalf("Failed to set up alert queue: %v", err)
	}
	auditMongoRepository := audit.NewAuditMongoRepository(bootstrap.MongoDB, bootstrap.DriverConfig.MongoDB.DbName)
	auditUsecase := audit.NewAuditUsecase(
		auditMongoRepository,
		redisRepository,
		alertQueue,
		bootstrap.Logger,
		bootstrap.InternalConfig.Audit.DenialAlertThreshold,
		time.Duration(bootstrap.InternalConfig.Audit.DenialWindowMinutes)*time.Minute,
	)

	// Middlewares
	appMiddlewares := &middlewares.Middlewares{
		Log:            bootstrap.Logger,
		Engine:         engine,
		AuditUsecase:   auditUsecase,
		InternalConfig: bootstrap.InternalConfig,
	}

	// Resources
	resourceStoreClient := fhirstore.NewResourceStoreFhirClient(bootstrap.InternalConfig.FHIR.BaseUrl, bootstrap.Logger)
	resourceUsecase := resources.NewResourceUsecase(resourceStoreClient, bootstrap.Logger)
	resourceController := resources.NewResourceController(resourceUsecase, bootstrap.Logger)

	routers.SetupRoutes(bootstrap.Router, bootstrap.InternalConfig, appMiddlewares, registry, matrix, resourceController, bootstrap.Logger)
}
