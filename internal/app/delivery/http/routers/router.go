package routers

import (
	"clinigate-service/internal/app/config"
	"clinigate-service/internal/app/delivery/http/middlewares"
	"clinigate-service/internal/app/services/core/access"
	"clinigate-service/internal/app/services/core/resources"
	"clinigate-service/internal/pkg/constvars"
	"clinigate-service/internal/pkg/utils"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	registry *access.RouteRegistry,
	matrix *access.PermissionMatrix,
	resourceController *resources.ResourceController,
	log *zap.Logger,
) {
	corsOptions := cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", "X-Request-Id", "x-api-key"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))

	router.Use(middlewares.ErrorHandler)
	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.Logging(log))
	router.Use(middlewares.APIKeyAuth)

	normalLimiter, apiKeyLimiter := middlewares.CreateRateLimiters()
	router.Use(middlewares.ConditionalRateLimit(normalLimiter, apiKeyLimiter))

	endpointPrefix := fmt.Sprintf("/%s", internalConfig.App.EndpointPrefix)

	router.Route(endpointPrefix, func(r chi.Router) {
		healthSpec := registry.Register(constvars.MethodGet, "/health", access.NewRouteSpec().Build())
		r.With(middlewares.Authorize(healthSpec)).Get("/health", func(w http.ResponseWriter, req *http.Request) {
			utils.BuildSuccessResponse(w, constvars.StatusOK, "ok", nil)
		})

		r.Route("/fhir", func(r chi.Router) {
			attachResourceRoutes(r, middlewares, registry, resourceController)
		})
	})

	registry.ValidateAgainstMatrix(matrix, log)
}
