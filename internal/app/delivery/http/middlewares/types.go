package middlewares

import (
	"clinigate-service/internal/app/config"
	"clinigate-service/internal/app/contracts"
	"clinigate-service/internal/app/services/core/access"

	"go.uber.org/zap"
)

type Middlewares struct {
	Log            *zap.Logger
	Engine         access.AccessDecisionEngine
	AuditUsecase   contracts.AuditUsecase
	InternalConfig *config.InternalConfig
}
