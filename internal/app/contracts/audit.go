package contracts

import (
	"clinigate-service/internal/app/models"
	"context"
)

type AuditRepository interface {
	InsertDecisionRecord(ctx context.Context, record *models.AccessDecisionRecord) error
	CountDecisionsBySubject(ctx context.Context, subjectID string) (int64, error)
}

// AuditUsecase observes decisions after the fact. It never influences a
// decision and never caches one.
type AuditUsecase interface {
	RecordDecision(ctx context.Context, record *models.AccessDecisionRecord) error
}

type AlertQueueService interface {
	PublishDenialAlert(ctx context.Context, alert *models.DenialAlert) error
}
