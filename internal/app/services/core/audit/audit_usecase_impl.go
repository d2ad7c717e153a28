package audit

import (
	"clinigate-service/internal/app/contracts"
	"clinigate-service/internal/app/models"
	"clinigate-service/internal/pkg/constvars"
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

const denialCounterKeyFormat = "audit:denials:%s"

type auditUsecase struct {
	AuditRepository contracts.AuditRepository
	RedisRepository contracts.RedisRepository
	AlertQueue      contracts.AlertQueueService
	Log             *zap.Logger
	DenialThreshold int
	DenialWindow    time.Duration
}

// NewAuditUsecase wires the decision audit trail. Records go to Mongo;
// denials additionally bump a per-subject Redis counter and, past the
// threshold, raise a security alert on the queue.
func NewAuditUsecase(
	auditRepository contracts.AuditRepository,
	redisRepository contracts.RedisRepository,
	alertQueue contracts.AlertQueueService,
	log *zap.Logger,
	denialThreshold int,
	denialWindow time.Duration,
) contracts.AuditUsecase {
	return &auditUsecase{
		AuditRepository: auditRepository,
		RedisRepository: redisRepository,
		AlertQueue:      alertQueue,
		Log:             log,
		DenialThreshold: denialThreshold,
		DenialWindow:    denialWindow,
	}
}

// RecordDecision persists one decision and handles denial accounting. Audit
// failures are logged and swallowed: the trail observes decisions, it never
// blocks or reverses them.
func (u *auditUsecase) RecordDecision(ctx context.Context, record *models.AccessDecisionRecord) error {
	if err := u.AuditRepository.InsertDecisionRecord(ctx, record); err != nil {
		u.Log.Error("auditUsecase.RecordDecision failed to persist record",
			zap.String(constvars.LoggingRequestIDKey, record.RequestID),
			zap.Error(err),
		)
	}

	if record.Allowed {
		return nil
	}

	counterKey := fmt.Sprintf(denialCounterKeyFormat, record.SubjectID)
	count, err := u.RedisRepository.IncrementWithWindow(ctx, counterKey, u.DenialWindow)
	if err != nil {
		u.Log.Error("auditUsecase.RecordDecision failed to count denial",
			zap.String(constvars.LoggingRequestIDKey, record.RequestID),
			zap.Error(err),
		)
		return nil
	}

	if count >= int64(u.DenialThreshold) {
		u.Log.Warn("subject exceeded denial threshold inside window",
			zap.String(constvars.LoggingSubjectIDKey, record.SubjectID),
			zap.Int64("denials_in_window", count),
		)
		alert := &models.DenialAlert{
			RequestID:    record.RequestID,
			SubjectID:    record.SubjectID,
			Role:         record.Role,
			ResourceType: record.ResourceType,
			ResourceID:   record.ResourceID,
			Action:       record.Action,
			Reason:       record.Reason,
			DeniedAt:     record.EvaluatedAt,
		}
		if err := u.AlertQueue.PublishDenialAlert(ctx, alert); err != nil {
			u.Log.Error("auditUsecase.RecordDecision failed to publish alert",
				zap.String(constvars.LoggingRequestIDKey, record.RequestID),
				zap.Error(err),
			)
		}
	}

	return nil
}
