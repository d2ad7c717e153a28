package alertqueue

import (
	"clinigate-service/internal/app/contracts"
	"clinigate-service/internal/app/models"
	"clinigate-service/internal/pkg/constvars"
	"clinigate-service/internal/pkg/exceptions"
	"context"
	"sync"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	StandardQueueName   = "access_denial_alert_queue"
	DeadLetterQueueName = "access_denial_alert_dlq"
)

// Service publishes access-denial alerts to a durable RabbitMQ queue.
// Publish volume is capped so a scripted probe cannot flood the security
// channel; alerts over the cap are dropped with a log line, never blocked on.
type Service struct {
	ch      *amqp.Channel
	log     *zap.Logger
	limiter *rate.Limiter
	mu      sync.Mutex
}

// NewService declares the durable alert queue and its DLQ, enables publisher
// confirms, and wires the publish-rate cap.
func NewService(conn *amqp.Connection, log *zap.Logger, alertsPerSecond int) (*Service, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	_, err = ch.QueueDeclare(
		StandardQueueName, // name
		true,              // durable
		false,             // autoDelete
		false,             // exclusive
		false,             // noWait
		nil,               // args
	)
	if err != nil {
		return nil, err
	}

	_, err = ch.QueueDeclare(
		DeadLetterQueueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, err
	}

	if err := ch.Confirm(false); err != nil {
		return nil, err
	}

	if alertsPerSecond <= 0 {
		alertsPerSecond = 1
	}

	return &Service{
		ch:      ch,
		log:     log,
		limiter: rate.NewLimiter(rate.Limit(alertsPerSecond), alertsPerSecond),
	}, nil
}

// PublishDenialAlert enqueues one alert with persistence. A capped alert is
// dropped, not an error: alerting must never slow request handling down.
func (s *Service) PublishDenialAlert(ctx context.Context, alert *models.DenialAlert) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	if !s.limiter.Allow() {
		s.log.Warn("denial alert dropped by publish-rate cap",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingSubjectIDKey, alert.SubjectID),
		)
		return nil
	}

	body, err := json.Marshal(alert)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	msg := amqp.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		Body:         body,
		DeliveryMode: amqp.Persistent,
	}
	if err := s.ch.PublishWithContext(ctx, "", StandardQueueName, false, false, msg); err != nil {
		return exceptions.ErrQueuePublish(err)
	}
	return nil
}

var _ contracts.AlertQueueService = (*Service)(nil)
