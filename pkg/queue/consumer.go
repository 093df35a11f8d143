package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"travel-booking/pkg/metrics"
	"travel-booking/pkg/telemetry"
	"travel-booking/pkg/utils"
)

const (
	defaultMaxAttempts = 3
	confirmationTitle  = "Payment Confirmation"
)

// Mailer delivers one plain-text email.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

func InitConsumerGroup(config utils.KafkaConfig, logger *zap.Logger) (sarama.ConsumerGroup, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Consumer.Return.Errors = true
	saramaConfig.Consumer.Retry.Backoff = 1 * time.Second
	saramaConfig.Consumer.Offsets.Initial = sarama.OffsetOldest

	group, err := sarama.NewConsumerGroup(config.Brokers, config.GroupID, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka consumer group: %w", err)
	}

	logger.Info("Kafka consumer group initialized",
		zap.Strings("brokers", config.Brokers),
		zap.String("group_id", config.GroupID),
	)
	return group, nil
}

// Worker consumes payment confirmation tasks and emails the guest.
type Worker struct {
	topic       string
	mailer      Mailer
	log         *zap.Logger
	maxAttempts int
	backoff     func(attempt int) time.Duration
}

func NewWorker(topic string, mailer Mailer, log *zap.Logger) *Worker {
	return &Worker{
		topic:       topic,
		mailer:      mailer,
		log:         log.With(zap.String("component", "worker")),
		maxAttempts: defaultMaxAttempts,
		backoff: func(attempt int) time.Duration {
			return time.Duration(attempt) * time.Second
		},
	}
}

// Run joins the consumer group and blocks until ctx is cancelled.
func (w *Worker) Run(ctx context.Context, group sarama.ConsumerGroup) error {
	go func() {
		for err := range group.Errors() {
			w.log.Error("Kafka consumer error", zap.Error(err))
		}
	}()

	w.log.Info("Notification worker started", zap.String("topic", w.topic))

	for {
		if err := group.Consume(ctx, []string{w.topic}, w); err != nil {
			if errors.Is(err, sarama.ErrClosedConsumerGroup) {
				return nil
			}
			return fmt.Errorf("consume %s: %w", w.topic, err)
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}

// Setup implements sarama.ConsumerGroupHandler.
func (w *Worker) Setup(sarama.ConsumerGroupSession) error { return nil }

// Cleanup implements sarama.ConsumerGroupHandler.
func (w *Worker) Cleanup(sarama.ConsumerGroupSession) error { return nil }

// ConsumeClaim implements sarama.ConsumerGroupHandler. Every message is
// marked consumed, including ones that exhausted their retries.
func (w *Worker) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				return nil
			}
			if err := w.handleTaskWithRetry(session.Context(), message); err != nil {
				metrics.RecordNotification("send", "failed")
				w.log.Error("Failed to handle task after retries",
					zap.Error(err),
					zap.Int32("partition", message.Partition),
					zap.Int64("offset", message.Offset),
				)
			}
			session.MarkMessage(message, "")
		case <-session.Context().Done():
			return nil
		}
	}
}

func (w *Worker) handleTaskWithRetry(ctx context.Context, message *sarama.ConsumerMessage) error {
	var lastErr error
	for attempt := 1; attempt <= w.maxAttempts; attempt++ {
		err := w.handleTask(ctx, message)
		if err == nil {
			return nil
		}
		if errors.Is(err, errMalformedTask) {
			return err
		}
		lastErr = err
		if attempt < w.maxAttempts {
			backoff := w.backoff(attempt)
			w.log.Warn("Retrying task handling",
				zap.Int("attempt", attempt),
				zap.Duration("backoff", backoff),
				zap.Error(err),
			)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	return fmt.Errorf("failed after %d attempts: %w", w.maxAttempts, lastErr)
}

var errMalformedTask = errors.New("malformed task")

func (w *Worker) handleTask(ctx context.Context, message *sarama.ConsumerMessage) error {
	ctx = otel.GetTextMapPropagator().Extract(ctx, consumerCarrier(message.Headers))
	ctx, span := otel.Tracer("notification-worker").Start(ctx, "SendPaymentConfirmation")
	defer span.End()

	var task PaymentConfirmationTask
	if err := json.Unmarshal(message.Value, &task); err != nil {
		span.RecordError(err)
		return fmt.Errorf("%w: %v", errMalformedTask, err)
	}
	if task.UserEmail == "" {
		return fmt.Errorf("%w: missing user_email", errMalformedTask)
	}

	span.SetAttributes(
		attribute.String("booking.id", task.BookingID.String()),
		attribute.String("payment.transaction_id", task.TransactionID),
	)

	if err := w.mailer.Send(ctx, task.UserEmail, confirmationTitle, confirmationBody(task)); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "send failed")
		return fmt.Errorf("send confirmation to %s: %w", task.UserEmail, err)
	}

	metrics.RecordNotification("send", "ok")
	w.log.Info("Payment confirmation sent",
		zap.String("trace_id", telemetry.TraceID(ctx)),
		zap.String("booking_id", task.BookingID.String()),
		zap.String("transaction_id", task.TransactionID),
	)
	return nil
}

func confirmationBody(task PaymentConfirmationTask) string {
	return fmt.Sprintf(
		"Your payment for booking %s was successful.\n\nTransaction ID: %s\nAmount: %s\n\nThank you for booking with us.",
		task.BookingID, task.TransactionID, task.Amount.StringFixed(2),
	)
}
