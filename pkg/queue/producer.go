package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"travel-booking/pkg/telemetry"
	"travel-booking/pkg/utils"
)

func InitProducer(config utils.KafkaConfig, logger *zap.Logger) (sarama.SyncProducer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Retry.Max = 5

	producer, err := sarama.NewSyncProducer(config.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	logger.Info("Kafka producer initialized", zap.Strings("brokers", config.Brokers))
	return producer, nil
}

// Notifier publishes payment confirmation tasks.
type Notifier struct {
	producer sarama.SyncProducer
	topic    string
	log      *zap.Logger
	now      func() time.Time
}

func NewNotifier(producer sarama.SyncProducer, topic string, log *zap.Logger) *Notifier {
	return &Notifier{
		producer: producer,
		topic:    topic,
		log:      log.With(zap.String("component", "notifier")),
		now:      time.Now,
	}
}

// EnqueuePaymentConfirmation publishes task keyed by booking id, carrying
// the caller's trace context in the message headers.
func (n *Notifier) EnqueuePaymentConfirmation(ctx context.Context, task PaymentConfirmationTask) error {
	if task.EnqueuedAt.IsZero() {
		task.EnqueuedAt = n.now().UTC()
	}

	payload, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to marshal task: %w", err)
	}

	carrier := make(producerCarrier, 0)
	otel.GetTextMapPropagator().Inject(ctx, &carrier)

	msg := &sarama.ProducerMessage{
		Topic:   n.topic,
		Key:     sarama.StringEncoder(task.BookingID.String()),
		Value:   sarama.ByteEncoder(payload),
		Headers: []sarama.RecordHeader(carrier),
	}

	partition, offset, err := n.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	n.log.Info("Payment confirmation enqueued",
		zap.String("trace_id", telemetry.TraceID(ctx)),
		zap.String("topic", n.topic),
		zap.String("booking_id", task.BookingID.String()),
		zap.String("transaction_id", task.TransactionID),
		zap.Int32("partition", partition),
		zap.Int64("offset", offset),
	)

	return nil
}
