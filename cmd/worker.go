package cmd

import (
	"context"

	"github.com/IBM/sarama"
	"go.uber.org/zap"

	"travel-booking/pkg/queue"
)

// Worker runs the notification worker until ctx is cancelled.
func Worker(ctx context.Context, worker *queue.Worker, group sarama.ConsumerGroup, logger *zap.Logger) error {
	if err := worker.Run(ctx, group); err != nil {
		logger.Error("Notification worker stopped", zap.Error(err))
		return err
	}

	logger.Info("Notification worker stopped")
	return nil
}
