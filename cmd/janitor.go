package cmd

import (
	"context"
	"time"

	"go.uber.org/zap"

	"travel-booking/internal/data/repository"
)

const sessionCleanupInterval = time.Hour

// SessionJanitor deletes expired sessions once an hour until ctx is done.
func SessionJanitor(ctx context.Context, sessions repository.SessionRepository, logger *zap.Logger) {
	ticker := time.NewTicker(sessionCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := sessions.CleanExpiredSessions(ctx); err != nil {
				logger.Warn("Failed to clean expired sessions", zap.Error(err))
			}
		}
	}
}
