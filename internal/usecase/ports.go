package usecase

import (
	"context"

	"github.com/google/uuid"

	"travel-booking/internal/data/entity"
	"travel-booking/pkg/gateway"
	"travel-booking/pkg/queue"
)

//go:generate mockgen -source=ports.go -destination=mock_ports.go -package=usecase

// PaymentGateway is the hosted checkout provider.
type PaymentGateway interface {
	Initialize(ctx context.Context, req *gateway.InitializeRequest) (*gateway.InitializeResult, error)
	Verify(ctx context.Context, txRef string) (*gateway.VerifyResult, error)
}

// PaymentNotifier hands confirmation tasks to the async worker.
type PaymentNotifier interface {
	EnqueuePaymentConfirmation(ctx context.Context, task queue.PaymentConfirmationTask) error
}

// ListingCache is a best-effort read-through cache; it never returns errors.
type ListingCache interface {
	Get(ctx context.Context, id uuid.UUID) *entity.Listing
	Set(ctx context.Context, listing *entity.Listing)
	Invalidate(ctx context.Context, id uuid.UUID)
}
