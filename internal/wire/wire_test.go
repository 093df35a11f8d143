package wire_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap/zaptest"

	"travel-booking/internal/data/repository"
	"travel-booking/internal/usecase"
	"travel-booking/internal/wire"
	"travel-booking/pkg/utils"
)

func newTestApp(t *testing.T) *wire.App {
	t.Helper()
	ctrl := gomock.NewController(t)

	repo := &repository.Repository{
		User:    repository.NewMockUserRepository(ctrl),
		Session: repository.NewMockSessionRepository(ctrl),
		Listing: repository.NewMockListingRepository(ctrl),
		Booking: repository.NewMockBookingRepository(ctrl),
		Payment: repository.NewMockPaymentRepository(ctrl),
		Review:  repository.NewMockReviewRepository(ctrl),
	}
	deps := wire.Deps{
		Gateway:      usecase.NewMockPaymentGateway(ctrl),
		Notifier:     usecase.NewMockPaymentNotifier(ctrl),
		ListingCache: usecase.NewMockListingCache(ctrl),
	}

	return wire.Wiring(repo, deps, &utils.Config{}, zaptest.NewLogger(t))
}

func TestRouter(t *testing.T) {
	tests := []struct {
		name     string
		method   string
		path     string
		body     string
		wantCode int
		wantBody string
	}{
		{
			name:     "Health",
			method:   http.MethodGet,
			path:     "/health",
			wantCode: http.StatusOK,
			wantBody: "OK",
		},
		{
			name:     "VerifyPaymentTrailingSlash",
			method:   http.MethodPost,
			path:     "/api/bookings/verify-payment/",
			body:     `{}`,
			wantCode: http.StatusBadRequest,
			wantBody: `"error":"Transaction ID is required"`,
		},
		{
			name:     "InitiatePaymentInvalidID",
			method:   http.MethodPost,
			path:     "/api/bookings/not-a-uuid/initiate-payment/",
			wantCode: http.StatusBadRequest,
			wantBody: `"error":"Invalid booking ID"`,
		},
		{
			name:     "CreateListingRequiresSession",
			method:   http.MethodPost,
			path:     "/api/listings",
			body:     `{"title":"Loft"}`,
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "DeleteReviewRequiresSession",
			method:   http.MethodDelete,
			path:     "/api/reviews/0f8e4a0e-7f1c-4a52-9d7e-2b7c1e3f9a10",
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "Metrics",
			method:   http.MethodGet,
			path:     "/metrics",
			wantCode: http.StatusOK,
			wantBody: "http_requests_total",
		},
	}

	app := newTestApp(t)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			app.Router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
			}
		})
	}
}
