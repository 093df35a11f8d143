package adaptor_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap/zaptest"

	"travel-booking/internal/adaptor"
	"travel-booking/internal/data/entity"
	"travel-booking/internal/dto/response"
	"travel-booking/internal/usecase"
)

func newPaymentRouter(t *testing.T) (http.Handler, *usecase.MockPaymentService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	svc := usecase.NewMockPaymentService(ctrl)
	h := adaptor.NewPaymentHandler(svc, zaptest.NewLogger(t))

	r := chi.NewRouter()
	r.Post("/api/bookings/{id}/initiate-payment", h.InitiatePayment)
	r.Post("/api/bookings/verify-payment", h.VerifyPayment)
	r.Get("/api/payments/{id}", h.GetPayment)
	return r, svc
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestPaymentHandler_InitiatePayment(t *testing.T) {
	const bookingID = "0f8e4a0e-7f1c-4a52-9d7e-2b7c1e3f9a10"

	tests := []struct {
		name      string
		setupMock func(svc *usecase.MockPaymentService)
		wantCode  int
		wantBody  map[string]any
	}{
		{
			name: "Success",
			setupMock: func(svc *usecase.MockPaymentService) {
				svc.EXPECT().InitiatePayment(gomock.Any(), bookingID).Return(&response.InitiatePaymentResponse{
					PaymentURL:    "https://checkout.chapa.co/abc",
					TransactionID: "booking-" + bookingID,
					Message:       usecase.MsgPaymentInitiated,
				}, nil)
			},
			wantCode: http.StatusOK,
			wantBody: map[string]any{
				"payment_url":    "https://checkout.chapa.co/abc",
				"transaction_id": "booking-" + bookingID,
				"message":        "Payment initiated successfully",
			},
		},
		{
			name: "BookingNotFound",
			setupMock: func(svc *usecase.MockPaymentService) {
				svc.EXPECT().InitiatePayment(gomock.Any(), bookingID).
					Return(nil, fmt.Errorf("%w: booking %s", usecase.ErrNotFound, bookingID))
			},
			wantCode: http.StatusNotFound,
			wantBody: map[string]any{"error": "Booking not found"},
		},
		{
			name: "GatewayFailure",
			setupMock: func(svc *usecase.MockPaymentService) {
				svc.EXPECT().InitiatePayment(gomock.Any(), bookingID).
					Return(nil, fmt.Errorf("%w: initialize: status 401", usecase.ErrGateway))
			},
			wantCode: http.StatusBadGateway,
			wantBody: map[string]any{"error": "Failed to initiate payment"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, svc := newPaymentRouter(t)
			tt.setupMock(svc)

			req := httptest.NewRequest(http.MethodPost, "/api/bookings/"+bookingID+"/initiate-payment", nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.Equal(t, tt.wantBody, decodeBody(t, rec))
		})
	}
}

func TestPaymentHandler_VerifyPayment(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		setupMock func(svc *usecase.MockPaymentService)
		wantCode  int
		wantBody  map[string]any
	}{
		{
			name: "Completed",
			body: `{"transaction_id":"booking-1"}`,
			setupMock: func(svc *usecase.MockPaymentService) {
				svc.EXPECT().VerifyPayment(gomock.Any(), gomock.Any()).Return(&response.VerifyPaymentResponse{
					TransactionID: "booking-1",
					Status:        entity.PaymentStatusCompleted,
					Amount:        "300.00",
					Message:       usecase.MsgPaymentVerified,
				}, nil)
			},
			wantCode: http.StatusOK,
			wantBody: map[string]any{
				"transaction_id": "booking-1",
				"status":         "Completed",
				"amount":         "300.00",
				"message":        "Payment verified and status updated",
			},
		},
		{
			name:     "EmptyBody",
			body:     ``,
			wantCode: http.StatusBadRequest,
			wantBody: map[string]any{"error": "Transaction ID is required"},
		},
		{
			name: "MissingTransactionID",
			body: `{}`,
			setupMock: func(svc *usecase.MockPaymentService) {
				svc.EXPECT().VerifyPayment(gomock.Any(), gomock.Any()).
					Return(nil, &usecase.ValidationError{Fields: map[string]string{"transaction_id": "Transaction ID is required"}})
			},
			wantCode: http.StatusBadRequest,
			wantBody: map[string]any{"error": "Transaction ID is required"},
		},
		{
			name: "UnknownTransaction",
			body: `{"transaction_id":"booking-x"}`,
			setupMock: func(svc *usecase.MockPaymentService) {
				svc.EXPECT().VerifyPayment(gomock.Any(), gomock.Any()).
					Return(nil, fmt.Errorf("%w: payment booking-x", usecase.ErrNotFound))
			},
			wantCode: http.StatusNotFound,
			wantBody: map[string]any{"error": "Payment not found"},
		},
		{
			name: "GatewayFailure",
			body: `{"transaction_id":"booking-1"}`,
			setupMock: func(svc *usecase.MockPaymentService) {
				svc.EXPECT().VerifyPayment(gomock.Any(), gomock.Any()).
					Return(nil, fmt.Errorf("%w: verify booking-1", usecase.ErrGateway))
			},
			wantCode: http.StatusBadGateway,
			wantBody: map[string]any{"error": "Failed to verify payment"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, svc := newPaymentRouter(t)
			if tt.setupMock != nil {
				tt.setupMock(svc)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/bookings/verify-payment", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantBody, decodeBody(t, rec))
		})
	}
}

func TestPaymentHandler_GetPaymentInvalidID(t *testing.T) {
	router, svc := newPaymentRouter(t)
	svc.EXPECT().GetPayment(gomock.Any(), "nope").
		Return(nil, &usecase.ValidationError{Fields: map[string]string{"id": "Must be a valid UUID"}})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/payments/nope", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["status"])
	assert.Equal(t, "Validation failed", body["message"])
	assert.Equal(t, map[string]any{"id": "Must be a valid UUID"}, body["errors"])
}
