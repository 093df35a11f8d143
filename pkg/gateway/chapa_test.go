package gateway_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"travel-booking/pkg/gateway"
	"travel-booking/pkg/utils"
)

func newClient(t *testing.T, handler http.HandlerFunc) *gateway.Client {
	t.Helper()

	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	return gateway.NewClient(utils.GatewayConfig{
		BaseURL:   ts.URL,
		SecretKey: "CHASECK_TEST-secret",
	}, ts.Client(), zaptest.NewLogger(t))
}

func TestClient_Initialize(t *testing.T) {
	var got gateway.InitializeRequest

	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/transaction/initialize", r.URL.Path)
		assert.Equal(t, "Bearer CHASECK_TEST-secret", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Write([]byte(`{"status":"success","message":"Hosted Link","data":{"checkout_url":"https://checkout.chapa.co/abc","tx_ref":"booking-1"}}`))
	})

	res, err := client.Initialize(context.Background(), &gateway.InitializeRequest{
		Amount:   "300.00",
		Currency: "ETB",
		Email:    "guest@example.com",
		TxRef:    "booking-1",
		Customization: gateway.Customization{
			Title:       "Booking Payment",
			Description: "Payment for booking 1",
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "https://checkout.chapa.co/abc", res.CheckoutURL)
	assert.Equal(t, "booking-1", res.TxRef)
	assert.Equal(t, "300.00", got.Amount)
	assert.Equal(t, "Booking Payment", got.Customization.Title)
}

func TestClient_Initialize_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "non-200", status: http.StatusBadRequest, body: `{"status":"failed","message":"invalid currency"}`},
		{name: "failed status", status: http.StatusOK, body: `{"status":"failed","message":"nope"}`},
		{name: "malformed body", status: http.StatusOK, body: `not json`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			res, err := client.Initialize(context.Background(), &gateway.InitializeRequest{TxRef: "booking-1"})

			assert.Nil(t, res)
			assert.True(t, errors.Is(err, gateway.ErrGateway))
		})
	}
}

func TestClient_Verify(t *testing.T) {
	tests := []struct {
		name          string
		body          string
		wantSucceeded bool
	}{
		{
			name:          "paid",
			body:          `{"status":"success","data":{"status":"success","tx_ref":"booking-1"}}`,
			wantSucceeded: true,
		},
		{
			name:          "still pending",
			body:          `{"status":"success","data":{"status":"pending","tx_ref":"booking-1"}}`,
			wantSucceeded: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, "/transaction/verify/booking-1", r.URL.Path)
				w.Write([]byte(tt.body))
			})

			res, err := client.Verify(context.Background(), "booking-1")

			require.NoError(t, err)
			assert.Equal(t, tt.wantSucceeded, res.Succeeded())
		})
	}
}

func TestClient_Verify_NotFound(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"status":"failed","message":"Invalid transaction or Transaction not found"}`))
	})

	_, err := client.Verify(context.Background(), "booking-unknown")

	assert.ErrorIs(t, err, gateway.ErrGateway)
}
