package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"travel-booking/pkg/utils"
)

// ErrGateway marks any failed or non-successful gateway exchange.
var ErrGateway = errors.New("payment gateway error")

const statusSuccess = "success"

type Customization struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// InitializeRequest is the body of POST /transaction/initialize.
type InitializeRequest struct {
	Amount        string        `json:"amount"`
	Currency      string        `json:"currency"`
	Email         string        `json:"email"`
	FirstName     string        `json:"first_name"`
	LastName      string        `json:"last_name"`
	TxRef         string        `json:"tx_ref"`
	CallbackURL   string        `json:"callback_url"`
	ReturnURL     string        `json:"return_url"`
	Customization Customization `json:"customization"`
}

type InitializeResult struct {
	CheckoutURL string
	TxRef       string
}

type VerifyResult struct {
	TxRef string
	// Status is the transaction status reported by the gateway, e.g. "success".
	Status string
}

// Succeeded reports whether the gateway considers the transaction paid.
func (v *VerifyResult) Succeeded() bool {
	return v.Status == statusSuccess
}

type envelope struct {
	Status  string          `json:"status"`
	Message json.RawMessage `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type initializeData struct {
	CheckoutURL string `json:"checkout_url"`
	TxRef       string `json:"tx_ref"`
}

type verifyData struct {
	Status string `json:"status"`
	TxRef  string `json:"tx_ref"`
}

// Client talks to a Chapa-compatible payment API.
type Client struct {
	baseURL   string
	secretKey string
	http      *http.Client
	log       *zap.Logger
}

func NewClient(config utils.GatewayConfig, httpClient *http.Client, log *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:   config.BaseURL,
		secretKey: config.SecretKey,
		http:      httpClient,
		log:       log.With(zap.String("gateway", "chapa")),
	}
}

// Initialize registers a transaction and returns the hosted checkout URL.
func (c *Client) Initialize(ctx context.Context, req *InitializeRequest) (*InitializeResult, error) {
	ctx, span := otel.Tracer("gateway").Start(ctx, "chapa.Initialize")
	defer span.End()
	span.SetAttributes(attribute.String("payment.tx_ref", req.TxRef))

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal initialize request: %w", err)
	}

	var data initializeData
	if err := c.do(ctx, http.MethodPost, "/transaction/initialize", body, &data); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "initialize failed")
		return nil, err
	}

	return &InitializeResult{
		CheckoutURL: data.CheckoutURL,
		TxRef:       data.TxRef,
	}, nil
}

// Verify asks the gateway for the current state of txRef.
func (c *Client) Verify(ctx context.Context, txRef string) (*VerifyResult, error) {
	ctx, span := otel.Tracer("gateway").Start(ctx, "chapa.Verify")
	defer span.End()
	span.SetAttributes(attribute.String("payment.tx_ref", txRef))

	var data verifyData
	if err := c.do(ctx, http.MethodGet, "/transaction/verify/"+url.PathEscape(txRef), nil, &data); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "verify failed")
		return nil, err
	}

	span.SetAttributes(attribute.String("payment.gateway_status", data.Status))
	return &VerifyResult{TxRef: data.TxRef, Status: data.Status}, nil
}

// do sends one request and decodes the envelope's data into out. A non-200
// response or an envelope status other than "success" wraps ErrGateway.
func (c *Client) do(ctx context.Context, method, path string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build gateway request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.secretKey)
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.log.Error("Gateway request failed", zap.Error(err), zap.String("path", path))
		return fmt.Errorf("%s %s: %w: %v", method, path, ErrGateway, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read gateway response: %w: %v", ErrGateway, err)
	}

	if resp.StatusCode != http.StatusOK {
		c.log.Warn("Gateway returned non-200",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", raw),
		)
		return fmt.Errorf("%s %s returned %d: %w", method, path, resp.StatusCode, ErrGateway)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("decode gateway response: %w: %v", ErrGateway, err)
	}
	if env.Status != statusSuccess {
		c.log.Warn("Gateway reported failure",
			zap.String("path", path),
			zap.String("status", env.Status),
			zap.ByteString("message", env.Message),
		)
		return fmt.Errorf("%s %s status %q: %w", method, path, env.Status, ErrGateway)
	}

	if len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode gateway data: %w: %v", ErrGateway, err)
		}
	}

	return nil
}
