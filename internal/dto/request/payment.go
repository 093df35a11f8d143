package request

type VerifyPaymentRequest struct {
	TransactionID string `json:"transaction_id"`
}
