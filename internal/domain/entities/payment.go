package entities

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus represents the payment processing outcome.

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusSettled PaymentStatus = "settled"
	PaymentStatusFailed  PaymentStatus = "failed"
)

const PaymentProviderMercadoPago = "mercadopago"

// Payment is the customer's payment for a service request.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (service_request_id-index): service_request_id
//
// ProviderPayloadRaw keeps the gateway response body for traceability/audit.
type Payment struct {
	ID                 string          `json:"id"`
	ServiceRequestID   string          `json:"service_request_id"`
	Amount             decimal.Decimal `json:"amount"`
	Status             PaymentStatus   `json:"status"`
	Provider           string          `json:"provider"`
	ProviderPaymentID  string          `json:"provider_payment_id"`
	ProviderStatus     string          `json:"provider_status"`
	ProviderPayloadRaw json.RawMessage `json:"provider_payload_raw,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
}

// LatestPayment returns the most recent payment by creation time, or nil.
func LatestPayment(payments []Payment) *Payment {
	if len(payments) == 0 {
		return nil
	}
	latest := payments[0]
	for _, p := range payments[1:] {
		if p.CreatedAt.After(latest.CreatedAt) {
			latest = p
		}
	}
	return &latest
}

// NeedsPaymentAction is true unless the latest payment has settled.
func NeedsPaymentAction(payments []Payment) bool {
	latest := LatestPayment(payments)
	return latest == nil || latest.Status != PaymentStatusSettled
}
