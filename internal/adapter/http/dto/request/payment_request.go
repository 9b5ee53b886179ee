package request

import "encoding/json"

// PaymentCreateRequest documents the payment route body.
//
// The Mercado Pago request can be sent as-is or wrapped in `mp_payload`; its
// schema varies by payment method, so it stays raw JSON.
type PaymentCreateRequest struct {
	MPPayload json.RawMessage `json:"mp_payload" swaggertype:"object"`
}
