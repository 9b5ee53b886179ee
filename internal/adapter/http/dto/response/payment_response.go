package response

import (
	"encoding/json"
	"time"

	"servisku/internal/domain/entities"

	"github.com/shopspring/decimal"
)

type PaymentResponse struct {
	ID                string          `json:"id"`
	ServiceRequestID  string          `json:"service_request_id"`
	Amount            decimal.Decimal `json:"amount" swaggertype:"string"`
	Status            string          `json:"status"`
	Provider          string          `json:"provider"`
	ProviderPaymentID string          `json:"provider_payment_id,omitempty"`
	ProviderStatus    string          `json:"provider_status,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`

	ProviderResponse json.RawMessage `json:"provider_response,omitempty" swaggertype:"object"`
}

func FromPayment(p entities.Payment) PaymentResponse {
	return PaymentResponse{
		ID:                p.ID,
		ServiceRequestID:  p.ServiceRequestID,
		Amount:            p.Amount,
		Status:            string(p.Status),
		Provider:          p.Provider,
		ProviderPaymentID: p.ProviderPaymentID,
		ProviderStatus:    p.ProviderStatus,
		CreatedAt:         p.CreatedAt,
		ProviderResponse:  providerResponse(p.ProviderPayloadRaw),
	}
}

func FromPayments(payments []entities.Payment) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, FromPayment(p))
	}
	return out
}

// providerResponse drops stored bodies that are not valid JSON so the
// response itself stays encodable.
func providerResponse(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 || !json.Valid(raw) {
		return nil
	}
	return raw
}
