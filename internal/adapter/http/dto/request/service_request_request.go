package request

import (
	"time"

	"servisku/internal/usecase"

	"github.com/shopspring/decimal"
)

// CreateServiceRequestRequest is the payload a customer submits for a repair job.
//
// scheduled_for is RFC3339, e.g. "2026-03-02T09:00:00+07:00".
type CreateServiceRequestRequest struct {
	Category     string    `json:"category" binding:"required"`
	Title        string    `json:"title" binding:"required"`
	Description  string    `json:"description"`
	ScheduledFor time.Time `json:"scheduled_for" binding:"required"`
}

func (r CreateServiceRequestRequest) ToInput() usecase.CreateServiceRequestInput {
	return usecase.CreateServiceRequestInput{
		Category:     r.Category,
		Title:        r.Title,
		Description:  r.Description,
		ScheduledFor: r.ScheduledFor,
	}
}

// ProposePriceRequest accepts the offer as a JSON number or a decimal string.
type ProposePriceRequest struct {
	PriceOffer *decimal.Decimal `json:"price_offer" binding:"required"`
}

type SendMessageRequest struct {
	Body string `json:"body"`
}
