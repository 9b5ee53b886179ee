package response

import (
	"time"

	"servisku/internal/domain/entities"

	"github.com/shopspring/decimal"
)

type ServiceRequestResponse struct {
	ID            string           `json:"id"`
	CustomerID    string           `json:"customer_id"`
	TechnicianID  string           `json:"technician_id"`
	Category      string           `json:"category"`
	Title         string           `json:"title"`
	Description   string           `json:"description"`
	ScheduledFor  time.Time        `json:"scheduled_for"`
	Status        string           `json:"status"`
	AcceptedPrice *decimal.Decimal `json:"accepted_price" swaggertype:"string"`
	Version       int64            `json:"version"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

func FromServiceRequest(r entities.ServiceRequest) ServiceRequestResponse {
	return ServiceRequestResponse{
		ID:            r.ID,
		CustomerID:    r.CustomerID,
		TechnicianID:  r.TechnicianID,
		Category:      r.Category,
		Title:         r.Title,
		Description:   r.Description,
		ScheduledFor:  r.ScheduledFor,
		Status:        string(r.Status),
		AcceptedPrice: r.AcceptedPrice,
		Version:       r.Version,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

// ServiceRequestDetailResponse is what participants see on the request page.
type ServiceRequestDetailResponse struct {
	ServiceRequest     ServiceRequestResponse `json:"service_request"`
	Messages           []MessageResponse      `json:"messages"`
	LatestPayment      *PaymentResponse       `json:"latest_payment"`
	NeedsPaymentAction bool                   `json:"needs_payment_action"`
}

func FromServiceRequestDetail(d entities.ServiceRequestDetail) ServiceRequestDetailResponse {
	res := ServiceRequestDetailResponse{
		ServiceRequest:     FromServiceRequest(d.Request),
		Messages:           FromMessages(d.Messages),
		NeedsPaymentAction: d.NeedsPaymentAction,
	}
	if d.LatestPayment != nil {
		p := FromPayment(*d.LatestPayment)
		res.LatestPayment = &p
	}
	return res
}

type MessageResponse struct {
	ID               string    `json:"id"`
	ServiceRequestID string    `json:"service_request_id"`
	SenderID         string    `json:"sender_id"`
	Type             string    `json:"type"`
	Body             string    `json:"body"`
	CreatedAt        time.Time `json:"created_at"`
}

func FromMessage(m entities.Message) MessageResponse {
	return MessageResponse{
		ID:               m.ID,
		ServiceRequestID: m.ServiceRequestID,
		SenderID:         m.SenderID,
		Type:             string(m.Type),
		Body:             m.Body,
		CreatedAt:        m.CreatedAt,
	}
}

// FromMessages never returns nil so the list serializes as [].
func FromMessages(messages []entities.Message) []MessageResponse {
	out := make([]MessageResponse, 0, len(messages))
	for _, m := range messages {
		out = append(out, FromMessage(m))
	}
	return out
}

// MessageEventResponse is one frame on the service request stream.
type MessageEventResponse struct {
	Event   string          `json:"event"`
	Message MessageResponse `json:"message"`
}

func FromMessageEvent(ev entities.MessageEvent) MessageEventResponse {
	return MessageEventResponse{Event: ev.Event, Message: FromMessage(ev.Message)}
}
